package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

const (
	collectionRequirements         = "requirements"
	collectionRequirementActivities = "requirement_activities"
)

type RequirementRepository struct {
	db         *mongo.Database
	col        *mongo.Collection
	activities *mongo.Collection
}

func NewRequirementRepository(db *mongo.Database) *RequirementRepository {
	return &RequirementRepository{
		db:         db,
		col:        db.Collection(collectionRequirements),
		activities: db.Collection(collectionRequirementActivities),
	}
}

// Create inserts the requirement and its CREATED activity in one transaction.
func (r *RequirementRepository) Create(ctx context.Context, req *domain.Requirement, created domain.Activity) (*domain.Requirement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	req.ID = primitive.NewObjectID().Hex()
	created.ID = primitive.NewObjectID().Hex()
	created.TargetID = req.ID

	err := r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.col.InsertOne(sc, req); err != nil {
			return err
		}
		_, err := r.activities.InsertOne(sc, created)
		return err
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *RequirementRepository) FindByID(ctx context.Context, id string) (*domain.Requirement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.Requirement
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequirementNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequirementRepository) List(ctx context.Context, filter ports.ListRequirementsFilter) ([]*domain.Requirement, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Scope.ClientID != "" {
		query["client_id"] = filter.Scope.ClientID
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.ParentID != "" {
		query["parent_id"] = filter.ParentID
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []*domain.Requirement
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update replaces the requirement and appends its activity entries
// atomically.
func (r *RequirementRepository) Update(ctx context.Context, req *domain.Requirement, entries []domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := r.col.ReplaceOne(sc, bson.M{"_id": req.ID}, req)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return domain.ErrRequirementNotFound
		}
		if len(entries) == 0 {
			return nil
		}
		docs := make([]any, len(entries))
		for i, e := range entries {
			e.ID = primitive.NewObjectID().Hex()
			docs[i] = e
		}
		_, err = r.activities.InsertMany(sc, docs)
		return err
	})
}

func (r *RequirementRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrRequirementNotFound
	}
	return nil
}

func (r *RequirementRepository) CountChildren(ctx context.Context, parentID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"parent_id": parentID})
}

func (r *RequirementRepository) ListActivities(ctx context.Context, requirementID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.activities.Find(ctx, bson.M{"target_id": requirementID},
		options.Find().SetSort(bson.D{{Key: "at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*domain.Activity
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RequirementRepository) inTransaction(ctx context.Context, fn func(mongo.SessionContext) error) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}

// EnsureIndexes creates necessary indexes on the requirement collections.
func (r *RequirementRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "parent_id", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return err
	}
	_, err := r.activities.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "target_id", Value: 1}, {Key: "at", Value: -1}},
	})
	return err
}

var _ ports.RequirementRepository = (*RequirementRepository)(nil)
