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
	collectionTasks          = "tasks"
	collectionTaskActivities = "task_activities"
)

type TaskRepository struct {
	db         *mongo.Database
	col        *mongo.Collection
	activities *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		db:         db,
		col:        db.Collection(collectionTasks),
		activities: db.Collection(collectionTaskActivities),
	}
}

// Create inserts the task and its CREATED activity in one transaction.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task, created domain.Activity) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	t.ID = primitive.NewObjectID().Hex()
	created.ID = primitive.NewObjectID().Hex()
	created.TargetID = t.ID

	err := r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.col.InsertOne(sc, t); err != nil {
			return err
		}
		_, err := r.activities.InsertOne(sc, created)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) List(ctx context.Context, filter ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ProjectID != "" {
		query["project_id"] = filter.ProjectID
	} else if filter.ProjectIDs != nil {
		query["project_id"] = bson.M{"$in": filter.ProjectIDs}
	}
	if filter.ModuleID != "" {
		query["module_id"] = filter.ModuleID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.AssigneeID != "" {
		query["assignee_ids"] = filter.AssigneeID
	}
	if filter.Search != "" {
		query["title"] = bson.M{"$regex": filter.Search, "$options": "i"}
	}
	if filter.Scope.ParticipantID != "" {
		query["$or"] = []bson.M{
			{"created_by": filter.Scope.ParticipantID},
			{"assignee_ids": filter.Scope.ParticipantID},
		}
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

	var items []*domain.Task
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *TaskRepository) ListByModule(ctx context.Context, projectID, moduleID string) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"project_id": projectID}
	if moduleID == "" {
		query["$or"] = []bson.M{
			{"module_id": ""},
			{"module_id": bson.M{"$exists": false}},
		}
	} else {
		query["module_id"] = moduleID
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*domain.Task
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces the task and appends its activity entries atomically: the
// audit trail never lags or leads the row it describes.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task, entries []domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := r.col.ReplaceOne(sc, bson.M{"_id": t.ID}, t)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return domain.ErrTaskNotFound
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

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) ListActivities(ctx context.Context, taskID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.activities.Find(ctx, bson.M{"target_id": taskID},
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

func (r *TaskRepository) CountByAssignee(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"assignee_ids": userID})
}

func (r *TaskRepository) inTransaction(ctx context.Context, fn func(mongo.SessionContext) error) error {
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

// EnsureIndexes creates necessary indexes on the task collections.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "module_id", Value: 1}}},
		{Keys: bson.D{{Key: "assignee_ids", Value: 1}}},
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return err
	}
	_, err := r.activities.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "target_id", Value: 1}, {Key: "at", Value: -1}},
	})
	return err
}

var _ ports.TaskRepository = (*TaskRepository)(nil)
