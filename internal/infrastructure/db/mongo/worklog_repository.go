package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

const collectionWorkLogs = "work_logs"

type WorkLogRepository struct {
	col *mongo.Collection
}

func NewWorkLogRepository(db *mongo.Database) *WorkLogRepository {
	return &WorkLogRepository{col: db.Collection(collectionWorkLogs)}
}

func (r *WorkLogRepository) Create(ctx context.Context, w *domain.WorkLog) (*domain.WorkLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	w.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *WorkLogRepository) FindByID(ctx context.Context, id string) (*domain.WorkLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var w domain.WorkLog
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWorkLogNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *WorkLogRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.WorkLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"task_id": taskID},
		options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*domain.WorkLog
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListForRange selects by start_time only; a log straddling the upper bound
// still counts toward the window it started in.
func (r *WorkLogRepository) ListForRange(ctx context.Context, taskIDs []string, from, to *time.Time) ([]*domain.WorkLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"task_id": bson.M{"$in": taskIDs}}
	if from != nil || to != nil {
		span := bson.M{}
		if from != nil {
			span["$gte"] = from.UTC()
		}
		if to != nil {
			span["$lte"] = to.UTC()
		}
		query["start_time"] = span
	}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*domain.WorkLog
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *WorkLogRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrWorkLogNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the work_logs collection.
func (r *WorkLogRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "start_time", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

var _ ports.WorkLogRepository = (*WorkLogRepository)(nil)
