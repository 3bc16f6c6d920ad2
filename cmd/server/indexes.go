package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	mongodb "github.com/officedesk/office-console/internal/infrastructure/db/mongo"
)

// ensureIndexes creates the indexes every repository relies on. Run once at
// startup; index creation is idempotent on the server side.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	type indexed interface {
		EnsureIndexes(ctx context.Context) error
	}

	repos := []indexed{
		mongodb.NewClientRepository(db),
		mongodb.NewProjectRepository(db),
		mongodb.NewModuleRepository(db),
		mongodb.NewTaskRepository(db),
		mongodb.NewWorkLogRepository(db),
		mongodb.NewUserRepository(db),
		mongodb.NewRequirementRepository(db),
	}

	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
