package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Index creation is idempotent; errors are
aggregated so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureProjects(ctx, db); err != nil {
		problems = append(problems, "projects: "+err.Error())
	}
	if err := ensureAssignments(ctx, db); err != nil {
		problems = append(problems, "assignments: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	names, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	zap.L().Info("indexes ensured",
		zap.String("collection", coll.Name()),
		zap.Strings("names", names))
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique across all users
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Engineer listings: filter by role, sort by folded name with a stable tiebreak
		{
			Keys: bson.D{
				{Key: "role", Value: 1},
				{Key: "name_ci", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_users_role_nameci__id"),
		},
	})
}

func ensureProjects(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("projects")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Name prefix search + stable sort
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_projects_nameci__id"),
		},
		// Filter by status
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_projects_status_nameci"),
		},
		// Per-manager lookups
		{
			Keys:    bson.D{{Key: "manager_id", Value: 1}},
			Options: options.Index().SetName("idx_projects_manager"),
		},
	})
}

func ensureAssignments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("assignments")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Overlap query: engineer_id equality, then the date-range bounds
		{
			Keys: bson.D{
				{Key: "engineer_id", Value: 1},
				{Key: "start_date", Value: 1},
				{Key: "end_date", Value: 1},
			},
			Options: options.Index().SetName("idx_assign_engineer_window"),
		},
		// Reference counting for project deletion, and per-project listings
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}},
			Options: options.Index().SetName("idx_assign_project"),
		},
		// Per-engineer listings (own-assignments view)
		{
			Keys:    bson.D{{Key: "engineer_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_assign_engineer_created"),
		},
	})
}
