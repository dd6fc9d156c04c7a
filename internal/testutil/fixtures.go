package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/teamplan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateEngineer creates a test engineer with the given name, email, and
// max capacity.
func (f *Fixtures) CreateEngineer(ctx context.Context, name, email string, maxCapacity int) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:          primitive.NewObjectID(),
		Email:       email,
		Name:        name,
		NameCI:      text.Fold(name),
		Password:    "$2a$12$testhashtesthashtesthashtesthashtesthashtesthashtestha",
		Role:        "engineer",
		Skills:      []string{"Go", "MongoDB"},
		Seniority:   "mid",
		MaxCapacity: maxCapacity,
		Department:  "Platform",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test engineer: %v", err)
	}
	return user
}

// CreateManager creates a test manager user.
func (f *Fixtures) CreateManager(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:          primitive.NewObjectID(),
		Email:       email,
		Name:        name,
		NameCI:      text.Fold(name),
		Password:    "$2a$12$testhashtesthashtesthashtesthashtesthashtesthashtestha",
		Role:        "manager",
		MaxCapacity: models.DefaultMaxCapacity,
		Department:  "Platform",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test manager: %v", err)
	}
	return user
}

// CreateProject creates a test project managed by the given manager.
func (f *Fixtures) CreateProject(ctx context.Context, name string, managerID primitive.ObjectID, start, end time.Time) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	project := models.Project{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		Description:    "Test project description",
		StartDate:      start,
		EndDate:        end,
		RequiredSkills: []string{"Go"},
		TeamSize:       3,
		Status:         "active",
		ManagerID:      managerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, project); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateAssignment creates a test assignment committing allocation percent
// of the engineer over [start, end].
func (f *Fixtures) CreateAssignment(ctx context.Context, engineerID, projectID primitive.ObjectID, allocation int, start, end time.Time) models.Assignment {
	f.t.Helper()

	assignment := models.Assignment{
		ID:                   primitive.NewObjectID(),
		EngineerID:           engineerID,
		ProjectID:            projectID,
		AllocationPercentage: allocation,
		StartDate:            start,
		EndDate:              end,
		Role:                 models.DefaultAssignmentRole,
		CreatedAt:            time.Now().UTC(),
	}

	if _, err := f.db.Collection("assignments").InsertOne(ctx, assignment); err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}
	return assignment
}
