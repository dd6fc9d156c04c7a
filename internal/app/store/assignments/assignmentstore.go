package assignmentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/teamplan/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("assignments")}
}

// ErrBadAllocation is returned when allocation_percentage is outside [0,100].
var ErrBadAllocation = errors.New("allocation_percentage must be between 0 and 100")

// Create inserts a new assignment document.
//
// The caller is responsible for verifying the referenced engineer and
// project exist and for the capacity check. Role defaults to "Developer"
// when empty.
func (s *Store) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	if a.AllocationPercentage < 0 || a.AllocationPercentage > 100 {
		return a, ErrBadAllocation
	}
	if a.Role == "" {
		a.Role = models.DefaultAssignmentRole
	}

	a.ID = primitive.NewObjectID()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	// UpdatedAt is left nil on initial create.

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return a, err
	}
	return a, nil
}

// GetByID returns a single assignment by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Assignment, error) {
	var a models.Assignment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	return a, err
}

// Update replaces an existing assignment identified by its _id.
// UpdatedAt is set to now (UTC). Capacity is deliberately not re-checked
// on update.
func (s *Store) Update(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	if a.ID.IsZero() {
		return a, mongo.ErrNilDocument
	}
	if a.AllocationPercentage < 0 || a.AllocationPercentage > 100 {
		return a, ErrBadAllocation
	}
	if a.Role == "" {
		a.Role = models.DefaultAssignmentRole
	}

	now := time.Now().UTC()
	a.UpdatedAt = &now

	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return a, err
	}
	if res.MatchedCount == 0 {
		return a, mongo.ErrNoDocuments
	}
	return a, nil
}

// Delete removes the assignment with the given _id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns every assignment.
func (s *Store) List(ctx context.Context) ([]models.Assignment, error) {
	return s.find(ctx, bson.M{})
}

// ListByEngineer returns all assignments for one engineer.
func (s *Store) ListByEngineer(ctx context.Context, engineerID primitive.ObjectID) ([]models.Assignment, error) {
	return s.find(ctx, bson.M{"engineer_id": engineerID})
}

// ListOverlapping returns the engineer's assignments whose windows overlap
// [start, end]. Both boundaries are inclusive: start_date <= end AND
// end_date >= start, so an assignment ending exactly on the query start
// date counts as overlapping.
func (s *Store) ListOverlapping(ctx context.Context, engineerID primitive.ObjectID, start, end time.Time) ([]models.Assignment, error) {
	return s.find(ctx, bson.M{
		"engineer_id": engineerID,
		"start_date":  bson.M{"$lte": end},
		"end_date":    bson.M{"$gte": start},
	})
}

// CountByProject reports how many assignments reference a project. Used to
// block project deletion while references remain.
func (s *Store) CountByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"project_id": projectID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Assignment, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAll wipes the collection. Seed-only.
func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.c.DeleteMany(ctx, bson.M{})
	return err
}
