// Package capacity computes an engineer's available capacity over a date
// interval from the allocation percentages of overlapping assignments.
package capacity

import (
	"context"
	"errors"
	"time"

	assignmentstore "github.com/dalemusser/teamplan/internal/app/store/assignments"
	userstore "github.com/dalemusser/teamplan/internal/app/store/users"
	"github.com/dalemusser/teamplan/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Allocated sums the allocation percentages of the given assignments.
func Allocated(assignments []models.Assignment) int {
	total := 0
	for _, a := range assignments {
		total += a.AllocationPercentage
	}
	return total
}

// Remaining returns maxCapacity minus allocated, floored at zero.
func Remaining(maxCapacity, allocated int) int {
	if rem := maxCapacity - allocated; rem > 0 {
		return rem
	}
	return 0
}

// Calculator resolves available capacity against the users and assignments
// collections.
type Calculator struct {
	users       *userstore.Store
	assignments *assignmentstore.Store
}

// NewCalculator constructs a Calculator over the two stores.
func NewCalculator(users *userstore.Store, assignments *assignmentstore.Store) *Calculator {
	return &Calculator{users: users, assignments: assignments}
}

// Available returns the engineer's capacity left over [start, end]:
// max(0, max_capacity − Σ allocation of assignments overlapping the
// interval). Overlap is inclusive on both boundaries.
//
// An unknown engineer yields 0 with no error; callers cannot distinguish
// "engineer not found" from "fully allocated". That asymmetry is part of
// the API's contract.
func (c *Calculator) Available(ctx context.Context, engineerID primitive.ObjectID, start, end time.Time) (int, error) {
	eng, err := c.users.GetEngineerByID(ctx, engineerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}

	overlapping, err := c.assignments.ListOverlapping(ctx, engineerID, start, end)
	if err != nil {
		return 0, err
	}

	return Remaining(eng.MaxCapacity, Allocated(overlapping)), nil
}
