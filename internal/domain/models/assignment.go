// internal/domain/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAssignmentRole is used when an assignment is created without an
// explicit role string.
const DefaultAssignmentRole = "Developer"

// Assignment commits a fraction of an engineer's capacity to a project over
// a date window. Both window boundaries are inclusive for overlap purposes:
// an assignment ending exactly on a query's start date still overlaps it.
type Assignment struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EngineerID           primitive.ObjectID `bson:"engineer_id" json:"engineer_id"`
	ProjectID            primitive.ObjectID `bson:"project_id" json:"project_id"`
	AllocationPercentage int                `bson:"allocation_percentage" json:"allocation_percentage"` // 0..100
	StartDate            time.Time          `bson:"start_date" json:"start_date"`
	EndDate              time.Time          `bson:"end_date" json:"end_date"`
	Role                 string             `bson:"role" json:"role"` // free text, e.g. "Developer", "Tech Lead"

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`

	// Engineer and Project are populated on read paths that join the
	// referenced collections. Never stored on the document.
	Engineer *User    `bson:"-" json:"engineer,omitempty"`
	Project  *Project `bson:"-" json:"project,omitempty"`
}

// Overlaps reports whether the assignment window overlaps [start, end],
// inclusive on both boundaries.
func (a *Assignment) Overlaps(start, end time.Time) bool {
	return !a.StartDate.After(end) && !a.EndDate.Before(start)
}
