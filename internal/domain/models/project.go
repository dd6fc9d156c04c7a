// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a body of work engineers are assigned to.
//
// StartDate/EndDate bound the project window but are not validated against
// each other; assignments carry their own windows. A project cannot be
// deleted while assignments reference it.
type Project struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	NameCI         string             `bson:"name_ci" json:"-"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	StartDate      time.Time          `bson:"start_date" json:"start_date"`
	EndDate        time.Time          `bson:"end_date" json:"end_date"`
	RequiredSkills []string           `bson:"required_skills,omitempty" json:"required_skills,omitempty"`
	TeamSize       int                `bson:"team_size" json:"team_size"`
	Status         string             `bson:"status" json:"status"` // planning | active | completed
	ManagerID      primitive.ObjectID `bson:"manager_id" json:"manager_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	// Manager is populated on read paths that join the users collection.
	// It is never stored on the document.
	Manager *User `bson:"-" json:"manager,omitempty"`
}
