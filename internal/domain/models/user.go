// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultMaxCapacity is the capacity assigned to a full-time engineer.
// Part-time engineers are typically created with 50.
const DefaultMaxCapacity = 100

// User represents engineers and managers.
//
// Password holds a bcrypt hash and is never serialized to JSON.
// Engineer-only fields (skills, seniority) are omitted for managers.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Password    string             `bson:"password" json:"-"`
	Role        string             `bson:"role" json:"role"` // engineer | manager
	Skills      []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Seniority   string             `bson:"seniority,omitempty" json:"seniority,omitempty"` // junior | mid | senior
	MaxCapacity int                `bson:"max_capacity" json:"max_capacity"`
	Department  string             `bson:"department,omitempty" json:"department,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
