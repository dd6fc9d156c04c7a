package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/teamplan/internal/app/system/normalize"
	"github.com/dalemusser/teamplan/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "engineer"|"manager"`)
	errBadSeniority   = errors.New(`seniority must be "junior"|"mid"|"senior"`)
	errBadCapacity    = errors.New("max_capacity must be between 0 and 100")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetEngineerByID loads a user by ObjectID, returning an error if the user
// does not exist or is not an engineer.
func (s *Store) GetEngineerByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "role": "engineer"}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetManagerByID loads a user by ObjectID, returning an error if the user
// does not exist or is not a manager.
func (s *Store) GetManagerByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "role": "manager"}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
// The caller is responsible for hashing the password beforehand.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	u.Skills = normalize.Strings(u.Skills)

	switch u.Role {
	case "engineer", "manager":
		// ok
	default:
		return models.User{}, errBadRole
	}

	if u.Seniority != "" {
		switch u.Seniority {
		case "junior", "mid", "senior":
			// ok
		default:
			return models.User{}, errBadSeniority
		}
	}

	// Zero is a legal capacity (an engineer taking no assignments), so the
	// value is stored as given. Callers apply the configured default when
	// the field was omitted.
	if u.MaxCapacity < 0 || u.MaxCapacity > 100 {
		return models.User{}, errBadCapacity
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ListEngineers returns all engineer-role users ordered by folded name.
func (s *Store) ListEngineers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"role": "engineer"}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetManyByID loads the users for a set of ObjectIDs, keyed by id. Used to
// populate referenced managers and engineers on read paths.
func (s *Store) GetManyByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]models.User{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := make(map[primitive.ObjectID]models.User, len(ids))
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, cur.Err()
}

// DeleteAll wipes the collection. Seed-only.
func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.c.DeleteMany(ctx, bson.M{})
	return err
}
