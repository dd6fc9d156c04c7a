package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/teamplan/internal/app/system/normalize"
	"github.com/dalemusser/teamplan/internal/domain/models"
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
	return &Store{c: db.Collection("projects")}
}

var errBadStatus = errors.New(`status must be "planning"|"active"|"completed"`)

func validStatus(s string) bool {
	switch s {
	case "planning", "active", "completed":
		return true
	}
	return false
}

// Create inserts a new project document. Status defaults to "planning".
// Start/end dates are stored as provided; the window is not validated
// (assignments carry their own windows).
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = primitive.NewObjectID()
	p.Name = normalize.Name(p.Name)
	p.NameCI = text.Fold(p.Name)
	p.RequiredSkills = normalize.Strings(p.RequiredSkills)

	if p.Status == "" {
		p.Status = "planning"
	}
	if !validStatus(p.Status) {
		return models.Project{}, errBadStatus
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByID returns a single project by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces an existing project identified by its _id.
// CreatedAt is preserved from the existing document by the caller;
// UpdatedAt is set to now (UTC).
func (s *Store) Update(ctx context.Context, p models.Project) (models.Project, error) {
	if p.ID.IsZero() {
		return p, mongo.ErrNilDocument
	}

	p.Name = normalize.Name(p.Name)
	p.NameCI = text.Fold(p.Name)
	p.RequiredSkills = normalize.Strings(p.RequiredSkills)
	if !validStatus(p.Status) {
		return models.Project{}, errBadStatus
	}
	p.UpdatedAt = time.Now().UTC()

	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return p, err
	}
	if res.MatchedCount == 0 {
		return p, mongo.ErrNoDocuments
	}
	return p, nil
}

// Delete removes the project with the given _id. The handler is responsible
// for refusing the delete while assignments still reference the project.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns all projects ordered by folded name.
func (s *Store) List(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetManyByID fetches the given projects in one query, keyed by ID.
// Missing IDs are absent from the map.
func (s *Store) GetManyByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Project, error) {
	out := make(map[primitive.ObjectID]models.Project, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var p models.Project
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, cur.Err()
}

// DeleteAll wipes the collection. Seed-only.
func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.c.DeleteMany(ctx, bson.M{})
	return err
}
