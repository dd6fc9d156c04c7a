package projectstore_test

import (
	"errors"
	"testing"
	"time"

	projectstore "github.com/dalemusser/teamplan/internal/app/store/projects"
	"github.com/dalemusser/teamplan/internal/domain/models"
	"github.com/dalemusser/teamplan/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newStore(t *testing.T) *projectstore.Store {
	t.Helper()
	return projectstore.New(testutil.SetupTestDB(t))
}

func sample(name string) models.Project {
	return models.Project{
		Name:      name,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC),
		TeamSize:  3,
		ManagerID: primitive.NewObjectID(),
	}
}

func TestCreate_DefaultsStatus(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := s.Create(ctx, sample("Billing"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != "planning" {
		t.Errorf("status = %q, want planning", created.Status)
	}
	if created.ID.IsZero() {
		t.Error("expected a generated id")
	}

	bad := sample("Broken")
	bad.Status = "archived"
	if _, err := s.Create(ctx, bad); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := s.Create(ctx, sample("Portal"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created.Name = "Portal v2"
	created.Status = "active"
	updated, err := s.Update(ctx, created)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Portal v2" || updated.Status != "active" {
		t.Errorf("update not applied: %+v", updated)
	}

	ghost := sample("Ghost")
	ghost.ID = primitive.NewObjectID()
	if _, err := s.Update(ctx, ghost); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("update of unknown id = %v, want ErrNoDocuments", err)
	}

	n, err := s.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
	n, err = s.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("repeat delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("repeat delete removed %d, want 0", n)
	}
}

func TestList_SortedByFoldedName(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"zeta", "Alpha", "mid"} {
		if _, err := s.Create(ctx, sample(name)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(list))
	}
	want := []string{"Alpha", "mid", "zeta"}
	for i, p := range list {
		if p.Name != want[i] {
			t.Errorf("list[%d] = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestGetManyByID(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := s.Create(ctx, sample("A"))
	b, _ := s.Create(ctx, sample("B"))

	got, err := s.GetManyByID(ctx, []primitive.ObjectID{a.ID, b.ID, primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("GetManyByID failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(got))
	}
	if got[a.ID].Name != "A" {
		t.Errorf("wrong project for id %s", a.ID.Hex())
	}
}
