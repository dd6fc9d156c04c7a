package assignmentstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	assignmentstore "github.com/dalemusser/teamplan/internal/app/store/assignments"
	"github.com/dalemusser/teamplan/internal/domain/models"
	"github.com/dalemusser/teamplan/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func newStore(t *testing.T) *assignmentstore.Store {
	t.Helper()
	return assignmentstore.New(testutil.SetupTestDB(t))
}

func mustCreate(t *testing.T, ctx context.Context, s *assignmentstore.Store, engineerID primitive.ObjectID, alloc int, start, end time.Time) models.Assignment {
	t.Helper()
	a, err := s.Create(ctx, models.Assignment{
		EngineerID:           engineerID,
		ProjectID:            primitive.NewObjectID(),
		AllocationPercentage: alloc,
		StartDate:            start,
		EndDate:              end,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return a
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := mustCreate(t, ctx, s, primitive.NewObjectID(), 50, day(2026, 9, 1), day(2026, 12, 31))
	if a.Role != models.DefaultAssignmentRole {
		t.Errorf("role = %q, want default %q", a.Role, models.DefaultAssignmentRole)
	}
	if a.UpdatedAt != nil {
		t.Error("updated_at should be unset on create")
	}

	_, err := s.Create(ctx, models.Assignment{
		EngineerID:           primitive.NewObjectID(),
		ProjectID:            primitive.NewObjectID(),
		AllocationPercentage: 150,
		StartDate:            day(2026, 9, 1),
		EndDate:              day(2026, 12, 31),
	})
	if !errors.Is(err, assignmentstore.ErrBadAllocation) {
		t.Errorf("expected ErrBadAllocation, got %v", err)
	}
}

func TestListOverlapping_InclusiveBoundaries(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	engineerID := primitive.NewObjectID()
	// Assignment spans March through June.
	mustCreate(t, ctx, s, engineerID, 60, day(2026, 3, 1), day(2026, 6, 30))

	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"window inside", day(2026, 4, 1), day(2026, 5, 1), 1},
		{"window covering", day(2026, 1, 1), day(2026, 12, 31), 1},
		{"query starts on assignment end", day(2026, 6, 30), day(2026, 8, 1), 1},
		{"query ends on assignment start", day(2026, 1, 1), day(2026, 3, 1), 1},
		{"disjoint before", day(2026, 1, 1), day(2026, 2, 28), 0},
		{"disjoint after", day(2026, 7, 1), day(2026, 8, 1), 0},
		{"single instant inside", day(2026, 5, 15), day(2026, 5, 15), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ListOverlapping(ctx, engineerID, tc.start, tc.end)
			if err != nil {
				t.Fatalf("ListOverlapping failed: %v", err)
			}
			if len(got) != tc.want {
				t.Errorf("got %d assignments, want %d", len(got), tc.want)
			}
		})
	}
}

func TestListOverlapping_ScopedToEngineer(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	me := primitive.NewObjectID()
	other := primitive.NewObjectID()
	mustCreate(t, ctx, s, me, 40, day(2026, 3, 1), day(2026, 6, 30))
	mustCreate(t, ctx, s, other, 90, day(2026, 3, 1), day(2026, 6, 30))

	got, err := s.ListOverlapping(ctx, me, day(2026, 1, 1), day(2026, 12, 31))
	if err != nil {
		t.Fatalf("ListOverlapping failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d assignments, want 1", len(got))
	}
	if got[0].EngineerID != me {
		t.Error("returned another engineer's assignment")
	}
}

func TestUpdate_SetsUpdatedAt(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := mustCreate(t, ctx, s, primitive.NewObjectID(), 50, day(2026, 9, 1), day(2026, 12, 31))
	a.AllocationPercentage = 75

	updated, err := s.Update(ctx, a)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.AllocationPercentage != 75 {
		t.Errorf("allocation = %d, want 75", updated.AllocationPercentage)
	}
	if updated.UpdatedAt == nil {
		t.Error("updated_at should be set after update")
	}

	a.ID = primitive.NewObjectID()
	if _, err := s.Update(ctx, a); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("update of unknown id = %v, want ErrNoDocuments", err)
	}
}

func TestCountByProject(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	projectID := primitive.NewObjectID()
	for i := 0; i < 2; i++ {
		if _, err := s.Create(ctx, models.Assignment{
			EngineerID:           primitive.NewObjectID(),
			ProjectID:            projectID,
			AllocationPercentage: 30,
			StartDate:            day(2026, 9, 1),
			EndDate:              day(2026, 12, 31),
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	n, err := s.CountByProject(ctx, projectID)
	if err != nil {
		t.Fatalf("CountByProject failed: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}

	n, err = s.CountByProject(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("CountByProject failed: %v", err)
	}
	if n != 0 {
		t.Errorf("count for unreferenced project = %d, want 0", n)
	}
}
