package seed_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/teamplan/internal/app/features/seed"
	"github.com/dalemusser/teamplan/internal/app/system/apierr"
	"github.com/dalemusser/teamplan/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestHandleSeed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := seed.NewHandler(db, apierr.NewErrorLogger(logger), logger)

	// Pre-existing data gets wiped by the reseed.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	fx.CreateEngineer(ctx, "Stale Steve", "stale@test.com", 100)

	req := httptest.NewRequest("POST", "/api/seed", nil)
	rec := httptest.NewRecorder()
	h.HandleSeed(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Users       int `json:"users"`
		Projects    int `json:"projects"`
		Assignments int `json:"assignments"`
		Credentials struct {
			Manager  string `json:"manager"`
			Password string `json:"password"`
		} `json:"credentials"`
	}
	testutil.DecodeJSON(t, rec, &resp)

	if resp.Users != 4 || resp.Projects != 2 || resp.Assignments != 3 {
		t.Errorf("seed counts = %d/%d/%d, want 4/2/3", resp.Users, resp.Projects, resp.Assignments)
	}
	if resp.Credentials.Manager == "" || resp.Credentials.Password == "" {
		t.Error("expected sample credentials in the response")
	}

	users, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if users != 4 {
		t.Errorf("users in db = %d, want 4 (stale data not wiped?)", users)
	}

	// Reseeding is idempotent on counts.
	rec = httptest.NewRecorder()
	h.HandleSeed(rec, httptest.NewRequest("POST", "/api/seed", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("second seed failed: %d: %s", rec.Code, rec.Body.String())
	}
	users, err = db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if users != 4 {
		t.Errorf("users after reseed = %d, want 4", users)
	}
}
