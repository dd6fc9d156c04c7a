package projects_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/teamplan/internal/app/features/projects"
	"github.com/dalemusser/teamplan/internal/app/system/apierr"
	"github.com/dalemusser/teamplan/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*projects.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return projects.NewHandler(db, apierr.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func projectBody(managerID primitive.ObjectID) map[string]any {
	return map[string]any{
		"name":            "Billing Platform",
		"description":     "Rework the billing pipeline",
		"start_date":      "2026-09-01",
		"end_date":        "2027-02-28",
		"required_skills": []string{"Go", "MongoDB"},
		"team_size":       3,
		"status":          "planning",
		"manager_id":      managerID.Hex(),
	}
}

func TestHandleCreate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fx.CreateManager(ctx, "Mia Grant", "mia@test.com")

	req := testutil.NewJSONRequest(t, "POST", "/api/projects", projectBody(manager.ID))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	var created struct {
		ID     primitive.ObjectID `json:"id"`
		Name   string             `json:"name"`
		Status string             `json:"status"`
	}
	testutil.DecodeJSON(t, rec, &created)
	if created.ID.IsZero() {
		t.Error("expected a generated project id")
	}
	if created.Status != "planning" {
		t.Errorf("status = %q, want planning", created.Status)
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fx.CreateManager(ctx, "Mia Grant", "mia@test.com")
	engineer := fx.CreateEngineer(ctx, "Eng", "eng@test.com", 100)

	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing name", func(b map[string]any) { b["name"] = "" }},
		{"bad start date", func(b map[string]any) { b["start_date"] = "next tuesday" }},
		{"bad status", func(b map[string]any) { b["status"] = "archived" }},
		{"unknown manager", func(b map[string]any) { b["manager_id"] = primitive.NewObjectID().Hex() }},
		{"manager is an engineer", func(b map[string]any) { b["manager_id"] = engineer.ID.Hex() }},
		{"malformed manager id", func(b map[string]any) { b["manager_id"] = "xyz" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := projectBody(manager.ID)
			tc.mutate(body)
			req := testutil.NewJSONRequest(t, "POST", "/api/projects", body)
			rec := httptest.NewRecorder()
			h.HandleCreate(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d: %s", http.StatusBadRequest, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleCreate_SanitizesDescription(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fx.CreateManager(ctx, "Mia Grant", "mia@test.com")
	body := projectBody(manager.ID)
	body["description"] = `Ship it <script>alert("x")</script> fast`

	req := testutil.NewJSONRequest(t, "POST", "/api/projects", body)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	var created struct {
		Description string `json:"description"`
	}
	testutil.DecodeJSON(t, rec, &created)
	if strings.Contains(created.Description, "<script>") || strings.Contains(created.Description, "alert") {
		t.Errorf("description was not sanitized: %q", created.Description)
	}
}

func TestServeList_PopulatesManager(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	manager := fx.CreateManager(ctx, "Mia Grant", "mia@test.com")
	fx.CreateProject(ctx, "Billing", manager.ID, now, now.AddDate(0, 3, 0))
	fx.CreateProject(ctx, "Portal", manager.ID, now, now.AddDate(0, 6, 0))

	req := httptest.NewRequest("GET", "/api/projects", nil)
	req = testutil.WithUser(req, testutil.ManagerUser())
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var list []struct {
		Name    string `json:"name"`
		Manager *struct {
			Name string `json:"name"`
		} `json:"manager"`
	}
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(list))
	}
	for _, p := range list {
		if p.Manager == nil || p.Manager.Name != "Mia Grant" {
			t.Errorf("project %q manager not populated", p.Name)
		}
	}
}

func TestHandleUpdate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	manager := fx.CreateManager(ctx, "Mia Grant", "mia@test.com")
	project := fx.CreateProject(ctx, "Billing", manager.ID, now, now.AddDate(0, 3, 0))

	body := projectBody(manager.ID)
	body["name"] = "Billing v2"
	body["status"] = "active"

	req := testutil.NewJSONRequest(t, "PUT", "/api/projects/"+project.ID.Hex(), body)
	req = testutil.WithChiURLParam(req, "id", project.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var updated struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	testutil.DecodeJSON(t, rec, &updated)
	if updated.Name != "Billing v2" || updated.Status != "active" {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestHandleUpdate_NotFound(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fx.CreateManager(ctx, "Mia Grant", "mia@test.com")
	id := primitive.NewObjectID()

	req := testutil.NewJSONRequest(t, "PUT", "/api/projects/"+id.Hex(), projectBody(manager.ID))
	req = testutil.WithChiURLParam(req, "id", id.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestHandleDelete_BlockedByAssignments(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	manager := fx.CreateManager(ctx, "Mia Grant", "mia@test.com")
	engineer := fx.CreateEngineer(ctx, "Eng", "eng@test.com", 100)
	project := fx.CreateProject(ctx, "Billing", manager.ID, now, now.AddDate(0, 3, 0))
	fx.CreateAssignment(ctx, engineer.ID, project.ID, 50, now, now.AddDate(0, 3, 0))

	req := httptest.NewRequest("DELETE", "/api/projects/"+project.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", project.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d while assignments exist, got %d", http.StatusBadRequest, rec.Code)
	}

	// Remove the assignment and the delete goes through.
	if _, err := fx.DB().Collection("assignments").DeleteMany(ctx, bson.M{}); err != nil {
		t.Fatalf("failed to clear assignments: %v", err)
	}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("DELETE", "/api/projects/"+project.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", project.ID.Hex())
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d after assignments removed, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
}

func TestHandleDelete_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	id := primitive.NewObjectID()
	req := httptest.NewRequest("DELETE", "/api/projects/"+id.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", id.Hex())
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
