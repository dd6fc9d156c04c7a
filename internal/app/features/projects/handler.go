// internal/app/features/projects/handler.go
package projects

import (
	"context"
	"errors"
	"net/http"

	assignmentstore "github.com/dalemusser/teamplan/internal/app/store/assignments"
	projectstore "github.com/dalemusser/teamplan/internal/app/store/projects"
	userstore "github.com/dalemusser/teamplan/internal/app/store/users"
	"github.com/dalemusser/teamplan/internal/app/system/apierr"
	"github.com/dalemusser/teamplan/internal/app/system/dateparse"
	"github.com/dalemusser/teamplan/internal/app/system/htmlsanitize"
	"github.com/dalemusser/teamplan/internal/app/system/httpjson"
	"github.com/dalemusser/teamplan/internal/app/system/timeouts"
	"github.com/dalemusser/teamplan/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Projects    *projectstore.Store
	Users       *userstore.Store
	Assignments *assignmentstore.Store
	ErrLog      *apierr.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *apierr.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Projects:    projectstore.New(db),
		Users:       userstore.New(db),
		Assignments: assignmentstore.New(db),
		ErrLog:      errLog,
		Log:         logger,
	}
}

type projectRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	RequiredSkills []string `json:"required_skills"`
	TeamSize       int      `json:"team_size"`
	Status         string   `json:"status"`
	ManagerID      string   `json:"manager_id"`
}

// parse validates a projectRequest into a models.Project, without ID or
// timestamps. msg is a user-facing rejection; err is an internal failure.
func (h *Handler) parse(ctx context.Context, req projectRequest) (p models.Project, msg string, err error) {
	if req.Name == "" || req.StartDate == "" || req.EndDate == "" || req.ManagerID == "" {
		return p, "name, start_date, end_date, and manager_id are required", nil
	}

	start, perr := dateparse.Parse(req.StartDate)
	if perr != nil {
		return p, perr.Error(), nil
	}
	end, perr := dateparse.Parse(req.EndDate)
	if perr != nil {
		return p, perr.Error(), nil
	}
	// start after end is stored as-is; the window is advisory.

	managerID, perr := primitive.ObjectIDFromHex(req.ManagerID)
	if perr != nil {
		return p, "invalid manager_id", nil
	}
	if _, lerr := h.Users.GetManagerByID(ctx, managerID); lerr != nil {
		if errors.Is(lerr, mongo.ErrNoDocuments) {
			return p, "manager not found", nil
		}
		return p, "", lerr
	}

	status := req.Status
	if status == "" {
		status = "planning"
	}
	switch status {
	case "planning", "active", "completed":
		// ok
	default:
		return p, `status must be "planning", "active", or "completed"`, nil
	}

	return models.Project{
		Name:           htmlsanitize.Text(req.Name),
		Description:    htmlsanitize.Text(req.Description),
		StartDate:      start,
		EndDate:        end,
		RequiredSkills: htmlsanitize.TextSlice(req.RequiredSkills),
		TeamSize:       req.TeamSize,
		Status:         status,
		ManagerID:      managerID,
	}, "", nil
}

// populateManagers attaches the referenced manager record to each project.
func (h *Handler) populateManagers(ctx context.Context, projects []models.Project) ([]models.Project, error) {
	ids := make([]primitive.ObjectID, 0, len(projects))
	seen := make(map[primitive.ObjectID]struct{}, len(projects))
	for _, p := range projects {
		if _, dup := seen[p.ManagerID]; !dup {
			seen[p.ManagerID] = struct{}{}
			ids = append(ids, p.ManagerID)
		}
	}

	managers, err := h.Users.GetManyByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if m, ok := managers[projects[i].ManagerID]; ok {
			mc := m
			projects[i].Manager = &mc
		}
	}
	return projects, nil
}

// ServeList returns all projects with managers populated.
// GET /api/projects
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	projects, err := h.Projects.List(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "projects: list", err)
		return
	}
	projects, err = h.populateManagers(ctx, projects)
	if err != nil {
		h.ErrLog.Internal(w, r, "projects: populate managers", err)
		return
	}

	httpjson.Write(w, http.StatusOK, projects)
}

// ServeView returns one project with its manager populated.
// GET /api/projects/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.BadRequest(w, "invalid project id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierr.NotFound(w, "project not found")
			return
		}
		h.ErrLog.Internal(w, r, "projects: get", err)
		return
	}

	if m, err := h.Users.GetByID(ctx, p.ManagerID); err == nil {
		p.Manager = m
	}

	httpjson.Write(w, http.StatusOK, p)
}

// HandleCreate creates a project. Manager role required (enforced in routes).
// POST /api/projects
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, msg, err := h.parse(ctx, req)
	if err != nil {
		h.ErrLog.Internal(w, r, "projects: verify manager", err)
		return
	}
	if msg != "" {
		apierr.BadRequest(w, msg)
		return
	}

	created, err := h.Projects.Create(ctx, p)
	if err != nil {
		h.ErrLog.Internal(w, r, "projects: create", err)
		return
	}

	h.Log.Info("project created",
		zap.String("project_id", created.ID.Hex()),
		zap.String("name", created.Name))

	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdate replace-updates a project.
// PUT /api/projects/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.BadRequest(w, "invalid project id")
		return
	}

	var req projectRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierr.NotFound(w, "project not found")
			return
		}
		h.ErrLog.Internal(w, r, "projects: get for update", err)
		return
	}

	p, msg, err := h.parse(ctx, req)
	if err != nil {
		h.ErrLog.Internal(w, r, "projects: verify manager", err)
		return
	}
	if msg != "" {
		apierr.BadRequest(w, msg)
		return
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt

	updated, err := h.Projects.Update(ctx, p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierr.NotFound(w, "project not found")
			return
		}
		h.ErrLog.Internal(w, r, "projects: update", err)
		return
	}

	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete deletes a project unless assignments still reference it.
// DELETE /api/projects/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.BadRequest(w, "invalid project id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	refs, err := h.Assignments.CountByProject(ctx, id)
	if err != nil {
		h.ErrLog.Internal(w, r, "projects: count assignments", err)
		return
	}
	if refs > 0 {
		apierr.BadRequest(w, "cannot delete a project that still has assignments")
		return
	}

	deleted, err := h.Projects.Delete(ctx, id)
	if err != nil {
		h.ErrLog.Internal(w, r, "projects: delete", err)
		return
	}
	if deleted == 0 {
		apierr.NotFound(w, "project not found")
		return
	}

	h.Log.Info("project deleted", zap.String("project_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "project deleted"})
}
