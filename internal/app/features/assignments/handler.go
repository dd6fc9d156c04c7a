// internal/app/features/assignments/handler.go
package assignments

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	assignmentstore "github.com/dalemusser/teamplan/internal/app/store/assignments"
	projectstore "github.com/dalemusser/teamplan/internal/app/store/projects"
	userstore "github.com/dalemusser/teamplan/internal/app/store/users"
	"github.com/dalemusser/teamplan/internal/app/system/apierr"
	"github.com/dalemusser/teamplan/internal/app/system/authz"
	"github.com/dalemusser/teamplan/internal/app/system/capacity"
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
	Assignments *assignmentstore.Store
	Users       *userstore.Store
	Projects    *projectstore.Store
	Capacity    *capacity.Calculator
	ErrLog      *apierr.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *apierr.ErrorLogger, logger *zap.Logger) *Handler {
	users := userstore.New(db)
	assignments := assignmentstore.New(db)
	return &Handler{
		Assignments: assignments,
		Users:       users,
		Projects:    projectstore.New(db),
		Capacity:    capacity.NewCalculator(users, assignments),
		ErrLog:      errLog,
		Log:         logger,
	}
}

type assignmentRequest struct {
	EngineerID           string `json:"engineer_id"`
	ProjectID            string `json:"project_id"`
	AllocationPercentage int    `json:"allocation_percentage"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
	Role                 string `json:"role"`
}

// parse validates an assignmentRequest into a models.Assignment, verifying
// that the referenced engineer and project exist. msg is a user-facing
// rejection; err is an internal failure.
func (h *Handler) parse(ctx context.Context, req assignmentRequest) (a models.Assignment, msg string, err error) {
	if req.EngineerID == "" || req.ProjectID == "" || req.StartDate == "" || req.EndDate == "" {
		return a, "engineer_id, project_id, start_date, and end_date are required", nil
	}
	if req.AllocationPercentage < 0 || req.AllocationPercentage > 100 {
		return a, assignmentstore.ErrBadAllocation.Error(), nil
	}

	start, perr := dateparse.Parse(req.StartDate)
	if perr != nil {
		return a, perr.Error(), nil
	}
	end, perr := dateparse.Parse(req.EndDate)
	if perr != nil {
		return a, perr.Error(), nil
	}

	engineerID, perr := primitive.ObjectIDFromHex(req.EngineerID)
	if perr != nil {
		return a, "invalid engineer_id", nil
	}
	projectID, perr := primitive.ObjectIDFromHex(req.ProjectID)
	if perr != nil {
		return a, "invalid project_id", nil
	}

	if _, lerr := h.Users.GetEngineerByID(ctx, engineerID); lerr != nil {
		if errors.Is(lerr, mongo.ErrNoDocuments) {
			return a, "engineer not found", nil
		}
		return a, "", lerr
	}
	if _, lerr := h.Projects.GetByID(ctx, projectID); lerr != nil {
		if errors.Is(lerr, mongo.ErrNoDocuments) {
			return a, "project not found", nil
		}
		return a, "", lerr
	}

	return models.Assignment{
		EngineerID:           engineerID,
		ProjectID:            projectID,
		AllocationPercentage: req.AllocationPercentage,
		StartDate:            start,
		EndDate:              end,
		Role:                 htmlsanitize.Text(req.Role),
	}, "", nil
}

// populate attaches the referenced engineer and project to each assignment.
func (h *Handler) populate(ctx context.Context, list []models.Assignment) ([]models.Assignment, error) {
	engineerIDs := make([]primitive.ObjectID, 0, len(list))
	projectIDs := make([]primitive.ObjectID, 0, len(list))
	seenE := make(map[primitive.ObjectID]struct{}, len(list))
	seenP := make(map[primitive.ObjectID]struct{}, len(list))
	for _, a := range list {
		if _, dup := seenE[a.EngineerID]; !dup {
			seenE[a.EngineerID] = struct{}{}
			engineerIDs = append(engineerIDs, a.EngineerID)
		}
		if _, dup := seenP[a.ProjectID]; !dup {
			seenP[a.ProjectID] = struct{}{}
			projectIDs = append(projectIDs, a.ProjectID)
		}
	}

	engineers, err := h.Users.GetManyByID(ctx, engineerIDs)
	if err != nil {
		return nil, err
	}
	projects, err := h.Projects.GetManyByID(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	for i := range list {
		if e, ok := engineers[list[i].EngineerID]; ok {
			ec := e
			list[i].Engineer = &ec
		}
		if p, ok := projects[list[i].ProjectID]; ok {
			pc := p
			list[i].Project = &pc
		}
	}
	return list, nil
}

// ServeList returns assignments with engineer and project populated.
// Managers see every assignment; engineers see only their own.
// GET /api/assignments
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		apierr.Unauthorized(w, "sign-in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		list []models.Assignment
		err  error
	)
	if role == "manager" {
		list, err = h.Assignments.List(ctx)
	} else {
		list, err = h.Assignments.ListByEngineer(ctx, userID)
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "assignments: list", err)
		return
	}

	list, err = h.populate(ctx, list)
	if err != nil {
		h.ErrLog.Internal(w, r, "assignments: populate", err)
		return
	}

	httpjson.Write(w, http.StatusOK, list)
}

// HandleCreate creates an assignment after checking the engineer has enough
// remaining capacity across the assignment's own window. Manager role
// required (enforced in routes).
// POST /api/assignments
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, msg, err := h.parse(ctx, req)
	if err != nil {
		h.ErrLog.Internal(w, r, "assignments: verify references", err)
		return
	}
	if msg != "" {
		apierr.BadRequest(w, msg)
		return
	}

	available, err := h.Capacity.Available(ctx, a.EngineerID, a.StartDate, a.EndDate)
	if err != nil {
		h.ErrLog.Internal(w, r, "assignments: compute capacity", err)
		return
	}
	if a.AllocationPercentage > available {
		apierr.BadRequest(w, fmt.Sprintf(
			"engineer has only %d%% capacity available in that period", available))
		return
	}

	created, err := h.Assignments.Create(ctx, a)
	if err != nil {
		if errors.Is(err, assignmentstore.ErrBadAllocation) {
			apierr.BadRequest(w, err.Error())
			return
		}
		h.ErrLog.Internal(w, r, "assignments: create", err)
		return
	}

	h.Log.Info("assignment created",
		zap.String("assignment_id", created.ID.Hex()),
		zap.String("engineer_id", created.EngineerID.Hex()),
		zap.String("project_id", created.ProjectID.Hex()),
		zap.Int("allocation", created.AllocationPercentage))

	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdate replace-updates an assignment. The capacity check applies
// only at creation; updates may overallocate an engineer.
// PUT /api/assignments/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.BadRequest(w, "invalid assignment id")
		return
	}

	var req assignmentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierr.NotFound(w, "assignment not found")
			return
		}
		h.ErrLog.Internal(w, r, "assignments: get for update", err)
		return
	}

	a, msg, err := h.parse(ctx, req)
	if err != nil {
		h.ErrLog.Internal(w, r, "assignments: verify references", err)
		return
	}
	if msg != "" {
		apierr.BadRequest(w, msg)
		return
	}
	a.ID = existing.ID
	a.CreatedAt = existing.CreatedAt

	updated, err := h.Assignments.Update(ctx, a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierr.NotFound(w, "assignment not found")
			return
		}
		if errors.Is(err, assignmentstore.ErrBadAllocation) {
			apierr.BadRequest(w, err.Error())
			return
		}
		h.ErrLog.Internal(w, r, "assignments: update", err)
		return
	}

	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete removes an assignment.
// DELETE /api/assignments/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.BadRequest(w, "invalid assignment id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := h.Assignments.Delete(ctx, id)
	if err != nil {
		h.ErrLog.Internal(w, r, "assignments: delete", err)
		return
	}
	if deleted == 0 {
		apierr.NotFound(w, "assignment not found")
		return
	}

	h.Log.Info("assignment deleted", zap.String("assignment_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "assignment deleted"})
}
