// internal/app/features/engineers/handler.go
package engineers

import (
	"context"
	"net/http"
	"time"

	assignmentstore "github.com/dalemusser/teamplan/internal/app/store/assignments"
	userstore "github.com/dalemusser/teamplan/internal/app/store/users"
	"github.com/dalemusser/teamplan/internal/app/system/apierr"
	"github.com/dalemusser/teamplan/internal/app/system/capacity"
	"github.com/dalemusser/teamplan/internal/app/system/dateparse"
	"github.com/dalemusser/teamplan/internal/app/system/httpjson"
	"github.com/dalemusser/teamplan/internal/app/system/timeouts"
	"github.com/dalemusser/teamplan/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users    *userstore.Store
	Capacity *capacity.Calculator
	ErrLog   *apierr.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *apierr.ErrorLogger, logger *zap.Logger) *Handler {
	users := userstore.New(db)
	return &Handler{
		Users:    users,
		Capacity: capacity.NewCalculator(users, assignmentstore.New(db)),
		ErrLog:   errLog,
		Log:      logger,
	}
}

// engineerView is a user plus the capacity left over the list window.
type engineerView struct {
	models.User
	AvailableCapacity int `json:"available_capacity"`
}

// ServeList returns every engineer with available capacity computed over
// [now, now+1 month].
// GET /api/engineers
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	engineers, err := h.Users.ListEngineers(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "engineers: list", err)
		return
	}

	now := time.Now().UTC()
	end := now.AddDate(0, 1, 0)

	out := make([]engineerView, 0, len(engineers))
	for _, e := range engineers {
		avail, err := h.Capacity.Available(ctx, e.ID, now, end)
		if err != nil {
			h.ErrLog.Internal(w, r, "engineers: compute capacity", err)
			return
		}
		out = append(out, engineerView{User: e, AvailableCapacity: avail})
	}

	httpjson.Write(w, http.StatusOK, out)
}

type capacityResponse struct {
	EngineerID        string    `json:"engineer_id"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	AvailableCapacity int       `json:"available_capacity"`
}

// ServeCapacity returns the capacity calculator result for one engineer
// over an arbitrary window.
// GET /api/engineers/{id}/capacity?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *Handler) ServeCapacity(w http.ResponseWriter, r *http.Request) {
	engineerID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.BadRequest(w, "invalid engineer id")
		return
	}

	startStr := r.URL.Query().Get("startDate")
	endStr := r.URL.Query().Get("endDate")
	if startStr == "" || endStr == "" {
		apierr.BadRequest(w, "startDate and endDate query parameters are required")
		return
	}
	start, err := dateparse.Parse(startStr)
	if err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	end, err := dateparse.Parse(endStr)
	if err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Unknown engineers yield 0 here rather than 404; both "no such
	// engineer" and "fully booked" read as zero capacity.
	avail, err := h.Capacity.Available(ctx, engineerID, start, end)
	if err != nil {
		h.ErrLog.Internal(w, r, "engineers: capacity query", err)
		return
	}

	httpjson.Write(w, http.StatusOK, capacityResponse{
		EngineerID:        engineerID.Hex(),
		StartDate:         start,
		EndDate:           end,
		AvailableCapacity: avail,
	})
}
