// internal/app/features/analytics/handler.go
package analytics

import (
	"context"
	"net/http"
	"time"

	assignmentstore "github.com/dalemusser/teamplan/internal/app/store/assignments"
	userstore "github.com/dalemusser/teamplan/internal/app/store/users"
	"github.com/dalemusser/teamplan/internal/app/system/apierr"
	"github.com/dalemusser/teamplan/internal/app/system/capacity"
	"github.com/dalemusser/teamplan/internal/app/system/httpjson"
	"github.com/dalemusser/teamplan/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users       *userstore.Store
	Assignments *assignmentstore.Store
	ErrLog      *apierr.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *apierr.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:       userstore.New(db),
		Assignments: assignmentstore.New(db),
		ErrLog:      errLog,
		Log:         logger,
	}
}

type engineerUtilization struct {
	EngineerID        string `json:"engineer_id"`
	Name              string `json:"name"`
	MaxCapacity       int    `json:"max_capacity"`
	CurrentAllocation int    `json:"current_allocation"`
	// Whole percent, truncated toward zero (10 of 30 reports 33).
	UtilizationPercent int `json:"utilization_percentage"`
}

// ServeUtilization reports each engineer's allocation across assignments
// active right now. An engineer with max_capacity 0 reports utilization 0.
// GET /api/analytics/utilization
func (h *Handler) ServeUtilization(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	engineers, err := h.Users.ListEngineers(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "analytics: list engineers", err)
		return
	}

	now := time.Now().UTC()
	report := make([]engineerUtilization, 0, len(engineers))
	for _, eng := range engineers {
		active, err := h.Assignments.ListOverlapping(ctx, eng.ID, now, now)
		if err != nil {
			h.ErrLog.Internal(w, r, "analytics: list active assignments", err)
			return
		}
		current := capacity.Allocated(active)

		utilization := 0
		if eng.MaxCapacity > 0 {
			utilization = current * 100 / eng.MaxCapacity
		}

		report = append(report, engineerUtilization{
			EngineerID:         eng.ID.Hex(),
			Name:               eng.Name,
			MaxCapacity:        eng.MaxCapacity,
			CurrentAllocation:  current,
			UtilizationPercent: utilization,
		})
	}

	httpjson.Write(w, http.StatusOK, report)
}
