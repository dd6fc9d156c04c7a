// internal/app/features/seed/handler.go
package seed

import (
	"context"
	"net/http"
	"time"

	assignmentstore "github.com/dalemusser/teamplan/internal/app/store/assignments"
	projectstore "github.com/dalemusser/teamplan/internal/app/store/projects"
	userstore "github.com/dalemusser/teamplan/internal/app/store/users"
	"github.com/dalemusser/teamplan/internal/app/system/apierr"
	"github.com/dalemusser/teamplan/internal/app/system/httpjson"
	"github.com/dalemusser/teamplan/internal/app/system/timeouts"
	"github.com/dalemusser/teamplan/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SamplePassword is the password every seeded account gets.
const SamplePassword = "password123"

type Handler struct {
	Users       *userstore.Store
	Projects    *projectstore.Store
	Assignments *assignmentstore.Store
	ErrLog      *apierr.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *apierr.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:       userstore.New(db),
		Projects:    projectstore.New(db),
		Assignments: assignmentstore.New(db),
		ErrLog:      errLog,
		Log:         logger,
	}
}

// HandleSeed wipes the users, projects, and assignments collections and
// loads a small fixed data set for development. Only mounted when the
// enable_seed config flag is on.
// POST /api/seed
func (h *Handler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	for _, wipe := range []func(context.Context) error{
		h.Assignments.DeleteAll, h.Projects.DeleteAll, h.Users.DeleteAll,
	} {
		if err := wipe(ctx); err != nil {
			h.ErrLog.Internal(w, r, "seed: wipe collections", err)
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SamplePassword), 12)
	if err != nil {
		h.ErrLog.Internal(w, r, "seed: hash password", err)
		return
	}

	manager, err := h.Users.Create(ctx, models.User{
		Email:       "sarah.chen@example.com",
		Name:        "Sarah Chen",
		Password:    string(hash),
		Role:        "manager",
		MaxCapacity: models.DefaultMaxCapacity,
		Department:  "Engineering",
	})
	if err != nil {
		h.ErrLog.Internal(w, r, "seed: create manager", err)
		return
	}

	engineerSpecs := []models.User{
		{
			Email:       "alice.park@example.com",
			Name:        "Alice Park",
			Password:    string(hash),
			Role:        "engineer",
			Skills:      []string{"Go", "MongoDB", "Kubernetes"},
			Seniority:   "senior",
			MaxCapacity: 100,
			Department:  "Platform",
		},
		{
			Email:       "ben.osei@example.com",
			Name:        "Ben Osei",
			Password:    string(hash),
			Role:        "engineer",
			Skills:      []string{"TypeScript", "React", "Node.js"},
			Seniority:   "mid",
			MaxCapacity: 100,
			Department:  "Product",
		},
		{
			// Part-time: half capacity.
			Email:       "carla.diaz@example.com",
			Name:        "Carla Diaz",
			Password:    string(hash),
			Role:        "engineer",
			Skills:      []string{"Python", "Data Engineering"},
			Seniority:   "junior",
			MaxCapacity: 50,
			Department:  "Data",
		},
	}
	engineers := make([]models.User, 0, len(engineerSpecs))
	for _, spec := range engineerSpecs {
		eng, err := h.Users.Create(ctx, spec)
		if err != nil {
			h.ErrLog.Internal(w, r, "seed: create engineer", err)
			return
		}
		engineers = append(engineers, eng)
	}

	now := time.Now().UTC()
	projectSpecs := []models.Project{
		{
			Name:           "Billing Platform Rewrite",
			Description:    "Replace the legacy billing pipeline with an event-driven service.",
			StartDate:      now.AddDate(0, -1, 0),
			EndDate:        now.AddDate(0, 4, 0),
			RequiredSkills: []string{"Go", "MongoDB"},
			TeamSize:       3,
			Status:         "active",
			ManagerID:      manager.ID,
		},
		{
			Name:           "Customer Portal",
			Description:    "Self-service portal for account and subscription management.",
			StartDate:      now.AddDate(0, 1, 0),
			EndDate:        now.AddDate(0, 6, 0),
			RequiredSkills: []string{"TypeScript", "React"},
			TeamSize:       2,
			Status:         "planning",
			ManagerID:      manager.ID,
		},
	}
	projects := make([]models.Project, 0, len(projectSpecs))
	for _, spec := range projectSpecs {
		p, err := h.Projects.Create(ctx, spec)
		if err != nil {
			h.ErrLog.Internal(w, r, "seed: create project", err)
			return
		}
		projects = append(projects, p)
	}

	assignmentSpecs := []models.Assignment{
		{
			EngineerID:           engineers[0].ID,
			ProjectID:            projects[0].ID,
			AllocationPercentage: 70,
			StartDate:            now.AddDate(0, -1, 0),
			EndDate:              now.AddDate(0, 4, 0),
			Role:                 "Tech Lead",
		},
		{
			EngineerID:           engineers[1].ID,
			ProjectID:            projects[1].ID,
			AllocationPercentage: 60,
			StartDate:            now.AddDate(0, 1, 0),
			EndDate:              now.AddDate(0, 6, 0),
			Role:                 "Developer",
		},
		{
			EngineerID:           engineers[2].ID,
			ProjectID:            projects[0].ID,
			AllocationPercentage: 50,
			StartDate:            now,
			EndDate:              now.AddDate(0, 3, 0),
			Role:                 "Developer",
		},
	}
	inserted := 0
	for _, spec := range assignmentSpecs {
		if _, err := h.Assignments.Create(ctx, spec); err != nil {
			h.ErrLog.Internal(w, r, "seed: create assignment", err)
			return
		}
		inserted++
	}

	h.Log.Info("database reseeded",
		zap.Int("users", 1+len(engineers)),
		zap.Int("projects", len(projects)),
		zap.Int("assignments", inserted))

	httpjson.Write(w, http.StatusOK, map[string]any{
		"message":     "database seeded",
		"users":       1 + len(engineers),
		"projects":    len(projects),
		"assignments": inserted,
		"credentials": map[string]string{
			"manager":  manager.Email,
			"engineer": engineers[0].Email,
			"password": SamplePassword,
		},
	})
}
