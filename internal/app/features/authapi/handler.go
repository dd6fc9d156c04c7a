// internal/app/features/authapi/handler.go
package authapi

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/teamplan/internal/app/store/users"
	"github.com/dalemusser/teamplan/internal/app/system/apierr"
	"github.com/dalemusser/teamplan/internal/app/system/auth"
	"github.com/dalemusser/teamplan/internal/app/system/authz"
	"github.com/dalemusser/teamplan/internal/app/system/htmlsanitize"
	"github.com/dalemusser/teamplan/internal/app/system/httpjson"
	"github.com/dalemusser/teamplan/internal/app/system/timeouts"
	"github.com/dalemusser/teamplan/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor used for stored credentials.
const bcryptCost = 12

type Handler struct {
	Users  *userstore.Store
	Tokens *auth.TokenManager
	// DefaultMaxCapacity is applied when a registration omits max_capacity.
	DefaultMaxCapacity int
	ErrLog             *apierr.ErrorLogger
	Log                *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, defaultMaxCapacity int, errLog *apierr.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:              userstore.New(db),
		Tokens:             tokens,
		DefaultMaxCapacity: defaultMaxCapacity,
		ErrLog:             errLog,
		Log:                logger,
	}
}

type registerRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Skills      []string `json:"skills"`
	Seniority   string   `json:"seniority"`
	MaxCapacity *int     `json:"max_capacity"`
	Department  string   `json:"department"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// HandleRegister creates a user and returns a signed token.
// POST /api/auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, "invalid JSON body")
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		apierr.BadRequest(w, "email, password, and name are required")
		return
	}
	switch req.Role {
	case "engineer", "manager":
		// ok
	default:
		apierr.BadRequest(w, `role must be "engineer" or "manager"`)
		return
	}
	if req.Seniority != "" {
		switch req.Seniority {
		case "junior", "mid", "senior":
			// ok
		default:
			apierr.BadRequest(w, `seniority must be "junior", "mid", or "senior"`)
			return
		}
	}
	// Absent means the configured default; an explicit 0 is kept as a
	// zero-capacity engineer.
	maxCapacity := h.DefaultMaxCapacity
	if req.MaxCapacity != nil {
		if *req.MaxCapacity < 0 || *req.MaxCapacity > 100 {
			apierr.BadRequest(w, "max_capacity must be between 0 and 100")
			return
		}
		maxCapacity = *req.MaxCapacity
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.ErrLog.Internal(w, r, "register: hash password", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{
		Email:       req.Email,
		Name:        htmlsanitize.Text(req.Name),
		Password:    string(hash),
		Role:        req.Role,
		Skills:      htmlsanitize.TextSlice(req.Skills),
		Seniority:   req.Seniority,
		MaxCapacity: maxCapacity,
		Department:  htmlsanitize.Text(req.Department),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			apierr.Conflict(w, err.Error())
			return
		}
		h.ErrLog.Internal(w, r, "register: create user", err)
		return
	}

	token, err := h.Tokens.Issue(created.ID.Hex(), created.Email, created.Role)
	if err != nil {
		h.ErrLog.Internal(w, r, "register: issue token", err)
		return
	}

	h.Log.Info("user registered",
		zap.String("user_id", created.ID.Hex()),
		zap.String("role", created.Role))

	httpjson.Write(w, http.StatusCreated, authResponse{Token: token, User: created})
}

// HandleLogin verifies credentials and returns a signed token.
// POST /api/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		apierr.BadRequest(w, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierr.Unauthorized(w, "invalid email or password")
			return
		}
		h.ErrLog.Internal(w, r, "login: lookup user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		apierr.Unauthorized(w, "invalid email or password")
		return
	}

	token, err := h.Tokens.Issue(u.ID.Hex(), u.Email, u.Role)
	if err != nil {
		h.ErrLog.Internal(w, r, "login: issue token", err)
		return
	}

	httpjson.Write(w, http.StatusOK, authResponse{Token: token, User: *u})
}

// HandleProfile returns the caller's user record. The password hash is
// excluded by the model's JSON tags.
// GET /api/auth/profile
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		apierr.Unauthorized(w, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierr.NotFound(w, "user not found")
			return
		}
		h.ErrLog.Internal(w, r, "profile: lookup user", err)
		return
	}

	httpjson.Write(w, http.StatusOK, u)
}
