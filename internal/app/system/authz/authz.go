// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/teamplan/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's role (lowercased), email, Mongo ObjectID, and
// a found flag. If no user is present or the user ID is malformed it returns
// "visitor", "", NilObjectID, false, so ok=true always means a valid,
// authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, email string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in a signed token indicates corruption; fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Email, userID, true
}

// IsManager reports whether the current request's user is a manager.
func IsManager(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "manager"
}

// IsEngineer reports whether the current request's user is an engineer.
func IsEngineer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "engineer"
}
