package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/teamplan/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID    string
	Email string
	Role  string
}

// ManagerUser returns a TestUser with manager role.
func ManagerUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Email: "manager@test.com",
		Role:  "manager",
	}
}

// EngineerUser returns a TestUser with engineer role and the given id.
func EngineerUser(id primitive.ObjectID) TestUser {
	return TestUser{
		ID:    id.Hex(),
		Email: "engineer@test.com",
		Role:  "engineer",
	}
}

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses the token middleware and injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.TokenUser{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
}

// NewJSONRequest creates an HTTP request carrying body marshaled as JSON.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		rd = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DecodeJSON unmarshals a recorded response body into v.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body %q: %v", rec.Body.String(), err)
	}
}
