package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/teamplan/internal/app/system/auth"
	"github.com/dalemusser/teamplan/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	role, email, uid, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false with no user in context")
	}
	if role != "visitor" || email != "" || uid != primitive.NilObjectID {
		t.Errorf("unexpected zero-values: role=%q email=%q uid=%v", role, email, uid)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.TokenUser{ID: "not-hex", Role: "manager"})

	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false for malformed user ID")
	}
}

func TestUserCtx_ValidUser(t *testing.T) {
	id := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.TokenUser{ID: id.Hex(), Email: "m@example.com", Role: "Manager"})

	role, email, uid, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "manager" {
		t.Errorf("role: got %q, want lowercased manager", role)
	}
	if email != "m@example.com" {
		t.Errorf("email: got %q", email)
	}
	if uid != id {
		t.Errorf("uid: got %v, want %v", uid, id)
	}
}

func TestRolePredicates(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	mgr := httptest.NewRequest("GET", "/", nil)
	mgr = auth.WithTestUser(mgr, &auth.TokenUser{ID: id, Role: "manager"})
	if !authz.IsManager(mgr) || authz.IsEngineer(mgr) {
		t.Error("manager predicates wrong")
	}

	eng := httptest.NewRequest("GET", "/", nil)
	eng = auth.WithTestUser(eng, &auth.TokenUser{ID: id, Role: "engineer"})
	if !authz.IsEngineer(eng) || authz.IsManager(eng) {
		t.Error("engineer predicates wrong")
	}
}
