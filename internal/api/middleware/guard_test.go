package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pawconnect/platform/internal/core/domain"
)

type staticSessions struct {
	state domain.SessionState
}

func (s staticSessions) Snapshot() domain.SessionState { return s.state }

func authenticated(role domain.Role) staticSessions {
	return staticSessions{state: domain.SessionState{
		User:  &domain.User{ID: "u1", Role: role},
		Token: "t1",
	}}
}

func invoke(t *testing.T, mw echo.MiddlewareFunc) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestGuard_AllowsPermittedRole(t *testing.T) {
	mw := Guard(authenticated(domain.RoleNGOAdmin), domain.RoleSuperAdmin, domain.RoleNGOAdmin)
	rec, called := invoke(t, mw)
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_RedirectsUnauthenticatedToLogin(t *testing.T) {
	mw := Guard(staticSessions{}, domain.RoleSuperAdmin)
	rec, called := invoke(t, mw)
	if called {
		t.Fatalf("next handler must not run")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected 302 to /login, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuard_RedirectsForbiddenToOwnLanding(t *testing.T) {
	mw := Guard(authenticated(domain.RoleNGOAdmin), domain.RoleVolunteer)
	rec, called := invoke(t, mw)
	if called {
		t.Fatalf("next handler must not run")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("expected 302 to /dashboard, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuard_PendingWhileLoading(t *testing.T) {
	mw := Guard(staticSessions{state: domain.SessionState{Loading: true}}, domain.RoleSuperAdmin)
	rec, called := invoke(t, mw)
	if called {
		t.Fatalf("next handler must not run while loading")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestEntryRedirect_BouncesAuthenticated(t *testing.T) {
	mw := EntryRedirect(authenticated(domain.RoleVeterinarian))
	rec, called := invoke(t, mw)
	if called {
		t.Fatalf("next handler must not run")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/vet" {
		t.Fatalf("expected 302 to /vet, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestEntryRedirect_PassesUnauthenticated(t *testing.T) {
	mw := EntryRedirect(staticSessions{})
	rec, called := invoke(t, mw)
	if !called {
		t.Fatalf("public content should render")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
