package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
	"github.com/reyvanevan/saas-admin-gateway/internal/core/ports"
)

// stubSession satisfies ports.Session with a fixed authentication flag.
type stubSession struct {
	id            string
	authenticated bool
	state         domain.SessionState
}

func (s *stubSession) ID() string { return s.id }

func (s *stubSession) Login(context.Context, string, string) (*domain.User, error) {
	return nil, nil
}

func (s *stubSession) Register(context.Context, ports.RegisterInput) (*domain.User, error) {
	return nil, nil
}

func (s *stubSession) Logout(context.Context) error { return nil }

func (s *stubSession) RefreshToken(context.Context) error { return nil }

func (s *stubSession) CurrentUser(context.Context) (*domain.User, error) { return s.state.User, nil }

func (s *stubSession) ChangePassword(context.Context, string, string) error { return nil }

func (s *stubSession) ClearError() {}
func (s *stubSession) SetUser(_ context.Context, u *domain.User) {
	s.state.User = u
	s.authenticated = u != nil
}
func (s *stubSession) State() domain.SessionState { return s.state }
func (s *stubSession) IsAuthenticated() bool      { return s.authenticated }

func guardContext(t *testing.T, path string, sess ports.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(SessionKey, sess)
	}
	return c, rec
}

func TestGuard_AllowsAuthenticated(t *testing.T) {
	c, rec := guardContext(t, "/dashboard", &stubSession{authenticated: true})

	called := false
	handler := Guard("/sign-in")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_RedirectsWithReturnTarget(t *testing.T) {
	c, rec := guardContext(t, "/dashboard/reports?range=7d", &stubSession{authenticated: false})

	handler := Guard("/sign-in")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	want := "/sign-in?redirect=%2Fdashboard%2Freports%3Frange%3D7d"
	if got := rec.Header().Get(echo.HeaderLocation); got != want {
		t.Fatalf("expected redirect to %q, got %q", want, got)
	}
}

func TestGuard_MissingSessionMiddleware(t *testing.T) {
	c, _ := guardContext(t, "/dashboard", nil)

	handler := Guard("/sign-in")(func(c echo.Context) error { return nil })
	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 HTTPError, got %v", err)
	}
}

func TestRedirectAuthenticated(t *testing.T) {
	c, rec := guardContext(t, "/sign-in", &stubSession{authenticated: true})

	handler := RedirectAuthenticated("/")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	// Unauthenticated visitors pass through to the sign-in page.
	c2, rec2 := guardContext(t, "/sign-in", &stubSession{authenticated: false})
	passed := false
	handler = RedirectAuthenticated("/")(func(c echo.Context) error {
		passed = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c2); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !passed || rec2.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rec2.Code)
	}
}
