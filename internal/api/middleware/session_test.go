package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/ports"
)

type stubManager struct {
	sessions map[string]*stubSession
}

func (m *stubManager) Session(_ context.Context, id string) ports.Session {
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := &stubSession{id: id}
	m.sessions[id] = s
	return s
}

func (m *stubManager) Dispose(_ context.Context, id string) {
	delete(m.sessions, id)
}

func TestSession_MintsCookieOnFirstContact(t *testing.T) {
	e := echo.New()
	manager := &stubManager{sessions: make(map[string]*stubSession)}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(manager, "sid")(func(c echo.Context) error {
		sess, ok := SessionFrom(c)
		if !ok {
			t.Fatalf("session not injected")
		}
		if sess.ID() == "" {
			t.Fatalf("expected a minted session ID")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" || cookies[0].Value == "" {
		t.Fatalf("expected sid cookie, got %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
}

func TestSession_ReusesExistingCookie(t *testing.T) {
	e := echo.New()
	manager := &stubManager{sessions: make(map[string]*stubSession)}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "existing-session"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(manager, "sid")(func(c echo.Context) error {
		sess, _ := SessionFrom(c)
		if sess.ID() != "existing-session" {
			t.Fatalf("expected existing session, got %q", sess.ID())
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no new cookie expected when one is presented")
	}
}
