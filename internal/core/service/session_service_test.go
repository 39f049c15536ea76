package service

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
	"github.com/reyvanevan/saas-admin-gateway/internal/core/ports"
)

type stubGateway struct {
	loginFn    func(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	refreshFn  func(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	currentFn  func(ctx context.Context, accessToken string) (*domain.User, error)
	changeFn   func(ctx context.Context, accessToken, current, next string) error
}

func (g *stubGateway) Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
	return g.loginFn(ctx, email, password)
}

func (g *stubGateway) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return g.registerFn(ctx, in)
}

func (g *stubGateway) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	return g.refreshFn(ctx, refreshToken)
}

func (g *stubGateway) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	return g.currentFn(ctx, accessToken)
}

func (g *stubGateway) ChangePassword(ctx context.Context, accessToken, current, next string) error {
	return g.changeFn(ctx, accessToken, current, next)
}

type memTokenStore struct {
	mu       sync.Mutex
	pairs    map[string]domain.TokenPair
	clearErr error
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{pairs: make(map[string]domain.TokenPair)}
}

func (s *memTokenStore) Save(_ context.Context, sid string, pair domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[sid] = pair
	return nil
}

func (s *memTokenStore) Load(_ context.Context, sid string) (domain.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pairs[sid], nil
}

func (s *memTokenStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clearErr != nil {
		return s.clearErr
	}
	delete(s.pairs, sid)
	return nil
}

type memSessionRepo struct {
	mu   sync.Mutex
	recs map[string]domain.PersistedSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{recs: make(map[string]domain.PersistedSession)}
}

func (r *memSessionRepo) Load(_ context.Context, sid string) (domain.PersistedSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recs[sid], nil
}

func (r *memSessionRepo) Save(_ context.Context, sid string, rec domain.PersistedSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs[sid] = rec
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.recs, sid)
	return nil
}

func testUser() *domain.User {
	return &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleAdmin, TenantID: "t1"}
}

func okGateway(user *domain.User, pair domain.TokenPair) *stubGateway {
	return &stubGateway{
		loginFn: func(context.Context, string, string) (*domain.User, domain.TokenPair, error) {
			return user, pair, nil
		},
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			return &domain.User{Email: in.Email, Role: in.Role}, nil
		},
		refreshFn: func(context.Context, string) (domain.TokenPair, error) {
			return pair, nil
		},
		currentFn: func(context.Context, string) (*domain.User, error) {
			return user, nil
		},
		changeFn: func(context.Context, string, string, string) error {
			return nil
		},
	}
}

func newTestManager(gw ports.AuthGateway, tokens ports.TokenStore, repo ports.SessionRepository) *Manager {
	return NewManager(gw, tokens, repo, nil, zerolog.Nop())
}

func TestSession_SetUser_Invariant(t *testing.T) {
	m := newTestManager(okGateway(testUser(), domain.TokenPair{}), newMemTokenStore(), newMemSessionRepo())
	sess := m.Session(context.Background(), "s1")

	sess.SetUser(context.Background(), testUser())
	if !sess.IsAuthenticated() {
		t.Fatalf("expected authenticated after SetUser(non-nil)")
	}
	st := sess.State()
	if st.User == nil || st.IsLoading || st.Error != "" {
		t.Fatalf("unexpected state after SetUser: %+v", st)
	}

	sess.SetUser(context.Background(), nil)
	if sess.IsAuthenticated() {
		t.Fatalf("expected unauthenticated after SetUser(nil)")
	}
	if st := sess.State(); st.User != nil {
		t.Fatalf("expected absent user, got %+v", st.User)
	}
}

func TestSession_Login_Success(t *testing.T) {
	user := testUser()
	pair := domain.TokenPair{AccessToken: "at", RefreshToken: "rt"}
	tokens := newMemTokenStore()
	m := newTestManager(okGateway(user, pair), tokens, newMemSessionRepo())
	sess := m.Session(context.Background(), "s1")

	got, err := sess.Login(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("unexpected user: %+v", got)
	}
	if !sess.IsAuthenticated() {
		t.Fatalf("expected authenticated session")
	}
	if stored, _ := tokens.Load(context.Background(), "s1"); stored != pair {
		t.Fatalf("expected tokens stored, got %+v", stored)
	}
	if st := sess.State(); st.IsLoading || st.Error != "" {
		t.Fatalf("transient flags not reset: %+v", st)
	}
}

func TestSession_Login_Failure_KeepsPriorIdentity(t *testing.T) {
	user := testUser()
	gw := okGateway(user, domain.TokenPair{AccessToken: "at", RefreshToken: "rt"})
	m := newTestManager(gw, newMemTokenStore(), newMemSessionRepo())
	sess := m.Session(context.Background(), "s1")

	if _, err := sess.Login(context.Background(), "alice@example.com", "secret"); err != nil {
		t.Fatalf("seed login failed: %v", err)
	}

	gw.loginFn = func(context.Context, string, string) (*domain.User, domain.TokenPair, error) {
		return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
	}
	if _, err := sess.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	st := sess.State()
	if !st.IsAuthenticated || st.User == nil {
		t.Fatalf("prior identity should survive a failed login: %+v", st)
	}
	if st.Error == "" || st.IsLoading {
		t.Fatalf("expected recorded error with loading cleared: %+v", st)
	}
}

func TestSession_Logout_EmptiesStateAndTokens(t *testing.T) {
	tokens := newMemTokenStore()
	m := newTestManager(okGateway(testUser(), domain.TokenPair{AccessToken: "at", RefreshToken: "rt"}), tokens, newMemSessionRepo())
	sess := m.Session(context.Background(), "s1")

	if _, err := sess.Login(context.Background(), "alice@example.com", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := sess.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if got := sess.State(); !reflect.DeepEqual(got, domain.EmptySessionState()) {
		t.Fatalf("expected empty state, got %+v", got)
	}
	if pair, _ := tokens.Load(context.Background(), "s1"); !pair.Empty() {
		t.Fatalf("expected cleared token slots, got %+v", pair)
	}
}

func TestSession_Logout_BestEffortOnClearFailure(t *testing.T) {
	tokens := newMemTokenStore()
	tokens.clearErr = errors.New("redis down")
	m := newTestManager(okGateway(testUser(), domain.TokenPair{AccessToken: "at", RefreshToken: "rt"}), tokens, newMemSessionRepo())
	sess := m.Session(context.Background(), "s1")

	if _, err := sess.Login(context.Background(), "alice@example.com", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	err := sess.Logout(context.Background())
	if err == nil {
		t.Fatalf("expected clear error surfaced")
	}
	st := sess.State()
	if st.IsAuthenticated || st.User != nil {
		t.Fatalf("in-memory state must reset even when token clear fails: %+v", st)
	}
	if st.Error == "" {
		t.Fatalf("expected error recorded on state")
	}
}

func TestSession_RefreshFailure_ForcesLogout(t *testing.T) {
	user := testUser()
	pair := domain.TokenPair{AccessToken: "at", RefreshToken: "rt"}
	gw := okGateway(user, pair)
	tokens := newMemTokenStore()
	m := newTestManager(gw, tokens, newMemSessionRepo())
	sess := m.Session(context.Background(), "s1")

	if _, err := sess.Login(context.Background(), "alice@example.com", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	gw.refreshFn = func(context.Context, string) (domain.TokenPair, error) {
		return domain.TokenPair{}, domain.ErrInvalidToken
	}
	if err := sess.RefreshToken(context.Background()); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	if got := sess.State(); !reflect.DeepEqual(got, domain.EmptySessionState()) {
		t.Fatalf("failed refresh must equal post-logout state, got %+v", got)
	}
	if stored, _ := tokens.Load(context.Background(), "s1"); !stored.Empty() {
		t.Fatalf("expected token slots empty, got %+v", stored)
	}
}

func TestSession_Refresh_WithoutTokens_ForcesLogout(t *testing.T) {
	m := newTestManager(okGateway(testUser(), domain.TokenPair{}), newMemTokenStore(), newMemSessionRepo())
	sess := m.Session(context.Background(), "s1")

	if err := sess.RefreshToken(context.Background()); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if got := sess.State(); !reflect.DeepEqual(got, domain.EmptySessionState()) {
		t.Fatalf("expected post-logout state, got %+v", got)
	}
}

func TestSession_LogoutDuringRefresh_Wins(t *testing.T) {
	user := testUser()
	first := domain.TokenPair{AccessToken: "at1", RefreshToken: "rt1"}
	gw := okGateway(user, first)
	tokens := newMemTokenStore()
	m := newTestManager(gw, tokens, newMemSessionRepo())
	sess := m.Session(context.Background(), "s1")

	if _, err := sess.Login(context.Background(), "alice@example.com", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	refreshStarted := make(chan struct{})
	release := make(chan struct{})
	gw.refreshFn = func(context.Context, string) (domain.TokenPair, error) {
		close(refreshStarted)
		<-release
		return domain.TokenPair{AccessToken: "at2", RefreshToken: "rt2"}, nil
	}

	refreshDone := make(chan error, 1)
	go func() { refreshDone <- sess.RefreshToken(context.Background()) }()
	<-refreshStarted

	// Logout issued while the refresh is still in the air must win: it
	// serializes after the refresh and clears whatever the refresh stored.
	logoutDone := make(chan error, 1)
	go func() { logoutDone <- sess.Logout(context.Background()) }()

	close(release)
	for _, ch := range []chan error{refreshDone, logoutDone} {
		select {
		case err := <-ch:
			if err != nil {
				t.Fatalf("action failed: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("action did not finish")
		}
	}

	if sess.IsAuthenticated() {
		t.Fatalf("expected logged-out session")
	}
	if got := sess.State(); !reflect.DeepEqual(got, domain.EmptySessionState()) {
		t.Fatalf("expected empty state, got %+v", got)
	}
	if pair, _ := tokens.Load(context.Background(), "s1"); !pair.Empty() {
		t.Fatalf("logout must leave no live tokens, got %+v", pair)
	}
}

func TestSession_Refresh_Success_RotatesTokens(t *testing.T) {
	first := domain.TokenPair{AccessToken: "at1", RefreshToken: "rt1"}
	next := domain.TokenPair{AccessToken: "at2", RefreshToken: "rt2"}
	gw := okGateway(testUser(), first)
	tokens := newMemTokenStore()
	m := newTestManager(gw, tokens, newMemSessionRepo())
	sess := m.Session(context.Background(), "s1")

	if _, err := sess.Login(context.Background(), "alice@example.com", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	gw.refreshFn = func(_ context.Context, rt string) (domain.TokenPair, error) {
		if rt != "rt1" {
			t.Fatalf("expected refresh with rt1, got %q", rt)
		}
		return next, nil
	}

	if err := sess.RefreshToken(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if stored, _ := tokens.Load(context.Background(), "s1"); stored != next {
		t.Fatalf("expected rotated pair, got %+v", stored)
	}
	if !sess.IsAuthenticated() {
		t.Fatalf("refresh must not drop the authenticated user")
	}
}

func TestSession_CurrentUser_CommitsFetchedIdentity(t *testing.T) {
	user := testUser()
	gw := okGateway(user, domain.TokenPair{AccessToken: "at", RefreshToken: "rt"})
	m := newTestManager(gw, newMemTokenStore(), newMemSessionRepo())
	sess := m.Session(context.Background(), "s1")

	if _, err := sess.Login(context.Background(), "alice@example.com", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	promoted := &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleManager}
	gw.currentFn = func(context.Context, string) (*domain.User, error) {
		return promoted, nil
	}

	got, err := sess.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("current user failed: %v", err)
	}
	if got.Role != domain.RoleManager {
		t.Fatalf("expected refreshed role, got %s", got.Role)
	}
	if st := sess.State(); st.User.Role != domain.RoleManager {
		t.Fatalf("fetched identity not committed: %+v", st.User)
	}
}

func TestSession_ChangePassword_LeavesIdentityUntouched(t *testing.T) {
	gw := okGateway(testUser(), domain.TokenPair{AccessToken: "at", RefreshToken: "rt"})
	m := newTestManager(gw, newMemTokenStore(), newMemSessionRepo())
	sess := m.Session(context.Background(), "s1")

	if _, err := sess.Login(context.Background(), "alice@example.com", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	before := sess.State()

	if err := sess.ChangePassword(context.Background(), "secret", "stronger"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	after := sess.State()
	if !reflect.DeepEqual(before.User, after.User) || before.IsAuthenticated != after.IsAuthenticated {
		t.Fatalf("identity changed: before %+v after %+v", before, after)
	}

	gw.changeFn = func(context.Context, string, string, string) error {
		return domain.ErrInvalidCredentials
	}
	if err := sess.ChangePassword(context.Background(), "wrong", "stronger"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if st := sess.State(); st.Error == "" || !st.IsAuthenticated {
		t.Fatalf("expected recorded error with identity intact: %+v", st)
	}

	sess.ClearError()
	if st := sess.State(); st.Error != "" {
		t.Fatalf("expected error cleared, got %q", st.Error)
	}
}

func TestManager_PersistReloadRoundTrip(t *testing.T) {
	user := testUser()
	repo := newMemSessionRepo()
	tokens := newMemTokenStore()
	gw := okGateway(user, domain.TokenPair{AccessToken: "at", RefreshToken: "rt"})

	m1 := newTestManager(gw, tokens, repo)
	sess := m1.Session(context.Background(), "s1")
	if _, err := sess.Login(context.Background(), "alice@example.com", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// A fresh manager over the same repository stands in for a reload.
	m2 := newTestManager(gw, tokens, repo)
	reloaded := m2.Session(context.Background(), "s1")

	st := reloaded.State()
	if !st.IsAuthenticated || st.User == nil || st.User.ID != user.ID {
		t.Fatalf("persisted identity not restored: %+v", st)
	}
	if st.IsLoading || st.Error != "" {
		t.Fatalf("transient flags must reset on load: %+v", st)
	}
}

func TestManager_UnknownSessionStartsEmpty(t *testing.T) {
	m := newTestManager(okGateway(testUser(), domain.TokenPair{}), newMemTokenStore(), newMemSessionRepo())
	sess := m.Session(context.Background(), "nobody")
	if got := sess.State(); !reflect.DeepEqual(got, domain.EmptySessionState()) {
		t.Fatalf("expected empty state for unknown session, got %+v", got)
	}
}

func TestManager_SameInstancePerID(t *testing.T) {
	m := newTestManager(okGateway(testUser(), domain.TokenPair{}), newMemTokenStore(), newMemSessionRepo())
	a := m.Session(context.Background(), "s1")
	b := m.Session(context.Background(), "s1")
	if a != b {
		t.Fatalf("expected one Session instance per ID")
	}

	m.Dispose(context.Background(), "s1")
	c := m.Session(context.Background(), "s1")
	if c == a {
		t.Fatalf("expected a fresh instance after Dispose")
	}
}
