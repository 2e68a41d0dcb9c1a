package service

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/infrastructure/httpclient"
	"github.com/tenderhub/portal-client/internal/infrastructure/kv"
	"github.com/tenderhub/portal-client/internal/infrastructure/tokenstore"
)

type stubGateway struct {
	mu        sync.Mutex
	token     string
	role      string
	err       error
	logins    int
	registers []string
}

func (g *stubGateway) Login(_ context.Context, _, _ string) (string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.logins++
	if g.err != nil {
		return "", "", g.err
	}
	return g.token, g.role, nil
}

func (g *stubGateway) Register(_ context.Context, username, _, role string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.registers = append(g.registers, username+":"+role)
	return nil
}

type stubTokenStore struct {
	token   string
	user    *domain.User
	saveErr error
	loadErr error
	clears  int
}

func (s *stubTokenStore) Save(_ context.Context, token string, user domain.User) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token, s.user = token, &user
	return nil
}

func (s *stubTokenStore) Load(_ context.Context) (string, *domain.User, error) {
	if s.loadErr != nil {
		return "", nil, s.loadErr
	}
	return s.token, s.user, nil
}

func (s *stubTokenStore) Clear(_ context.Context) error {
	s.clears++
	s.token, s.user = "", nil
	return nil
}

// testToken builds an unsigned token around payload.
func testToken(payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." +
		enc.EncodeToString([]byte(payload)) + ".sig"
}

func newTestManager(store *stubTokenStore, gw *stubGateway) *SessionManager {
	return NewSessionManager(store, gw, zerolog.Nop())
}

func TestSessionManager_InitialStateIsRestoring(t *testing.T) {
	m := newTestManager(&stubTokenStore{}, &stubGateway{})

	s := m.Snapshot()
	if s.State != domain.StateRestoring || !s.Loading {
		t.Fatalf("expected restoring+loading, got %+v", s)
	}
	if m.IsAuthenticated() {
		t.Fatal("expected unauthenticated before restore")
	}
}

func TestSessionManager_RestorePersistedSession(t *testing.T) {
	store := &stubTokenStore{token: "tok", user: &domain.User{Email: "a@b.com", Role: domain.RoleAdmin}}
	m := newTestManager(store, &stubGateway{})

	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	s := m.Snapshot()
	if s.State != domain.StateAuthenticated || s.Loading {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
	if s.User.Email != "a@b.com" || s.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", s.User)
	}
	if got := m.AuthHeaders().Get("Authorization"); got != "Bearer tok" {
		t.Fatalf("unexpected header %q", got)
	}
}

func TestSessionManager_RestoreCorruptUserEndsAnonymous(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	_ = mem.Set(ctx, tokenstore.KeyToken, "x.y.z")
	_ = mem.Set(ctx, tokenstore.KeyUser, "not-json")

	m := NewSessionManager(tokenstore.New(mem, zerolog.Nop()), &stubGateway{}, zerolog.Nop())
	if err := m.Restore(ctx); err != nil {
		t.Fatalf("restore surfaced error: %v", err)
	}

	s := m.Snapshot()
	if s.State != domain.StateAnonymous || s.Loading {
		t.Fatalf("expected anonymous and not loading, got %+v", s)
	}
	if _, found, _ := mem.Get(ctx, tokenstore.KeyUser); found {
		t.Fatal("corrupt user entry should be removed")
	}
}

func TestSessionManager_RestoreFailureStillSettles(t *testing.T) {
	store := &stubTokenStore{loadErr: errors.New("backend down")}
	m := newTestManager(store, &stubGateway{})

	if err := m.Restore(context.Background()); err == nil {
		t.Fatal("expected backend error")
	}
	s := m.Snapshot()
	if s.Loading || s.State != domain.StateAnonymous {
		t.Fatalf("expected settled anonymous session, got %+v", s)
	}
}

func TestSessionManager_RestoreRunsOnce(t *testing.T) {
	store := &stubTokenStore{}
	m := newTestManager(store, &stubGateway{})
	_ = m.Restore(context.Background())

	store.token, store.user = "late", &domain.User{Email: "x", Role: domain.RoleAdmin}
	_ = m.Restore(context.Background())

	if m.IsAuthenticated() {
		t.Fatal("second restore should not reload the store")
	}
}

func TestSessionManager_LoginDecodesRole(t *testing.T) {
	token := testToken(`{"sub":"a@b.com","role":"CONTRACTOR","exp":9999999999}`)
	store := &stubTokenStore{}
	m := newTestManager(store, &stubGateway{token: token})
	_ = m.Restore(context.Background())

	res := m.Login(context.Background(), "a@b.com", "pw")
	if !res.Success {
		t.Fatalf("login failed: %+v", res)
	}
	want := domain.User{Email: "a@b.com", Role: domain.RoleContractor}
	if *res.User != want {
		t.Fatalf("unexpected user %+v", res.User)
	}
	if !m.IsAuthenticated() {
		t.Fatal("expected authenticated session")
	}
	if got := m.AuthHeaders().Get("Authorization"); got != "Bearer "+token {
		t.Fatalf("unexpected header %q", got)
	}
	if store.token != token || store.user == nil || *store.user != want {
		t.Fatalf("session not persisted: %q %+v", store.token, store.user)
	}
}

func TestSessionManager_LoginFallbackUser(t *testing.T) {
	cases := []struct {
		name  string
		token string
		role  string
		want  domain.User
	}{
		{"opaque token", "opaque", "", domain.User{Email: "a@b.com", Role: domain.RoleFallback}},
		{"no role claim", testToken(`{"sub":"other@b.com"}`), "", domain.User{Email: "other@b.com", Role: domain.RoleFallback}},
		{"server role", "opaque", "ADMIN", domain.User{Email: "a@b.com", Role: domain.RoleAdmin}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestManager(&stubTokenStore{}, &stubGateway{token: tc.token, role: tc.role})
			res := m.Login(context.Background(), "a@b.com", "pw")
			if !res.Success {
				t.Fatalf("login failed: %+v", res)
			}
			if *res.User != tc.want {
				t.Fatalf("got %+v, want %+v", res.User, tc.want)
			}
		})
	}
}

func TestSessionManager_LoginFailures(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantMsg string
		wantIs  error
	}{
		{
			name:    "server message",
			err:     &httpclient.RequestError{Op: "login", StatusCode: 400, Message: "Bad creds"},
			wantMsg: "Bad creds",
		},
		{
			name:    "unauthorized without body",
			err:     &httpclient.RequestError{Op: "login", StatusCode: 401, Err: domain.ErrInvalidCredentials},
			wantMsg: "invalid credentials",
			wantIs:  domain.ErrInvalidCredentials,
		},
		{
			name:    "missing token",
			err:     domain.ErrTokenMissing,
			wantMsg: "token not received",
			wantIs:  domain.ErrTokenMissing,
		},
		{
			name:    "transport",
			err:     &httpclient.RequestError{Op: "login", Err: domain.ErrTransport},
			wantMsg: domain.MsgLoginFailed,
			wantIs:  domain.ErrTransport,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubTokenStore{}
			m := newTestManager(store, &stubGateway{err: tc.err})
			_ = m.Restore(context.Background())

			res := m.Login(context.Background(), "a@b.com", "pw")
			if res.Success {
				t.Fatal("expected failure")
			}
			if res.Error != tc.wantMsg {
				t.Fatalf("message = %q, want %q", res.Error, tc.wantMsg)
			}
			if tc.wantIs != nil && !errors.Is(res.Err, tc.wantIs) {
				t.Fatalf("expected %v in chain, got %v", tc.wantIs, res.Err)
			}
			if m.IsAuthenticated() || store.token != "" {
				t.Fatal("failed login must not create a session")
			}
		})
	}
}

func TestSessionManager_LoginRequiresCredentials(t *testing.T) {
	gw := &stubGateway{token: "t"}
	m := newTestManager(&stubTokenStore{}, gw)

	res := m.Login(context.Background(), "", "pw")
	if res.Success || !errors.Is(res.Err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %+v", res)
	}
	if gw.logins != 0 {
		t.Fatal("gateway should not be called")
	}
}

func TestSessionManager_LoginPersistFailureKeepsAnonymous(t *testing.T) {
	store := &stubTokenStore{saveErr: errors.New("disk full")}
	m := newTestManager(store, &stubGateway{token: "tok"})
	_ = m.Restore(context.Background())

	res := m.Login(context.Background(), "a@b.com", "pw")
	if res.Success {
		t.Fatal("expected failure when the store rejects the session")
	}
	s := m.Snapshot()
	if s.Token != "" || s.User != nil {
		t.Fatalf("in-memory pair must stay empty: %+v", s)
	}
}

func TestSessionManager_Register(t *testing.T) {
	gw := &stubGateway{}
	m := newTestManager(&stubTokenStore{}, gw)
	_ = m.Restore(context.Background())

	res := m.Register(context.Background(), "c@d.com", "pw", domain.RoleAdmin)
	if !res.Success {
		t.Fatalf("register failed: %+v", res)
	}
	if len(gw.registers) != 1 || gw.registers[0] != "c@d.com:ADMIN" {
		t.Fatalf("unexpected gateway calls %v", gw.registers)
	}
	if m.IsAuthenticated() {
		t.Fatal("register must not establish a session")
	}

	res = m.Register(context.Background(), "c@d.com", "pw", domain.Role("GUEST"))
	if res.Success || !errors.Is(res.Err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected role rejection, got %+v", res)
	}
}

func TestSessionManager_RegisterFailureMessage(t *testing.T) {
	gw := &stubGateway{err: &httpclient.RequestError{Op: "register", StatusCode: 409, Message: "user exists"}}
	m := newTestManager(&stubTokenStore{}, gw)

	res := m.Register(context.Background(), "c@d.com", "pw", domain.RoleContractor)
	if res.Success || res.Error != "user exists" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSessionManager_LogoutIsIdempotent(t *testing.T) {
	store := &stubTokenStore{token: "tok", user: &domain.User{Email: "a", Role: domain.RoleAdmin}}
	m := newTestManager(store, &stubGateway{})
	_ = m.Restore(context.Background())

	m.Logout(context.Background())
	first := m.Snapshot()
	m.Logout(context.Background())
	second := m.Snapshot()

	if first != second || first.State != domain.StateAnonymous {
		t.Fatalf("logout not idempotent: %+v vs %+v", first, second)
	}
	if store.clears != 2 {
		t.Fatalf("expected store cleared on each call, got %d", store.clears)
	}
	if len(m.AuthHeaders()) != 0 {
		t.Fatalf("expected empty headers, got %v", m.AuthHeaders())
	}
}

func TestSessionManager_Authorize(t *testing.T) {
	m := newTestManager(&stubTokenStore{}, &stubGateway{token: testToken(`{"sub":"a","role":"CONTRACTOR"}`)})
	_ = m.Restore(context.Background())

	if err := m.Authorize(domain.RoleContractor); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	m.Login(context.Background(), "a", "pw")

	if err := m.Authorize(domain.RoleContractor); err != nil {
		t.Fatalf("contractor denied: %v", err)
	}
	if err := m.Authorize(); err != nil {
		t.Fatalf("any-role check failed: %v", err)
	}
	if err := m.Authorize(domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSessionManager_SubscribeSeesTransitions(t *testing.T) {
	m := newTestManager(&stubTokenStore{}, &stubGateway{token: "tok"})
	ch, cancel := m.Subscribe()
	defer cancel()

	if s := <-ch; s.State != domain.StateRestoring {
		t.Fatalf("expected initial restoring snapshot, got %v", s.State)
	}

	_ = m.Restore(context.Background())
	if s := <-ch; s.State != domain.StateAnonymous {
		t.Fatalf("expected anonymous, got %v", s.State)
	}

	m.Login(context.Background(), "a@b.com", "pw")
	if s := <-ch; s.State != domain.StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", s.State)
	}

	m.Logout(context.Background())
	if s := <-ch; s.State != domain.StateAnonymous {
		t.Fatalf("expected anonymous after logout, got %v", s.State)
	}
}

func TestSessionManager_SubscribeKeepsLatest(t *testing.T) {
	m := newTestManager(&stubTokenStore{}, &stubGateway{token: "tok"})
	ch, cancel := m.Subscribe()

	_ = m.Restore(context.Background())
	m.Login(context.Background(), "a@b.com", "pw")

	if s := <-ch; s.State != domain.StateAuthenticated {
		t.Fatalf("expected only the latest snapshot, got %v", s.State)
	}

	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel after cancel")
	}
}

func TestSessionManager_ConcurrentReaders(t *testing.T) {
	m := newTestManager(&stubTokenStore{}, &stubGateway{token: testToken(`{"sub":"a","role":"ADMIN"}`)})
	_ = m.Restore(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s := m.Snapshot()
				if (s.Token == "") != (s.User == nil) {
					t.Errorf("torn snapshot: %+v", s)
					return
				}
				_ = m.AuthHeaders()
			}
		}()
	}
	for i := 0; i < 20; i++ {
		m.Login(context.Background(), "a", "pw")
		m.Logout(context.Background())
	}
	wg.Wait()
}
