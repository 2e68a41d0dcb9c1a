package service

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/core/ports"
	"github.com/tenderhub/portal-client/internal/metrics"
	"github.com/tenderhub/portal-client/internal/pkg/jwtclaims"
)

type credentialsInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type registerInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
	Role     string `validate:"required,oneof=ADMIN CONTRACTOR"`
}

// SessionManager owns the token/user pair for the process. Only its methods
// change the pair, and the pair changes as a unit.
type SessionManager struct {
	store    ports.TokenStore
	auth     ports.AuthGateway
	validate *validator.Validate
	log      zerolog.Logger

	mu       sync.RWMutex
	token    string
	user     *domain.User
	settled  bool
	restored bool
	subs     map[int]chan domain.Session
	nextSub  int
}

func NewSessionManager(store ports.TokenStore, auth ports.AuthGateway, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store:    store,
		auth:     auth,
		validate: validator.New(),
		log:      log,
		subs:     make(map[int]chan domain.Session),
	}
}

// Restore loads a persisted session. It runs once; later calls are no-ops.
// Whatever happens, the manager leaves the restoring state. A backend read
// failure is returned after the session has been marked anonymous.
func (m *SessionManager) Restore(ctx context.Context) error {
	m.mu.Lock()
	if m.restored {
		m.mu.Unlock()
		return nil
	}
	m.restored = true
	m.mu.Unlock()

	token, user, err := m.store.Load(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("session restore failed")
	}

	m.mu.Lock()
	if !m.settled {
		if err == nil && token != "" && user != nil {
			m.token, m.user = token, user
		}
		m.settled = true
	}
	snap := m.snapshotLocked()
	m.notifyLocked(snap)
	m.mu.Unlock()

	m.log.Info().Str("state", snap.State.String()).Msg("session restored")
	return err
}

// Login exchanges credentials for a token and establishes the session.
// Failures are reported in the result, never as panics or raw errors.
func (m *SessionManager) Login(ctx context.Context, email, password string) domain.AuthResult {
	if err := m.validate.Struct(credentialsInput{Email: email, Password: password}); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return domain.Failed(domain.ErrInvalidCredentials, "email and password are required")
	}

	token, role, err := m.auth.Login(ctx, email, password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		m.log.Warn().Err(err).Str("email", email).Msg("login failed")
		return domain.Failed(err, failureMessage(err, domain.MsgLoginFailed))
	}

	user := sessionUser(token, email, role)
	if err := m.store.Save(ctx, token, *user); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		m.log.Error().Err(err).Str("email", email).Msg("persist session")
		return domain.Failed(err, domain.MsgLoginFailed)
	}

	m.mu.Lock()
	m.token, m.user = token, user
	m.settled = true
	snap := m.snapshotLocked()
	m.notifyLocked(snap)
	m.mu.Unlock()

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	m.log.Info().
		Str("email", user.Email).
		Str("role", string(user.Role)).
		Msg("session established")

	u := *user
	return domain.Succeeded(&u)
}

// Register creates an account. It never changes the session.
func (m *SessionManager) Register(ctx context.Context, email, password string, role domain.Role) domain.AuthResult {
	in := registerInput{Email: email, Password: password, Role: string(role)}
	if err := m.validate.Struct(in); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		return domain.Failed(domain.ErrInvalidCredentials, "email, password and a valid role are required")
	}

	if err := m.auth.Register(ctx, email, password, string(role)); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		m.log.Warn().Err(err).Str("email", email).Msg("registration failed")
		return domain.Failed(err, failureMessage(err, domain.MsgRegisterFailed))
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	m.log.Info().Str("email", email).Str("role", string(role)).Msg("account registered")
	return domain.AuthResult{Success: true}
}

// Logout drops the session from memory and storage. Safe to call repeatedly.
func (m *SessionManager) Logout(ctx context.Context) {
	m.mu.Lock()
	wasAuthenticated := m.token != ""
	m.token, m.user = "", nil
	m.settled = true
	snap := m.snapshotLocked()
	m.notifyLocked(snap)
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.log.Error().Err(err).Msg("clear persisted session")
	}
	if wasAuthenticated {
		m.log.Info().Msg("session cleared")
	}
}

func (m *SessionManager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != "" && m.user != nil
}

// AuthHeaders returns the Authorization header for the current token, or an
// empty header when anonymous.
func (m *SessionManager) AuthHeaders() http.Header {
	h := make(http.Header)
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func (m *SessionManager) Snapshot() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Authorize checks the session against the allowed roles. No roles means any
// authenticated user.
func (m *SessionManager) Authorize(roles ...domain.Role) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" || m.user == nil {
		return domain.ErrNotAuthenticated
	}
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if m.user.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}

// Subscribe returns a channel that receives a snapshot after every state
// change, starting with the current one. A slow reader only sees the latest
// snapshot. cancel closes the channel.
func (m *SessionManager) Subscribe() (<-chan domain.Session, func()) {
	ch := make(chan domain.Session, 1)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	ch <- m.snapshotLocked()
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			close(ch)
			m.mu.Unlock()
		})
	}
	return ch, cancel
}

func (m *SessionManager) snapshotLocked() domain.Session {
	s := domain.Session{Token: m.token, Loading: !m.settled}
	if m.user != nil {
		u := *m.user
		s.User = &u
	}
	switch {
	case !m.settled:
		s.State = domain.StateRestoring
	case s.Authenticated():
		s.State = domain.StateAuthenticated
	default:
		s.State = domain.StateAnonymous
	}
	return s
}

func (m *SessionManager) notifyLocked(s domain.Session) {
	for _, ch := range m.subs {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

// sessionUser derives the session identity from the token. A token without a
// role claim yields a fallback user built from what the server and the
// caller supplied.
func sessionUser(token, email, serverRole string) *domain.User {
	claims, ok := jwtclaims.Decode(token)
	if ok {
		if u := claims.User(); u != nil {
			return u
		}
		if id := claims.Identity(); id != "" {
			email = id
		}
	}
	role := domain.Role(serverRole)
	if role == "" {
		role = domain.RoleFallback
	}
	return &domain.User{Email: email, Role: role}
}

func failureMessage(err error, fallback string) string {
	var r interface{ Reason() string }
	if errors.As(err, &r) && r.Reason() != "" {
		return r.Reason()
	}
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrTokenMissing):
		return domain.ErrTokenMissing.Error()
	}
	return fallback
}
