// Package session owns the client's authentication state: the current
// user identity, a loading flag, and the persisted session marker.
// A single Store instance is injected into whatever needs the current
// identity; all mutations go through its four operations and run to
// completion, persistence included, before returning.
package session

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/internal/gateway"
	"github.com/openshelf/openshelf/types"
	"go.uber.org/zap"
)

// Paths navigated to after session transitions.
const (
	loginPath          = "/login"
	userLandingPath    = "/dashboard"
	adminLandingPath   = "/admin/dashboard"
	identityEndpoint   = "/api/user"
	csrfCookieEndpoint = "/sanctum/csrf-cookie"
)

// Store holds the session. Operations are serialized; readers never
// observe a torn state.
type Store struct {
	opMu sync.Mutex // serializes the four session operations

	mu      sync.RWMutex
	user    *types.User
	loading bool

	gw       *gateway.Gateway
	creds    CredentialStore
	nav      gateway.Navigator
	logger   *zap.Logger
	mockMode bool
}

// NewStore wires a session store. The store starts anonymous; call
// CheckSession once at startup to resolve the initial state.
func NewStore(cfg config.Config, gw *gateway.Gateway, creds CredentialStore, nav gateway.Navigator, logger *zap.Logger) *Store {
	if nav == nil {
		nav = gateway.NopNavigator{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		gw:       gw,
		creds:    creds,
		nav:      nav,
		logger:   logger,
		mockMode: cfg.MockAPI,
	}
}

// Current returns the authenticated user, or false when anonymous.
func (s *Store) Current() (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return types.User{}, false
	}
	return *s.user, true
}

// Loading reports whether a session operation is in flight. Callers
// should disable their triggering control while this is true.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// CheckSession resolves the initial session state. It asks the server
// who the caller is; on any failure it degrades to the persisted
// marker, then to anonymous. It never fails outward.
func (s *Store) CheckSession(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.setLoading(true)
	defer s.setLoading(false)

	raw, err := s.gw.Exchange(ctx, identityEndpoint, gateway.RequestOptions{})
	if err == nil {
		var user types.User
		if decodeErr := json.Unmarshal(raw, &user); decodeErr == nil && user.ID != 0 {
			s.setUser(&user)
			return
		}
	} else {
		s.logger.Debug("identity check failed", zap.Error(err))
	}

	user, ok, err := s.creds.Load()
	if err != nil {
		s.logger.Warn("failed to read persisted session", zap.Error(err))
	}
	if ok {
		s.setUser(&user)
		return
	}
	s.setUser(nil)
}

// Login authenticates with email and password. On success the
// identity is persisted and the caller is navigated to their role's
// landing page. On failure it returns false and leaves the session
// untouched; no redirect happens.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.setLoading(true)
	defer s.setLoading(false)

	if s.mockMode {
		user := mockUserFromEmail(email)
		s.establish(user)
		return true
	}

	if _, err := s.gw.Exchange(ctx, csrfCookieEndpoint, gateway.RequestOptions{}); err != nil {
		s.logger.Warn("csrf priming failed", zap.Error(err))
		return false
	}

	raw, err := s.gw.Exchange(ctx, "/api/login", gateway.RequestOptions{
		Method: "POST",
		Body:   loginRequest{Email: email, Password: password},
	})
	if err != nil {
		s.logger.Warn("login failed", zap.Error(err))
		return false
	}

	user, err := decodeAuthUser(raw)
	if err != nil {
		s.logger.Warn("login response malformed", zap.Error(err))
		return false
	}

	s.establish(user)
	return true
}

// Register creates an account. Password/confirmation equality is the
// caller's responsibility; the store performs no such check.
func (s *Store) Register(ctx context.Context, name, email, password string) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.setLoading(true)
	defer s.setLoading(false)

	if s.mockMode {
		user := types.User{
			ID:    rand.IntN(1000) + 1,
			Name:  name,
			Email: email,
			Role:  types.RoleUser,
		}
		s.persist(user)
		s.setUser(&user)
		s.nav.Push(userLandingPath)
		return true
	}

	if _, err := s.gw.Exchange(ctx, csrfCookieEndpoint, gateway.RequestOptions{}); err != nil {
		s.logger.Warn("csrf priming failed", zap.Error(err))
		return false
	}

	raw, err := s.gw.Exchange(ctx, "/api/register", gateway.RequestOptions{
		Method: "POST",
		Body: registerRequest{
			Name:                 name,
			Email:                email,
			Password:             password,
			PasswordConfirmation: password,
			Role:                 types.RoleUser,
		},
	})
	if err != nil {
		s.logger.Warn("registration failed", zap.Error(err))
		return false
	}

	user, err := decodeAuthUser(raw)
	if err != nil {
		s.logger.Warn("registration response malformed", zap.Error(err))
		return false
	}

	s.persist(user)
	s.setUser(&user)
	s.nav.Push(userLandingPath)
	return true
}

// Logout tears the session down. The remote call is best effort:
// local state is cleared and the caller navigated to the login page
// regardless of its outcome.
func (s *Store) Logout(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.setLoading(true)
	defer s.setLoading(false)

	if !s.mockMode {
		if _, err := s.gw.Exchange(ctx, "/api/logout", gateway.RequestOptions{Method: "POST"}); err != nil {
			s.logger.Warn("remote logout failed", zap.Error(err))
		}
	}

	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted session", zap.Error(err))
	}
	s.setUser(nil)
	s.nav.Push(loginPath)
}

// establish persists the identity, stores it, and navigates to the
// role's landing page.
func (s *Store) establish(user types.User) {
	s.persist(user)
	s.setUser(&user)
	if user.IsAdmin() {
		s.nav.Push(adminLandingPath)
	} else {
		s.nav.Push(userLandingPath)
	}
}

func (s *Store) persist(user types.User) {
	if err := s.creds.Save(user); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
}

func (s *Store) setUser(user *types.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// mockUserFromEmail synthesizes a deterministic identity for mock
// logins: the local part becomes the name, and any email containing
// "admin" gets the admin role.
func mockUserFromEmail(email string) types.User {
	name, _, _ := strings.Cut(email, "@")
	role := types.RoleUser
	if strings.Contains(email, "admin") {
		role = types.RoleAdmin
	}
	return types.User{ID: 1, Name: name, Email: email, Role: role}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 string `json:"role"`
}

// decodeAuthUser accepts both {"user":{...}} envelopes and a bare
// user object.
func decodeAuthUser(raw json.RawMessage) (types.User, error) {
	var envelope struct {
		User types.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return types.User{}, err
	}
	if envelope.User.ID != 0 {
		return envelope.User, nil
	}
	var user types.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}
