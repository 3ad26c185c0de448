// Package services contains the application services coordinating auth,
// notifications and analytics on top of the infrastructure layer.
package services

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/domain/events"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/localstore"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/messaging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/security"
)

var (
	// ErrInvalidCredentials is returned when the login email or password is
	// wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionExpired is returned when a previously valid session token no
	// longer validates.
	ErrSessionExpired = errors.New("session expired")
)

// SessionConfig carries the operator credential and token settings.
type SessionConfig struct {
	AdminEmail    string
	AdminPassword string // plaintext or a bcrypt hash
	JWTSecret     string
	TokenTTL      time.Duration
}

// SessionService owns the authenticated-operator state. The operator field
// and the token move together under one lock: an operator identity is present
// if and only if the session is authenticated.
type SessionService struct {
	mu       sync.RWMutex
	operator *content.Operator
	token    string

	cfg    SessionConfig
	store  *localstore.Store
	bus    messaging.Publisher
	logger *logging.ChanneledLogger
}

// NewSessionService creates the session service and restores any persisted
// session from the local store. An expired or invalid persisted token is
// cleared silently.
func NewSessionService(cfg SessionConfig, store *localstore.Store, bus messaging.Publisher, logger *logging.ChanneledLogger) *SessionService {
	s := &SessionService{
		cfg:    cfg,
		store:  store,
		bus:    bus,
		logger: logger,
	}
	s.restore()
	return s
}

func (s *SessionService) restore() {
	token := s.store.Get(localstore.KeyAdminAuth)
	if token == "" {
		return
	}

	claims, err := security.ValidateSessionToken(token, s.cfg.JWTSecret)
	if err != nil {
		s.logger.Auth().Info("Discarding stale persisted session")
		s.clearPersisted()
		return
	}

	op := operatorFromClaims(claims)
	s.mu.Lock()
	s.operator = &op
	s.token = token
	s.mu.Unlock()
	s.logger.LogAuthOperation("session_restore", op.Email, true)
}

// Login verifies the credentials, mints a session token, persists it and
// broadcasts the grant.
func (s *SessionService) Login(email, password string) (content.Operator, error) {
	if !credentialsMatch(s.cfg, email, password) {
		s.logger.LogAuthOperation("login", email, false)
		return content.Operator{}, ErrInvalidCredentials
	}

	operatorID := security.GenerateULID()
	token, err := security.GenerateSessionToken(operatorID, email, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return content.Operator{}, err
	}

	op := content.Operator{ID: operatorID, Email: email}

	s.mu.Lock()
	s.operator = &op
	s.token = token
	s.mu.Unlock()

	if err := s.store.Set(localstore.KeyAdminAuth, token); err != nil {
		s.logger.Auth().Warn("Failed to persist session token", "error", err)
	}
	if err := s.store.Set(localstore.KeyAdminUser, email); err != nil {
		s.logger.Auth().Warn("Failed to persist session user", "error", err)
	}

	s.logger.LogAuthOperation("login", email, true)
	s.bus.Publish(events.AuthGranted{Operator: op})
	return op, nil
}

// Logout clears the session. Local state is cleared unconditionally even when
// persisting the removal fails, and the revocation is always broadcast.
func (s *SessionService) Logout() {
	s.mu.Lock()
	email := ""
	if s.operator != nil {
		email = s.operator.Email
	}
	s.operator = nil
	s.token = ""
	s.mu.Unlock()

	s.clearPersisted()

	if email != "" {
		s.logger.LogAuthOperation("logout", email, true)
	}
	s.bus.Publish(events.AuthRevoked{})
}

func (s *SessionService) clearPersisted() {
	if err := s.store.Delete(localstore.KeyAdminAuth); err != nil {
		s.logger.Auth().Warn("Failed to clear persisted token", "error", err)
	}
	if err := s.store.Delete(localstore.KeyAdminUser); err != nil {
		s.logger.Auth().Warn("Failed to clear persisted user", "error", err)
	}
}

// IsAuthenticated reports whether an operator session is active.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.operator != nil
}

// Operator returns the current operator identity, if authenticated.
func (s *SessionService) Operator() (content.Operator, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.operator == nil {
		return content.Operator{}, false
	}
	return *s.operator, true
}

// Token returns the active session token, or "" when unauthenticated.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Validate checks a presented token against the signing secret and returns
// the operator it identifies.
func (s *SessionService) Validate(token string) (content.Operator, error) {
	claims, err := security.ValidateSessionToken(token, s.cfg.JWTSecret)
	if err != nil {
		return content.Operator{}, ErrSessionExpired
	}
	return operatorFromClaims(claims), nil
}

func operatorFromClaims(claims map[string]interface{}) content.Operator {
	op := content.Operator{}
	if sub, ok := claims["sub"].(string); ok {
		op.ID = sub
	}
	if email, ok := claims["email"].(string); ok {
		op.Email = email
	}
	return op
}

// credentialsMatch compares the presented credentials against configuration.
// The configured password may be a bcrypt hash or, for development setups,
// plaintext.
func credentialsMatch(cfg SessionConfig, email, password string) bool {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return false
	}
	if !strings.EqualFold(email, cfg.AdminEmail) {
		return false
	}

	if strings.HasPrefix(cfg.AdminPassword, "$2a$") ||
		strings.HasPrefix(cfg.AdminPassword, "$2b$") ||
		strings.HasPrefix(cfg.AdminPassword, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(cfg.AdminPassword), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(cfg.AdminPassword), []byte(password)) == 1
}
