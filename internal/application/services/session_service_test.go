package services

import (
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzakyfr/portfolio-go/internal/domain/events"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/localstore"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
)

func testLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		DefaultLevel:    slog.LevelError + 4,
		ChannelLevels:   map[logging.Channel]slog.Level{},
	})
	require.NoError(t, err)
	return logger
}

// recordingBus captures published messages for assertions.
type recordingBus struct {
	mu       sync.Mutex
	messages []events.Message
}

func (b *recordingBus) Publish(msg events.Message) {
	b.mu.Lock()
	b.messages = append(b.messages, msg)
	b.mu.Unlock()
}

func (b *recordingBus) kinds() []events.Kind {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]events.Kind, len(b.messages))
	for i, m := range b.messages {
		out[i] = m.Kind()
	}
	return out
}

func testSessionConfig() SessionConfig {
	return SessionConfig{
		AdminEmail:    "admin@example.com",
		AdminPassword: "hunter2",
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
	}
}

func newTestSession(t *testing.T) (*SessionService, *recordingBus, *localstore.Store) {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	bus := &recordingBus{}
	return NewSessionService(testSessionConfig(), store, bus, testLogger(t)), bus, store
}

func TestLoginSuccess(t *testing.T) {
	s, bus, store := newTestSession(t)

	op, err := s.Login("admin@example.com", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", op.Email)
	assert.NotEmpty(t, op.ID)
	assert.True(t, s.IsAuthenticated())
	assert.NotEmpty(t, s.Token())
	assert.NotEmpty(t, store.Get(localstore.KeyAdminAuth))
	assert.Equal(t, []events.Kind{events.KindAuthGranted}, bus.kinds())
}

func TestLoginWrongPassword(t *testing.T) {
	s, bus, _ := newTestSession(t)

	_, err := s.Login("admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, bus.kinds())
}

func TestLoginWrongEmail(t *testing.T) {
	s, _, _ := newTestSession(t)

	_, err := s.Login("intruder@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestOperatorPresenceTracksAuthentication(t *testing.T) {
	s, _, _ := newTestSession(t)

	_, ok := s.Operator()
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated())

	_, err := s.Login("admin@example.com", "hunter2")
	require.NoError(t, err)

	op, ok := s.Operator()
	assert.True(t, ok)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "admin@example.com", op.Email)

	s.Logout()
	_, ok = s.Operator()
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated())
}

func TestLogoutClearsStateAndBroadcasts(t *testing.T) {
	s, bus, store := newTestSession(t)

	_, err := s.Login("admin@example.com", "hunter2")
	require.NoError(t, err)

	s.Logout()

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Empty(t, store.Get(localstore.KeyAdminAuth))
	assert.Equal(t, []events.Kind{events.KindAuthGranted, events.KindAuthRevoked}, bus.kinds())
}

func TestLogoutWithoutSessionStillBroadcasts(t *testing.T) {
	s, bus, _ := newTestSession(t)

	s.Logout()
	assert.Equal(t, []events.Kind{events.KindAuthRevoked}, bus.kinds())
}

func TestSessionRestoredFromStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store, err := localstore.Open(path)
	require.NoError(t, err)

	first := NewSessionService(testSessionConfig(), store, &recordingBus{}, testLogger(t))
	_, err = first.Login("admin@example.com", "hunter2")
	require.NoError(t, err)

	// A new service over the same store picks up the persisted session.
	reopened, err := localstore.Open(path)
	require.NoError(t, err)
	second := NewSessionService(testSessionConfig(), reopened, &recordingBus{}, testLogger(t))

	assert.True(t, second.IsAuthenticated())
	op, ok := second.Operator()
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", op.Email)
}

func TestStaleStoredTokenDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store, err := localstore.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(localstore.KeyAdminAuth, "garbage-token"))

	s := NewSessionService(testSessionConfig(), store, &recordingBus{}, testLogger(t))

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, store.Get(localstore.KeyAdminAuth))
}

func TestValidate(t *testing.T) {
	s, _, _ := newTestSession(t)

	_, err := s.Login("admin@example.com", "hunter2")
	require.NoError(t, err)

	op, err := s.Validate(s.Token())
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", op.Email)

	_, err = s.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestCredentialsMatchBcrypt(t *testing.T) {
	// bcrypt hash of "password" with cost 10.
	cfg := testSessionConfig()
	cfg.AdminPassword = "$2a$10$xVNuGfBRFvXh2nA1PxVopOwOmn.n3ugsd8KgDJBJApwPSCKB4iu1i"

	assert.False(t, credentialsMatch(cfg, "admin@example.com", "hunter2"))
	assert.True(t, credentialsMatch(cfg, "admin@example.com", "password"))
}
