package editor

import (
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzakyfr/portfolio-go/internal/application/services"
	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/domain/events"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/localstore"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/media"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/messaging"
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

type fixture struct {
	bus      *messaging.Bus
	session  *services.SessionService
	toasts   *services.ToastService
	confirms *services.ConfirmService
	deps     ControllerDeps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := testLogger(t)
	bus := messaging.NewBus(logger)

	store, err := localstore.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	session := services.NewSessionService(services.SessionConfig{
		AdminEmail:    "admin@example.com",
		AdminPassword: "hunter2",
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
	}, store, bus, logger)

	toasts := services.NewToastService(time.Minute, logger)
	confirms := services.NewConfirmService(logger)
	uploader := media.NewUploader(t.TempDir(), "http://localhost:3001", "/uploads", logger)

	f := &fixture{
		bus:      bus,
		session:  session,
		toasts:   toasts,
		confirms: confirms,
	}
	f.deps = ControllerDeps{
		Session:  session,
		Toasts:   toasts,
		Confirms: confirms,
		Uploader: uploader,
		Bus:      bus,
		Logger:   logger,
	}
	return f
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	_, err := f.session.Login("admin@example.com", "hunter2")
	require.NoError(t, err)
}

// contactStore is an in-memory persist target for a single-record section.
type contactStore struct {
	saved   []content.ContactInfo
	current content.ContactInfo
	failErr error
}

func (s *contactStore) load() (content.ContactInfo, error) {
	return s.current.Clone(), nil
}

func (s *contactStore) persist(info content.ContactInfo) (content.ContactInfo, error) {
	if s.failErr != nil {
		return content.ContactInfo{}, s.failErr
	}
	s.current = info.Clone()
	s.saved = append(s.saved, s.current)
	return s.current.Clone(), nil
}

func newContactController(t *testing.T, f *fixture, store *contactStore) *Controller[content.ContactInfo] {
	t.Helper()
	c := NewController("contact", BatchedExplicitSave, store.load, store.persist, DefaultContact(), f.deps)
	require.NoError(t, c.Mount())
	return c
}

func enterEditMode(t *testing.T, f *fixture) {
	t.Helper()
	f.login(t)
	f.bus.Publish(events.EditModeChanged{Enabled: true})
}

func TestControllerMountsWithEditModeOff(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	// Broadcast before the controller exists: it must not be replayed.
	f.bus.Publish(events.EditModeChanged{Enabled: true})

	c := newContactController(t, f, &contactStore{current: DefaultContact()})

	state := c.State()
	assert.Equal(t, PhaseViewing, state.Phase)
	assert.False(t, state.EditMode)
	assert.False(t, state.Dirty)
}

func TestControllerFallsBackOnMissingRecord(t *testing.T) {
	f := newFixture(t)

	load := func() (content.ContactInfo, error) {
		return content.ContactInfo{}, errors.New("connection refused")
	}
	persist := func(info content.ContactInfo) (content.ContactInfo, error) { return info, nil }

	c := NewController("contact", BatchedExplicitSave, load, persist, DefaultContact(), f.deps)
	require.NoError(t, c.Mount())

	assert.Equal(t, DefaultContact(), c.Data())
	assert.Equal(t, PhaseViewing, c.State().Phase)
}

func TestEditModeRequiresAuthentication(t *testing.T) {
	f := newFixture(t)
	c := newContactController(t, f, &contactStore{current: DefaultContact()})

	f.bus.Publish(events.EditModeChanged{Enabled: true})

	assert.Equal(t, PhaseViewing, c.State().Phase)
	assert.False(t, c.State().EditMode)
}

func TestMutateOutsideEditModeRejected(t *testing.T) {
	f := newFixture(t)
	c := newContactController(t, f, &contactStore{current: DefaultContact()})

	err := c.Mutate(func(d *content.ContactInfo) { d.Email = "new@example.com" })
	assert.ErrorIs(t, err, ErrNotEditing)
}

func TestDirtyTracking(t *testing.T) {
	f := newFixture(t)
	c := newContactController(t, f, &contactStore{current: DefaultContact()})
	enterEditMode(t, f)

	assert.False(t, c.Dirty())

	require.NoError(t, c.Mutate(func(d *content.ContactInfo) { d.Email = "new@example.com" }))
	assert.True(t, c.Dirty())

	// Reverting the field by hand makes the draft clean again.
	require.NoError(t, c.Mutate(func(d *content.ContactInfo) { d.Email = DefaultContact().Email }))
	assert.False(t, c.Dirty())
}

func TestCancelCleanExitsWithoutConfirmation(t *testing.T) {
	f := newFixture(t)
	c := newContactController(t, f, &contactStore{current: DefaultContact()})
	enterEditMode(t, f)

	c.Cancel()

	_, pending := f.confirms.Pending()
	assert.False(t, pending)
	assert.Equal(t, PhaseViewing, c.State().Phase)
}

func TestCancelDirtyAsksForConfirmation(t *testing.T) {
	f := newFixture(t)
	c := newContactController(t, f, &contactStore{current: DefaultContact()})
	enterEditMode(t, f)

	require.NoError(t, c.Mutate(func(d *content.ContactInfo) { d.Email = "new@example.com" }))
	c.Cancel()

	_, pending := f.confirms.Pending()
	require.True(t, pending)

	// Declining keeps the draft and edit mode.
	require.True(t, f.confirms.Decline())
	assert.Equal(t, PhaseEditing, c.State().Phase)
	assert.True(t, c.Dirty())
	assert.Equal(t, "new@example.com", c.Draft().Email)

	// Confirming discards back to the baseline.
	c.Cancel()
	require.True(t, f.confirms.Confirm())
	assert.Equal(t, PhaseViewing, c.State().Phase)
	assert.False(t, c.Dirty())
	assert.Equal(t, DefaultContact().Email, c.Draft().Email)
}

func TestLogoutDiscardsDraftWithoutConfirmation(t *testing.T) {
	f := newFixture(t)
	c := newContactController(t, f, &contactStore{current: DefaultContact()})
	enterEditMode(t, f)

	require.NoError(t, c.Mutate(func(d *content.ContactInfo) { d.Email = "new@example.com" }))
	f.session.Logout()

	_, pending := f.confirms.Pending()
	assert.False(t, pending, "logout must not prompt")
	assert.Equal(t, PhaseViewing, c.State().Phase)
	assert.False(t, c.Dirty())
	assert.Equal(t, DefaultContact().Email, c.Draft().Email)
}

func TestSavePersistsAndRebaselines(t *testing.T) {
	f := newFixture(t)
	store := &contactStore{current: DefaultContact()}
	c := newContactController(t, f, store)
	enterEditMode(t, f)

	require.NoError(t, c.Mutate(func(d *content.ContactInfo) { d.Email = "new@example.com" }))
	require.NoError(t, c.Save())

	require.Len(t, store.saved, 1)
	assert.Equal(t, "new@example.com", store.saved[0].Email)
	assert.False(t, c.Dirty())
	assert.Equal(t, "new@example.com", c.Data().Email)

	// A successful explicit save leaves edit mode.
	assert.Equal(t, PhaseViewing, c.State().Phase)
	assert.False(t, c.State().EditMode)
}

func TestSaveCleanDraftIsNoOp(t *testing.T) {
	f := newFixture(t)
	store := &contactStore{current: DefaultContact()}
	c := newContactController(t, f, store)
	enterEditMode(t, f)

	require.NoError(t, c.Save())
	assert.Empty(t, store.saved)
}

func TestSaveFailureKeepsDraft(t *testing.T) {
	f := newFixture(t)
	store := &contactStore{current: DefaultContact(), failErr: errors.New("disk gone")}
	c := newContactController(t, f, store)
	enterEditMode(t, f)

	require.NoError(t, c.Mutate(func(d *content.ContactInfo) { d.Email = "new@example.com" }))
	err := c.Save()
	require.Error(t, err)

	assert.True(t, c.Dirty())
	assert.Equal(t, "new@example.com", c.Draft().Email)
	assert.Equal(t, PhaseEditing, c.State().Phase)

	toast, ok := f.toasts.Current()
	require.True(t, ok)
	assert.Equal(t, services.ToastError, toast.Level)
}

func TestSaveWithExpiredSessionKeepsDraft(t *testing.T) {
	f := newFixture(t)
	store := &contactStore{current: DefaultContact()}
	c := newContactController(t, f, store)
	enterEditMode(t, f)

	require.NoError(t, c.Mutate(func(d *content.ContactInfo) { d.Email = "kept@example.com" }))

	// Detach from the bus so the logout broadcast cannot discard the
	// draft. Save re-checks authentication on its own.
	c.Unsubscribe()
	f.session.Logout()

	err := c.Save()
	assert.ErrorIs(t, err, services.ErrSessionExpired)
	assert.True(t, c.Dirty())
	assert.Equal(t, "kept@example.com", c.Draft().Email)
	assert.Empty(t, store.saved)
}

func TestSaveInFlightGate(t *testing.T) {
	f := newFixture(t)

	release := make(chan struct{})
	started := make(chan struct{})
	load := func() (content.ContactInfo, error) { return DefaultContact(), nil }
	persist := func(info content.ContactInfo) (content.ContactInfo, error) {
		close(started)
		<-release
		return info, nil
	}

	c := NewController("contact", BatchedExplicitSave, load, persist, DefaultContact(), f.deps)
	require.NoError(t, c.Mount())
	enterEditMode(t, f)

	require.NoError(t, c.Mutate(func(d *content.ContactInfo) { d.Email = "new@example.com" }))

	done := make(chan error, 1)
	go func() { done <- c.Save() }()
	<-started

	assert.ErrorIs(t, c.Save(), ErrSaveInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.Dirty())
}

func TestSaveRequestedBroadcastSavesDirtySections(t *testing.T) {
	f := newFixture(t)
	store := &contactStore{current: DefaultContact()}
	c := newContactController(t, f, store)
	enterEditMode(t, f)

	require.NoError(t, c.Mutate(func(d *content.ContactInfo) { d.Email = "new@example.com" }))
	f.bus.Publish(events.SaveRequested{})

	require.Len(t, store.saved, 1)
	assert.False(t, c.Dirty())
	assert.Equal(t, PhaseViewing, c.State().Phase)
}

func TestBroadcastSaveFailureIsIsolated(t *testing.T) {
	f := newFixture(t)

	okStore := &contactStore{current: DefaultContact()}
	ok := NewController("contact", BatchedExplicitSave, okStore.load, okStore.persist, DefaultContact(), f.deps)
	require.NoError(t, ok.Mount())

	badStore := &contactStore{current: DefaultContact(), failErr: errors.New("disk gone")}
	bad := NewController("about", BatchedExplicitSave, badStore.load, badStore.persist, DefaultContact(), f.deps)
	require.NoError(t, bad.Mount())

	enterEditMode(t, f)
	require.NoError(t, ok.Mutate(func(d *content.ContactInfo) { d.Email = "ok@example.com" }))
	require.NoError(t, bad.Mutate(func(d *content.ContactInfo) { d.Email = "bad@example.com" }))

	f.bus.Publish(events.SaveRequested{})

	// One section's failure never rolls back its sibling.
	assert.Equal(t, PhaseViewing, ok.State().Phase)
	assert.Equal(t, "ok@example.com", ok.Data().Email)
	assert.Equal(t, PhaseEditing, bad.State().Phase)
	assert.Equal(t, "bad@example.com", bad.Draft().Email)
	assert.True(t, bad.Dirty())
}

func TestAttachImageFallsBackToDataURI(t *testing.T) {
	f := newFixture(t)
	logger := testLogger(t)

	// An uploader with no base path reports storage unavailable.
	deps := f.deps
	deps.Uploader = media.NewUploader("", "http://localhost:3001", "/uploads", logger)

	store := &contactStore{current: DefaultContact()}
	c := NewController("contact", BatchedExplicitSave, store.load, store.persist, DefaultContact(), deps)
	require.NoError(t, c.Mount())
	enterEditMode(t, f)

	dataURI := "data:image/png;base64,AAAA"
	err := c.AttachImage("photo.png", dataURI, func(d *content.ContactInfo, url string) {
		d.Website = url
	})
	require.NoError(t, err)

	assert.Equal(t, dataURI, c.Draft().Website)
	assert.True(t, c.Dirty())
}

func TestAttachImageOutsideEditModeRejected(t *testing.T) {
	f := newFixture(t)
	c := newContactController(t, f, &contactStore{current: DefaultContact()})

	err := c.AttachImage("photo.png", "data:image/png;base64,AAAA",
		func(d *content.ContactInfo, url string) { d.Website = url })
	assert.ErrorIs(t, err, ErrNotEditing)
}

func TestBlurFieldSavesUnderAutoSaveStrategy(t *testing.T) {
	f := newFixture(t)
	store := &contactStore{current: DefaultContact()}

	c := NewController("contact", AutoSaveOnBlur, store.load, store.persist, DefaultContact(), f.deps)
	require.NoError(t, c.Mount())
	enterEditMode(t, f)

	require.NoError(t, c.Mutate(func(d *content.ContactInfo) { d.Email = "blur@example.com" }))
	require.NoError(t, c.BlurField())

	require.Len(t, store.saved, 1)
	assert.Equal(t, "blur@example.com", store.saved[0].Email)

	// Blur-saves keep the section in edit mode.
	assert.Equal(t, PhaseEditing, c.State().Phase)
}

func TestBlurFieldIsNoOpForBatchedStrategy(t *testing.T) {
	f := newFixture(t)
	store := &contactStore{current: DefaultContact()}
	c := newContactController(t, f, store)
	enterEditMode(t, f)

	require.NoError(t, c.Mutate(func(d *content.ContactInfo) { d.Email = "blur@example.com" }))
	require.NoError(t, c.BlurField())

	assert.Empty(t, store.saved)
	assert.True(t, c.Dirty())
}
