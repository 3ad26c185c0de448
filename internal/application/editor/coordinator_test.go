package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
)

func newCoordinatorFixture(t *testing.T) (*fixture, *Coordinator, *Controller[content.ContactInfo], *ListController[content.TechStackItem], *contactStore, *techRepo) {
	t.Helper()
	f := newFixture(t)
	coord := NewCoordinator(f.session, f.toasts, f.confirms, f.bus, f.deps.Logger)

	store := &contactStore{current: DefaultContact()}
	contact := NewController("contact", AutoSaveOnBlur, store.load, store.persist, DefaultContact(), f.deps)
	repo := newTechRepo(techItem(1, "Go"))
	tech := NewListController("techstack", repo.listRepo(), f.deps)

	coord.Register(contact)
	coord.Register(tech)
	require.NoError(t, coord.MountAll())
	return f, coord, contact, tech, store, repo
}

func TestSetEditModeRequiresAuthentication(t *testing.T) {
	_, coord, contact, _, _, _ := newCoordinatorFixture(t)

	err := coord.SetEditMode(true)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, coord.EditMode())
	assert.Equal(t, PhaseViewing, contact.State().Phase)
}

func TestSetEditModeBroadcastsToEverySection(t *testing.T) {
	f, coord, contact, tech, _, _ := newCoordinatorFixture(t)
	f.login(t)

	require.NoError(t, coord.SetEditMode(true))
	assert.True(t, coord.EditMode())
	assert.Equal(t, PhaseEditing, contact.State().Phase)
	assert.Equal(t, PhaseEditing, tech.State().Phase)

	require.NoError(t, coord.SetEditMode(false))
	assert.False(t, coord.EditMode())
	assert.Equal(t, PhaseViewing, contact.State().Phase)
	assert.Equal(t, PhaseViewing, tech.State().Phase)
}

func TestSaveAllSavesOnlyDirtySections(t *testing.T) {
	f, coord, contact, _, store, repo := newCoordinatorFixture(t)
	f.login(t)
	require.NoError(t, coord.SetEditMode(true))

	require.NoError(t, contact.Mutate(func(d *content.ContactInfo) { d.Email = "new@example.com" }))
	require.NoError(t, coord.SaveAll())

	require.Len(t, store.saved, 1)
	assert.Empty(t, repo.updatedIDs)
	assert.False(t, contact.Dirty())
}

func TestSaveAllRequiresAuthentication(t *testing.T) {
	_, coord, _, _, _, _ := newCoordinatorFixture(t)

	assert.ErrorIs(t, coord.SaveAll(), ErrNotAuthenticated)
}

func TestLogoutClearsGlobalEditMode(t *testing.T) {
	f, coord, contact, tech, _, _ := newCoordinatorFixture(t)
	f.login(t)
	require.NoError(t, coord.SetEditMode(true))

	f.session.Logout()

	assert.False(t, coord.EditMode())
	assert.Equal(t, PhaseViewing, contact.State().Phase)
	assert.Equal(t, PhaseViewing, tech.State().Phase)
}

func TestStateSnapshotListsSectionsInRegistrationOrder(t *testing.T) {
	f, coord, contact, _, _, _ := newCoordinatorFixture(t)
	f.login(t)
	require.NoError(t, coord.SetEditMode(true))
	require.NoError(t, contact.Mutate(func(d *content.ContactInfo) { d.Email = "new@example.com" }))

	f.toasts.Info("Heads up")

	state := coord.State()
	assert.True(t, state.EditMode)
	assert.True(t, state.Authenticated)
	require.Len(t, state.Sections, 2)
	assert.Equal(t, "contact", state.Sections[0].Name)
	assert.Equal(t, "techstack", state.Sections[1].Name)
	assert.True(t, state.Sections[0].Dirty)
	assert.False(t, state.Sections[1].Dirty)
	require.NotNil(t, state.Toast)
	assert.Equal(t, "Heads up", state.Toast.Message)
	assert.Nil(t, state.Confirm)
}

func TestCancelAllPromptsForDirtySections(t *testing.T) {
	f, coord, contact, _, _, _ := newCoordinatorFixture(t)
	f.login(t)
	require.NoError(t, coord.SetEditMode(true))
	require.NoError(t, contact.Mutate(func(d *content.ContactInfo) { d.Email = "new@example.com" }))

	coord.CancelAll()

	_, pending := f.confirms.Pending()
	assert.True(t, pending)
}
