// Package editor implements the edit-mode synchronization subsystem: section
// controllers with explicit lifecycle phases, the coordinator that owns the
// global edit-mode flag, and the broadcast wiring between them.
package editor

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/dzakyfr/portfolio-go/internal/application/services"
	"github.com/dzakyfr/portfolio-go/internal/domain/events"
	"github.com/dzakyfr/portfolio-go/internal/domain/repositories"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/media"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/messaging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
)

// Phase is a section controller's lifecycle state.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseViewing Phase = "viewing"
	PhaseEditing Phase = "editing"
	PhaseSaving  Phase = "saving"
)

// SaveStrategy names how a section persists its draft.
type SaveStrategy string

const (
	// BatchedExplicitSave persists only on the explicit global save action.
	BatchedExplicitSave SaveStrategy = "batchedExplicitSave"
	// AutoSaveOnBlur additionally persists whenever an edited field loses
	// focus.
	AutoSaveOnBlur SaveStrategy = "autoSaveOnBlur"
)

var (
	// ErrNotEditing is returned when a mutation arrives outside edit mode.
	ErrNotEditing = errors.New("section is not in edit mode")
	// ErrSaveInFlight is returned when a save is requested while one is
	// already running.
	ErrSaveInFlight = errors.New("save already in progress")
	// ErrNotAuthenticated is returned when an operation needs an operator
	// session and none is active.
	ErrNotAuthenticated = errors.New("operator session required")
)

// SectionState is a point-in-time snapshot of one controller.
type SectionState struct {
	Name     string       `json:"name"`
	Phase    Phase        `json:"phase"`
	EditMode bool         `json:"editMode"`
	Dirty    bool         `json:"dirty"`
	Saving   bool         `json:"saving"`
	Strategy SaveStrategy `json:"strategy"`
}

// Section is the controller surface the coordinator manages.
type Section interface {
	Name() string
	Mount() error
	State() SectionState
	Cancel()
}

// Controller manages one single-record content section. Each controller is
// independent: it loads its own data, tracks its own draft, and saves or
// fails on its own without affecting sibling sections.
type Controller[T interface{ Clone() T }] struct {
	name     string
	strategy SaveStrategy
	load     func() (T, error)
	persist  func(T) (T, error)
	fallback T

	session  *services.SessionService
	toasts   *services.ToastService
	confirms *services.ConfirmService
	uploader *media.Uploader
	bus      messaging.Broker
	logger   *logging.ChanneledLogger

	mu       sync.Mutex
	phase    Phase
	baseline T
	draft    T
	editMode bool
	saving   bool
}

// ControllerDeps bundles the services every controller needs.
type ControllerDeps struct {
	Session  *services.SessionService
	Toasts   *services.ToastService
	Confirms *services.ConfirmService
	Uploader *media.Uploader
	Bus      messaging.Broker
	Logger   *logging.ChanneledLogger
}

// NewController creates a section controller and subscribes it to the bus.
// The controller starts in the loading phase with edit mode off; it never
// assumes a prior edit-mode broadcast and re-derives authentication from the
// session service when it needs it.
func NewController[T interface{ Clone() T }](
	name string,
	strategy SaveStrategy,
	load func() (T, error),
	persist func(T) (T, error),
	fallback T,
	deps ControllerDeps,
) *Controller[T] {
	c := &Controller[T]{
		name:     name,
		strategy: strategy,
		load:     load,
		persist:  persist,
		fallback: fallback,
		session:  deps.Session,
		toasts:   deps.Toasts,
		confirms: deps.Confirms,
		uploader: deps.Uploader,
		bus:      deps.Bus,
		logger:   deps.Logger,
		phase:    PhaseLoading,
	}
	c.bus.Subscribe("section:"+name, c.handleMessage)
	return c
}

// Name returns the section name.
func (c *Controller[T]) Name() string { return c.name }

// Mount loads the section's data. A missing record falls back to the
// hardcoded default so the section always renders.
func (c *Controller[T]) Mount() error {
	c.mu.Lock()
	c.phase = PhaseLoading
	c.mu.Unlock()

	data, err := c.load()
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			c.logger.Editor().Warn("Section load failed, using fallback", "section", c.name, "error", err)
		}
		data = c.fallback.Clone()
	}

	c.mu.Lock()
	c.baseline = data
	c.draft = data.Clone()
	c.phase = PhaseViewing
	c.editMode = false
	c.mu.Unlock()

	c.logger.Editor().Debug("Section mounted", "section", c.name)
	return nil
}

// Data returns the current baseline record.
func (c *Controller[T]) Data() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baseline.Clone()
}

// Draft returns the working copy. Outside edit mode it equals the baseline.
func (c *Controller[T]) Draft() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Clone()
}

// State returns a snapshot of the controller.
func (c *Controller[T]) State() SectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SectionState{
		Name:     c.name,
		Phase:    c.phase,
		EditMode: c.editMode,
		Dirty:    c.dirtyLocked(),
		Saving:   c.saving,
		Strategy: c.strategy,
	}
}

// Dirty reports whether the draft differs from the baseline.
func (c *Controller[T]) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirtyLocked()
}

func (c *Controller[T]) dirtyLocked() bool {
	return !reflect.DeepEqual(c.draft, c.baseline)
}

// Mutate applies fn to the draft. It fails unless the section is in edit
// mode.
func (c *Controller[T]) Mutate(fn func(draft *T)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseEditing {
		return ErrNotEditing
	}
	fn(&c.draft)
	return nil
}

// AttachImage uploads an image payload and writes the resulting URL into the
// draft through apply. When storage is unavailable the original data URI is
// used verbatim so the operator's work is never lost.
func (c *Controller[T]) AttachImage(originalName, dataURI string, apply func(draft *T, url string)) error {
	c.mu.Lock()
	if c.phase != PhaseEditing {
		c.mu.Unlock()
		return ErrNotEditing
	}
	c.mu.Unlock()

	url, err := c.uploader.Upload(originalName, dataURI)
	if err != nil {
		if !errors.Is(err, media.ErrStorageUnavailable) {
			c.toasts.Error("Image upload failed")
			return err
		}
		c.logger.Media().Warn("Storage unavailable, embedding image inline", "section", c.name, "error", err)
		c.toasts.Info("Image stored inline, uploads are unavailable")
		url = dataURI
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseEditing {
		return ErrNotEditing
	}
	apply(&c.draft, url)
	return nil
}

// Save persists the draft and, on success, leaves edit mode with the stored
// record as the new baseline. Re-entry while a save is running is rejected,
// and an expired session keeps the draft intact so nothing is lost across a
// re-login.
func (c *Controller[T]) Save() error {
	return c.save(true)
}

func (c *Controller[T]) save(exitOnSuccess bool) error {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return ErrSaveInFlight
	}
	if c.phase != PhaseEditing {
		c.mu.Unlock()
		return ErrNotEditing
	}
	if !c.dirtyLocked() {
		c.mu.Unlock()
		return nil
	}
	if !c.session.IsAuthenticated() {
		c.mu.Unlock()
		c.toasts.Error("Session expired, log in again to save")
		return services.ErrSessionExpired
	}
	c.saving = true
	c.phase = PhaseSaving
	draft := c.draft.Clone()
	c.mu.Unlock()

	saved, err := c.persist(draft)

	c.mu.Lock()
	c.saving = false
	c.phase = PhaseEditing
	if err != nil {
		c.mu.Unlock()
		c.logger.Editor().Error("Section save failed", "section", c.name, "error", err)
		c.toasts.Error(fmt.Sprintf("Failed to save %s", c.name))
		return err
	}
	c.baseline = saved
	c.draft = saved.Clone()
	if exitOnSuccess {
		c.editMode = false
		c.phase = PhaseViewing
	}
	c.mu.Unlock()

	c.logger.Editor().Info("Section saved", "section", c.name)
	c.toasts.Success(fmt.Sprintf("Saved %s", c.name))
	return nil
}

// BlurField notifies the controller that an edited field lost focus. Under
// the blur-save strategy a dirty draft is persisted immediately while the
// section stays in edit mode.
func (c *Controller[T]) BlurField() error {
	if c.strategy != AutoSaveOnBlur {
		return nil
	}
	if !c.Dirty() {
		return nil
	}
	err := c.save(false)
	if errors.Is(err, ErrSaveInFlight) {
		return nil
	}
	return err
}

// Cancel leaves edit mode. A clean draft exits immediately; a dirty draft
// asks for confirmation first and keeps both the draft and edit mode when
// the operator declines.
func (c *Controller[T]) Cancel() {
	c.mu.Lock()
	if c.phase != PhaseEditing {
		c.mu.Unlock()
		return
	}
	if !c.dirtyLocked() {
		c.exitEditLocked()
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.confirms.Request(
		fmt.Sprintf("Discard unsaved changes in %s?", c.name),
		func() { c.discardAndRefresh() },
		nil,
	)
}

// discard drops the draft and exits edit mode without confirmation.
func (c *Controller[T]) discard() {
	c.mu.Lock()
	c.exitEditLocked()
	c.mu.Unlock()
}

// discardAndRefresh re-fetches the record after a confirmed cancel; when the
// fetch fails the existing baseline stands in.
func (c *Controller[T]) discardAndRefresh() {
	fresh, err := c.load()

	c.mu.Lock()
	if err == nil {
		c.baseline = fresh
	}
	c.exitEditLocked()
	c.mu.Unlock()

	if err != nil {
		c.logger.Editor().Warn("Refresh after cancel failed, keeping baseline", "section", c.name, "error", err)
	}
}

func (c *Controller[T]) exitEditLocked() {
	c.draft = c.baseline.Clone()
	c.editMode = false
	if c.phase == PhaseEditing {
		c.phase = PhaseViewing
	}
}

func (c *Controller[T]) enterEdit() {
	if !c.session.IsAuthenticated() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseViewing {
		return
	}
	c.draft = c.baseline.Clone()
	c.editMode = true
	c.phase = PhaseEditing
}

// handleMessage dispatches bus broadcasts. The type switch is exhaustive
// over the message variants; unknown kinds are ignored.
func (c *Controller[T]) handleMessage(msg events.Message) {
	switch m := msg.(type) {
	case events.AuthGranted:
		// Auth alone does not enter edit mode.
	case events.AuthRevoked:
		c.discard()
	case events.EditModeChanged:
		if m.Enabled {
			c.enterEdit()
		} else {
			c.Cancel()
		}
	case events.SaveRequested:
		if err := c.Save(); err != nil && !errors.Is(err, ErrNotEditing) && !errors.Is(err, ErrSaveInFlight) {
			c.logger.Editor().Warn("Broadcast save failed", "section", c.name, "error", err)
		}
	}
}

// Unsubscribe detaches the controller from the bus.
func (c *Controller[T]) Unsubscribe() {
	c.bus.Unsubscribe("section:" + c.name)
}
