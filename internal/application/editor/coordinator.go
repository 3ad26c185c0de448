package editor

import (
	"sync"

	"github.com/dzakyfr/portfolio-go/internal/application/services"
	"github.com/dzakyfr/portfolio-go/internal/domain/events"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/messaging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
)

// EditState is the coordinator's full snapshot for the admin surface.
type EditState struct {
	EditMode      bool                    `json:"editMode"`
	Authenticated bool                    `json:"authenticated"`
	Sections      []SectionState          `json:"sections"`
	Toast         *services.Toast         `json:"toast,omitempty"`
	Confirm       *services.ConfirmPrompt `json:"confirm,omitempty"`
}

// Coordinator owns the global edit-mode flag and the registered sections.
// The flag is a broadcast-backed snapshot: flipping it publishes to the bus
// and each section reacts on its own. Sections registered after a broadcast
// never see it and stay in their default state, edit mode off.
type Coordinator struct {
	mu       sync.RWMutex
	editMode bool
	sections []Section

	session  *services.SessionService
	toasts   *services.ToastService
	confirms *services.ConfirmService
	bus      messaging.Broker
	logger   *logging.ChanneledLogger
}

// NewCoordinator creates the coordinator and subscribes it to the bus so a
// revoked session always clears the global flag.
func NewCoordinator(session *services.SessionService, toasts *services.ToastService, confirms *services.ConfirmService, bus messaging.Broker, logger *logging.ChanneledLogger) *Coordinator {
	c := &Coordinator{
		session:  session,
		toasts:   toasts,
		confirms: confirms,
		bus:      bus,
		logger:   logger,
	}
	bus.Subscribe("coordinator", c.handleMessage)
	return c
}

// Register adds a section. Registration order is presentation order.
func (c *Coordinator) Register(s Section) {
	c.mu.Lock()
	c.sections = append(c.sections, s)
	c.mu.Unlock()
}

// MountAll loads every registered section.
func (c *Coordinator) MountAll() error {
	c.mu.RLock()
	sections := append([]Section(nil), c.sections...)
	c.mu.RUnlock()

	for _, s := range sections {
		if err := s.Mount(); err != nil {
			return err
		}
	}
	c.logger.Editor().Info("All sections mounted", "count", len(sections))
	return nil
}

// SetEditMode flips the global edit affordance. Enabling requires an
// operator session; disabling is always allowed and routes through each
// section's own cancel path.
func (c *Coordinator) SetEditMode(enabled bool) error {
	if enabled && !c.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	c.mu.Lock()
	if c.editMode == enabled {
		c.mu.Unlock()
		return nil
	}
	c.editMode = enabled
	c.mu.Unlock()

	c.logger.Editor().Info("Edit mode changed", "enabled", enabled)
	c.bus.Publish(events.EditModeChanged{Enabled: enabled})
	return nil
}

// EditMode returns the global flag.
func (c *Coordinator) EditMode() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.editMode
}

// SaveAll broadcasts the single global save action. Every dirty section
// persists independently; one section's failure never blocks another's save.
func (c *Coordinator) SaveAll() error {
	if !c.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	c.bus.Publish(events.SaveRequested{})
	return nil
}

// CancelAll runs every section's cancel path. Dirty sections raise their own
// confirmation prompts.
func (c *Coordinator) CancelAll() {
	c.mu.RLock()
	sections := append([]Section(nil), c.sections...)
	c.mu.RUnlock()

	for _, s := range sections {
		s.Cancel()
	}
}

// State snapshots the coordinator, every section, and the pending toast and
// confirmation.
func (c *Coordinator) State() EditState {
	c.mu.RLock()
	sections := append([]Section(nil), c.sections...)
	editMode := c.editMode
	c.mu.RUnlock()

	state := EditState{
		EditMode:      editMode,
		Authenticated: c.session.IsAuthenticated(),
		Sections:      make([]SectionState, 0, len(sections)),
	}
	for _, s := range sections {
		state.Sections = append(state.Sections, s.State())
	}
	if toast, ok := c.toasts.Current(); ok {
		state.Toast = &toast
	}
	if prompt, ok := c.confirms.Pending(); ok {
		state.Confirm = &prompt
	}
	return state
}

func (c *Coordinator) handleMessage(msg events.Message) {
	if _, ok := msg.(events.AuthRevoked); ok {
		c.mu.Lock()
		c.editMode = false
		c.mu.Unlock()
	}
}
