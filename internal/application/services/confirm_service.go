package services

import (
	"sync"

	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/security"
)

// ConfirmPrompt is one pending confirmation request.
type ConfirmPrompt struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ConfirmService holds a single pending confirmation. A new request silently
// replaces any pending one; the replaced prompt's callbacks never run.
// Resolution runs the matching callback exactly once.
type ConfirmService struct {
	mu        sync.Mutex
	current   *ConfirmPrompt
	onConfirm func()
	onDecline func()

	logger *logging.ChanneledLogger
}

// NewConfirmService creates a confirm service.
func NewConfirmService(logger *logging.ChanneledLogger) *ConfirmService {
	return &ConfirmService{logger: logger}
}

// Request registers a confirmation prompt and returns its id. Callbacks may
// be nil.
func (c *ConfirmService) Request(message string, onConfirm, onDecline func()) string {
	prompt := ConfirmPrompt{
		ID:      security.GenerateULID(),
		Message: message,
	}

	c.mu.Lock()
	replaced := c.current != nil
	c.current = &prompt
	c.onConfirm = onConfirm
	c.onDecline = onDecline
	c.mu.Unlock()

	if replaced {
		c.logger.Editor().Debug("Pending confirmation replaced", "id", prompt.ID)
	}
	c.logger.Editor().Debug("Confirmation requested", "id", prompt.ID, "message", message)
	return prompt.ID
}

// Confirm resolves the pending prompt positively. It reports whether a prompt
// was pending.
func (c *ConfirmService) Confirm() bool {
	fn, ok := c.take(true)
	if !ok {
		return false
	}
	if fn != nil {
		fn()
	}
	return true
}

// Decline resolves the pending prompt negatively. It reports whether a prompt
// was pending.
func (c *ConfirmService) Decline() bool {
	fn, ok := c.take(false)
	if !ok {
		return false
	}
	if fn != nil {
		fn()
	}
	return true
}

func (c *ConfirmService) take(confirmed bool) (func(), bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil, false
	}

	var fn func()
	if confirmed {
		fn = c.onConfirm
	} else {
		fn = c.onDecline
	}
	c.current = nil
	c.onConfirm = nil
	c.onDecline = nil
	return fn, true
}

// Pending returns the active prompt, if any.
func (c *ConfirmService) Pending() (ConfirmPrompt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return ConfirmPrompt{}, false
	}
	return *c.current, true
}
