package services

import (
	"sync"
	"time"

	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/security"
)

// ToastLevel classifies a transient notification.
type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastInfo    ToastLevel = "info"
)

// Toast is one transient operator-facing notification.
type Toast struct {
	ID      string     `json:"id"`
	Level   ToastLevel `json:"level"`
	Message string     `json:"message"`
	At      time.Time  `json:"at"`
}

// ToastService holds a single notification slot. A new toast replaces the
// current one immediately and schedules its own expiry; an expiry timer only
// clears the slot if its toast is still the one showing.
type ToastService struct {
	mu        sync.Mutex
	current   *Toast
	timer     *time.Timer
	duration  time.Duration
	listeners map[string]func(*Toast)

	logger *logging.ChanneledLogger
}

// NewToastService creates a toast service with the given auto-dismiss
// duration.
func NewToastService(duration time.Duration, logger *logging.ChanneledLogger) *ToastService {
	if duration <= 0 {
		duration = 3 * time.Second
	}
	return &ToastService{
		duration:  duration,
		listeners: make(map[string]func(*Toast)),
		logger:    logger,
	}
}

// Success shows a success toast.
func (t *ToastService) Success(message string) Toast { return t.show(ToastSuccess, message) }

// Error shows an error toast.
func (t *ToastService) Error(message string) Toast { return t.show(ToastError, message) }

// Info shows an info toast.
func (t *ToastService) Info(message string) Toast { return t.show(ToastInfo, message) }

func (t *ToastService) show(level ToastLevel, message string) Toast {
	toast := Toast{
		ID:      security.GenerateULID(),
		Level:   level,
		Message: message,
		At:      time.Now(),
	}

	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.current = &toast
	id := toast.ID
	t.timer = time.AfterFunc(t.duration, func() { t.expire(id) })
	listeners := t.snapshotListeners()
	t.mu.Unlock()

	t.logger.Editor().Debug("Toast shown", "level", level, "message", message)
	for _, fn := range listeners {
		fn(&toast)
	}
	return toast
}

func (t *ToastService) expire(id string) {
	t.mu.Lock()
	if t.current == nil || t.current.ID != id {
		t.mu.Unlock()
		return
	}
	t.current = nil
	listeners := t.snapshotListeners()
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(nil)
	}
}

// Dismiss clears the current toast immediately.
func (t *ToastService) Dismiss() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.current = nil
	listeners := t.snapshotListeners()
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(nil)
	}
}

// Current returns the showing toast, if any.
func (t *ToastService) Current() (Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return Toast{}, false
	}
	return *t.current, true
}

// Listen registers a named listener invoked with each new toast and with nil
// on dismissal. Registering the same name replaces the previous listener.
func (t *ToastService) Listen(name string, fn func(*Toast)) {
	t.mu.Lock()
	t.listeners[name] = fn
	t.mu.Unlock()
}

// Unlisten removes a named listener.
func (t *ToastService) Unlisten(name string) {
	t.mu.Lock()
	delete(t.listeners, name)
	t.mu.Unlock()
}

func (t *ToastService) snapshotListeners() []func(*Toast) {
	out := make([]func(*Toast), 0, len(t.listeners))
	for _, fn := range t.listeners {
		out = append(out, fn)
	}
	return out
}
