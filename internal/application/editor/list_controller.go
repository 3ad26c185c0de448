package editor

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/dzakyfr/portfolio-go/internal/application/services"
	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/domain/events"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/media"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/messaging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
)

// ErrIndexOutOfRange is returned for a draft index past the end of the list.
var ErrIndexOutOfRange = errors.New("list index out of range")

// ListController manages one list-shaped content section (projects,
// certificates, tech stack). Items save independently so one failing item
// never blocks its siblings.
type ListController[T any] struct {
	name     string
	strategy SaveStrategy
	load     func() ([]T, error)
	create   func(T) (T, error)
	update   func(int64, T) (T, error)
	remove   func(int64) error
	itemID   func(T) *int64
	cloneOne func(T) T

	session  *services.SessionService
	toasts   *services.ToastService
	confirms *services.ConfirmService
	uploader *media.Uploader
	bus      messaging.Broker
	logger   *logging.ChanneledLogger

	mu       sync.Mutex
	phase    Phase
	baseline []T
	draft    []T
	editMode bool
	saving   bool
}

// ListRepo bundles the persistence callbacks of a list section.
type ListRepo[T any] struct {
	Load   func() ([]T, error)
	Create func(T) (T, error)
	Update func(int64, T) (T, error)
	Delete func(int64) error
	ID     func(T) *int64
	Clone  func(T) T
}

// NewListController creates a list section controller and subscribes it to
// the bus.
func NewListController[T any](name string, repo ListRepo[T], deps ControllerDeps) *ListController[T] {
	c := &ListController[T]{
		name:     name,
		strategy: BatchedExplicitSave,
		load:     repo.Load,
		create:   repo.Create,
		update:   repo.Update,
		remove:   repo.Delete,
		itemID:   repo.ID,
		cloneOne: repo.Clone,
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
func (c *ListController[T]) Name() string { return c.name }

// Mount loads the list. A load failure mounts an empty list rather than
// blocking the section.
func (c *ListController[T]) Mount() error {
	c.mu.Lock()
	c.phase = PhaseLoading
	c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		c.logger.Editor().Warn("Section load failed, mounting empty", "section", c.name, "error", err)
		items = []T{}
	}

	c.mu.Lock()
	c.baseline = items
	c.draft = c.cloneList(items)
	c.phase = PhaseViewing
	c.editMode = false
	c.mu.Unlock()

	c.logger.Editor().Debug("Section mounted", "section", c.name, "items", len(items))
	return nil
}

// Items returns the current baseline list.
func (c *ListController[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cloneList(c.baseline)
}

// Draft returns the working copy of the list.
func (c *ListController[T]) Draft() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cloneList(c.draft)
}

// State returns a snapshot of the controller.
func (c *ListController[T]) State() SectionState {
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
func (c *ListController[T]) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirtyLocked()
}

func (c *ListController[T]) dirtyLocked() bool {
	return !reflect.DeepEqual(c.draft, c.baseline)
}

// ReplaceDraft swaps in a whole new draft list.
func (c *ListController[T]) ReplaceDraft(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseEditing {
		return ErrNotEditing
	}
	c.draft = c.cloneList(items)
	return nil
}

// Append adds a new unsaved item to the draft.
func (c *ListController[T]) Append(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseEditing {
		return ErrNotEditing
	}
	c.draft = append(c.draft, c.cloneOne(item))
	return nil
}

// MutateItem applies fn to the draft item at index.
func (c *ListController[T]) MutateItem(index int, fn func(item *T)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseEditing {
		return ErrNotEditing
	}
	if index < 0 || index >= len(c.draft) {
		return ErrIndexOutOfRange
	}
	fn(&c.draft[index])
	return nil
}

// RemoveDraftItem removes the draft item at index. A never-persisted item
// simply disappears; a persisted item is removed from the database first,
// after operator confirmation, and stays in place if the delete fails.
func (c *ListController[T]) RemoveDraftItem(index int) error {
	c.mu.Lock()
	if c.phase != PhaseEditing {
		c.mu.Unlock()
		return ErrNotEditing
	}
	if index < 0 || index >= len(c.draft) {
		c.mu.Unlock()
		return ErrIndexOutOfRange
	}
	id := c.itemID(c.draft[index])
	if id == nil {
		// Splice under the same lock that validated the index, so a
		// concurrent append cannot shift which item gets removed.
		c.draft = append(c.draft[:index], c.draft[index+1:]...)
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	c.confirms.Request(
		fmt.Sprintf("Delete this %s entry permanently?", c.name),
		func() { c.deletePersisted(*id) },
		nil,
	)
	return nil
}

// deletePersisted removes an item from the database and, on success only,
// from both baseline and draft.
func (c *ListController[T]) deletePersisted(id int64) {
	if !c.session.IsAuthenticated() {
		c.toasts.Error("Session expired, log in again to delete")
		return
	}
	if err := c.remove(id); err != nil {
		c.logger.Editor().Error("Item delete failed", "section", c.name, "id", id, "error", err)
		c.toasts.Error(fmt.Sprintf("Failed to delete from %s", c.name))
		return
	}

	// Reload so the baseline reflects the store; draft edits to the other
	// items survive, only the deleted entry is dropped.
	fresh, loadErr := c.load()

	c.mu.Lock()
	if loadErr == nil {
		c.baseline = fresh
	} else {
		c.baseline = c.dropByID(c.baseline, id)
	}
	c.draft = c.dropByID(c.draft, id)
	c.mu.Unlock()

	if loadErr != nil {
		c.logger.Editor().Warn("Reload after delete failed", "section", c.name, "error", loadErr)
	}
	c.toasts.Success(fmt.Sprintf("Deleted from %s", c.name))
}

func (c *ListController[T]) dropByID(items []T, id int64) []T {
	out := items[:0:0]
	for _, item := range items {
		if existing, ok := content.IDValue(c.itemID(item)); ok && existing == id {
			continue
		}
		out = append(out, item)
	}
	return out
}

// AttachItemImage uploads an image for the draft item at index, falling back
// to embedding the data URI when storage is unavailable.
func (c *ListController[T]) AttachItemImage(index int, originalName, dataURI string, apply func(item *T, url string)) error {
	c.mu.Lock()
	if c.phase != PhaseEditing {
		c.mu.Unlock()
		return ErrNotEditing
	}
	if index < 0 || index >= len(c.draft) {
		c.mu.Unlock()
		return ErrIndexOutOfRange
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

	return c.MutateItem(index, func(item *T) { apply(item, url) })
}

// Save persists every changed draft item independently. New items are
// created, existing ones updated, and a failure in one item leaves the
// others saved and only the failed item dirty.
func (c *ListController[T]) Save() error {
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
	draft := c.cloneList(c.draft)
	baselineByID := make(map[int64]T, len(c.baseline))
	for _, item := range c.baseline {
		if id, ok := content.IDValue(c.itemID(item)); ok {
			baselineByID[id] = item
		}
	}
	c.mu.Unlock()

	// Each item saves independently. Successful items fold into the
	// baseline so only the failed ones stay dirty afterwards.
	var failed []error
	saved := make([]T, 0, len(draft))
	newBaseline := make([]T, 0, len(draft))
	for _, item := range draft {
		id, exists := content.IDValue(c.itemID(item))
		if !exists {
			created, err := c.create(item)
			if err != nil {
				failed = append(failed, err)
				saved = append(saved, item)
				continue
			}
			saved = append(saved, created)
			newBaseline = append(newBaseline, c.cloneOne(created))
			continue
		}

		prev, known := baselineByID[id]
		if known && reflect.DeepEqual(prev, item) {
			saved = append(saved, item)
			newBaseline = append(newBaseline, c.cloneOne(item))
			continue
		}
		updated, err := c.update(id, item)
		if err != nil {
			failed = append(failed, err)
			saved = append(saved, item)
			if known {
				newBaseline = append(newBaseline, c.cloneOne(prev))
			}
			continue
		}
		saved = append(saved, updated)
		newBaseline = append(newBaseline, c.cloneOne(updated))
	}

	c.mu.Lock()
	c.saving = false
	c.phase = PhaseEditing
	c.baseline = newBaseline
	c.draft = saved
	if len(failed) == 0 {
		c.editMode = false
		c.phase = PhaseViewing
	}
	c.mu.Unlock()

	if len(failed) == 0 {
		c.logger.Editor().Info("Section saved", "section", c.name, "items", len(saved))
		c.toasts.Success(fmt.Sprintf("Saved %s", c.name))
		return nil
	}

	err := errors.Join(failed...)
	c.logger.Editor().Error("Section save partially failed", "section", c.name, "failures", len(failed), "error", err)
	c.toasts.Error(fmt.Sprintf("Some %s entries failed to save", c.name))
	return err
}

// Cancel leaves edit mode, confirming first when the draft is dirty.
func (c *ListController[T]) Cancel() {
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

func (c *ListController[T]) discard() {
	c.mu.Lock()
	c.exitEditLocked()
	c.mu.Unlock()
}

// discardAndRefresh re-fetches the list after a confirmed cancel; when the
// fetch fails the existing baseline stands in.
func (c *ListController[T]) discardAndRefresh() {
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

func (c *ListController[T]) exitEditLocked() {
	c.draft = c.cloneList(c.baseline)
	c.editMode = false
	if c.phase == PhaseEditing {
		c.phase = PhaseViewing
	}
}

func (c *ListController[T]) enterEdit() {
	if !c.session.IsAuthenticated() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseViewing {
		return
	}
	c.draft = c.cloneList(c.baseline)
	c.editMode = true
	c.phase = PhaseEditing
}

func (c *ListController[T]) handleMessage(msg events.Message) {
	switch m := msg.(type) {
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
func (c *ListController[T]) Unsubscribe() {
	c.bus.Unsubscribe("section:" + c.name)
}

func (c *ListController[T]) cloneList(items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = c.cloneOne(item)
	}
	return out
}
