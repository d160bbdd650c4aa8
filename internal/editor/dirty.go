package editor

import (
	"sync"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"
)

// ConfirmFunc asks the user a yes/no question. Injected so editors never
// reach for a global prompt.
type ConfirmFunc func(message string) bool

// DirtyTracker records whether an editor holds unsaved changes and guards
// navigation away from it.
type DirtyTracker struct {
	mu      sync.Mutex
	dirty   bool
	confirm ConfirmFunc
}

// NewDirtyTracker builds a tracker guarded by confirm. A nil confirm
// blocks navigation whenever there are unsaved changes.
func NewDirtyTracker(confirm ConfirmFunc) *DirtyTracker {
	return &DirtyTracker{confirm: confirm}
}

// MarkDirty records an unsaved change.
func (d *DirtyTracker) MarkDirty() {
	d.mu.Lock()
	d.dirty = true
	d.mu.Unlock()
}

// Reset clears the unsaved-changes flag, typically after a save.
func (d *DirtyTracker) Reset() {
	d.mu.Lock()
	d.dirty = false
	d.mu.Unlock()
}

// IsDirty reports whether there are unsaved changes.
func (d *DirtyTracker) IsDirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// Leave checks whether navigation away is allowed. Clean editors always
// allow it; dirty editors ask for confirmation and discard the changes
// when the user accepts.
func (d *DirtyTracker) Leave() error {
	d.mu.Lock()
	dirty := d.dirty
	confirm := d.confirm
	d.mu.Unlock()

	if !dirty {
		return nil
	}
	if confirm == nil || !confirm("Existem alterações não salvas. Deseja sair mesmo assim?") {
		return appErrors.ErrNavigationBlocked
	}
	d.Reset()
	return nil
}
