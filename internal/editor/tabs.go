package editor

import (
	"context"
	"sync"

	"go.uber.org/zap"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"
)

// LoadFunc fetches the content of one tab.
type LoadFunc func(ctx context.Context) error

// Tab declares one tab of a tabbed editor.
type Tab struct {
	Name string
	Load LoadFunc
}

// TabSet tracks the active tab of an editor and loads tab content lazily.
// A tab loads at most once until Refresh; a failed load stays unloaded so
// the next activation retries it.
type TabSet struct {
	mu      sync.Mutex
	order   []string
	loaders map[string]LoadFunc
	loaded  map[string]bool
	active  string
	logger  *zap.Logger
}

// NewTabSet builds a tab set with the first tab active. The initial tab
// content is not loaded until Switch or Activate is called.
func NewTabSet(logger *zap.Logger, tabs ...Tab) (*TabSet, error) {
	if len(tabs) == 0 {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "tab set needs at least one tab")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ts := &TabSet{
		loaders: make(map[string]LoadFunc, len(tabs)),
		loaded:  make(map[string]bool, len(tabs)),
		logger:  logger,
	}
	for _, tab := range tabs {
		if _, dup := ts.loaders[tab.Name]; dup {
			return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "duplicate tab "+tab.Name)
		}
		ts.order = append(ts.order, tab.Name)
		ts.loaders[tab.Name] = tab.Load
	}
	ts.active = tabs[0].Name
	return ts, nil
}

// Names returns the tab names in declaration order.
func (ts *TabSet) Names() []string {
	out := make([]string, len(ts.order))
	copy(out, ts.order)
	return out
}

// Active returns the currently active tab name.
func (ts *TabSet) Active() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.active
}

// Loaded reports whether the named tab has loaded successfully.
func (ts *TabSet) Loaded(name string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.loaded[name]
}

// Switch activates the named tab, loading its content on first
// activation. Re-activating an already loaded tab does nothing. Unknown
// names are rejected without changing the active tab.
func (ts *TabSet) Switch(ctx context.Context, name string) error {
	ts.mu.Lock()
	loader, known := ts.loaders[name]
	if !known {
		ts.mu.Unlock()
		return appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown tab "+name)
	}
	ts.active = name
	if ts.loaded[name] || loader == nil {
		ts.loaded[name] = true
		ts.mu.Unlock()
		return nil
	}
	ts.mu.Unlock()

	if err := loader(ctx); err != nil {
		ts.logger.Warn("tab load failed", zap.String("tab", name), zap.Error(err))
		return err
	}

	ts.mu.Lock()
	ts.loaded[name] = true
	ts.mu.Unlock()
	return nil
}

// Refresh reloads the active tab even when it already loaded.
func (ts *TabSet) Refresh(ctx context.Context) error {
	ts.mu.Lock()
	name := ts.active
	ts.loaded[name] = false
	ts.mu.Unlock()
	return ts.Switch(ctx, name)
}
