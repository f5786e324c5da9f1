package chat

import (
	"sync"

	"github.com/google/uuid"
)

// Workspaces maps a browser context id to the Store that holds its chats.
// Entries are never evicted; everything is dropped when the process exits.
type Workspaces struct {
	mu     sync.RWMutex
	stores map[string]*Store
}

// NewWorkspaces creates an empty registry.
func NewWorkspaces() *Workspaces {
	return &Workspaces{stores: make(map[string]*Store)}
}

// Resolve returns the store bound to id. Unknown or empty ids get a freshly
// minted id and an empty store, so callers must persist the returned id.
func (w *Workspaces) Resolve(id string) (string, *Store) {
	if id != "" {
		w.mu.RLock()
		store, ok := w.stores[id]
		w.mu.RUnlock()
		if ok {
			return id, store
		}
	}

	id = uuid.NewString()
	store := NewStore()

	w.mu.Lock()
	w.stores[id] = store
	w.mu.Unlock()

	return id, store
}

// Len reports how many browser contexts are tracked.
func (w *Workspaces) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.stores)
}
