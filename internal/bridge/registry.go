package bridge

import "sync"

// Registry holds the bridge injected by a host integration. It replaces the
// ambient global of the original integration: whoever embeds the service
// injects the bridge here, and consumers acquire it through an Adapter.
type Registry struct {
	mu     sync.RWMutex
	bridge Bridge
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Set installs (or, with nil, removes) the injected bridge.
func (r *Registry) Set(b Bridge) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bridge = b
}

// Get reports the currently injected bridge, or nil.
func (r *Registry) Get() Bridge {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bridge
}

// Source adapts the registry for an Adapter.
func (r *Registry) Source() Source {
	return r.Get
}
