package pipeline

import (
	"fmt"
	"sort"
	"sync"

	"github.com/leapstack-labs/bindgen/internal/diag"
)

// Factory constructs a named pipeline bound to a diagnostic reporter.
type Factory func(rep *diag.Reporter) Pipeline

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes a pipeline constructor available under name. Registering
// the same name twice panics; names are package-level wiring, not user
// input.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := factories[name]; dup {
		panic(fmt.Sprintf("pipeline: duplicate registration of %q", name))
	}
	factories[name] = f
}

// New constructs the pipeline registered under name.
func New(name string, rep *diag.Reporter) (Pipeline, error) {
	registryMu.RLock()
	f, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown pipeline %q (available: %v)", name, Names())
	}
	return f(rep), nil
}

// Names returns the registered pipeline names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
