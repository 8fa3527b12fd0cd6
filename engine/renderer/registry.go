package renderer

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/prism/engine/core"
)

// RenderSystemFactory creates a render system for the given configuration.
type RenderSystemFactory func(cfg *RenderSystemConfig) (RenderSystem, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]RenderSystemFactory)
)

// Register registers a back-end factory under the given name.
// This is called from init() functions in back-end packages. Registering a
// name twice replaces the previous factory.
func Register(name string, factory RenderSystemFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a back-end from the registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the sorted names of all registered back-ends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Load creates the render system registered under the given name.
func Load(name string, cfg *RenderSystemConfig) (RenderSystem, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		err := fmt.Errorf("%w: `%s` (available: %v)", core.ErrUnknownBackend, name, Available())
		core.LogError("%s", err.Error())
		return nil, err
	}
	if cfg == nil {
		cfg = &RenderSystemConfig{NativeSamplers: core.NativeSamplersAuto}
	}

	rs, err := factory(cfg)
	if err != nil {
		err := fmt.Errorf("failed to load render system `%s`: %w", name, err)
		core.LogError("%s", err.Error())
		return nil, err
	}
	core.LogInfo("render system `%s` loaded (%s)", rs.Name(), rs.Capabilities().APIVersion)
	return rs, nil
}
