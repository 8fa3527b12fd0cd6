package systems

import (
	"fmt"
	"sort"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
)

// objectCache indexes render-system objects by name and owns them until they
// are released.
type objectCache[T renderer.RenderSystemChild] struct {
	kind         string
	renderSystem renderer.RenderSystem
	lookup       map[string]T
}

func newObjectCache[T renderer.RenderSystemChild](kind string, rs renderer.RenderSystem) *objectCache[T] {
	return &objectCache[T]{kind: kind, renderSystem: rs, lookup: make(map[string]T)}
}

func (c *objectCache[T]) get(name string) (T, bool) {
	obj, ok := c.lookup[name]
	return obj, ok
}

func (c *objectCache[T]) add(name string, obj T) error {
	if name == "" {
		err := fmt.Errorf("%s needs a name to be cached", c.kind)
		core.LogError("%s", err.Error())
		return err
	}
	if _, ok := c.lookup[name]; ok {
		err := fmt.Errorf("a %s named `%s` already exists", c.kind, name)
		core.LogError("%s", err.Error())
		return err
	}
	obj.SetName(name)
	c.lookup[name] = obj
	return nil
}

// replace swaps the cached object and releases the previous one.
func (c *objectCache[T]) replace(name string, obj T) error {
	old, ok := c.lookup[name]
	obj.SetName(name)
	c.lookup[name] = obj
	if ok {
		return c.renderSystem.Release(old)
	}
	return nil
}

func (c *objectCache[T]) release(name string) error {
	obj, ok := c.lookup[name]
	if !ok {
		err := fmt.Errorf("%w: %s `%s`", core.ErrAssetNotFound, c.kind, name)
		core.LogError("%s", err.Error())
		return err
	}
	delete(c.lookup, name)
	return c.renderSystem.Release(obj)
}

func (c *objectCache[T]) names() []string {
	names := make([]string, 0, len(c.lookup))
	for n := range c.lookup {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// releaseAll releases every cached object and returns the first error.
func (c *objectCache[T]) releaseAll() error {
	var first error
	for _, name := range c.names() {
		if err := c.release(name); err != nil && first == nil {
			first = err
		}
	}
	return first
}
