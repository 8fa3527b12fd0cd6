package systems

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/assets"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

/** @brief Creates pipeline layouts through a render system and keeps them by name. */
type LayoutSystem struct {
	cache  *objectCache[renderer.PipelineLayout]
	assets *assets.AssetManager
}

func NewLayoutSystem(rs renderer.RenderSystem, am *assets.AssetManager) (*LayoutSystem, error) {
	if rs == nil {
		err := fmt.Errorf("NewLayoutSystem - a render system is required")
		core.LogError("%s", err.Error())
		return nil, err
	}
	return &LayoutSystem{
		cache:  newObjectCache[renderer.PipelineLayout]("pipeline layout", rs),
		assets: am,
	}, nil
}

func (ls *LayoutSystem) Shutdown() error {
	return ls.cache.releaseAll()
}

func (ls *LayoutSystem) Create(desc *metadata.PipelineLayoutDescriptor) (renderer.PipelineLayout, error) {
	if _, ok := ls.cache.get(desc.Name); ok {
		err := fmt.Errorf("a pipeline layout named `%s` already exists", desc.Name)
		core.LogError("%s", err.Error())
		return nil, err
	}
	layout, err := ls.cache.renderSystem.CreatePipelineLayout(desc)
	if err != nil {
		return nil, err
	}
	if err := ls.cache.add(desc.Name, layout); err != nil {
		_ = ls.cache.renderSystem.Release(layout)
		return nil, err
	}
	return layout, nil
}

// Acquire returns the cached layout, loading it from the assets on first use.
func (ls *LayoutSystem) Acquire(name string) (renderer.PipelineLayout, error) {
	if layout, ok := ls.cache.get(name); ok {
		return layout, nil
	}
	if ls.assets == nil {
		err := fmt.Errorf("%w: pipeline layout `%s`", core.ErrAssetNotFound, name)
		core.LogError("%s", err.Error())
		return nil, err
	}
	desc, err := ls.assets.LoadLayout(name)
	if err != nil {
		return nil, err
	}
	// The file name is the lookup key, whatever name the file declares.
	desc.Name = name
	return ls.Create(desc)
}

func (ls *LayoutSystem) Get(name string) (renderer.PipelineLayout, bool) {
	return ls.cache.get(name)
}

func (ls *LayoutSystem) Release(name string) error {
	return ls.cache.release(name)
}

func (ls *LayoutSystem) Names() []string {
	return ls.cache.names()
}

// Reload rebuilds a cached layout from its asset file. The previous layout
// stays in place when the file no longer parses.
func (ls *LayoutSystem) Reload(name string) error {
	if _, ok := ls.cache.get(name); !ok {
		err := fmt.Errorf("%w: pipeline layout `%s`", core.ErrAssetNotFound, name)
		core.LogError("%s", err.Error())
		return err
	}
	if ls.assets == nil {
		return fmt.Errorf("pipeline layout `%s` was not loaded from the assets", name)
	}
	desc, err := ls.assets.LoadLayout(name)
	if err != nil {
		return err
	}
	desc.Name = name
	layout, err := ls.cache.renderSystem.CreatePipelineLayout(desc)
	if err != nil {
		return err
	}
	core.LogInfo("pipeline layout `%s` reloaded", name)
	return ls.cache.replace(name, layout)
}

func (ls *LayoutSystem) onAssetChanged(context core.EventContext) bool {
	e, ok := context.Data.(*core.AssetChangedEvent)
	if !ok || e.Kind != assets.KindLayout {
		return false
	}
	name := e.Name
	if _, cached := ls.cache.get(name); !cached {
		return false
	}
	if e.Removed {
		core.LogWarn("layout file `%s` was removed, keeping the loaded layout", e.Path)
		return false
	}
	if err := ls.Reload(name); err != nil {
		core.LogWarn("keeping previous pipeline layout `%s`: %s", name, err)
	}
	return false
}
