package systems

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/prism/engine/assets"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

/**
 * @brief Creates shaders through a render system and keeps them by name.
 * Shaders loaded from the asset manager are rebuilt when their file changes.
 */
type ShaderSystem struct {
	cache  *objectCache[renderer.Shader]
	assets *assets.AssetManager
}

func NewShaderSystem(rs renderer.RenderSystem, am *assets.AssetManager) (*ShaderSystem, error) {
	if rs == nil {
		err := fmt.Errorf("NewShaderSystem - a render system is required")
		core.LogError("%s", err.Error())
		return nil, err
	}
	return &ShaderSystem{
		cache:  newObjectCache[renderer.Shader]("shader", rs),
		assets: am,
	}, nil
}

func (ss *ShaderSystem) Shutdown() error {
	return ss.cache.releaseAll()
}

/**
 * @brief Creates a shader and caches it under desc.Name. A shader whose
 * report has errors is released and not cached.
 */
func (ss *ShaderSystem) Create(desc *metadata.ShaderDescriptor) (renderer.Shader, error) {
	if _, ok := ss.cache.get(desc.Name); ok {
		err := fmt.Errorf("a shader named `%s` already exists", desc.Name)
		core.LogError("%s", err.Error())
		return nil, err
	}
	shader, err := ss.build(desc)
	if err != nil {
		return nil, err
	}
	if err := ss.cache.add(desc.Name, shader); err != nil {
		_ = ss.cache.renderSystem.Release(shader)
		return nil, err
	}
	return shader, nil
}

// Acquire returns the cached shader, loading it from the assets on first use.
func (ss *ShaderSystem) Acquire(name string) (renderer.Shader, error) {
	if shader, ok := ss.cache.get(name); ok {
		return shader, nil
	}
	if ss.assets == nil {
		err := fmt.Errorf("%w: shader `%s`", core.ErrAssetNotFound, name)
		core.LogError("%s", err.Error())
		return nil, err
	}
	desc, err := ss.assets.LoadShader(name)
	if err != nil {
		return nil, err
	}
	return ss.Create(desc)
}

func (ss *ShaderSystem) Get(name string) (renderer.Shader, bool) {
	return ss.cache.get(name)
}

func (ss *ShaderSystem) Release(name string) error {
	return ss.cache.release(name)
}

func (ss *ShaderSystem) Names() []string {
	return ss.cache.names()
}

/**
 * @brief Rebuilds a cached shader from its asset file. The previous shader
 * stays in place when the new one fails to compile.
 */
func (ss *ShaderSystem) Reload(name string) error {
	if _, ok := ss.cache.get(name); !ok {
		err := fmt.Errorf("%w: shader `%s`", core.ErrAssetNotFound, name)
		core.LogError("%s", err.Error())
		return err
	}
	if ss.assets == nil {
		return fmt.Errorf("shader `%s` was not loaded from the assets", name)
	}
	desc, err := ss.assets.LoadShader(name)
	if err != nil {
		return err
	}
	shader, err := ss.build(desc)
	if err != nil {
		return err
	}
	core.LogInfo("shader `%s` reloaded", name)
	return ss.cache.replace(name, shader)
}

func (ss *ShaderSystem) build(desc *metadata.ShaderDescriptor) (renderer.Shader, error) {
	shader, err := ss.cache.renderSystem.CreateShader(desc)
	if err != nil {
		return nil, err
	}
	if report := shader.Report(); report != nil && report.HasErrors() {
		_ = ss.cache.renderSystem.Release(shader)
		err := fmt.Errorf("shader `%s` failed to compile: %s", desc.Name, strings.TrimSpace(report.Text()))
		core.LogError("%s", err.Error())
		return nil, err
	}
	return shader, nil
}

func (ss *ShaderSystem) onAssetChanged(context core.EventContext) bool {
	e, ok := context.Data.(*core.AssetChangedEvent)
	if !ok || e.Kind != assets.KindShader {
		return false
	}
	name := e.Name
	if _, cached := ss.cache.get(name); !cached {
		return false
	}
	if e.Removed {
		core.LogWarn("shader file `%s` was removed, keeping the loaded shader", e.Path)
		return false
	}
	if err := ss.Reload(name); err != nil {
		core.LogWarn("keeping previous shader `%s`: %s", name, err)
	}
	return false
}
