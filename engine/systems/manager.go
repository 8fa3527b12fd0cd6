package systems

import (
	"github.com/spaghettifunk/prism/engine/assets"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
)

type SystemManager struct {
	ShaderSystem *ShaderSystem
	LayoutSystem *LayoutSystem
}

func NewSystemManager(rs renderer.RenderSystem, am *assets.AssetManager) (*SystemManager, error) {
	ss, err := NewShaderSystem(rs, am)
	if err != nil {
		return nil, err
	}
	ls, err := NewLayoutSystem(rs, am)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		ShaderSystem: ss,
		LayoutSystem: ls,
	}, nil
}

// Initialize subscribes the systems to asset changes. The event system must
// be initialized first.
func (sm *SystemManager) Initialize() error {
	core.EventRegister(core.EVENT_CODE_ASSET_CHANGED, sm.ShaderSystem, sm.ShaderSystem.onAssetChanged)
	core.EventRegister(core.EVENT_CODE_ASSET_CHANGED, sm.LayoutSystem, sm.LayoutSystem.onAssetChanged)
	return nil
}

func (sm *SystemManager) Shutdown() error {
	core.EventUnregister(core.EVENT_CODE_ASSET_CHANGED, sm.LayoutSystem)
	core.EventUnregister(core.EVENT_CODE_ASSET_CHANGED, sm.ShaderSystem)
	if err := sm.LayoutSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.ShaderSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
