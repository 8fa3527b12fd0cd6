package engine

import (
	"context"
	"fmt"
	"time"
	"unsafe"

	"github.com/spaghettifunk/prism/engine/assets"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/platform"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/debug"
	"github.com/spaghettifunk/prism/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released every resource
	EngineStageShutdown
)

// How often asset changes and window events are processed while running.
const tickInterval = 16 * time.Millisecond

type Engine struct {
	currentStage  Stage
	config        *core.Config
	nativeContext interface{}
	isRunning     bool
	isSuspended   bool
	platform      *platform.Platform
	assetManager  *assets.AssetManager
	renderSystem  renderer.RenderSystem
	debugger      *debug.Debugger
	systemManager *systems.SystemManager
	clock         *core.Clock
	width         uint32
	height        uint32
}

// New prepares an engine for the configured back-end. nativeContext is handed
// to the back-end factory unchanged, nil for back-ends that need none.
func New(cfg *core.Config, nativeContext interface{}) (*Engine, error) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		core.LogError("%s", err.Error())
		return nil, err
	}
	if !renderer.IsRegistered(cfg.Renderer.Backend) {
		err := fmt.Errorf("%w: `%s` (available: %v)", core.ErrUnknownBackend, cfg.Renderer.Backend, renderer.Available())
		core.LogError("%s", err.Error())
		return nil, err
	}
	return &Engine{
		currentStage:  EngineStageUninitialized,
		config:        cfg,
		nativeContext: nativeContext,
		assetManager:  assets.NewAssetManager(),
		clock:         core.NewClock(),
		width:         cfg.Window.Width,
		height:        cfg.Window.Height,
	}, nil
}

// UsePlatform makes Initialize open a window and Run stop when it closes.
// Must be called before Initialize.
func (e *Engine) UsePlatform(p *platform.Platform) {
	e.platform = p
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine already initialized")
	}
	e.currentStage = EngineStageInitializing

	if e.config.Application.LogLevel != "" {
		if err := core.SetLogLevel(e.config.Application.LogLevel); err != nil {
			return err
		}
	}

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onQuit)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	if e.platform != nil {
		api := platform.ClientAPINone
		if e.config.Renderer.Backend == "opengl" {
			api = platform.ClientAPIOpenGL
		}
		if err := e.platform.Startup(e.config.Application.Name, e.config.Window, api); err != nil {
			return err
		}
	}

	rs, err := renderer.Load(e.config.Renderer.Backend, &renderer.RenderSystemConfig{
		NativeContext:  e.nativeContext,
		NativeSamplers: e.config.Renderer.NativeSamplers,
		LimitsOverride: e.config.Limits,
	})
	if err != nil {
		core.LogError("%s", err.Error())
		return err
	}
	if e.config.Renderer.Debug {
		e.debugger = debug.NewDebugger()
		rs = debug.NewDbgRenderSystem(rs, e.debugger)
	}
	e.renderSystem = rs
	core.LogInfo("render system `%s` loaded (debug layer: %v)", rs.Name(), e.debugger != nil)

	if err := e.assetManager.Initialize(e.config.Renderer.AssetsDir, e.config.Renderer.WatchAssets); err != nil {
		return err
	}

	sm, err := systems.NewSystemManager(rs, e.assetManager)
	if err != nil {
		return err
	}
	if err := sm.Initialize(); err != nil {
		return err
	}
	e.systemManager = sm

	e.currentStage = EngineStageInitialized
	return nil
}

// Run processes asset changes and window events until ctx is done, the window
// is closed or an EVENT_CODE_APPLICATION_QUIT is fired.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine is not initialized")
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true
	e.clock.Start()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for e.isRunning {
		select {
		case <-ctx.Done():
			e.isRunning = false
		case <-ticker.C:
			e.tick()
		}
	}

	e.clock.Update()
	core.LogInfo("engine stopped after %s", e.clock.Elapsed().Round(time.Millisecond))
	e.clock.Stop()
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) tick() {
	if e.platform != nil && !e.platform.PumpMessages() {
		e.isRunning = false
		return
	}
	if e.isSuspended {
		return
	}
	e.processAssetEvents()
}

// processAssetEvents forwards watcher events to the event system on the
// thread that owns the render system.
func (e *Engine) processAssetEvents() {
	for _, ae := range e.assetManager.PollEvents() {
		core.LogDebug("asset changed: %s (%s, removed: %v)", ae.Path, ae.Kind, ae.Removed)
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_ASSET_CHANGED,
			Data: &core.AssetChangedEvent{Path: ae.Path, Name: ae.Name, Kind: ae.Kind, Removed: ae.Removed},
		})
	}
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e)
	core.EventUnregister(core.EVENT_CODE_RESIZED, e)

	var first error
	keep := func(err error) {
		if err != nil {
			core.LogError("%s", err.Error())
			if first == nil {
				first = err
			}
		}
	}
	if e.systemManager != nil {
		keep(e.systemManager.Shutdown())
	}
	keep(e.assetManager.Shutdown())
	keep(core.EventSystemShutdown())
	if e.platform != nil {
		keep(e.platform.Shutdown())
	}
	e.currentStage = EngineStageShutdown
	return first
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Config() *core.Config {
	return e.config
}

func (e *Engine) RenderSystem() renderer.RenderSystem {
	return e.renderSystem
}

// Debugger returns the validation message sink, nil when the debug layer is off.
func (e *Engine) Debugger() *debug.Debugger {
	return e.debugger
}

func (e *Engine) Systems() *systems.SystemManager {
	return e.systemManager
}

func (e *Engine) Assets() *assets.AssetManager {
	return e.assetManager
}

// NativeHandle returns the window handle, false without a window.
func (e *Engine) NativeHandle() (platform.NativeHandle, bool) {
	var h platform.NativeHandle
	if e.platform == nil {
		return h, false
	}
	ok := e.platform.GetNativeHandle(unsafe.Pointer(&h), unsafe.Sizeof(h))
	return h, ok
}

// ApplicationGetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onQuit(context core.EventContext) bool {
	core.LogInfo("EVENT_CODE_APPLICATION_QUIT recieved, shutting down.")
	e.isRunning = false
	return true
}

func (e *Engine) onResized(context core.EventContext) bool {
	re, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if re.Width == e.width && re.Height == e.height {
		return false
	}
	e.width = re.Width
	e.height = re.Height
	core.LogDebug("Window resize: %d, %d", e.width, e.height)

	// Handle minimization
	if e.width == 0 || e.height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	return false
}
