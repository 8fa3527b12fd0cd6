package platform

import (
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/prism/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// ClientAPI selects the native context GLFW creates for the window.
type ClientAPI int

const (
	// No context, the back-end attaches its own surface (Vulkan, WebGPU).
	ClientAPINone ClientAPI = iota
	ClientAPIOpenGL
)

type Platform struct {
	Window *glfw.Window
	width  uint32
	height uint32
}

func New() *Platform {
	return &Platform{}
}

func (p *Platform) Startup(applicationName string, cfg core.WindowConfig, api ClientAPI) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	switch api {
	case ClientAPIOpenGL:
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
		glfw.WindowHint(glfw.ContextVersionMajor, 3)
		glfw.WindowHint(glfw.ContextVersionMinor, 3)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	default:
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	}

	window, err := glfw.CreateWindow(int(cfg.Width), int(cfg.Height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	if api == ClientAPIOpenGL {
		window.MakeContextCurrent()
	}
	p.Window = window
	p.width = cfg.Width
	p.height = cfg.Height

	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetCloseCallback(closeCallback)
	p.Window.SetPos(int(cfg.X), int(cfg.Y))
	if !cfg.Hidden {
		p.Window.Show()
	}
	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. It returns false once the
// window was asked to close.
func (p *Platform) PumpMessages() bool {
	if p.Window == nil {
		return false
	}
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

func (p *Platform) FramebufferSize() (uint32, uint32) {
	return p.width, p.height
}

// GetNativeHandle writes the window's NativeHandle to ptr. See WriteNativeHandle.
func (p *Platform) GetNativeHandle(ptr unsafe.Pointer, size uintptr) bool {
	if p.Window == nil {
		return false
	}
	return WriteNativeHandle(NativeHandle{Window: uintptr(p.Window.Handle())}, ptr, size)
}

func GetAbsoluteTime() float64 {
	return glfw.GetTime()
}

func closeCallback(w *glfw.Window) {
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	p.width = uint32(width)
	p.height = uint32(height)
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.ResizeEvent{Width: p.width, Height: p.height},
	})
}
