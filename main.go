/*
prism loads pipeline layouts and shaders from the asset directory through the
selected back-end and prints how they were resolved, together with the
messages of the validation layer.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spaghettifunk/prism/engine"
	"github.com/spaghettifunk/prism/engine/assets"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/platform"
	"github.com/spaghettifunk/prism/engine/renderer"
)

// stringList collects a repeatable flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	configPath string
	backend    string
	layouts    stringList
	shaders    stringList
	watch      bool
	window     bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("prism", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "path to a TOML configuration file")
	fs.StringVar(&opts.backend, "backend", "", fmt.Sprintf("render back-end, one of %v", renderer.Available()))
	fs.Var(&opts.layouts, "layout", "pipeline layout to inspect (repeatable), all layouts when no -layout or -shader is given")
	fs.Var(&opts.shaders, "shader", "shader to inspect, for example `sky.frag` (repeatable)")
	fs.BoolVar(&opts.watch, "watch", false, "keep running and rebuild inspected assets when their files change")
	fs.BoolVar(&opts.window, "window", false, "open a window and report its native handle")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func loadConfig(opts *options) (*core.Config, error) {
	cfg := core.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = core.LoadConfig(opts.configPath); err != nil {
			return nil, err
		}
	}
	if opts.backend != "" {
		cfg.Renderer.Backend = opts.backend
	}
	// The inspector reports through the validation layer.
	cfg.Renderer.Debug = true
	cfg.Renderer.WatchAssets = opts.watch
	return cfg, cfg.Validate()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	opts, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		core.LogError(err.Error())
		return 2
	}

	e, err := engine.New(cfg, nil)
	if err != nil {
		return 2
	}
	if opts.window {
		e.UsePlatform(platform.New())
	}
	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		return 1
	}
	defer e.Shutdown()

	if h, ok := e.NativeHandle(); ok {
		fmt.Fprintf(out, "native window handle: %#x\n", h.Window)
	}

	failed := inspect(e, opts, out)
	printMessages(out, e.Debugger().Messages())

	if opts.watch {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		core.LogInfo("watching `%s`, press Ctrl+C to stop", e.Assets().BaseDir())
		if err := e.Run(ctx); err != nil {
			core.LogError(err.Error())
			return 1
		}
	}

	if failed || e.Debugger().HasErrors() {
		return 1
	}
	return 0
}

// inspect prints the requested layouts and shaders and reports whether any of
// them failed to load.
func inspect(e *engine.Engine, opts *options, out io.Writer) bool {
	layouts, shaders := opts.layouts, opts.shaders
	if len(layouts) == 0 && len(shaders) == 0 {
		for _, a := range e.Assets().List(assets.KindLayout) {
			layouts = append(layouts, a.Name)
		}
	}

	failed := false
	for _, name := range layouts {
		layout, err := e.Systems().LayoutSystem.Acquire(name)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			failed = true
			continue
		}
		printLayout(out, layout)
	}
	for _, name := range shaders {
		shader, err := e.Systems().ShaderSystem.Acquire(name)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			failed = true
			continue
		}
		printShader(out, shader)
	}
	return failed
}
