package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gg"
	app "github.com/richinsley/gogradient/app"
	glfwcontext "github.com/richinsley/gogradient/glfwcontext"
	gradient "github.com/richinsley/gogradient/gradient"
	options "github.com/richinsley/gogradient/options"
	renderer "github.com/richinsley/gogradient/renderer"
	scramble "github.com/richinsley/gogradient/scramble"
	theme "github.com/richinsley/gogradient/theme"
	trail "github.com/richinsley/gogradient/trail"
)

const snapshotFPS = 60

func init() {
	runtime.LockOSThread()
}

// compositorOptions applies the accent override to both palettes.
func compositorOptions(opts *options.Options) ([]gradient.Option, error) {
	if *opts.Accent == "" {
		return nil, nil
	}
	accent, err := gradient.ParseColor(*opts.Accent)
	if err != nil {
		return nil, fmt.Errorf("bad accent color: %w", err)
	}
	dark, light := gradient.DarkPalette(), gradient.LightPalette()
	dark.Accent = accent
	light.Accent = accent
	return []gradient.Option{gradient.WithPalettes(dark, light)}, nil
}

func newAutopilot(opts *options.Options) *app.Autopilot {
	if !*opts.Autopilot {
		return nil
	}
	return app.NewAutopilot()
}

func runWindow(opts *options.Options, dark bool, compOpts []gradient.Option) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts, true)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer ctx.Shutdown()

	r, err := renderer.NewRenderer(ctx, *opts.Width, *opts.Height, false)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	tex := trail.New(trail.WithMaxPoints(*opts.MaxPoints))
	w, h := r.Size()
	comp := gradient.NewCompositor(r, append(compOpts, gradient.WithResolution(w, h))...)
	if err := r.InitScene(comp, tex); err != nil {
		return err
	}

	a := app.New(app.Config{
		Compositor: comp,
		Trail:      tex,
		View:       r,
		Window:     ctx,
		Scrambler:  scramble.New(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))),
		Autopilot:  newAutopilot(opts),
		Title:      *opts.Title,
		Dark:       dark,
		Paused:     *opts.Paused,
	})
	if !*opts.Autopilot {
		ctx.OnCursorMove(a.PointerMoved)
	}
	ctx.OnFramebufferResize(a.Resized)
	ctx.RegisterKeyCallback(glfw.KeySpace, a.TogglePause)
	ctx.RegisterKeyCallback(glfw.KeyT, a.ToggleTheme)
	ctx.RegisterKeyCallback(glfw.KeyR, a.RestartTitle)

	d := renderer.NewDriver(tex, comp, r, ctx, renderer.NewClock(nil))
	d.OnTick(a.Step)

	log.Println("Starting interactive render loop...")
	return d.Run(context.Background())
}

func runRecord(opts *options.Options, dark bool, compOpts []gradient.Option) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts, false)
	if err != nil {
		return fmt.Errorf("failed to create hidden window: %w", err)
	}
	defer ctx.Shutdown()

	r, err := renderer.NewRenderer(ctx, *opts.Width, *opts.Height, true)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	tex := trail.New(trail.WithMaxPoints(*opts.MaxPoints))
	comp := gradient.NewCompositor(r, append(compOpts, gradient.WithResolution(*opts.Width, *opts.Height))...)
	if err := r.InitScene(comp, tex); err != nil {
		return err
	}

	a := app.New(app.Config{
		Compositor: comp,
		Trail:      tex,
		View:       r,
		Window:     &app.FixedWindow{Width: *opts.Width, Height: *opts.Height},
		Autopilot:  newAutopilot(opts),
		Dark:       dark,
		Paused:     *opts.Paused,
	})

	d := renderer.NewDriver(tex, comp, r, nil, renderer.StepForFPS(*opts.FPS))
	d.OnTick(a.Step)

	if err := r.RunRecord(d, opts); err != nil {
		return err
	}
	log.Printf("Successfully rendered to %s", *opts.OutputFile)
	return nil
}

func runSnapshot(opts *options.Options, dark bool, compOpts []gradient.Option) error {
	width, height := *opts.Width, *opts.Height
	scene := renderer.NewSoftwareScene(width, height)
	tex := trail.New(trail.WithMaxPoints(*opts.MaxPoints))
	comp := gradient.NewCompositor(scene, append(compOpts, gradient.WithResolution(width, height))...)
	if err := comp.Init(); err != nil {
		return err
	}
	defer comp.Dispose()

	a := app.New(app.Config{
		Compositor: comp,
		Trail:      tex,
		Window:     &app.FixedWindow{Width: width, Height: height},
		Autopilot:  newAutopilot(opts),
		Dark:       dark,
		Paused:     *opts.Paused,
	})

	d := renderer.NewDriver(tex, comp, scene, nil, renderer.StepForFPS(snapshotFPS))
	d.OnTick(a.Step)
	frames := int(*opts.Duration * snapshotFPS)
	for i := 0; i < frames; i++ {
		if err := d.Tick(); err != nil {
			return err
		}
	}

	img := renderer.RenderSoftware(comp.Uniforms(), tex, width, height)
	f := a.Follower()
	if err := renderer.SaveSnapshot(*opts.OutputFile, img, *opts.Autopilot, f.Ring(), f.Dot(), comp.IsDark()); err != nil {
		return err
	}
	log.Printf("Saved snapshot after %d frames to %s", frames, *opts.OutputFile)
	return nil
}

func main() {
	opts := options.Bind(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("Interactive gradient background")
		flag.PrintDefaults()
		return
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	if *opts.Verbose {
		gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	compOpts, err := compositorOptions(opts)
	if err != nil {
		log.Fatalf("%v", err)
	}

	mode, err := theme.Parse(*opts.Theme)
	if err != nil {
		log.Fatalf("%v", err)
	}
	dark := theme.Resolve(mode, os.Getenv)

	switch *opts.Mode {
	case options.ModeRecord:
		err = runRecord(opts, dark, compOpts)
	case options.ModeSnapshot:
		err = runSnapshot(opts, dark, compOpts)
	default:
		err = runWindow(opts, dark, compOpts)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", *opts.Mode, err)
	}
}
