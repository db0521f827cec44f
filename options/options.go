package options

import (
	"errors"
	"flag"
	"fmt"

	"github.com/richinsley/gogradient/theme"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid option")

// Run modes.
const (
	ModeWindow   = "window"
	ModeRecord   = "record"
	ModeSnapshot = "snapshot"
)

type Options struct {
	Help       *bool
	Mode       *string
	Width      *int
	Height     *int
	Theme      *string // auto, dark or light
	Accent     *string // CSS color overriding the palette accent, empty keeps the default
	Paused     *bool
	Duration   *float64 // record length, or the snapshot time, in seconds
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
	MaxPoints  *int
	Title      *string
	Autopilot  *bool // drive the pointer along a fixed path
	Verbose    *bool
}

// Bind registers every option on fs. Values are filled in by fs.Parse.
func Bind(fs *flag.FlagSet) *Options {
	return &Options{
		Help:       fs.Bool("help", false, "Show help message"),
		Mode:       fs.String("mode", ModeWindow, "Run mode: window, record or snapshot"),
		Width:      fs.Int("width", 1280, "Width of the window or output"),
		Height:     fs.Int("height", 720, "Height of the window or output"),
		Theme:      fs.String("theme", "auto", "Color theme: auto, dark or light"),
		Accent:     fs.String("accent", "", "Accent color override (any CSS color)"),
		Paused:     fs.Bool("paused", false, "Start with the animation paused"),
		Duration:   fs.Float64("duration", 10.0, "Seconds to record, or the snapshot time"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		OutputFile: fs.String("output", "", "Output file (default gradient.mp4 or gradient.png)"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		MaxPoints:  fs.Int("max-points", 256, "Maximum live trail points"),
		Title:      fs.String("title", "Gradient", "Text scrambled into the window title"),
		Autopilot:  fs.Bool("autopilot", false, "Move the pointer along a fixed path"),
		Verbose:    fs.Bool("verbose", false, "Enable renderer diagnostics"),
	}
}

// Default returns options holding every default value.
func Default() *Options {
	return Bind(flag.NewFlagSet("gogradient", flag.ContinueOnError))
}

// Validate checks ranges and enumerations and fills derived defaults.
func (o *Options) Validate() error {
	switch *o.Mode {
	case ModeWindow, ModeRecord, ModeSnapshot:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalid, *o.Mode)
	}
	if _, err := theme.Parse(*o.Theme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalid, *o.Width, *o.Height)
	}
	if *o.MaxPoints <= 0 {
		return fmt.Errorf("%w: max-points must be positive, got %d", ErrInvalid, *o.MaxPoints)
	}
	if *o.Mode == ModeRecord {
		if *o.FPS <= 0 {
			return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, *o.FPS)
		}
		if *o.Duration <= 0 {
			return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalid, *o.Duration)
		}
		// libx264 with yuv420p needs even dimensions.
		if *o.Width%2 != 0 || *o.Height%2 != 0 {
			return fmt.Errorf("%w: record size %dx%d must be even", ErrInvalid, *o.Width, *o.Height)
		}
	}
	if *o.Mode == ModeSnapshot && *o.Duration < 0 {
		return fmt.Errorf("%w: snapshot time must not be negative", ErrInvalid)
	}
	if *o.OutputFile == "" {
		switch *o.Mode {
		case ModeRecord:
			*o.OutputFile = "gradient.mp4"
		case ModeSnapshot:
			*o.OutputFile = "gradient.png"
		}
	}
	return nil
}
