package options

import (
	"errors"
	"flag"
	"testing"
)

func parse(t *testing.T, args ...string) *Options {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error: %v", args, err)
	}
	return o
}

func TestDefaultsAreValid(t *testing.T) {
	o := Default()
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate() on defaults: %v", err)
	}
	if *o.Mode != ModeWindow || *o.Width != 1280 || *o.Height != 720 || *o.MaxPoints != 256 {
		t.Errorf("unexpected defaults: mode=%s size=%dx%d max-points=%d", *o.Mode, *o.Width, *o.Height, *o.MaxPoints)
	}
	if *o.OutputFile != "" {
		t.Errorf("window mode should not pick an output file, got %q", *o.OutputFile)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"record", []string{"-mode", "record", "-duration", "2"}, false},
		{"snapshot at zero", []string{"-mode", "snapshot", "-duration", "0"}, false},
		{"light theme", []string{"-theme", "light"}, false},
		{"upper-case theme", []string{"-theme", "DARK"}, false},
		{"unknown mode", []string{"-mode", "stream"}, true},
		{"unknown theme", []string{"-theme", "sepia"}, true},
		{"zero width", []string{"-width", "0"}, true},
		{"negative height", []string{"-height", "-5"}, true},
		{"zero max points", []string{"-max-points", "0"}, true},
		{"record zero fps", []string{"-mode", "record", "-fps", "0"}, true},
		{"record zero duration", []string{"-mode", "record", "-duration", "0"}, true},
		{"record odd size", []string{"-mode", "record", "-width", "641"}, true},
		{"window odd size", []string{"-width", "641"}, false},
		{"snapshot negative time", []string{"-mode", "snapshot", "-duration", "-1"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parse(t, tt.args...).Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", err)
			}
		})
	}
}

func TestOutputFileDefaults(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-mode", "record"}, "gradient.mp4"},
		{[]string{"-mode", "snapshot"}, "gradient.png"},
		{[]string{"-mode", "record", "-output", "clip.mov"}, "clip.mov"},
	}
	for _, tt := range tests {
		o := parse(t, tt.args...)
		if err := o.Validate(); err != nil {
			t.Fatalf("Validate(%v): %v", tt.args, err)
		}
		if *o.OutputFile != tt.want {
			t.Errorf("%v: output = %q, want %q", tt.args, *o.OutputFile, tt.want)
		}
	}
}
