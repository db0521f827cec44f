package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects the color theme.
type Mode int

const (
	Auto Mode = iota
	Dark
	Light
)

func (m Mode) String() string {
	switch m {
	case Dark:
		return "dark"
	case Light:
		return "light"
	default:
		return "auto"
	}
}

// Parse accepts "auto", "dark" or "light", case-insensitively.
func Parse(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "dark":
		return Dark, nil
	case "light":
		return Light, nil
	}
	return Auto, fmt.Errorf("unknown theme %q", s)
}

// Resolve reports whether m means the dark theme. Auto consults the desktop
// environment through getenv and falls back to dark.
func Resolve(m Mode, getenv func(string) string) bool {
	switch m {
	case Dark:
		return true
	case Light:
		return false
	}
	if getenv == nil {
		return true
	}

	// GTK_THEME=Adwaita:dark
	if gtk := getenv("GTK_THEME"); gtk != "" {
		return strings.HasSuffix(strings.ToLower(gtk), ":dark")
	}

	// COLORFGBG="15;0" is light text on a dark background. The last field is
	// the background's ANSI color index; 0-6 and 8 are dark.
	if fgbg := getenv("COLORFGBG"); fgbg != "" {
		fields := strings.Split(fgbg, ";")
		if bg, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
			return bg < 7 || bg == 8
		}
	}
	return true
}
