package app

import (
	"log"

	"github.com/richinsley/gogradient/cursor"
	"github.com/richinsley/gogradient/gradient"
	"github.com/richinsley/gogradient/scramble"
	"github.com/richinsley/gogradient/trail"
)

// titleDelay is how long the title stays still before the first scramble.
const titleDelay = 1.2

// View is the presentation side the app forwards window events to.
type View interface {
	Resize(width, height int) error
	SetCursor(ring, dot cursor.Position, visible bool)
}

// Window is the part of the host window the app reads and writes.
type Window interface {
	GetWindowSize() (int, int)
	SetTitle(title string)
}

// App is the application context: the playing and theme state, and the
// handlers that turn window events into trail, compositor and overlay updates.
type App struct {
	compositor *gradient.Compositor
	trail      *trail.Texture
	view       View
	window     Window
	follower   *cursor.Follower
	scrambler  *scramble.Scrambler
	autopilot  *Autopilot

	title        string
	titleElapsed float64
	titleStarted bool
	lastTitle    string
	playing      bool
	dark         bool
	hasPointer   bool
}

// Config collects the collaborators of an App. View, Window, Scrambler and
// Autopilot are optional.
type Config struct {
	Compositor *gradient.Compositor
	Trail      *trail.Texture
	View       View
	Window     Window
	Scrambler  *scramble.Scrambler
	Autopilot  *Autopilot
	Title      string
	Dark       bool
	Paused     bool
}

func New(cfg Config) *App {
	a := &App{
		compositor: cfg.Compositor,
		trail:      cfg.Trail,
		view:       cfg.View,
		window:     cfg.Window,
		follower:   cursor.NewFollower(),
		scrambler:  cfg.Scrambler,
		autopilot:  cfg.Autopilot,
		title:      cfg.Title,
		playing:    true,
	}
	a.SetTheme(cfg.Dark)
	a.SetPaused(cfg.Paused)
	return a
}

// PointerMoved takes a pointer position in window pixels with a top-left
// origin and feeds it to the trail with y pointing up.
func (a *App) PointerMoved(x, y float64) {
	w, h := a.windowSize()
	if w <= 0 || h <= 0 {
		return
	}
	a.trail.AddTouch(trail.Point{X: x / float64(w), Y: 1 - y/float64(h)})
	a.follower.Target(x, y)
	if !a.hasPointer {
		a.follower.Jump()
		a.hasPointer = true
	}
}

// Resized propagates a framebuffer size change.
func (a *App) Resized(width, height int) {
	if a.view == nil {
		return
	}
	if err := a.view.Resize(width, height); err != nil {
		log.Printf("Resize to %dx%d failed: %v", width, height, err)
	}
}

func (a *App) TogglePause() { a.SetPaused(a.playing) }
func (a *App) ToggleTheme() { a.SetTheme(!a.dark) }

func (a *App) SetPaused(paused bool) {
	a.playing = !paused
	a.compositor.SetPaused(paused)
}

func (a *App) SetTheme(isDark bool) {
	a.dark = isDark
	a.compositor.SetTheme(isDark)
}

func (a *App) Playing() bool { return a.playing }
func (a *App) Dark() bool    { return a.dark }

// RestartTitle scrambles from the current title back to the configured one.
func (a *App) RestartTitle() {
	if a.scrambler == nil {
		return
	}
	a.titleStarted = true
	a.scrambler.SetText(a.title)
}

// Follower exposes the cursor follower for rendering.
func (a *App) Follower() *cursor.Follower { return a.follower }

// Step is the per-frame hook: it moves the autopilot pointer, eases the
// cursor markers and advances the title scramble.
func (a *App) Step(delta float64) {
	if a.autopilot != nil {
		w, h := a.windowSize()
		p := a.autopilot.Next(delta)
		a.PointerMoved(p.X*float64(w), (1-p.Y)*float64(h))
	}

	a.follower.Step()
	if a.view != nil {
		a.view.SetCursor(a.follower.Ring(), a.follower.Dot(), a.hasPointer)
	}

	a.stepTitle(delta)
}

func (a *App) stepTitle(delta float64) {
	if a.scrambler == nil || a.window == nil {
		return
	}
	if !a.titleStarted {
		// Tolerate rounding in the summed deltas.
		a.titleElapsed += delta
		if a.titleElapsed < titleDelay-1e-9 {
			return
		}
		a.titleStarted = true
		a.scrambler.Transition(a.title, a.title)
	}
	text, _ := a.scrambler.Step()
	if text != a.lastTitle {
		a.window.SetTitle(text)
		a.lastTitle = text
	}
}

func (a *App) windowSize() (int, int) {
	if a.window == nil {
		return 0, 0
	}
	return a.window.GetWindowSize()
}

// FixedWindow is a Window of constant size for runs without a visible
// window. It keeps the last title it was given.
type FixedWindow struct {
	Width, Height int
	Title         string
}

func (w *FixedWindow) GetWindowSize() (int, int) { return w.Width, w.Height }
func (w *FixedWindow) SetTitle(title string)     { w.Title = title }
