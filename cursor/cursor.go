package cursor

// Default smoothing factors, the fraction of the remaining distance covered
// per frame.
const (
	RingLerp = 0.12
	DotLerp  = 0.3
)

// Position is a point in window pixels.
type Position struct {
	X, Y float64
}

// Follower trails the pointer with a slow ring and a fast dot.
type Follower struct {
	target   Position
	ring     Position
	dot      Position
	ringLerp float64
	dotLerp  float64
}

// NewFollower returns a follower resting at the origin.
func NewFollower() *Follower {
	return &Follower{ringLerp: RingLerp, dotLerp: DotLerp}
}

// Target sets the position both markers move toward.
func (f *Follower) Target(x, y float64) {
	f.target = Position{x, y}
}

// Jump places both markers on the target without easing.
func (f *Follower) Jump() {
	f.ring = f.target
	f.dot = f.target
}

// Step advances one frame.
func (f *Follower) Step() {
	f.ring = lerp(f.ring, f.target, f.ringLerp)
	f.dot = lerp(f.dot, f.target, f.dotLerp)
}

func (f *Follower) Ring() Position    { return f.ring }
func (f *Follower) Dot() Position     { return f.dot }
func (f *Follower) Pointer() Position { return f.target }

func lerp(from, to Position, k float64) Position {
	return Position{
		X: from.X + (to.X-from.X)*k,
		Y: from.Y + (to.Y-from.Y)*k,
	}
}
