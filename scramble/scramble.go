package scramble

import (
	"math/rand/v2"
	"strings"
)

// Glyphs are the placeholder characters shown while a slot is scrambling.
const Glyphs = "!<>-_\\/[]{}—=+*^?#________"

const (
	maxStart    = 40   // frames before a slot starts scrambling
	maxSpread   = 40   // extra random scramble frames
	minDuration = 30   // frames every slot scrambles for
	rerollP     = 0.28 // chance a scrambling glyph changes each frame
)

type slot struct {
	from, to   string
	start, end int
	glyph      rune
}

// Scrambler morphs one string into another through random glyphs, one
// frame per Step.
type Scrambler struct {
	rng    *rand.Rand
	glyphs []rune
	queue  []slot
	frame  int
	text   string
	done   bool
}

// New returns an idle scrambler drawing from rng.
func New(rng *rand.Rand) *Scrambler {
	return &Scrambler{rng: rng, glyphs: []rune(Glyphs), done: true}
}

// SetText starts a transition from the current text to text.
func (s *Scrambler) SetText(text string) {
	s.Transition(s.text, text)
}

// Transition starts a transition between two explicit strings. Each
// character position gets its own random start and end frame.
func (s *Scrambler) Transition(from, to string) {
	fr, tr := []rune(from), []rune(to)
	n := max(len(fr), len(tr))

	s.queue = s.queue[:0]
	for i := 0; i < n; i++ {
		var sl slot
		if i < len(fr) {
			sl.from = string(fr[i])
		}
		if i < len(tr) {
			sl.to = string(tr[i])
		}
		sl.start = s.rng.IntN(maxStart)
		sl.end = sl.start + s.rng.IntN(maxSpread) + minDuration
		s.queue = append(s.queue, sl)
	}
	s.frame = 0
	s.done = false
}

// Step renders the current frame and advances. It returns the text and
// whether the transition has finished; once finished the text is final and
// further steps return it unchanged.
func (s *Scrambler) Step() (string, bool) {
	if s.done {
		return s.text, true
	}

	var b strings.Builder
	complete := 0
	for i := range s.queue {
		sl := &s.queue[i]
		switch {
		case s.frame >= sl.end:
			complete++
			b.WriteString(sl.to)
		case s.frame >= sl.start:
			if sl.glyph == 0 || s.rng.Float64() < rerollP {
				sl.glyph = s.glyphs[s.rng.IntN(len(s.glyphs))]
			}
			b.WriteRune(sl.glyph)
		default:
			b.WriteString(sl.from)
		}
	}

	s.text = b.String()
	if complete == len(s.queue) {
		s.done = true
	} else {
		s.frame++
	}
	return s.text, s.done
}

// Text returns the last rendered text.
func (s *Scrambler) Text() string { return s.text }

func (s *Scrambler) Done() bool { return s.done }
