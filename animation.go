package sapling

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// track animates one scalar channel of a node. Without an explicit start the
// node's value at the first step is used.
type track struct {
	active   bool
	hasStart bool
	start    float64
	end      float64
	tween    *gween.Tween
	at       float64 // time the tween has been advanced to
	last     float64
}

func (t *track) set(end float64) {
	*t = track{active: true, end: end}
}

func (t *track) setRange(start, end float64) {
	*t = track{active: true, hasStart: true, start: start, end: end}
}

// value returns the channel value at elapsed seconds of an interval lasting
// duration seconds.
func (t *track) value(elapsed, duration float64) float64 {
	if duration <= 0 || elapsed >= duration {
		return t.end
	}
	if elapsed > t.at {
		v, _ := t.tween.Update(float32(elapsed - t.at))
		t.at = elapsed
		t.last = float64(v)
	}
	return t.last
}

func (t *track) rewind(duration float64, easing ease.TweenFunc) {
	t.tween = gween.New(float32(t.start), float32(t.end), float32(duration), easing)
	t.at = 0
	t.last = t.start
}

// channel indices into Interval.tracks
const (
	chanX = iota
	chanY
	chanSX
	chanSY
	chanAngle
	chanCX
	chanCY
	numChannels
)

// Interval drives a node's position, scale, angle and rotation center from
// their start to their end values over a fixed duration. Build one with
// NewInterval and the chained setters, then call Step each frame, or hand it
// to a Sequence.
type Interval struct {
	node     Node
	other    Node
	relative bool
	duration float64
	easing   ease.TweenFunc
	elapsed  float64
	started  bool
	tracks   [numChannels]track
}

// NewInterval creates an empty interval for n lasting duration seconds. A
// nil easing function means linear.
func NewInterval(n Node, duration float64, easing ease.TweenFunc) *Interval {
	n.check()
	if duration < 0 {
		panic("sapling: interval duration must not be negative")
	}
	if easing == nil {
		easing = ease.Linear
	}
	return &Interval{node: n, duration: duration, easing: easing}
}

// MoveTo animates the local position to p.
func (iv *Interval) MoveTo(p Vec2) *Interval {
	iv.tracks[chanX].set(p.X)
	iv.tracks[chanY].set(p.Y)
	return iv
}

// MoveFromTo animates the local position from a to b.
func (iv *Interval) MoveFromTo(a, b Vec2) *Interval {
	iv.tracks[chanX].setRange(a.X, b.X)
	iv.tracks[chanY].setRange(a.Y, b.Y)
	return iv
}

// RelativeTo makes the position channel operate on PosFrom(other) instead
// of the local position.
func (iv *Interval) RelativeTo(other Node) *Interval {
	other.check()
	iv.other = other
	iv.relative = true
	return iv
}

// ScaleTo animates both scale components to s.
func (iv *Interval) ScaleTo(s Scale) *Interval {
	iv.tracks[chanSX].set(s.SX)
	iv.tracks[chanSY].set(s.SY)
	return iv
}

// ScaleFromTo animates both scale components from a to b.
func (iv *Interval) ScaleFromTo(a, b Scale) *Interval {
	iv.tracks[chanSX].setRange(a.SX, b.SX)
	iv.tracks[chanSY].setRange(a.SY, b.SY)
	return iv
}

// ScaleXTo animates only the horizontal scale.
func (iv *Interval) ScaleXTo(sx float64) *Interval {
	iv.tracks[chanSX].set(sx)
	return iv
}

// ScaleYTo animates only the vertical scale.
func (iv *Interval) ScaleYTo(sy float64) *Interval {
	iv.tracks[chanSY].set(sy)
	return iv
}

// RotateTo animates the local angle to deg.
func (iv *Interval) RotateTo(deg float64) *Interval {
	iv.tracks[chanAngle].set(deg)
	return iv
}

// RotateFromTo animates the local angle from a to b degrees.
func (iv *Interval) RotateFromTo(a, b float64) *Interval {
	iv.tracks[chanAngle].setRange(a, b)
	return iv
}

// RotationCenterTo animates the rotation center to c.
func (iv *Interval) RotationCenterTo(c Vec2) *Interval {
	iv.tracks[chanCX].set(c.X)
	iv.tracks[chanCY].set(c.Y)
	return iv
}

// Duration returns the length of the interval in seconds.
func (iv *Interval) Duration() float64 { return iv.duration }

// Done reports whether the interval has reached its end.
func (iv *Interval) Done() bool { return iv.elapsed >= iv.duration }

// begin captures missing start values and builds the tweens.
func (iv *Interval) begin() {
	n := iv.node
	pos := n.Pos()
	if iv.relative {
		pos = n.PosFrom(iv.other)
	}
	center, _ := n.RotationCenter()
	current := [numChannels]float64{
		pos.X, pos.Y,
		n.Scale().SX, n.Scale().SY,
		n.Angle(),
		center.X, center.Y,
	}
	for i := range iv.tracks {
		t := &iv.tracks[i]
		if !t.active {
			continue
		}
		if !t.hasStart {
			t.start = current[i]
			t.hasStart = true
		}
		t.rewind(iv.duration, iv.easing)
	}
	iv.started = true
}

// Step advances the interval by dt seconds and applies the new values. It
// returns the time left; a negative result is the overshoot past the end.
func (iv *Interval) Step(dt float64) float64 {
	if !iv.started {
		iv.begin()
	}
	iv.elapsed += dt
	left := iv.duration - iv.elapsed
	if left < 0 {
		iv.elapsed = iv.duration
	}
	iv.apply()
	return left
}

func (iv *Interval) apply() {
	n := iv.node
	var v [numChannels]float64
	for i := range iv.tracks {
		if iv.tracks[i].active {
			v[i] = iv.tracks[i].value(iv.elapsed, iv.duration)
		}
	}
	tr := &iv.tracks

	if tr[chanX].active {
		p := Vec2{v[chanX], v[chanY]}
		if iv.relative {
			n.SetPosFrom(iv.other, p)
		} else {
			n.SetPos(p)
		}
	}
	if tr[chanSX].active || tr[chanSY].active {
		s := n.Scale()
		if tr[chanSX].active {
			s.SX = v[chanSX]
		}
		if tr[chanSY].active {
			s.SY = v[chanSY]
		}
		n.SetScale(s)
	}
	if tr[chanAngle].active {
		n.SetAngle(v[chanAngle])
	}
	if tr[chanCX].active {
		n.SetRotationCenter(Vec2{v[chanCX], v[chanCY]})
	}
}

// Reset rewinds the interval to its start without touching the node.
func (iv *Interval) Reset() {
	iv.elapsed = 0
	if !iv.started {
		return
	}
	for i := range iv.tracks {
		if iv.tracks[i].active {
			iv.tracks[i].rewind(iv.duration, iv.easing)
		}
	}
}

// --- Sequence ---

// Sequence plays intervals one after another. Time left over when an
// interval finishes is carried into the next one.
type Sequence struct {
	intervals []*Interval
	current   int
	playing   bool
	looping   bool
}

// NewSequence creates a stopped sequence of the given intervals.
func NewSequence(intervals ...*Interval) *Sequence {
	return &Sequence{intervals: intervals}
}

// Append adds intervals at the end.
func (s *Sequence) Append(intervals ...*Interval) {
	s.intervals = append(s.intervals, intervals...)
}

// Play starts or resumes playback.
func (s *Sequence) Play() { s.playing = true }

// Pause halts playback in place.
func (s *Sequence) Pause() { s.playing = false }

// Stop halts playback and rewinds to the first interval.
func (s *Sequence) Stop() {
	s.playing = false
	s.Reset()
}

// Loop sets whether playback wraps around after the last interval.
func (s *Sequence) Loop(on bool) { s.looping = on }

// Playing reports whether the sequence is running.
func (s *Sequence) Playing() bool { return s.playing }

// Looping reports whether the sequence wraps around.
func (s *Sequence) Looping() bool { return s.looping }

// Current returns the index of the active interval.
func (s *Sequence) Current() int { return s.current }

// Reset rewinds the active interval and returns to the first one.
func (s *Sequence) Reset() {
	if len(s.intervals) == 0 {
		return
	}
	if s.current < len(s.intervals) {
		s.intervals[s.current].Reset()
	}
	s.current = 0
	s.intervals[0].Reset()
}

// Step advances playback by dt seconds. A non-looping sequence stops and
// rewinds after its last interval.
func (s *Sequence) Step(dt float64) {
	if !s.playing || len(s.intervals) == 0 {
		return
	}
	wrapDT := -1.0
	for {
		left := s.intervals[s.current].Step(dt)
		if left > 0 {
			return
		}
		dt = -left
		s.current++
		if s.current == len(s.intervals) {
			if !s.looping {
				s.playing = false
				s.current--
				s.Reset()
				return
			}
			// a pass that consumed no time would spin forever
			if dt == wrapDT {
				s.current = 0
				s.intervals[0].Reset()
				return
			}
			wrapDT = dt
			s.current = 0
		}
		s.intervals[s.current].Reset()
	}
}
