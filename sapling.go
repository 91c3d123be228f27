package sapling

import "math"

// Vec2 is a 2D vector used for positions, offsets and rotation centers.
// The coordinate system has its origin at the top-left with Y increasing
// downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// MulScale returns v with X scaled by s.SX and Y by s.SY.
func (v Vec2) MulScale(s Scale) Vec2 { return Vec2{v.X * s.SX, v.Y * s.SY} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate returns v rotated by deg degrees. With Y pointing down, positive
// angles turn counterclockwise on screen.
func (v Vec2) Rotate(deg float64) Vec2 {
	if deg == 0 {
		return v
	}
	sin, cos := math.Sincos(-deg * degToRad)
	return Vec2{cos*v.X - sin*v.Y, sin*v.X + cos*v.Y}
}

// Equal reports whether v and o are exactly equal.
func (v Vec2) Equal(o Vec2) bool { return v.X == o.X && v.Y == o.Y }

// Scale is a per-axis scale factor. Components must be positive.
type Scale struct {
	SX, SY float64
}

// identityScale is the scale of a freshly created node.
var identityScale = Scale{1, 1}

// Mul returns the component-wise product of s and o.
func (s Scale) Mul(o Scale) Scale { return Scale{s.SX * o.SX, s.SY * o.SY} }

// Size is a width/height pair. Components must not be negative.
type Size struct {
	W, H float64
}

// MulScale returns the size scaled per axis by s.
func (z Size) MulScale(s Scale) Size { return Size{z.W * s.SX, z.H * s.SY} }

// Origin selects the anchor point of a node's box from which its position is
// measured. The nine anchors form a 3x3 grid: column = Origin % 3 and
// row = Origin / 3.
type Origin uint8

const (
	OriginTopLeft      Origin = iota // position is the top-left corner (default)
	OriginTopCenter                  // middle of the top edge
	OriginTopRight                   // top-right corner
	OriginCenterLeft                 // middle of the left edge
	OriginCenter                     // geometric center
	OriginCenterRight                // middle of the right edge
	OriginBottomLeft                 // bottom-left corner
	OriginBottomCenter               // middle of the bottom edge
	OriginBottomRight                // bottom-right corner
)

// offset returns how far the anchor lies from the top-left corner of a box
// of the given size.
func (o Origin) offset(s Size) Vec2 {
	if o > OriginBottomRight {
		panic("sapling: invalid origin")
	}
	col := float64(o % 3)
	row := float64(o / 3)
	return Vec2{col * s.W / 2, row * s.H / 2}
}

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)
