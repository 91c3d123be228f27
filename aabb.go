package sapling

import "math"

// AABB is an axis-aligned bounding box stored as a center and half extents.
type AABB struct {
	X, Y   float64 // center
	HW, HH float64 // half width, half height
}

// Quadrant identifies one of the four quarters of an AABB. The values double
// as child offsets in the quadtree.
type Quadrant uint8

const (
	QuadrantTL Quadrant = iota // top-left
	QuadrantTR                 // top-right
	QuadrantBL                 // bottom-left
	QuadrantBR                 // bottom-right
)

// NewAABB returns the box spanning [minX, maxX] x [minY, maxY].
func NewAABB(minX, minY, maxX, maxY float64) AABB {
	hw := (maxX - minX) / 2
	hh := (maxY - minY) / 2
	return AABB{X: minX + hw, Y: minY + hh, HW: hw, HH: hh}
}

// Min returns the top-left corner.
func (b AABB) Min() Vec2 { return Vec2{b.X - b.HW, b.Y - b.HH} }

// Max returns the bottom-right corner.
func (b AABB) Max() Vec2 { return Vec2{b.X + b.HW, b.Y + b.HH} }

// Inside reports whether o lies entirely inside b. Shared edges count as
// inside.
func (b AABB) Inside(o AABB) bool {
	return b.X-b.HW <= o.X-o.HW && b.X+b.HW >= o.X+o.HW &&
		b.Y-b.HH <= o.Y-o.HH && b.Y+b.HH >= o.Y+o.HH
}

// InsidePoint reports whether (x, y) lies inside b, edges included.
func (b AABB) InsidePoint(x, y float64) bool {
	return b.X-b.HW <= x && b.X+b.HW >= x &&
		b.Y-b.HH <= y && b.Y+b.HH >= y
}

// Overlap reports whether b and o intersect. Boxes sharing only an edge
// overlap.
func (b AABB) Overlap(o AABB) bool {
	return b.X-b.HW <= o.X+o.HW && b.X+b.HW >= o.X-o.HW &&
		b.Y-b.HH <= o.Y+o.HH && b.Y+b.HH >= o.Y-o.HH
}

// Expand returns b with its half extents grown by dw and dh.
func (b AABB) Expand(dw, dh float64) AABB {
	return AABB{X: b.X, Y: b.Y, HW: b.HW + dw, HH: b.HH + dh}
}

// Union returns the smallest box containing b and o.
func (b AABB) Union(o AABB) AABB {
	return NewAABB(
		math.Min(b.X-b.HW, o.X-o.HW), math.Min(b.Y-b.HH, o.Y-o.HH),
		math.Max(b.X+b.HW, o.X+o.HW), math.Max(b.Y+b.HH, o.Y+o.HH),
	)
}

// Split returns quadrant q of b, split at its center.
func (b AABB) Split(q Quadrant) AABB {
	return b.SplitAt(b.X, b.Y, q)
}

// SplitAt returns quadrant q of b when split at (x, y). Panics if the point
// lies outside b.
func (b AABB) SplitAt(x, y float64, q Quadrant) AABB {
	if !b.InsidePoint(x, y) {
		panic("sapling: split point outside AABB")
	}
	left, right := b.X-b.HW, b.X+b.HW
	top, bottom := b.Y-b.HH, b.Y+b.HH
	switch q {
	case QuadrantTL:
		return NewAABB(left, top, x, y)
	case QuadrantTR:
		return NewAABB(x, top, right, y)
	case QuadrantBL:
		return NewAABB(left, y, x, bottom)
	case QuadrantBR:
		return NewAABB(x, y, right, bottom)
	}
	panic("sapling: invalid quadrant")
}

// FindQuadrant classifies (x, y) relative to the center of b. Points on the
// vertical split go right, points on the horizontal split go down. The point
// is not required to lie inside b.
func (b AABB) FindQuadrant(x, y float64) Quadrant {
	if x < b.X {
		if y < b.Y {
			return QuadrantTL
		}
		return QuadrantBL
	}
	if y < b.Y {
		return QuadrantTR
	}
	return QuadrantBR
}
