package game

import "math"

// dist returns the Euclidean distance between (ax,ay) and (bx,by).
func dist(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// headingTo returns the angle in radians from (ox,oy) toward (tx,ty).
func headingTo(ox, oy, tx, ty float64) float64 {
	return math.Atan2(ty-oy, tx-ox)
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// angleDiff returns the signed minimal difference a-b, normalized to [-pi, pi].
func angleDiff(a, b float64) float64 {
	return normalizeAngle(a - b)
}

// normalize scales (dx,dy) to unit length. The zero vector stays zero
// rather than propagating NaN.
func normalize(dx, dy float64) (float64, float64) {
	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		return 0, 0
	}
	return dx / l, dy / l
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// cell is one integer grid coordinate visited by traceLine.
type cell struct {
	Col int
	Row int
}

// traceLine walks the grid cells from the tile containing (ax,ay) to the tile
// containing (bx,by) using integer error accumulation (Bresenham). The walk is
// finite and deterministic: exactly max(|dc|,|dr|)+1 cells, endpoints included.
func traceLine(ax, ay, bx, by float64) []cell {
	c0, r0 := int(math.Floor(ax)), int(math.Floor(ay))
	c1, r1 := int(math.Floor(bx)), int(math.Floor(by))

	dc := c1 - c0
	if dc < 0 {
		dc = -dc
	}
	dr := r1 - r0
	if dr < 0 {
		dr = -dr
	}
	sc := 1
	if c0 > c1 {
		sc = -1
	}
	sr := 1
	if r0 > r1 {
		sr = -1
	}

	out := make([]cell, 0, maxInt(dc, dr)+1)
	err := dc - dr
	c, r := c0, r0
	for {
		out = append(out, cell{Col: c, Row: r})
		if c == c1 && r == r1 {
			return out
		}
		e2 := 2 * err
		if e2 > -dr {
			err -= dr
			c += sc
		}
		if e2 < dc {
			err += dc
			r += sr
		}
	}
}

// lineOfSight reports whether the segment from (ax,ay) to (bx,by) is
// unobstructed. Only intermediate cells block: an observer standing inside
// cover can still see out of it, and the target's own tile never occludes.
func lineOfSight(g *Grid, ax, ay, bx, by float64) bool {
	cells := traceLine(ax, ay, bx, by)
	for i := 1; i < len(cells)-1; i++ {
		if g.BlocksSight(cells[i].Col, cells[i].Row) {
			return false
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
