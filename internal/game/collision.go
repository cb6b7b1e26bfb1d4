package game

import "math"

// canStandAt reports whether a square entity of the given half-width radius
// centred at (x,y) overlaps only walkable tiles. The four corners of the
// bounding square are the contact points; a radius under half a tile means a
// corridor one tile wide is passable.
func canStandAt(g *Grid, x, y, radius float64) bool {
	corners := [4][2]float64{
		{x - radius, y - radius},
		{x + radius, y - radius},
		{x - radius, y + radius},
		{x + radius, y + radius},
	}
	for _, c := range corners {
		col := int(math.Floor(c[0]))
		row := int(math.Floor(c[1]))
		if !g.IsWalkable(col, row) {
			return false
		}
	}
	return true
}

// resolveMove attempts to move an entity from (x,y) to (nx,ny), sliding along
// walls when the full move is blocked. The order full → X-only → Y-only is a
// deliberate tie-break so diagonal movement against a wall slides instead of
// stopping. Returns the resolved position; if every attempt is blocked the
// entity stays put.
func resolveMove(g *Grid, x, y, nx, ny, radius float64) (float64, float64) {
	if canStandAt(g, nx, ny, radius) {
		return nx, ny
	}
	if canStandAt(g, nx, y, radius) {
		return nx, y
	}
	if canStandAt(g, x, ny, radius) {
		return x, ny
	}
	return x, y
}
