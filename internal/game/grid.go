package game

// TileKind identifies the terrain of one grid cell.
type TileKind uint8

const (
	TileFloor TileKind = iota // open ground
	TileWall                  // blocks movement and sight
	TileCover                 // walkable, blocks sight (crates, foliage)
	TileExit                  // level exit pad
	TileSpawn                 // player start pad
	TileAmmo                  // marker left by the generator for an ammo drop
	tileKindCount             // sentinel
)

func (k TileKind) String() string {
	switch k {
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileCover:
		return "cover"
	case TileExit:
		return "exit"
	case TileSpawn:
		return "spawn"
	case TileAmmo:
		return "ammo"
	default:
		return "unknown"
	}
}

// blocksSight reports whether the tile stops a vision ray.
// Cover is walkable but opaque; walls are both solid and opaque.
func (k TileKind) blocksSight() bool {
	return k == TileWall || k == TileCover
}

// Grid is the immutable tile layout of one level.
// Row-major: index = row*Cols + col. Positions elsewhere in the package are
// continuous tile coordinates; tile (c,r) spans [c,c+1)x[r,r+1).
type Grid struct {
	Cols  int
	Rows  int
	Tiles []TileKind
}

// NewGrid creates a cols x rows grid of floor tiles.
func NewGrid(cols, rows int) *Grid {
	return &Grid{Cols: cols, Rows: rows, Tiles: make([]TileKind, cols*rows)}
}

// InBounds reports whether (col, row) lies inside the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// At returns the tile at (col, row). Out-of-bounds reads as Wall, so the
// boundary behaves like solid terrain.
func (g *Grid) At(col, row int) TileKind {
	if !g.InBounds(col, row) {
		return TileWall
	}
	return g.Tiles[row*g.Cols+col]
}

// Set writes the tile at (col, row). Out-of-bounds writes are dropped.
func (g *Grid) Set(col, row int, k TileKind) {
	if !g.InBounds(col, row) {
		return
	}
	g.Tiles[row*g.Cols+col] = k
}

// IsWalkable reports whether an entity may occupy (col, row).
// False outside the grid or on a wall; cover and every pad tile are walkable.
func (g *Grid) IsWalkable(col, row int) bool {
	if !g.InBounds(col, row) {
		return false
	}
	return g.Tiles[row*g.Cols+col] != TileWall
}

// BlocksSight reports whether the tile at (col, row) stops a vision ray.
// Out-of-bounds is opaque for the same reason it is unwalkable.
func (g *Grid) BlocksSight(col, row int) bool {
	if !g.InBounds(col, row) {
		return true
	}
	return g.Tiles[row*g.Cols+col].blocksSight()
}
