package game

import (
	"fmt"
	"math/rand"
)

// EnemySpawn describes one enemy in level data: start position, initial
// facing, and its patrol loop in continuous coordinates.
type EnemySpawn struct {
	X, Y      float64
	Facing    float64
	Waypoints [][2]float64
}

// PickupSpawn describes one pre-placed ammo pickup.
type PickupSpawn struct {
	X, Y   float64
	Amount int
}

// Level is the pre-built data the simulation consumes: a grid plus spawn
// information. Produced by GenerateLevel or DecodeLevel; the simulation never
// mutates it.
type Level struct {
	Grid             *Grid
	SpawnX, SpawnY   float64
	ExitCol, ExitRow int
	Enemies          []EnemySpawn
	Pickups          []PickupSpawn
}

// Validate checks the structural invariants the simulation relies on:
// a rectangular grid holding exactly one spawn and one exit, both walkable,
// and every enemy and waypoint on a walkable tile.
func (lv *Level) Validate() error {
	g := lv.Grid
	if g == nil || g.Cols <= 0 || g.Rows <= 0 {
		return fmt.Errorf("level: empty grid")
	}
	if len(g.Tiles) != g.Cols*g.Rows {
		return fmt.Errorf("level: grid is not rectangular: %d tiles for %dx%d",
			len(g.Tiles), g.Cols, g.Rows)
	}
	spawns, exits := 0, 0
	for _, t := range g.Tiles {
		switch t {
		case TileSpawn:
			spawns++
		case TileExit:
			exits++
		}
	}
	if spawns != 1 {
		return fmt.Errorf("level: want exactly 1 spawn tile, have %d", spawns)
	}
	if exits != 1 {
		return fmt.Errorf("level: want exactly 1 exit tile, have %d", exits)
	}
	if g.At(lv.ExitCol, lv.ExitRow) != TileExit {
		return fmt.Errorf("level: exit position (%d,%d) does not match exit tile", lv.ExitCol, lv.ExitRow)
	}
	if !canStandAt(g, lv.SpawnX, lv.SpawnY, playerRadius) {
		return fmt.Errorf("level: player spawn (%.1f,%.1f) is blocked", lv.SpawnX, lv.SpawnY)
	}
	for i, es := range lv.Enemies {
		if !canStandAt(g, es.X, es.Y, enemyRadius) {
			return fmt.Errorf("level: enemy %d spawn (%.1f,%.1f) is blocked", i, es.X, es.Y)
		}
		for j, wp := range es.Waypoints {
			if !g.IsWalkable(int(wp[0]), int(wp[1])) {
				return fmt.Errorf("level: enemy %d waypoint %d (%.1f,%.1f) is blocked", i, j, wp[0], wp[1])
			}
		}
	}
	return nil
}

// --- Procedural generator ---

const (
	genMinRooms  = 4
	genMaxRooms  = 7
	genMinRoomSz = 4
	genMaxRoomSz = 8
)

type genRoom struct {
	x, y, w, h int
}

// centre returns the middle tile's centre, so spawn points, exits and
// waypoints always land on col+0.5/row+0.5 and survive the level codec.
func (r genRoom) centre() (float64, float64) {
	return float64(r.x+r.w/2) + 0.5, float64(r.y+r.h/2) + 0.5
}

func (r genRoom) overlaps(o genRoom, pad int) bool {
	return r.x-pad < o.x+o.w && r.x+r.w+pad > o.x &&
		r.y-pad < o.y+o.h && r.y+r.h+pad > o.y
}

// GenerateLevel builds a deterministic room-and-corridor level for the given
// seed: carved rooms joined by L-corridors, cover scattered on open floor,
// the player spawning in the first room, the exit in the last, and a
// patrolling enemy with a room-to-room waypoint loop in each room between.
func GenerateLevel(seed int64, cols, rows int) *Level {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- level layout only

	g := NewGrid(cols, rows)
	for i := range g.Tiles {
		g.Tiles[i] = TileWall
	}

	roomCount := genMinRooms + rng.Intn(genMaxRooms-genMinRooms+1)
	var rooms []genRoom
	for tries := 0; tries < 200 && len(rooms) < roomCount; tries++ {
		w := genMinRoomSz + rng.Intn(genMaxRoomSz-genMinRoomSz+1)
		h := genMinRoomSz + rng.Intn(genMaxRoomSz-genMinRoomSz+1)
		if cols-w-2 <= 1 || rows-h-2 <= 1 {
			continue
		}
		r := genRoom{x: 1 + rng.Intn(cols-w-2), y: 1 + rng.Intn(rows-h-2), w: w, h: h}
		ok := true
		for _, o := range rooms {
			if r.overlaps(o, 1) {
				ok = false
				break
			}
		}
		if ok {
			rooms = append(rooms, r)
		}
	}

	for _, r := range rooms {
		for row := r.y; row < r.y+r.h; row++ {
			for col := r.x; col < r.x+r.w; col++ {
				g.Set(col, row, TileFloor)
			}
		}
	}

	// Corridors join each room to the next in placement order.
	for i := 1; i < len(rooms); i++ {
		ax, ay := rooms[i-1].centre()
		bx, by := rooms[i].centre()
		carveCorridor(g, int(ax), int(ay), int(bx), int(by), rng.Intn(2) == 0)
	}

	// Cover scatter: a few opaque crates per room, away from the walls.
	for _, r := range rooms {
		n := rng.Intn(3)
		for k := 0; k < n; k++ {
			col := r.x + 1 + rng.Intn(maxInt(r.w-2, 1))
			row := r.y + 1 + rng.Intn(maxInt(r.h-2, 1))
			if g.At(col, row) == TileFloor {
				g.Set(col, row, TileCover)
			}
		}
	}

	lv := &Level{Grid: g}
	if len(rooms) == 0 {
		// Degenerate seed: open a single chamber so the level stays valid.
		rooms = []genRoom{{x: 1, y: 1, w: cols - 2, h: rows - 2}}
		for row := 1; row < rows-1; row++ {
			for col := 1; col < cols-1; col++ {
				g.Set(col, row, TileFloor)
			}
		}
	}

	first, last := rooms[0], rooms[len(rooms)-1]
	sx, sy := first.centre()
	lv.SpawnX, lv.SpawnY = sx, sy
	g.Set(int(sx), int(sy), TileSpawn)

	ex, ey := last.centre()
	lv.ExitCol, lv.ExitRow = int(ex), int(ey)
	if lv.ExitCol == int(sx) && lv.ExitRow == int(sy) {
		// Single-chamber layout: keep the exit off the spawn tile.
		lv.ExitCol++
	}
	g.Set(lv.ExitCol, lv.ExitRow, TileExit)

	// One patroller per interior room, walking a loop between its own room
	// and a neighbour's centre.
	for i := 1; i < len(rooms)-1; i++ {
		cx, cy := rooms[i].centre()
		nx, ny := rooms[i+1].centre()
		lv.Enemies = append(lv.Enemies, EnemySpawn{
			X:      cx,
			Y:      cy,
			Facing: headingTo(cx, cy, nx, ny),
			Waypoints: [][2]float64{
				{cx, cy},
				{nx, ny},
			},
		})
	}

	// A couple of ammo caches on open floor.
	for k := 0; k < 2 && len(rooms) > 1; k++ {
		r := rooms[rng.Intn(len(rooms))]
		col := r.x + rng.Intn(maxInt(r.w, 1))
		row := r.y + rng.Intn(maxInt(r.h, 1))
		if g.At(col, row) != TileFloor {
			continue
		}
		g.Set(col, row, TileAmmo)
		lv.Pickups = append(lv.Pickups, PickupSpawn{
			X:      float64(col) + 0.5,
			Y:      float64(row) + 0.5,
			Amount: 3 + rng.Intn(3),
		})
	}

	return lv
}

// carveCorridor opens an L-shaped corridor between two cells, horizontal
// first or vertical first.
func carveCorridor(g *Grid, ax, ay, bx, by int, horizFirst bool) {
	carveH := func(y, x0, x1 int) {
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		for x := x0; x <= x1; x++ {
			if g.At(x, y) == TileWall {
				g.Set(x, y, TileFloor)
			}
		}
	}
	carveV := func(x, y0, y1 int) {
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		for y := y0; y <= y1; y++ {
			if g.At(x, y) == TileWall {
				g.Set(x, y, TileFloor)
			}
		}
	}
	if horizFirst {
		carveH(ay, ax, bx)
		carveV(bx, ay, by)
	} else {
		carveV(ax, ay, by)
		carveH(by, ax, bx)
	}
}
