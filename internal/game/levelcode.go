package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Level code is a line-oriented ASCII format for sharing layouts:
//
//	VR1 9x5
//	#########
//	#S..C..E#
//	#.......#
//	#...A...#
//	#########
//	enemy 2.5 2.5 0 2.5,2.5 6.5,2.5
//	ammo 4.5 3.5 3
//
// One tile glyph per cell, then optional directive lines for enemies and
// ammo amounts. 'A' tiles without an ammo directive get a default stash.

const (
	levelCodeMagic    = "VR1"
	defaultAmmoPickup = 3
)

var tileGlyphs = map[TileKind]byte{
	TileFloor: '.',
	TileWall:  '#',
	TileCover: 'C',
	TileExit:  'E',
	TileSpawn: 'S',
	TileAmmo:  'A',
}

var glyphTiles = map[byte]TileKind{
	'.': TileFloor,
	'#': TileWall,
	'C': TileCover,
	'E': TileExit,
	'S': TileSpawn,
	'A': TileAmmo,
}

// EncodeLevel renders a level as a shareable ASCII code.
func EncodeLevel(lv *Level) string {
	g := lv.Grid
	var b strings.Builder
	fmt.Fprintf(&b, "%s %dx%d\n", levelCodeMagic, g.Cols, g.Rows)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			b.WriteByte(tileGlyphs[g.At(col, row)])
		}
		b.WriteByte('\n')
	}
	for _, es := range lv.Enemies {
		fmt.Fprintf(&b, "enemy %g %g %g", es.X, es.Y, es.Facing)
		for _, wp := range es.Waypoints {
			fmt.Fprintf(&b, " %g,%g", wp[0], wp[1])
		}
		b.WriteByte('\n')
	}
	for _, p := range lv.Pickups {
		fmt.Fprintf(&b, "ammo %g %g %d\n", p.X, p.Y, p.Amount)
	}
	return b.String()
}

// DecodeLevel parses a level code and validates the result.
func DecodeLevel(code string) (*Level, error) {
	lines := strings.Split(strings.TrimSpace(code), "\n")
	if len(lines) == 0 {
		return nil, fmt.Errorf("levelcode: empty input")
	}
	header := strings.Fields(strings.TrimSpace(lines[0]))
	if len(header) != 2 || header[0] != levelCodeMagic {
		return nil, fmt.Errorf("levelcode: bad header %q", lines[0])
	}
	var cols, rows int
	if _, err := fmt.Sscanf(header[1], "%dx%d", &cols, &rows); err != nil {
		return nil, fmt.Errorf("levelcode: bad dimensions %q", header[1])
	}
	if cols <= 0 || rows <= 0 || len(lines) < 1+rows {
		return nil, fmt.Errorf("levelcode: %dx%d grid but only %d lines", cols, rows, len(lines)-1)
	}

	lv := &Level{Grid: NewGrid(cols, rows)}
	ammoCells := make(map[cell]bool)
	for row := 0; row < rows; row++ {
		line := strings.TrimRight(lines[1+row], "\r")
		if len(line) != cols {
			return nil, fmt.Errorf("levelcode: row %d has %d glyphs, want %d", row, len(line), cols)
		}
		for col := 0; col < cols; col++ {
			t, ok := glyphTiles[line[col]]
			if !ok {
				return nil, fmt.Errorf("levelcode: unknown glyph %q at %d,%d", line[col], col, row)
			}
			lv.Grid.Set(col, row, t)
			switch t {
			case TileSpawn:
				lv.SpawnX, lv.SpawnY = float64(col)+0.5, float64(row)+0.5
			case TileExit:
				lv.ExitCol, lv.ExitRow = col, row
			case TileAmmo:
				ammoCells[cell{col, row}] = true
			}
		}
	}

	for _, raw := range lines[1+rows:] {
		fields := strings.Fields(strings.TrimRight(raw, "\r"))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "enemy":
			es, err := parseEnemyLine(fields)
			if err != nil {
				return nil, err
			}
			lv.Enemies = append(lv.Enemies, es)
		case "ammo":
			if len(fields) != 4 {
				return nil, fmt.Errorf("levelcode: bad ammo line %q", raw)
			}
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			amount, errA := strconv.Atoi(fields[3])
			if errX != nil || errY != nil || errA != nil || amount <= 0 {
				return nil, fmt.Errorf("levelcode: bad ammo line %q", raw)
			}
			lv.Pickups = append(lv.Pickups, PickupSpawn{X: x, Y: y, Amount: amount})
			delete(ammoCells, cell{int(x), int(y)})
		default:
			return nil, fmt.Errorf("levelcode: unknown directive %q", fields[0])
		}
	}

	// 'A' tiles with no explicit directive still yield a pickup, in
	// row-major order so decoding the same code is deterministic.
	defaulted := make([]cell, 0, len(ammoCells))
	for c := range ammoCells {
		defaulted = append(defaulted, c)
	}
	sort.Slice(defaulted, func(i, j int) bool {
		if defaulted[i].Row != defaulted[j].Row {
			return defaulted[i].Row < defaulted[j].Row
		}
		return defaulted[i].Col < defaulted[j].Col
	})
	for _, c := range defaulted {
		lv.Pickups = append(lv.Pickups, PickupSpawn{
			X:      float64(c.Col) + 0.5,
			Y:      float64(c.Row) + 0.5,
			Amount: defaultAmmoPickup,
		})
	}

	if err := lv.Validate(); err != nil {
		return nil, err
	}
	return lv, nil
}

func parseEnemyLine(fields []string) (EnemySpawn, error) {
	if len(fields) < 4 {
		return EnemySpawn{}, fmt.Errorf("levelcode: bad enemy line %q", strings.Join(fields, " "))
	}
	x, errX := strconv.ParseFloat(fields[1], 64)
	y, errY := strconv.ParseFloat(fields[2], 64)
	facing, errF := strconv.ParseFloat(fields[3], 64)
	if errX != nil || errY != nil || errF != nil {
		return EnemySpawn{}, fmt.Errorf("levelcode: bad enemy line %q", strings.Join(fields, " "))
	}
	es := EnemySpawn{X: x, Y: y, Facing: facing}
	for _, wp := range fields[4:] {
		parts := strings.SplitN(wp, ",", 2)
		if len(parts) != 2 {
			return EnemySpawn{}, fmt.Errorf("levelcode: bad waypoint %q", wp)
		}
		wx, errWX := strconv.ParseFloat(parts[0], 64)
		wy, errWY := strconv.ParseFloat(parts[1], 64)
		if errWX != nil || errWY != nil {
			return EnemySpawn{}, fmt.Errorf("levelcode: bad waypoint %q", wp)
		}
		es.Waypoints = append(es.Waypoints, [2]float64{wx, wy})
	}
	return es, nil
}
