package game

import (
	"fmt"
	"strings"
)

// simStepDt is the fixed timestep the headless harness advances by.
const simStepDt = 1.0 / 60.0

// TestSim is a headless simulation harness used exclusively by tests.
// It mirrors Game.Update but has no Ebiten dependency and supports
// deterministic layouts and structured logging.
type TestSim struct {
	World  *World
	SimLog *SimLog

	grid     *Grid
	level    *Level
	spawnX   float64
	spawnY   float64
	exitCol  int
	exitRow  int
	haveExit bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // grid layout, verbose — applied first
	simOptEntity                      // player tweaks, enemies, pickups — applied after the world exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithGridString sets the level layout from glyph rows. Glyphs match the
// level code format ('.', '#', 'C', 'E', 'S', 'A'); leading and trailing
// blank lines are ignored. Panics on malformed input since it is only fed
// literals from tests.
func WithGridString(layout string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		lines := strings.Split(strings.TrimSpace(layout), "\n")
		rows := len(lines)
		cols := len(strings.TrimSpace(lines[0]))
		g := NewGrid(cols, rows)
		for row, raw := range lines {
			line := strings.TrimSpace(raw)
			if len(line) != cols {
				panic(fmt.Sprintf("grid string row %d has %d glyphs, want %d", row, len(line), cols))
			}
			for col := 0; col < cols; col++ {
				t, ok := glyphTiles[line[col]]
				if !ok {
					panic(fmt.Sprintf("grid string: unknown glyph %q", line[col]))
				}
				g.Set(col, row, t)
				switch t {
				case TileSpawn:
					ts.spawnX, ts.spawnY = float64(col)+0.5, float64(row)+0.5
				case TileExit:
					ts.exitCol, ts.exitRow = col, row
					ts.haveExit = true
				}
			}
		}
		ts.grid = g
	}}
}

// WithLevel uses full level data (generated or decoded) instead of a grid
// string, including its enemies and pickups.
func WithLevel(lv *Level) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.grid = lv.Grid
		ts.spawnX, ts.spawnY = lv.SpawnX, lv.SpawnY
		ts.exitCol, ts.exitRow = lv.ExitCol, lv.ExitRow
		ts.haveExit = true
		ts.level = lv
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithPlayerAt overrides the player start position.
func WithPlayerAt(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.World.Player.X = x
		ts.World.Player.Y = y
	}}
}

// WithPlayerAmmo overrides the player's starting ammo.
func WithPlayerAmmo(n int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.World.Player.Ammo = n
	}}
}

// WithEnemy adds an enemy at (x,y) with the given facing and patrol waypoints.
func WithEnemy(x, y, facing float64, waypoints ...[2]float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		e := NewEnemy(len(ts.World.Enemies), x, y, facing, waypoints)
		ts.World.Enemies = append(ts.World.Enemies, e)
	}}
}

// WithPickup adds an ammo pickup.
func WithPickup(x, y float64, amount int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.World.Pickups = append(ts.World.Pickups, AmmoPickup{X: x, Y: y, Amount: amount})
	}}
}

// NewTestSim constructs a TestSim from the given options in two ordered passes:
//  1. Infrastructure (grid layout, verbose)
//  2. Build the world
//  3. Entities (player tweaks, enemies, pickups)
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		SimLog: NewSimLog(false),
		spawnX: 1.5,
		spawnY: 1.5,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	if ts.grid == nil {
		// Default: an empty 12x8 room with spawn top-left and exit
		// bottom-right.
		g := NewGrid(12, 8)
		for row := 0; row < 8; row++ {
			for col := 0; col < 12; col++ {
				if col == 0 || row == 0 || col == 11 || row == 7 {
					g.Set(col, row, TileWall)
				} else {
					g.Set(col, row, TileFloor)
				}
			}
		}
		g.Set(1, 1, TileSpawn)
		g.Set(10, 6, TileExit)
		ts.grid = g
		ts.spawnX, ts.spawnY = 1.5, 1.5
		ts.exitCol, ts.exitRow = 10, 6
		ts.haveExit = true
	}
	if !ts.haveExit {
		// Park the exit out of reach so accidental wins cannot happen.
		ts.exitCol, ts.exitRow = -1, -1
	}
	if ts.level == nil {
		ts.level = &Level{
			Grid:    ts.grid,
			SpawnX:  ts.spawnX,
			SpawnY:  ts.spawnY,
			ExitCol: ts.exitCol,
			ExitRow: ts.exitRow,
		}
	}
	ts.World = NewWorld(ts.level)
	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	return ts
}

// RunTicks advances the simulation n ticks with the same input each tick.
func (ts *TestSim) RunTicks(n int, in InputState) {
	for i := 0; i < n; i++ {
		ts.stepOnce(in)
	}
}

// RunScript advances the simulation n ticks, asking script for the input
// each tick. The script receives the zero-based tick count already elapsed,
// so on a fresh world the first call sees tick 0.
func (ts *TestSim) RunScript(n int, script func(tick int) InputState) {
	for i := 0; i < n; i++ {
		ts.stepOnce(script(ts.World.Tick))
	}
}

// RunUntil advances the simulation up to maxTicks with constant input,
// stopping early if predicate returns true. Returns the tick at which the
// predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(in InputState, predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.stepOnce(in)
		if predicate(ts) {
			return ts.World.Tick
		}
	}
	return -1
}

// stepOnce advances one fixed timestep and records change-detection entries.
func (ts *TestSim) stepOnce(in InputState) {
	w := ts.World

	prevStates := make(map[int]EnemyState, len(w.Enemies))
	prevAlerts := make(map[int]float64, len(w.Enemies))
	prevDead := make(map[int]bool, len(w.Enemies))
	for _, e := range w.Enemies {
		prevStates[e.ID] = e.State
		prevAlerts[e.ID] = e.Alert
		prevDead[e.ID] = e.Dead
	}
	prevHealth := w.Player.Health

	events := w.Step(simStepDt, in)
	tick := w.Tick

	for _, ev := range events {
		switch ev.Kind {
		case EventGunshot:
			ts.SimLog.Add(tick, "--", "combat", "gunshot",
				fmt.Sprintf("at (%.1f,%.1f)", ev.X, ev.Y), 0)
		case EventImpact:
			ts.SimLog.Add(tick, "--", "combat", "impact",
				fmt.Sprintf("at (%.1f,%.1f)", ev.X, ev.Y), 0)
		case EventEnemyDown:
			ts.SimLog.Add(tick, "--", "combat", "enemy_down",
				fmt.Sprintf("at (%.1f,%.1f)", ev.X, ev.Y), 0)
		case EventPickup:
			ts.SimLog.Add(tick, "player", "pickup", "ammo",
				fmt.Sprintf("at (%.1f,%.1f)", ev.X, ev.Y), float64(w.Player.Ammo))
		case EventDistraction:
			ts.SimLog.Add(tick, "player", "noise", "distraction",
				fmt.Sprintf("at (%.1f,%.1f)", ev.X, ev.Y), 0)
		case EventLevelComplete:
			ts.SimLog.Add(tick, "--", "outcome", "win", "extracted", 0)
		case EventLevelFailed:
			ts.SimLog.Add(tick, "--", "outcome", "fail", "player down", 0)
		}
	}

	for _, e := range w.Enemies {
		label := fmt.Sprintf("E%d", e.ID)
		if e.State != prevStates[e.ID] {
			ts.SimLog.Add(tick, label, "state", "transition",
				fmt.Sprintf("%s → %s", prevStates[e.ID], e.State), e.Alert)
		}
		if e.Dead && !prevDead[e.ID] {
			ts.SimLog.Add(tick, label, "state", "dead", "killed", 0)
		}
		if e.Alert != prevAlerts[e.ID] {
			ts.SimLog.AddVerbose(tick, label, "alert", "level",
				fmt.Sprintf("%.1f", e.Alert), e.Alert)
		}
		ts.SimLog.AddVerbose(tick, label, "state", "position",
			fmt.Sprintf("(%.1f,%.1f)", e.X, e.Y), 0)
	}

	if w.Player.Health != prevHealth {
		ts.SimLog.Add(tick, "player", "combat", "player_hit",
			fmt.Sprintf("%d → %d hp", prevHealth, w.Player.Health), float64(w.Player.Health))
	}
	ts.SimLog.AddVerbose(tick, "player", "state", "position",
		fmt.Sprintf("(%.1f,%.1f)", w.Player.X, w.Player.Y), 0)
}

// Enemy returns the enemy with the given ID, or nil.
func (ts *TestSim) Enemy(id int) *Enemy {
	for _, e := range ts.World.Enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}
