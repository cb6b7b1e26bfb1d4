package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// tilePx is the rendered size of one grid cell.
	tilePx = 40

	borderWidth = 16
	hudHeight   = 56

	// Default generated level dimensions.
	defaultCols = 30
	defaultRows = 17

	statusDuration = 3.0 // seconds a HUD status line stays visible
)

// Game is the Ebiten wrapper around the simulation: fixed-timestep updates,
// input capture, pause/restart, clipboard export, rendering, and audio.
type Game struct {
	world *World
	level *Level
	seed  int64

	width  int
	height int
	offX   int
	offY   int

	audio *AudioPlayer

	// HUD status line (clipboard confirmations, mute toggles).
	status      string
	statusTimer float64

	prevKeys       map[ebiten.Key]bool
	prevMouseRight bool

	// Offscreen buffer for vision cone fans (avoids additive blowout).
	visionBuf *ebiten.Image
}

// New generates a level for the given seed and wraps it in a Game.
// Seed 0 means "pick one from the clock".
func New(seed int64) *Game {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewFromLevel(GenerateLevel(seed, defaultCols, defaultRows), seed)
}

// NewFromLevel wraps pre-built level data (decoded or generated) in a Game.
func NewFromLevel(lv *Level, seed int64) *Game {
	g := &Game{
		level:    lv,
		seed:     seed,
		offX:     borderWidth,
		offY:     borderWidth,
		audio:    NewAudioPlayer(),
		prevKeys: make(map[ebiten.Key]bool),
	}
	g.width = borderWidth*2 + lv.Grid.Cols*tilePx
	g.height = borderWidth*2 + lv.Grid.Rows*tilePx + hudHeight
	g.world = NewWorld(lv)
	g.visionBuf = ebiten.NewImage(lv.Grid.Cols*tilePx, lv.Grid.Rows*tilePx)
	return g
}

func (g *Game) Update() error {
	in := g.handleInput()

	if g.statusTimer > 0 {
		g.statusTimer -= 1.0 / float64(ebiten.TPS())
	}

	events := g.world.Step(1.0/float64(ebiten.TPS()), in)
	g.audio.HandleEvents(events)
	return nil
}

// handleInput samples the keyboard and mouse into the simulation's input
// intent and processes meta keys (edge-triggered via the prev-frame key map).
func (g *Game) handleInput() InputState {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k]
	}
	justPressed := func(k ebiten.Key) bool {
		return pressed(k) && !g.prevKeys[k]
	}

	// Meta keys first: they work even while the run is frozen.
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyP) {
		g.world.Paused = !g.world.Paused
	}
	if justPressed(ebiten.KeyR) {
		g.world = NewWorld(g.level)
		g.setStatus("restarted")
	}
	if justPressed(ebiten.KeyN) {
		// Keep the current grid dimensions so the window and vision buffer
		// stay valid.
		g.seed = rand.Int63() // #nosec G404 -- level selection only
		g.level = GenerateLevel(g.seed, g.level.Grid.Cols, g.level.Grid.Rows)
		g.world = NewWorld(g.level)
		g.setStatus(fmt.Sprintf("new level, seed %d", g.seed))
	}
	if justPressed(ebiten.KeyM) {
		if g.audio.ToggleMute() {
			g.setStatus("audio muted")
		} else {
			g.setStatus("audio on")
		}
	}
	if justPressed(ebiten.KeyF2) {
		if err := copyToClipboard(DebugReport(g.world, g.seed)); err != nil {
			g.setStatus("clipboard error: " + err.Error())
		} else {
			g.setStatus("debug report copied")
		}
	}
	if justPressed(ebiten.KeyF3) {
		if err := copyToClipboard(EncodeLevel(g.level)); err != nil {
			g.setStatus("clipboard error: " + err.Error())
		} else {
			g.setStatus("level code copied")
		}
	}

	var in InputState
	in.Up = pressed(ebiten.KeyW) || pressed(ebiten.KeyArrowUp)
	in.Down = pressed(ebiten.KeyS) || pressed(ebiten.KeyArrowDown)
	in.Left = pressed(ebiten.KeyA) || pressed(ebiten.KeyArrowLeft)
	in.Right = pressed(ebiten.KeyD) || pressed(ebiten.KeyArrowRight)
	in.Sprint = pressed(ebiten.KeyShiftLeft) || pressed(ebiten.KeyShiftRight)
	in.Sneak = pressed(ebiten.KeyControlLeft) || pressed(ebiten.KeyControlRight)
	in.Shoot = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || pressed(ebiten.KeySpace)

	// Throwing a distraction is edge-triggered so a held button doesn't
	// scatter markers every tick.
	mouseRight := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	in.Distract = (mouseRight && !g.prevMouseRight) || justPressed(ebiten.KeyQ)
	g.prevMouseRight = mouseRight

	// Facing: from the player's screen position toward the cursor.
	mx, my := ebiten.CursorPosition()
	px, py := g.worldToScreen(g.world.Player.X, g.world.Player.Y)
	in.Facing = headingTo(px, py, float64(mx), float64(my))

	g.prevKeys = currentKeys
	return in
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTimer = statusDuration
}

// worldToScreen converts grid coordinates to screen pixels.
func (g *Game) worldToScreen(x, y float64) (float64, float64) {
	return float64(g.offX) + x*tilePx, float64(g.offY) + y*tilePx
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// World exposes the current run for the renderer and tests.
func (g *Game) World() *World {
	return g.world
}
