package game

import "math"

const (
	// Frame deltas are clamped so a stalled frame cannot dump a huge
	// movement or alert delta in one tick.
	maxDeltaTime = 0.1

	pickupRadius  = 0.7
	exploreRadius = 8.0
)

// World is the authoritative mutable aggregate for one run. The tick
// orchestrator owns it exclusively during Step; everything handed out
// afterwards (to the renderer, the reporter) must be treated as read-only.
type World struct {
	Grid    *Grid
	Player  Player
	Enemies []*Enemy
	Bullets []Bullet
	Noise   []NoiseMarker
	Pickups []AmmoPickup

	// DetectionLevel is the HUD aggregate: max alert across live enemies,
	// recomputed every tick.
	DetectionLevel float64

	GameOver bool
	Win      bool
	Paused   bool

	// Explored marks tiles the player has had line of sight to, row-major.
	Explored []bool

	ExitCol, ExitRow int
	Tick             int

	nextBulletID int
	events       []Event
}

// NewWorld builds a run from pre-validated level data.
func NewWorld(lv *Level) *World {
	w := &World{
		Grid:     lv.Grid,
		Player:   NewPlayer(lv.SpawnX, lv.SpawnY),
		Explored: make([]bool, lv.Grid.Cols*lv.Grid.Rows),
		ExitCol:  lv.ExitCol,
		ExitRow:  lv.ExitRow,
	}
	for i, es := range lv.Enemies {
		w.Enemies = append(w.Enemies, NewEnemy(i, es.X, es.Y, es.Facing, es.Waypoints))
	}
	for _, ap := range lv.Pickups {
		w.Pickups = append(w.Pickups, AmmoPickup{X: ap.X, Y: ap.Y, Amount: ap.Amount})
	}
	w.updateExplored()
	return w
}

// Step advances the simulation by dt seconds under the given input intent and
// returns the events produced, for the caller to forward to the audio
// collaborator. Once a terminal flag is set the world is frozen and Step is a
// no-op.
func (w *World) Step(dt float64, in InputState) []Event {
	if w.Paused || w.GameOver || w.Win {
		return nil
	}
	if dt <= 0 {
		return nil
	}
	if dt > maxDeltaTime {
		dt = maxDeltaTime
	}
	w.Tick++
	w.events = w.events[:0]

	// 1. PLAYER: cooldown, movement mode, collision, noise, actions.
	w.updatePlayer(dt, in)

	// 2. NOISE: age and prune markers before enemies listen this tick.
	w.Noise = decayNoise(w.Noise, dt)

	// 3. BULLETS: advance and resolve impacts before enemies act, so an
	// enemy killed this tick never runs its state machine.
	w.advanceBullets(dt)

	// 4. ENEMIES: perception, state machine, shooting, melee contact.
	maxAlert := 0.0
	for _, e := range w.Enemies {
		if e.Dead {
			continue
		}
		sensed := w.perceive(e, dt)
		act := w.updateEnemy(e, dt, sensed)
		if e.Alert > maxAlert {
			maxAlert = e.Alert
		}
		if act.WantShoot && e.Ammo > 0 && e.ShootCooldown <= 0 {
			e.Facing = headingTo(e.X, e.Y, w.Player.X, w.Player.Y)
			w.fireBullet(e.X, e.Y, e.Facing, false)
			e.Ammo--
			e.ShootCooldown = enemyShootCooldown
		}
		// Cornered: an enemy at full alert in contact range grinds the
		// player down outside the bullet system.
		if sensed.distToPlayer < meleeRange && e.Alert >= alertMax {
			w.damagePlayer(1)
		}
	}
	w.DetectionLevel = maxAlert

	// 5. WIN: every enemy down and the player standing on the exit pad.
	if !w.GameOver && !w.Win && w.allEnemiesDead() && w.playerOnExit() {
		w.Win = true
		w.events = append(w.events, Event{Kind: EventLevelComplete, X: w.Player.X, Y: w.Player.Y})
	}

	// 6. PICKUPS: collect anything in reach, refilling up to max ammo.
	for i := range w.Pickups {
		ap := &w.Pickups[i]
		if ap.Collected || dist(ap.X, ap.Y, w.Player.X, w.Player.Y) > pickupRadius {
			continue
		}
		ap.Collected = true
		w.Player.Ammo += ap.Amount
		if w.Player.Ammo > playerMaxAmmo {
			w.Player.Ammo = playerMaxAmmo
		}
		w.events = append(w.events, Event{Kind: EventPickup, X: ap.X, Y: ap.Y})
	}

	// 7. FOG: extend the explored mask from the player's new position.
	w.updateExplored()

	return w.events
}

func (w *World) allEnemiesDead() bool {
	for _, e := range w.Enemies {
		if !e.Dead {
			return false
		}
	}
	return true
}

func (w *World) playerOnExit() bool {
	return int(math.Floor(w.Player.X)) == w.ExitCol &&
		int(math.Floor(w.Player.Y)) == w.ExitRow
}

// LiveEnemies returns the enemies still in play.
func (w *World) LiveEnemies() []*Enemy {
	var out []*Enemy
	for _, e := range w.Enemies {
		if !e.Dead {
			out = append(out, e)
		}
	}
	return out
}

// IsExplored reports whether the player has ever seen tile (col, row).
func (w *World) IsExplored(col, row int) bool {
	if !w.Grid.InBounds(col, row) {
		return false
	}
	return w.Explored[row*w.Grid.Cols+col]
}

// updateExplored marks every tile within sight range of the player that has
// an unobstructed line from the player's tile.
func (w *World) updateExplored() {
	pc := int(math.Floor(w.Player.X))
	pr := int(math.Floor(w.Player.Y))
	r := int(exploreRadius)
	for row := pr - r; row <= pr+r; row++ {
		for col := pc - r; col <= pc+r; col++ {
			if !w.Grid.InBounds(col, row) {
				continue
			}
			if w.Explored[row*w.Grid.Cols+col] {
				continue
			}
			cx, cy := float64(col)+0.5, float64(row)+0.5
			if dist(w.Player.X, w.Player.Y, cx, cy) > exploreRadius {
				continue
			}
			if lineOfSight(w.Grid, w.Player.X, w.Player.Y, cx, cy) {
				w.Explored[row*w.Grid.Cols+col] = true
			}
		}
	}
}
