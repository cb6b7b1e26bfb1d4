package game

import "math"

const (
	playerRadius        = 0.3 // tiles, collision half-width
	playerWalkSpeed     = 3.0 // tiles per second
	playerSprintSpeed   = 5.0
	playerSneakSpeed    = 1.5
	playerMaxHealth     = 5
	playerMaxAmmo       = 12
	playerShootCooldown = 0.4 // seconds between shots

	// Noise emission levels by movement mode. Emission is what direct
	// hearing checks test against; it is not a marker in the world.
	noiseEmissionWalk   = 0.3
	noiseEmissionSprint = 1.0

	// Thrown distraction: lands ahead of the player along facing.
	distractionThrowDist = 3.0
	distractionRadius    = 2.0
	distractionLifetime  = 2.0
)

// InputState is the per-tick intent record consumed by the simulation.
// Facing is computed externally (pointer position) and applied directly.
// Shoot may be held, the cooldown gates the fire rate; Distract is
// edge-triggered and the caller reports a press once.
type InputState struct {
	Up, Down, Left, Right bool
	Sprint                bool
	Sneak                 bool
	Shoot                 bool
	Distract              bool
	Facing                float64 // radians
}

// Player is the player-controlled agent.
type Player struct {
	X, Y          float64
	Facing        float64
	Health        int
	Ammo          int
	ShootCooldown float64 // seconds until the next shot is allowed

	// Derived each tick from input; read by enemy perception.
	Sprinting  bool
	Sneaking   bool
	NoiseLevel float64
}

// NewPlayer creates a player at (x,y) with full health and ammo.
func NewPlayer(x, y float64) Player {
	return Player{X: x, Y: y, Health: playerMaxHealth, Ammo: playerMaxAmmo}
}

// updatePlayer runs the player phase of one step: cooldown decay, movement
// mode selection, collision-resolved movement, noise emission, and the two
// edge-triggered actions.
func (w *World) updatePlayer(dt float64, in InputState) {
	p := &w.Player

	p.ShootCooldown = math.Max(0, p.ShootCooldown-dt)
	p.Facing = in.Facing

	// Sprint and sneak cancel each other rather than one taking priority.
	p.Sprinting = in.Sprint && !in.Sneak
	p.Sneaking = in.Sneak && !in.Sprint

	speed := playerWalkSpeed
	switch {
	case p.Sprinting:
		speed = playerSprintSpeed
	case p.Sneaking:
		speed = playerSneakSpeed
	}

	var dx, dy float64
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	dx, dy = normalize(dx, dy)
	moving := dx != 0 || dy != 0

	if moving {
		nx := p.X + dx*speed*dt
		ny := p.Y + dy*speed*dt
		p.X, p.Y = resolveMove(w.Grid, p.X, p.Y, nx, ny, playerRadius)
	}

	// Noise emission: loud while sprinting, silent while sneaking or still.
	switch {
	case !moving || p.Sneaking:
		p.NoiseLevel = 0
	case p.Sprinting:
		p.NoiseLevel = noiseEmissionSprint
	default:
		p.NoiseLevel = noiseEmissionWalk
	}

	if in.Distract {
		tx := p.X + math.Cos(p.Facing)*distractionThrowDist
		ty := p.Y + math.Sin(p.Facing)*distractionThrowDist
		w.Noise = append(w.Noise, newNoise(tx, ty, distractionRadius, distractionLifetime))
		w.events = append(w.events, Event{Kind: EventDistraction, X: tx, Y: ty})
	}

	if in.Shoot && p.Ammo > 0 && p.ShootCooldown <= 0 {
		w.fireBullet(p.X, p.Y, p.Facing, true)
		p.Ammo--
		p.ShootCooldown = playerShootCooldown
	}
}
