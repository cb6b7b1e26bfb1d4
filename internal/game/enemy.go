package game

import "math"

const (
	enemyRadius        = 0.3
	enemyPatrolSpeed   = 1.6 // tiles per second
	enemyChaseSpeed    = 3.4
	enemyMaxHealth     = 2
	enemyMaxAmmo       = 8
	enemyShootCooldown = 1.2
	enemyTurnRate      = 6.0 // radians per second toward movement heading
	lookAroundRate     = 1.8 // radians per second while investigating in place

	waypointArriveDist  = 0.5
	investigateDuration = 3.0
	chaseDuration       = 5.0
	shootRange          = 8.0
	meleeRange          = 0.8

	// Alert thresholds driving state transitions.
	alertInvestigate = 40.0
	alertGiveUp      = 10.0
	alertReengage    = 60.0
	alertAfterChase  = 30.0
)

// EnemyState is the tagged state of the patrol state machine.
type EnemyState int

const (
	StatePatrol EnemyState = iota
	StateInvestigate
	StateChase
	StateReturn
)

func (s EnemyState) String() string {
	switch s {
	case StatePatrol:
		return "patrol"
	case StateInvestigate:
		return "investigate"
	case StateChase:
		return "chase"
	case StateReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Enemy is one patrolling agent.
//
// InvestigateX/Y are meaningful only while HasInvestigate is set (states
// Investigate and the hearing branch of perception); LastKnownX/Y only while
// HasLastKnown is set (refreshed by vision, consumed by Chase).
type Enemy struct {
	ID     int
	X, Y   float64
	Facing float64
	State  EnemyState

	Waypoints     [][2]float64
	WaypointIndex int

	InvestigateX, InvestigateY float64
	HasInvestigate             bool
	LastKnownX, LastKnownY     float64
	HasLastKnown               bool

	Alert         float64 // [0,100]
	StateTimer    float64 // seconds, semantics depend on State
	Speed         float64 // current movement speed
	Ammo          int
	Health        int
	ShootCooldown float64
	Dead          bool
}

// NewEnemy creates a patrolling enemy at (x,y) with the given waypoint loop.
func NewEnemy(id int, x, y, facing float64, waypoints [][2]float64) *Enemy {
	return &Enemy{
		ID:        id,
		X:         x,
		Y:         y,
		Facing:    facing,
		State:     StatePatrol,
		Waypoints: waypoints,
		Speed:     enemyPatrolSpeed,
		Ammo:      enemyMaxAmmo,
		Health:    enemyMaxHealth,
	}
}

// enemyAction is the state machine's output for one tick. A dead enemy
// produces the zero value.
type enemyAction struct {
	WantShoot bool
}

// updateEnemy advances one enemy's state machine for dt seconds, after the
// perception pass has already applied this tick's alert delta.
func (w *World) updateEnemy(e *Enemy, dt float64, sensed percept) enemyAction {
	if e.Dead {
		return enemyAction{}
	}

	e.ShootCooldown = math.Max(0, e.ShootCooldown-dt)

	switch e.State {
	case StatePatrol:
		switch {
		case e.Alert >= alertMax:
			w.enterChase(e)
		case e.Alert >= alertInvestigate:
			e.State = StateInvestigate
			e.StateTimer = investigateDuration
		default:
			w.patrolMove(e, dt)
		}

	case StateInvestigate:
		e.StateTimer -= dt
		switch {
		case e.Alert >= alertMax:
			w.enterChase(e)
		case e.StateTimer <= 0 || e.Alert < alertGiveUp:
			e.HasInvestigate = false
			e.State = StateReturn
		case e.HasInvestigate && dist(e.X, e.Y, e.InvestigateX, e.InvestigateY) > waypointArriveDist:
			w.moveToward(e, e.InvestigateX, e.InvestigateY, dt)
		default:
			// Arrived (or nothing to walk to): look around in place.
			e.Facing = normalizeAngle(e.Facing + lookAroundRate*dt)
		}

	case StateChase:
		e.StateTimer -= dt
		if sensed.seesPlayer {
			// Contact keeps the chase alive.
			e.StateTimer = chaseDuration
		}
		act := enemyAction{}
		if sensed.seesPlayer && sensed.distToPlayer <= shootRange &&
			e.Ammo > 0 && e.ShootCooldown <= 0 {
			act.WantShoot = true
		}
		if e.StateTimer <= 0 {
			e.State = StateReturn
			e.Alert = alertAfterChase
			e.Speed = enemyPatrolSpeed
			return act
		}
		tx, ty := w.Player.X, w.Player.Y
		if e.HasLastKnown {
			tx, ty = e.LastKnownX, e.LastKnownY
		}
		w.moveToward(e, tx, ty, dt)
		return act

	case StateReturn:
		if e.Alert >= alertReengage {
			e.State = StateInvestigate
			e.StateTimer = investigateDuration
			break
		}
		if len(e.Waypoints) == 0 {
			e.State = StatePatrol
			e.Speed = enemyPatrolSpeed
			break
		}
		home := e.Waypoints[0]
		if dist(e.X, e.Y, home[0], home[1]) < waypointArriveDist {
			e.State = StatePatrol
			e.WaypointIndex = 0
			e.Speed = enemyPatrolSpeed
			break
		}
		w.moveToward(e, home[0], home[1], dt)
	}

	return enemyAction{}
}

func (w *World) enterChase(e *Enemy) {
	e.State = StateChase
	e.StateTimer = chaseDuration
	e.Speed = enemyChaseSpeed
}

// patrolMove walks the waypoint loop. An enemy with no waypoints holds its
// post and never advances the index.
func (w *World) patrolMove(e *Enemy, dt float64) {
	if len(e.Waypoints) == 0 {
		return
	}
	wp := e.Waypoints[e.WaypointIndex]
	if dist(e.X, e.Y, wp[0], wp[1]) < waypointArriveDist {
		e.WaypointIndex = (e.WaypointIndex + 1) % len(e.Waypoints)
		wp = e.Waypoints[e.WaypointIndex]
	}
	w.moveToward(e, wp[0], wp[1], dt)
}

// moveToward advances the enemy straight at (tx,ty) with wall sliding,
// smoothly turning its facing toward the movement heading.
func (w *World) moveToward(e *Enemy, tx, ty float64, dt float64) {
	dx, dy := normalize(tx-e.X, ty-e.Y)
	if dx == 0 && dy == 0 {
		return
	}
	target := math.Atan2(dy, dx)
	e.Facing = turnToward(e.Facing, target, enemyTurnRate*dt)

	speed := e.Speed
	if speed <= 0 {
		speed = enemyPatrolSpeed
	}
	nx := e.X + dx*speed*dt
	ny := e.Y + dy*speed*dt
	e.X, e.Y = resolveMove(w.Grid, e.X, e.Y, nx, ny, enemyRadius)
}

// turnToward rotates heading toward target by at most step radians.
func turnToward(heading, target, step float64) float64 {
	diff := angleDiff(target, heading)
	if math.Abs(diff) <= step {
		return target
	}
	if diff > 0 {
		return normalizeAngle(heading + step)
	}
	return normalizeAngle(heading - step)
}
