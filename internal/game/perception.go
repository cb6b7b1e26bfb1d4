package game

import "math"

const (
	// Vision cone defaults.
	visionRange    = 6.0   // tiles
	visionAngleDeg = 120.0 // full arc width
	sneakVisionMul = 0.6   // sneaking shortens how far the player is seen

	// Hearing radius and its modifiers by the player's movement mode.
	hearingRadius    = 5.0
	sprintHearingMul = 1.5
	sneakHearingMul  = 0.3

	// Alert accumulation. Sight uses 100/divisor per second, so a sneaking
	// player is spotted at half the rate of a walking one.
	alertMax          = 100.0
	alertSeenDivisor  = 0.8
	alertSneakDivisor = 2.0
	alertHeardRate    = 30.0
	alertDecayRate    = 15.0
)

// percept is what one enemy sensed about the world this tick.
type percept struct {
	seesPlayer   bool
	hearsNoise   bool
	distToPlayer float64
}

// perceive runs the vision, hearing, and ambient-noise tests for one enemy
// and applies the alert delta. The three branches are a strict priority
// cascade: sight beats hearing beats decay, and exactly one executes.
// Sight refreshes the last-known player position; hearing sets the
// investigate target to the noise source, or to the player if the sound was
// the player directly.
func (w *World) perceive(e *Enemy, dt float64) percept {
	p := &w.Player
	d := dist(e.X, e.Y, p.X, p.Y)
	out := percept{distToPlayer: d}

	// Vision test: range (shortened against a sneaking player), cone
	// half-angle, then grid line of sight.
	effRange := visionRange
	if p.Sneaking {
		effRange *= sneakVisionMul
	}
	if d <= effRange && d > 1e-9 {
		heading := headingTo(e.X, e.Y, p.X, p.Y)
		half := visionAngleDeg * math.Pi / 180.0 / 2.0
		if math.Abs(angleDiff(heading, e.Facing)) <= half &&
			lineOfSight(w.Grid, e.X, e.Y, p.X, p.Y) {
			out.seesPlayer = true
		}
	}

	// Hearing test: the player is audible inside the mode-scaled radius
	// while emitting any noise.
	effHearing := hearingRadius
	switch {
	case p.Sprinting:
		effHearing *= sprintHearingMul
	case p.Sneaking:
		effHearing *= sneakHearingMul
	}
	heardPlayer := d <= effHearing && p.NoiseLevel > 0

	// Ambient noise test: nearest live marker in earshot. A marker's own
	// radius extends the enemy's hearing radius, so loud sounds carry.
	var noiseX, noiseY float64
	hasNoise := false
	bestD := math.MaxFloat64
	for i := range w.Noise {
		n := &w.Noise[i]
		nd := dist(e.X, e.Y, n.X, n.Y)
		if nd <= hearingRadius+n.Radius && nd < bestD {
			bestD = nd
			noiseX, noiseY = n.X, n.Y
			hasNoise = true
		}
	}

	switch {
	case out.seesPlayer:
		rate := alertMax / alertSeenDivisor
		if p.Sneaking {
			rate = alertMax / alertSneakDivisor
		}
		e.Alert += rate * dt
		e.LastKnownX, e.LastKnownY = p.X, p.Y
		e.HasLastKnown = true

	case heardPlayer || hasNoise:
		out.hearsNoise = true
		e.Alert += alertHeardRate * dt
		if hasNoise {
			e.InvestigateX, e.InvestigateY = noiseX, noiseY
		} else {
			e.InvestigateX, e.InvestigateY = p.X, p.Y
		}
		e.HasInvestigate = true

	default:
		e.Alert -= alertDecayRate * dt
	}
	e.Alert = clamp(e.Alert, 0, alertMax)

	return out
}
