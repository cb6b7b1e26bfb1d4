package game

// NoiseMarker is a transient world sound: a gunshot, a thrown distraction.
// Enemies hear it while it lives; the renderer draws it as a fading ring.
type NoiseMarker struct {
	X, Y        float64
	Radius      float64
	Lifetime    float64 // seconds remaining
	MaxLifetime float64
}

// FadeRatio returns remaining/max lifetime in [0,1], for rendering and for
// weighting hearing checks near expiry.
func (n *NoiseMarker) FadeRatio() float64 {
	if n.MaxLifetime <= 0 {
		return 0
	}
	return clamp(n.Lifetime/n.MaxLifetime, 0, 1)
}

// newNoise creates a marker whose lifetime starts full.
func newNoise(x, y, radius, lifetime float64) NoiseMarker {
	return NoiseMarker{X: x, Y: y, Radius: radius, Lifetime: lifetime, MaxLifetime: lifetime}
}

// decayNoise ages all markers by dt and drops the expired ones in place.
func decayNoise(markers []NoiseMarker, dt float64) []NoiseMarker {
	kept := markers[:0]
	for i := range markers {
		markers[i].Lifetime -= dt
		if markers[i].Lifetime > 0 {
			kept = append(kept, markers[i])
		}
	}
	return kept
}

// AmmoPickup is a collectable ammo refill, dropped by dead enemies or placed
// by the level generator. Collection is one-way.
type AmmoPickup struct {
	X, Y      float64
	Amount    int
	Collected bool
}
