package game

import "math"

const (
	bulletSpeed         = 16.0 // tiles per second, player-fired
	enemyBulletSpeedMul = 0.8
	bulletLifetime      = 1.5 // seconds
	bulletHitRadius     = 0.4 // distance to an entity centre that counts as a hit
	bulletDamage        = 1

	// Gunshot noise markers. A player shot rings out further than an enemy
	// one, and both are louder than ambient movement.
	gunshotNoiseRadiusPlayer = 6.0
	gunshotNoiseRadiusEnemy  = 4.5
	gunshotNoiseLifetime     = 0.6

	// A kill drops floor(remaining ammo / 2) + this.
	dropAmmoBonus = 2
)

// Bullet is a live projectile. Transient: destroyed on wall impact, entity
// impact, or lifetime expiry.
type Bullet struct {
	ID          int
	X, Y        float64
	VX, VY      float64
	PlayerOwned bool
	Lifetime    float64 // seconds remaining
}

// fireBullet spawns a bullet from (x,y) along facing and rings out the shot
// as a noise marker plus a gunshot event. Ammo and cooldown bookkeeping stay
// with the actor that pulled the trigger.
func (w *World) fireBullet(x, y, facing float64, playerOwned bool) {
	speed := bulletSpeed
	noiseRadius := gunshotNoiseRadiusPlayer
	if !playerOwned {
		speed *= enemyBulletSpeedMul
		noiseRadius = gunshotNoiseRadiusEnemy
	}
	w.Bullets = append(w.Bullets, Bullet{
		ID:          w.nextBulletID,
		X:           x,
		Y:           y,
		VX:          math.Cos(facing) * speed,
		VY:          math.Sin(facing) * speed,
		PlayerOwned: playerOwned,
		Lifetime:    bulletLifetime,
	})
	w.nextBulletID++
	w.Noise = append(w.Noise, newNoise(x, y, noiseRadius, gunshotNoiseLifetime))
	w.events = append(w.events, Event{Kind: EventGunshot, X: x, Y: y})
}

// advanceBullets moves every bullet by dt and resolves impacts in one
// iterate-and-remove pass. Wall contact is checked against every cell the
// per-tick segment crosses, so a clamped-delta step cannot carry a bullet
// over a thin wall. A bullet hits at most one entity per tick, first match
// in enumeration order; wall contact or expiry destroys it with no further
// effect.
func (w *World) advanceBullets(dt float64) {
	kept := w.Bullets[:0]
	for i := range w.Bullets {
		b := &w.Bullets[i]
		ox, oy := b.X, b.Y
		b.X += b.VX * dt
		b.Y += b.VY * dt
		b.Lifetime -= dt

		if b.Lifetime <= 0 {
			continue
		}
		if c, blocked := firstBlockedCell(w.Grid, ox, oy, b.X, b.Y); blocked {
			w.events = append(w.events, Event{
				Kind: EventImpact,
				X:    float64(c.Col) + 0.5,
				Y:    float64(c.Row) + 0.5,
			})
			continue
		}
		if w.resolveBulletHit(b) {
			continue
		}
		kept = append(kept, *b)
	}
	w.Bullets = kept
}

// firstBlockedCell walks the cells crossed by the segment (ax,ay)→(bx,by)
// and reports the first non-walkable one.
func firstBlockedCell(g *Grid, ax, ay, bx, by float64) (cell, bool) {
	for _, c := range traceLine(ax, ay, bx, by) {
		if !g.IsWalkable(c.Col, c.Row) {
			return c, true
		}
	}
	return cell{}, false
}

// resolveBulletHit applies the first entity impact for b, returning true if
// the bullet is spent.
func (w *World) resolveBulletHit(b *Bullet) bool {
	if b.PlayerOwned {
		for _, e := range w.Enemies {
			if e.Dead {
				continue
			}
			if dist(b.X, b.Y, e.X, e.Y) > bulletHitRadius {
				continue
			}
			e.Health -= bulletDamage
			w.events = append(w.events, Event{Kind: EventImpact, X: e.X, Y: e.Y})
			if e.Health <= 0 {
				w.killEnemy(e)
			}
			return true
		}
		return false
	}

	p := &w.Player
	if dist(b.X, b.Y, p.X, p.Y) > bulletHitRadius {
		return false
	}
	w.events = append(w.events, Event{Kind: EventImpact, X: p.X, Y: p.Y})
	w.damagePlayer(bulletDamage)
	return true
}

// killEnemy marks an enemy dead and drops its ammo as a pickup where it fell.
func (w *World) killEnemy(e *Enemy) {
	e.Health = 0
	e.Dead = true
	w.Pickups = append(w.Pickups, AmmoPickup{
		X:      e.X,
		Y:      e.Y,
		Amount: e.Ammo/2 + dropAmmoBonus,
	})
	w.events = append(w.events, Event{Kind: EventEnemyDown, X: e.X, Y: e.Y})
}

// damagePlayer applies damage and flips the game-over flag at zero health.
func (w *World) damagePlayer(dmg int) {
	if w.GameOver || w.Win {
		return
	}
	w.Player.Health -= dmg
	if w.Player.Health <= 0 {
		w.Player.Health = 0
		w.GameOver = true
		w.events = append(w.events, Event{Kind: EventLevelFailed, X: w.Player.X, Y: w.Player.Y})
	}
}
