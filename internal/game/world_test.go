package game

import (
	"math"
	"testing"
)

func TestStepIgnoresNonPositiveDelta(t *testing.T) {
	ts := openSim()
	w := ts.World

	if ev := w.Step(0, InputState{}); ev != nil {
		t.Error("zero delta should produce no events")
	}
	if w.Tick != 0 {
		t.Error("zero delta must not advance the tick counter")
	}
}

func TestStepClampsLargeDelta(t *testing.T) {
	ts := openSim(WithPlayerAt(2.5, 2.5))
	w := ts.World

	// A 5 second stall moves the player as if only 0.1s passed.
	w.Step(5.0, InputState{Right: true})
	want := 2.5 + playerWalkSpeed*maxDeltaTime
	if math.Abs(w.Player.X-want) > 1e-9 {
		t.Errorf("clamped move: want x=%f, got %f", want, w.Player.X)
	}
}

func TestStepPausedIsNoOp(t *testing.T) {
	ts := openSim(WithPlayerAt(2.5, 2.5))
	w := ts.World
	w.Paused = true

	w.Step(0.1, InputState{Right: true})
	if w.Player.X != 2.5 || w.Tick != 0 {
		t.Error("paused world must not advance")
	}
}

func TestSprintAndSneakCancel(t *testing.T) {
	ts := openSim(WithPlayerAt(2.5, 2.5))
	w := ts.World

	w.Step(0.1, InputState{Right: true, Sprint: true, Sneak: true})
	if w.Player.Sprinting || w.Player.Sneaking {
		t.Error("sprint and sneak together should cancel to a walk")
	}
	want := 2.5 + playerWalkSpeed*0.1
	if math.Abs(w.Player.X-want) > 1e-9 {
		t.Errorf("cancelled modifiers should walk: want x=%f, got %f", want, w.Player.X)
	}
}

func TestDiagonalMovementNormalized(t *testing.T) {
	ts := openSim(WithPlayerAt(4.5, 2.5))
	w := ts.World

	w.Step(0.1, InputState{Right: true, Down: true})
	moved := dist(4.5, 2.5, w.Player.X, w.Player.Y)
	want := playerWalkSpeed * 0.1
	if math.Abs(moved-want) > 1e-9 {
		t.Errorf("diagonal distance should equal straight distance %f, got %f", want, moved)
	}
}

func TestShootConsumesAmmoAndStartsCooldown(t *testing.T) {
	ts := openSim(WithPlayerAt(2.5, 2.5), WithPlayerAmmo(1))
	w := ts.World

	w.Step(0.01, InputState{Shoot: true})
	if w.Player.Ammo != 0 {
		t.Errorf("ammo should drop to 0, got %d", w.Player.Ammo)
	}
	if w.Player.ShootCooldown <= 0 {
		t.Error("firing must start the cooldown")
	}
	if len(w.Bullets) != 1 {
		t.Fatalf("expected 1 bullet, got %d", len(w.Bullets))
	}

	// Dry: no ammo, and cooling down besides.
	w.Step(0.01, InputState{Shoot: true})
	if len(w.Bullets) != 1 {
		t.Error("shooting with no ammo must not spawn a bullet")
	}
}

func TestShootBlockedByCooldown(t *testing.T) {
	ts := openSim(WithPlayerAt(2.5, 2.5))
	w := ts.World

	w.Step(0.01, InputState{Shoot: true})
	w.Step(0.01, InputState{Shoot: true})
	if len(w.Bullets) != 1 {
		t.Fatalf("second shot inside the cooldown window should not fire, bullets=%d", len(w.Bullets))
	}
	if w.Player.Ammo != playerMaxAmmo-1 {
		t.Errorf("only one round spent, ammo=%d", w.Player.Ammo)
	}
}

func TestDistractionLandsAheadAndAlertsEnemy(t *testing.T) {
	ts := openSim(
		WithPlayerAt(2.5, 2.5),
		WithEnemy(7.5, 2.5, 0), // facing east, player unseen
	)
	w := ts.World

	events := w.Step(0.05, InputState{Distract: true, Facing: 0})
	var thrown bool
	for _, ev := range events {
		if ev.Kind == EventDistraction {
			thrown = true
			if ev.X != 2.5+distractionThrowDist {
				t.Errorf("marker should land %f ahead, landed at %f", float64(distractionThrowDist), ev.X)
			}
		}
	}
	if !thrown {
		t.Fatal("distract input should emit a distraction event")
	}

	// The marker at 5.5 is within hearing of the enemy at 7.5; alert climbs.
	e := w.Enemies[0]
	if e.Alert <= 0 {
		t.Error("enemy in earshot of the distraction should gain alert")
	}
	if e.InvestigateX != 2.5+distractionThrowDist {
		t.Errorf("investigation target should be the marker, got %f", e.InvestigateX)
	}
}

func TestNoiseMarkersDecayAndPrune(t *testing.T) {
	ts := openSim()
	w := ts.World
	w.Noise = append(w.Noise, newNoise(3.5, 2.5, 2.0, 0.15))

	w.Step(0.1, InputState{})
	if len(w.Noise) != 1 {
		t.Fatal("marker with remaining lifetime should survive")
	}
	w.Step(0.1, InputState{})
	if len(w.Noise) != 0 {
		t.Error("expired marker should be pruned")
	}
}

func TestPickupCollectsWithinRadiusAndCaps(t *testing.T) {
	ts := openSim(
		WithPlayerAt(2.5, 2.5),
		WithPickup(2.8, 2.5, 99),
	)
	w := ts.World
	w.Player.Ammo = 3

	events := w.Step(0.01, InputState{})
	if !w.Pickups[0].Collected {
		t.Fatal("pickup within reach should be collected")
	}
	if w.Player.Ammo != playerMaxAmmo {
		t.Errorf("refill caps at max ammo %d, got %d", playerMaxAmmo, w.Player.Ammo)
	}
	var picked bool
	for _, ev := range events {
		if ev.Kind == EventPickup {
			picked = true
		}
	}
	if !picked {
		t.Error("collection should emit a pickup event")
	}

	// Collected pickups never trigger again.
	w.Player.Ammo = 0
	w.Step(0.01, InputState{})
	if w.Player.Ammo != 0 {
		t.Error("a collected pickup must not refill twice")
	}
}

func TestPickupOutOfReachStays(t *testing.T) {
	ts := openSim(
		WithPlayerAt(2.5, 2.5),
		WithPickup(4.5, 2.5, 3),
	)
	w := ts.World
	w.Player.Ammo = 0

	w.Step(0.01, InputState{})
	if w.Pickups[0].Collected {
		t.Error("pickup beyond 0.7 tiles must stay on the floor")
	}
}

func TestWinRequiresClearedLevelAndExitTile(t *testing.T) {
	ts := NewTestSim(
		WithGridString(`
#######
#S...E#
#######
`),
		WithEnemy(3.5, 1.5, 0),
	)
	w := ts.World

	// Standing on the exit with a live enemy: no win.
	w.Player.X, w.Player.Y = 5.5, 1.5
	w.Step(0.01, InputState{})
	if w.Win {
		t.Fatal("win requires every enemy down")
	}

	// Enemy dead but player off the pad: no win.
	w.Enemies[0].Dead = true
	w.Player.X = 3.5
	w.Step(0.01, InputState{})
	if w.Win {
		t.Fatal("win requires standing on the exit tile")
	}

	w.Player.X = 5.5
	events := w.Step(0.01, InputState{})
	if !w.Win {
		t.Fatal("cleared level plus exit tile should win")
	}
	var complete bool
	for _, ev := range events {
		if ev.Kind == EventLevelComplete {
			complete = true
		}
	}
	if !complete {
		t.Error("winning should emit a level-complete event")
	}
}

func TestWinFreezesWorld(t *testing.T) {
	ts := openSim(WithPlayerAt(2.5, 2.5))
	w := ts.World
	w.Win = true

	w.Step(0.1, InputState{Right: true, Shoot: true})
	if w.Player.X != 2.5 || len(w.Bullets) != 0 || w.Tick != 0 {
		t.Error("a won world is frozen")
	}
}

func TestGameOverFreezesWorld(t *testing.T) {
	ts := openSim(WithPlayerAt(2.5, 2.5), WithEnemy(5.5, 2.5, 0))
	w := ts.World
	w.GameOver = true
	w.Enemies[0].Alert = 50

	w.Step(0.1, InputState{Right: true})
	if w.Player.X != 2.5 {
		t.Error("player frozen after game over")
	}
	if w.Enemies[0].Alert != 50 {
		t.Error("alert levels frozen after game over")
	}
}

func TestMeleeContactDamage(t *testing.T) {
	// Enemy faces the player point-blank, so sight holds the alert at max
	// through the contact check.
	ts := openSim(WithPlayerAt(2.5, 2.5), WithEnemy(2.9, 2.5, math.Pi))
	w := ts.World
	w.Enemies[0].Alert = alertMax

	hp := w.Player.Health
	w.Step(0.01, InputState{})
	if w.Player.Health != hp-1 {
		t.Errorf("cornered contact should cost 1 hp per tick, %d -> %d", hp, w.Player.Health)
	}

	// Below full alert there is no contact damage, even in reach. The enemy
	// faces away so sight cannot push it to max this tick.
	w2 := openSim(WithPlayerAt(2.5, 2.5), WithEnemy(2.9, 2.5, 0)).World
	w2.Enemies[0].Alert = alertMax - 1
	hp = w2.Player.Health
	w2.Step(0.01, InputState{})
	if w2.Player.Health != hp {
		t.Error("contact damage requires full alert")
	}
}

func TestDetectionLevelTracksMaxAlert(t *testing.T) {
	ts := openSim(
		WithEnemy(5.5, 2.5, 0),
		WithEnemy(7.5, 2.5, 0),
		WithPlayerAt(1.5, 1.5),
	)
	w := ts.World
	w.Enemies[0].Alert = 30
	w.Enemies[1].Alert = 70

	w.Step(0.01, InputState{})
	// Both decay slightly during the step; the level still tracks the max.
	if math.Abs(w.DetectionLevel-w.Enemies[1].Alert) > 1e-9 {
		t.Errorf("detection level should equal the highest alert %f, got %f",
			w.Enemies[1].Alert, w.DetectionLevel)
	}
}

func TestExploredRespectsWallsAndSpreads(t *testing.T) {
	ts := NewTestSim(WithGridString(`
############
#S....#....#
#.....#....#
#.....#...E#
############
`))
	w := ts.World

	if w.IsExplored(8, 2) {
		t.Fatal("tiles behind the dividing wall start unexplored")
	}
	if !w.IsExplored(2, 2) {
		t.Fatal("tiles near the spawn start explored")
	}

	// Once the player reaches the far side, the mask extends there and the
	// already-seen half stays revealed.
	w.Player.X, w.Player.Y = 8.5, 2.5
	w.Step(0.01, InputState{})
	if !w.IsExplored(8, 2) {
		t.Error("tiles in sight of the player's new position become explored")
	}
	if !w.IsExplored(2, 2) {
		t.Error("explored tiles never revert")
	}
}

func TestRunScriptTickIndexIsZeroBased(t *testing.T) {
	ts := NewTestSim()

	var seen []int
	ts.RunScript(3, func(tick int) InputState {
		seen = append(seen, tick)
		return InputState{}
	})

	want := []int{0, 1, 2}
	if len(seen) != len(want) {
		t.Fatalf("script called %d times, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("call %d saw tick %d, want %d", i, seen[i], want[i])
		}
	}
}
