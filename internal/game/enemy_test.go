package game

import (
	"math"
	"testing"
)

func TestPatrolCyclesWaypoints(t *testing.T) {
	ts := openSim(
		WithEnemy(1.5, 1.5, 0, [2]float64{1.5, 1.5}, [2]float64{7.5, 1.5}),
		WithPlayerAt(1.5, 3.5),
	)
	w := ts.World
	e := w.Enemies[0]

	// Starting on waypoint 0, the first move should flip to waypoint 1 and
	// head east.
	w.updateEnemy(e, 0.1, percept{distToPlayer: 99})
	if e.WaypointIndex != 1 {
		t.Fatalf("expected waypoint index 1, got %d", e.WaypointIndex)
	}
	startX := e.X
	for i := 0; i < 20; i++ {
		w.updateEnemy(e, 0.1, percept{distToPlayer: 99})
	}
	if e.X <= startX {
		t.Errorf("patrolling enemy should move east, x %f -> %f", startX, e.X)
	}
	if e.State != StatePatrol {
		t.Errorf("undisturbed enemy should stay in patrol, got %s", e.State)
	}
}

func TestPatrolWithoutWaypointsHoldsPost(t *testing.T) {
	ts := openSim(WithEnemy(4.5, 2.5, 0), WithPlayerAt(1.5, 1.5))
	w := ts.World
	e := w.Enemies[0]

	for i := 0; i < 30; i++ {
		w.updateEnemy(e, 0.1, percept{distToPlayer: 99})
	}
	if e.X != 4.5 || e.Y != 2.5 {
		t.Errorf("stationary guard drifted to (%f,%f)", e.X, e.Y)
	}
}

func TestPatrolToInvestigateAtThreshold(t *testing.T) {
	ts := openSim(WithEnemy(4.5, 2.5, 0))
	w := ts.World
	e := w.Enemies[0]

	e.Alert = alertInvestigate - 1
	w.updateEnemy(e, 0.1, percept{distToPlayer: 99})
	if e.State != StatePatrol {
		t.Fatalf("below the threshold the enemy stays on patrol, got %s", e.State)
	}

	e.Alert = alertInvestigate
	w.updateEnemy(e, 0.1, percept{distToPlayer: 99})
	if e.State != StateInvestigate {
		t.Fatalf("at the threshold the enemy investigates, got %s", e.State)
	}
	if e.StateTimer != investigateDuration {
		t.Errorf("investigate timer should start at %f, got %f", investigateDuration, e.StateTimer)
	}
}

func TestInvestigateMovesTowardTarget(t *testing.T) {
	ts := openSim(WithEnemy(2.5, 2.5, 0))
	w := ts.World
	e := w.Enemies[0]
	e.State = StateInvestigate
	e.StateTimer = investigateDuration
	e.Alert = 50
	e.InvestigateX, e.InvestigateY = 6.5, 2.5
	e.HasInvestigate = true

	start := e.X
	for i := 0; i < 10; i++ {
		w.updateEnemy(e, 0.1, percept{distToPlayer: 99})
	}
	if e.X <= start {
		t.Errorf("investigating enemy should close on the target, x %f -> %f", start, e.X)
	}
}

func TestInvestigateTimesOutToReturn(t *testing.T) {
	ts := openSim(WithEnemy(4.5, 2.5, 0))
	w := ts.World
	e := w.Enemies[0]
	e.State = StateInvestigate
	e.StateTimer = 0.05
	e.Alert = 50
	e.HasInvestigate = true

	w.updateEnemy(e, 0.1, percept{distToPlayer: 99})
	if e.State != StateReturn {
		t.Fatalf("expired investigation should fall back to return, got %s", e.State)
	}
	if e.HasInvestigate {
		t.Error("leaving investigate must clear the target")
	}
}

func TestInvestigateGivesUpWhenAlertFades(t *testing.T) {
	ts := openSim(WithEnemy(4.5, 2.5, 0))
	w := ts.World
	e := w.Enemies[0]
	e.State = StateInvestigate
	e.StateTimer = investigateDuration
	e.Alert = alertGiveUp - 1

	w.updateEnemy(e, 0.1, percept{distToPlayer: 99})
	if e.State != StateReturn {
		t.Fatalf("alert under the give-up floor should end the investigation, got %s", e.State)
	}
}

func TestFullAlertEntersChase(t *testing.T) {
	ts := openSim(WithEnemy(4.5, 2.5, 0))
	w := ts.World
	e := w.Enemies[0]
	e.Alert = alertMax

	w.updateEnemy(e, 0.1, percept{distToPlayer: 99})
	if e.State != StateChase {
		t.Fatalf("full alert should trigger a chase, got %s", e.State)
	}
	if e.Speed != enemyChaseSpeed {
		t.Errorf("chase speed should be %f, got %f", enemyChaseSpeed, e.Speed)
	}
	if e.StateTimer != chaseDuration {
		t.Errorf("chase timer should start at %f, got %f", chaseDuration, e.StateTimer)
	}
}

func TestChaseTimerRefreshesOnContact(t *testing.T) {
	ts := openSim(WithEnemy(4.5, 2.5, 0), WithPlayerAt(6.5, 2.5))
	w := ts.World
	e := w.Enemies[0]
	w.enterChase(e)
	e.StateTimer = 1.0

	w.updateEnemy(e, 0.1, percept{seesPlayer: true, distToPlayer: 2})
	if e.StateTimer != chaseDuration {
		t.Errorf("visual contact should reset the chase timer to %f, got %f",
			chaseDuration, e.StateTimer)
	}
}

func TestChaseExpiresToReturnWithResidualAlert(t *testing.T) {
	ts := openSim(WithEnemy(4.5, 2.5, 0))
	w := ts.World
	e := w.Enemies[0]
	w.enterChase(e)
	e.StateTimer = 0.05
	e.Alert = alertMax

	w.updateEnemy(e, 0.1, percept{distToPlayer: 99})
	if e.State != StateReturn {
		t.Fatalf("expired chase should give way to return, got %s", e.State)
	}
	if e.Alert != alertAfterChase {
		t.Errorf("post-chase alert should drop to %f, got %f", alertAfterChase, e.Alert)
	}
	if e.Speed != enemyPatrolSpeed {
		t.Errorf("post-chase speed should be %f, got %f", enemyPatrolSpeed, e.Speed)
	}
}

func TestChaseRequestsShotInRange(t *testing.T) {
	ts := openSim(WithEnemy(2.5, 2.5, 0), WithPlayerAt(6.5, 2.5))
	w := ts.World
	e := w.Enemies[0]
	w.enterChase(e)

	act := w.updateEnemy(e, 0.1, percept{seesPlayer: true, distToPlayer: 4})
	if !act.WantShoot {
		t.Error("visible player inside shoot range should draw fire")
	}

	e.ShootCooldown = 1.0
	act = w.updateEnemy(e, 0.1, percept{seesPlayer: true, distToPlayer: 4})
	if act.WantShoot {
		t.Error("cooldown must suppress the shot request")
	}

	e.ShootCooldown = 0
	act = w.updateEnemy(e, 0.1, percept{seesPlayer: true, distToPlayer: shootRange + 1})
	if act.WantShoot {
		t.Error("a player beyond shoot range is chased, not shot")
	}
}

func TestReturnReengagesOnHighAlert(t *testing.T) {
	ts := openSim(WithEnemy(4.5, 2.5, 0))
	w := ts.World
	e := w.Enemies[0]
	e.State = StateReturn
	e.Alert = alertReengage

	w.updateEnemy(e, 0.1, percept{distToPlayer: 99})
	if e.State != StateInvestigate {
		t.Fatalf("renewed suspicion during return should re-open an investigation, got %s", e.State)
	}
}

func TestReturnArrivesResumesPatrol(t *testing.T) {
	ts := openSim(
		WithEnemy(4.5, 2.5, 0, [2]float64{4.5, 2.5}, [2]float64{7.5, 2.5}),
	)
	w := ts.World
	e := w.Enemies[0]
	e.State = StateReturn
	e.WaypointIndex = 1
	e.Alert = 5

	w.updateEnemy(e, 0.1, percept{distToPlayer: 99})
	if e.State != StatePatrol {
		t.Fatalf("standing on the home waypoint should resume patrol, got %s", e.State)
	}
	if e.WaypointIndex != 0 {
		t.Errorf("patrol should restart at waypoint 0, got %d", e.WaypointIndex)
	}
}

func TestReturnWithoutWaypointsResumesPatrolInPlace(t *testing.T) {
	ts := openSim(WithEnemy(4.5, 2.5, 0))
	w := ts.World
	e := w.Enemies[0]
	e.State = StateReturn
	e.Alert = 5

	w.updateEnemy(e, 0.1, percept{distToPlayer: 99})
	if e.State != StatePatrol {
		t.Fatalf("a guard with no route returns to patrol where it stands, got %s", e.State)
	}
}

func TestDeadEnemyIsInert(t *testing.T) {
	ts := openSim(WithEnemy(4.5, 2.5, 0, [2]float64{1.5, 1.5}, [2]float64{7.5, 1.5}))
	w := ts.World
	e := w.Enemies[0]
	e.Dead = true
	e.Alert = alertMax

	act := w.updateEnemy(e, 0.1, percept{seesPlayer: true, distToPlayer: 1})
	if act.WantShoot {
		t.Error("a dead enemy cannot shoot")
	}
	if e.X != 4.5 || e.Y != 2.5 || e.State != StatePatrol {
		t.Error("a dead enemy must not move or change state")
	}
}

func TestTurnTowardClampsStep(t *testing.T) {
	got := turnToward(0, math.Pi/2, 0.1)
	if math.Abs(got-0.1) > 1e-9 {
		t.Errorf("turn should be limited to the step, got %f", got)
	}
	got = turnToward(0, 0.05, 0.1)
	if got != 0.05 {
		t.Errorf("within the step the turn should snap to target, got %f", got)
	}
}
