package game

// EventKind labels a discrete occurrence produced during one simulation step.
// The step returns these to the caller, which forwards them to the audio
// collaborator; the core never calls into presentation code.
type EventKind int

const (
	EventGunshot EventKind = iota
	EventImpact
	EventEnemyDown
	EventPickup
	EventDistraction
	EventLevelComplete
	EventLevelFailed
)

func (k EventKind) String() string {
	switch k {
	case EventGunshot:
		return "gunshot"
	case EventImpact:
		return "impact"
	case EventEnemyDown:
		return "enemy_down"
	case EventPickup:
		return "pickup"
	case EventDistraction:
		return "distraction"
	case EventLevelComplete:
		return "level_complete"
	case EventLevelFailed:
		return "level_failed"
	default:
		return "unknown"
	}
}

// Event is one occurrence within a step, tagged with where it happened so the
// audio collaborator can attenuate or pan if it wants to.
type Event struct {
	Kind EventKind
	X, Y float64
}
