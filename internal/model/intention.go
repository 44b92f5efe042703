package model

// Intention is the observable state of an auto-attack controller.
// It is derived from target and destination presence, never stored.
type Intention int32

const (
	// IntentionIdle - no target and no pending return
	IntentionIdle Intention = iota
	// IntentionChase - pursuing or firing at a target
	IntentionChase
	// IntentionReturn - walking back to the resting position
	IntentionReturn
)

// String returns human-readable intention name
func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionChase:
		return "CHASE"
	case IntentionReturn:
		return "RETURN"
	default:
		return "UNKNOWN"
	}
}
