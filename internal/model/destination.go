package model

import "fmt"

// DestKind is the destination type of a movement request.
// Its numeric value is its priority: higher wins the movement slot.
type DestKind int32

const (
	// DestAutoAttackReturn - return to the resting position after an auto attack.
	DestAutoAttackReturn DestKind = 2
	// DestAutoAttack - chase a target acquired automatically.
	DestAutoAttack DestKind = 3
	// DestPlayerAttack - chase a target ordered by the player.
	DestPlayerAttack DestKind = 4
	// DestPlayerSet - move ordered by the player.
	DestPlayerSet DestKind = 5
)

// String returns human-readable destination kind
func (k DestKind) String() string {
	switch k {
	case DestAutoAttackReturn:
		return "AUTO_ATTACK_RETURN"
	case DestAutoAttack:
		return "AUTO_ATTACK"
	case DestPlayerAttack:
		return "PLAYER_ATTACK"
	case DestPlayerSet:
		return "PLAYER_SET"
	default:
		return "UNKNOWN"
	}
}

// Destination is a movement request.
// Destinations are compared by pointer identity, never by value.
type Destination struct {
	Position        Location
	ArrivalDistance float64
	Kind            DestKind
}

// NewDestination creates a destination with zero arrival distance.
func NewDestination(pos Location, kind DestKind) *Destination {
	return &Destination{Position: pos, Kind: kind}
}

// NewDestinationWithin creates a destination reached within arrival distance.
func NewDestinationWithin(pos Location, arrival float64, kind DestKind) *Destination {
	return &Destination{Position: pos, ArrivalDistance: arrival, Kind: kind}
}

// String implements fmt.Stringer.
func (d *Destination) String() string {
	if d == nil {
		return "<nil>"
	}
	return fmt.Sprintf("[Destination pos=%s dist=%.2f kind=%s]", d.Position, d.ArrivalDistance, d.Kind)
}
