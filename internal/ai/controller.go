package ai

import (
	"time"

	"github.com/udisondev/skirmish/internal/model"
)

// Controller represents a combat policy attached to one entity.
type Controller interface {
	// Start starts the controller
	Start()

	// Stop stops the controller and releases everything it holds
	// (session target, destinations, listeners)
	Stop()

	// CurrentIntention returns current intention (derived, never stored)
	CurrentIntention() model.Intention

	// Tick re-evaluates the policy; now is sim time
	Tick(now time.Duration)
}
