package ai

import (
	"fmt"
	"log/slog"
	"slices"
	"time"
)

type registration struct {
	objectID   uint32
	controller Controller
}

// TickManager dispatches ticks to all registered controllers in
// registration order.
//
// Not thread-safe: owned by the simulation goroutine.
type TickManager struct {
	entries []registration
}

// NewTickManager creates new tick manager
func NewTickManager() *TickManager {
	return &TickManager{}
}

// Register starts controller and registers it for objectID.
// An entity may own several controllers; they tick in registration order.
func (m *TickManager) Register(objectID uint32, controller Controller) {
	m.entries = append(m.entries, registration{objectID: objectID, controller: controller})
	controller.Start()

	slog.Debug("controller registered",
		"objectID", objectID,
		"intention", controller.CurrentIntention())
}

// Unregister stops and removes every controller of objectID.
func (m *TickManager) Unregister(objectID uint32) {
	var removed []Controller
	m.entries = slices.DeleteFunc(m.entries, func(r registration) bool {
		if r.objectID == objectID {
			removed = append(removed, r.controller)
			return true
		}
		return false
	})

	for _, c := range removed {
		c.Stop()
	}
	if len(removed) > 0 {
		slog.Debug("controllers unregistered", "objectID", objectID, "count", len(removed))
	}
}

// TickAll ticks all registered controllers.
// Controllers unregistered during the pass are skipped.
func (m *TickManager) TickAll(now time.Duration) {
	snapshot := slices.Clone(m.entries)
	count := 0

	for _, r := range snapshot {
		if !m.registered(r) {
			continue
		}
		r.controller.Tick(now)
		count++
	}

	if count > 0 && IsDebugEnabled() {
		slog.Debug("AI tick completed", "controllers", count, "now", now)
	}
}

// Count returns number of registered controllers
func (m *TickManager) Count() int {
	return len(m.entries)
}

// GetController returns the first controller registered for objectID
func (m *TickManager) GetController(objectID uint32) (Controller, error) {
	for _, r := range m.entries {
		if r.objectID == objectID {
			return r.controller, nil
		}
	}
	return nil, fmt.Errorf("controller not found for objectID %d", objectID)
}

// Controllers returns all controllers of objectID in registration order
func (m *TickManager) Controllers(objectID uint32) []Controller {
	var out []Controller
	for _, r := range m.entries {
		if r.objectID == objectID {
			out = append(out, r.controller)
		}
	}
	return out
}

func (m *TickManager) registered(r registration) bool {
	return slices.Contains(m.entries, r)
}
