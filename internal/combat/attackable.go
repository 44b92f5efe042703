package combat

import "github.com/udisondev/skirmish/internal/model"

// Attackable is an entity that can be damaged.
// Implementations are compared by identity (pointer receivers).
type Attackable interface {
	Object() *model.WorldObject
	Health() *model.Health
}

// IsAlive reports whether att is non-nil and alive.
func IsAlive(att Attackable) bool {
	return att != nil && att.Health().IsAlive()
}
