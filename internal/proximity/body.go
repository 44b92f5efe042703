package proximity

import "github.com/udisondev/skirmish/internal/model"

// Body is an entity sensed by the field.
// Payload carries the owning entity so sensors can filter by capability.
type Body struct {
	obj     *model.WorldObject
	Payload any
}

// NewBody creates a body tracking obj position.
func NewBody(obj *model.WorldObject, payload any) *Body {
	return &Body{obj: obj, Payload: payload}
}

// ID returns objectID of the tracked object.
func (b *Body) ID() uint32 {
	return b.obj.ObjectID()
}

// Object returns the tracked object.
func (b *Body) Object() *model.WorldObject {
	return b.obj
}
