package combat

import (
	"fmt"

	"github.com/udisondev/skirmish/internal/model"
)

type dummy struct {
	obj *model.WorldObject
	hp  *model.Health
}

func (d *dummy) Object() *model.WorldObject { return d.obj }
func (d *dummy) Health() *model.Health      { return d.hp }

func newDummy(id uint32, team model.TeamID, x float64, hp float64) *dummy {
	return &dummy{
		obj: model.NewWorldObject(id, fmt.Sprintf("dummy-%d", id), model.NewLocation(x, 0, 0), team),
		hp:  model.NewHealth(hp),
	}
}
