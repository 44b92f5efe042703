package model

// WorldObject это базовый объект для всех сущностей на карте.
// Все объекты имеют ObjectID, Name, Location и TeamID.
//
// Position is owned by the navigation collaborator; the core only reads it
// (the reference movement agent is the single writer).
type WorldObject struct {
	objectID uint32
	name     string
	location Location
	team     TeamID
}

// NewWorldObject создаёт новый объект в игровом мире.
func NewWorldObject(objectID uint32, name string, loc Location, team TeamID) *WorldObject {
	return &WorldObject{
		objectID: objectID,
		name:     name,
		location: loc,
		team:     ClampTeam(team),
	}
}

// ObjectID возвращает уникальный ID объекта (immutable после создания).
func (w *WorldObject) ObjectID() uint32 {
	return w.objectID
}

// Name возвращает имя объекта.
func (w *WorldObject) Name() string {
	return w.name
}

// Location возвращает копию координат объекта (value type).
func (w *WorldObject) Location() Location {
	return w.location
}

// SetLocation устанавливает новые координаты объекта.
func (w *WorldObject) SetLocation(loc Location) {
	w.location = loc
}

// Team returns owning team.
func (w *WorldObject) Team() TeamID {
	return w.team
}

// SetTeam sets owning team (clamped) and reports whether it changed.
func (w *WorldObject) SetTeam(team TeamID) bool {
	team = ClampTeam(team)
	if team == w.team {
		return false
	}
	w.team = team
	return true
}

// DistanceTo returns distance between two objects.
func (w *WorldObject) DistanceTo(other *WorldObject) float64 {
	return w.location.Distance(other.location)
}
