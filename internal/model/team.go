package model

// TeamID identifies the player owning an object.
// Team 0 is neutral/unowned and is never a valid enemy.
type TeamID int32

const (
	// TeamNeutral marks unowned objects.
	TeamNeutral TeamID = 0
	// MaxTeam is the highest valid player team.
	MaxTeam TeamID = 2
)

// ClampTeam clamps team to [TeamNeutral, MaxTeam].
func ClampTeam(team TeamID) TeamID {
	return min(max(team, TeamNeutral), MaxTeam)
}

// IsEnemy reports whether other is a valid enemy for self.
func IsEnemy(self, other TeamID) bool {
	return other != TeamNeutral && other != self
}
