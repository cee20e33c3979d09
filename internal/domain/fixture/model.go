package fixture

// Fixture is one scheduled match in a gameweek. Team names are canonical.
type Fixture struct {
	ID       string
	HomeTeam string
	AwayTeam string
	Gameweek int
	Season   string
}
