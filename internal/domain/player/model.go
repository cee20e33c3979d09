package player

import "fmt"

// Player is one participant in the prediction league. Only active players
// take part in sentinel fill and duplicate detection.
type Player struct {
	ID     string
	Name   string
	Active bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}

// DisplayAlias maps a chat-export display name to a roster player name.
// This table is independent of the team alias table.
type DisplayAlias struct {
	Alias      string
	PlayerName string
}
