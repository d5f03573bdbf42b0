package entity

// Player is one of the two sides of a game. Mark is a single-character
// string, distinct between the players.
type Player struct {
	Name string `json:"name,omitempty"`
	Mark string `json:"mark,omitempty"`
	Bot  bool   `json:"bot,omitempty"`
}

func (that *Player) IsBot() bool {
	return that.Bot
}
