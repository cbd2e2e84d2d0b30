package game

import "puissancen/grid"

// GameState est l'instantané envoyé au rendu (JSON / websocket).
type GameState struct {
	Board     [][]grid.Owner `json:"board"` // colonnes de bas en haut : "", "R" ou "win R"
	Next      grid.PlayerID  `json:"next"`
	Winner    grid.PlayerID  `json:"winner"`
	Finished  bool           `json:"finished"`
	Draw      bool           `json:"draw"`
	Width     int            `json:"width"`
	WinLength int            `json:"winLength"`
	Version   int            `json:"version"`
	LastCol   int            `json:"lastCol"`
	LastRow   int            `json:"lastRow"`
}

// Options décrit une partie.
type Options struct {
	Width     int              `json:"width"`
	WinLength int              `json:"winLength"`
	Players   [2]grid.PlayerID `json:"players"`
}

// DefaultOptions : plateau 7x7, puissance 4, Rouge contre Jaune.
func DefaultOptions() Options {
	return Options{
		Width:     grid.DefaultWidth,
		WinLength: 4,
		Players:   [2]grid.PlayerID{"R", "Y"},
	}
}
