package power4

import "puissancen/grid"

// Joueurs par défaut : Rouge et Jaune.
const (
	Red    grid.PlayerID = "R"
	Yellow grid.PlayerID = "Y"
)

var Players = []grid.PlayerID{Red, Yellow}

// Winner retourne le premier joueur qui aligne winLength jetons, sinon une chaîne vide.
// Sans joueurs précisés, Rouge puis Jaune sont vérifiés.
func Winner(b *grid.Board, winLength int, players ...grid.PlayerID) (grid.PlayerID, error) {
	if len(players) == 0 {
		players = Players
	}
	for _, p := range players {
		won, err := b.Validate(winLength, p)
		if err != nil {
			return "", err
		}
		if won {
			return p, nil
		}
	}
	return "", nil
}
