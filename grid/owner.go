package grid

import (
	"fmt"
	"strings"
)

// PlayerID identifie un joueur ("R", "Y", ...).
type PlayerID string

// Kind distingue une case vide, occupée ou gagnante.
type Kind uint8

const (
	Empty Kind = iota
	Player
	Won
)

const wonPrefix = "win "

// Owner est le propriétaire d'une case.
type Owner struct {
	Kind   Kind
	Player PlayerID
}

// EmptyOwner est la valeur d'une case libre.
var EmptyOwner = Owner{}

// Taken retourne une case occupée par p.
func Taken(p PlayerID) Owner {
	return Owner{Kind: Player, Player: p}
}

// WonBy retourne une case faisant partie d'un alignement gagnant de p.
func WonBy(p PlayerID) Owner {
	return Owner{Kind: Won, Player: p}
}

// IsEmpty indique une case libre.
func (o Owner) IsEmpty() bool { return o.Kind == Empty }

// String donne l'étiquette affichée par le rendu : "", "R" ou "win R".
func (o Owner) String() string {
	switch o.Kind {
	case Player:
		return string(o.Player)
	case Won:
		return wonPrefix + string(o.Player)
	default:
		return ""
	}
}

// MarshalText encode l'étiquette de String.
func (o Owner) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText relit "", "R" ou "win R".
func (o *Owner) UnmarshalText(b []byte) error {
	s := string(b)
	switch {
	case s == "":
		*o = EmptyOwner
	case strings.HasPrefix(s, wonPrefix):
		p := PlayerID(strings.TrimPrefix(s, wonPrefix))
		if err := CheckPlayer(p); err != nil {
			return err
		}
		*o = WonBy(p)
	default:
		p := PlayerID(s)
		if err := CheckPlayer(p); err != nil {
			return err
		}
		*o = Taken(p)
	}
	return nil
}

// CheckPlayer refuse les identifiants que l'encodage texte ne peut pas relire.
func CheckPlayer(p PlayerID) error {
	if p == "" || strings.ContainsAny(string(p), " \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidPlayer, p)
	}
	return nil
}
