package game

import (
	"errors"
	"fmt"

	"puissancen/grid"
	"puissancen/power4"
)

var (
	ErrColumnFull = errors.New("column full")
	ErrGameOver   = errors.New("game over")
)

// Match applique la gravité et l'alternance des tours autour d'un grid.Board.
// Pas de verrou : l'appelant sérialise les coups.
type Match struct {
	opts     Options
	board    *grid.Board
	next     int
	winner   grid.PlayerID
	finished bool
	draw     bool
	version  int
	lastCol  int
	lastRow  int
}

// NewMatch vérifie les options et prépare un plateau vide.
func NewMatch(opts Options) (*Match, error) {
	if opts.WinLength < 2 || opts.WinLength > opts.Width {
		return nil, fmt.Errorf("%w: winning length %d on a board of width %d", grid.ErrInvalidConfiguration, opts.WinLength, opts.Width)
	}
	for _, p := range opts.Players {
		if err := grid.CheckPlayer(p); err != nil {
			return nil, err
		}
	}
	if opts.Players[0] == opts.Players[1] {
		return nil, fmt.Errorf("%w: both players are %q", grid.ErrInvalidPlayer, opts.Players[0])
	}
	b, err := grid.New(opts.Width)
	if err != nil {
		return nil, err
	}
	m := &Match{opts: opts, board: b}
	m.Reset()
	return m, nil
}

func (m *Match) Board() *grid.Board { return m.board }

func (m *Match) Options() Options { return m.opts }

// Next retourne le joueur qui doit jouer.
func (m *Match) Next() grid.PlayerID { return m.opts.Players[m.next] }

func (m *Match) Winner() grid.PlayerID { return m.winner }

func (m *Match) Finished() bool { return m.finished }

// Play fait tomber un jeton du joueur courant dans col et retourne la rangée atteinte
// (0 = bas du plateau).
func (m *Match) Play(col int) (int, error) {
	if m.finished {
		return -1, ErrGameOver
	}
	if col < 0 || col >= m.opts.Width {
		return -1, fmt.Errorf("%w: column %d", grid.ErrOutOfRange, col)
	}
	player := m.Next()
	row := -1
	for r := 0; r < m.opts.Width; r++ {
		o, err := m.board.Owner(col, r)
		if err != nil {
			return -1, err
		}
		if o.IsEmpty() {
			row = r
			break
		}
	}
	if row < 0 {
		return -1, fmt.Errorf("%w: column %d", ErrColumnFull, col)
	}
	if err := m.board.Set(col, row, grid.Taken(player)); err != nil {
		return -1, err
	}
	m.lastCol, m.lastRow = col, row
	m.version++

	winner, err := power4.Winner(m.board, m.opts.WinLength, player)
	if err != nil {
		return row, err
	}
	switch {
	case winner != "":
		m.winner = player
		m.finished = true
	case m.board.Full():
		m.draw = true
		m.finished = true
	default:
		m.next = 1 - m.next
	}
	return row, nil
}

// Reset vide le plateau en gardant les options.
func (m *Match) Reset() {
	m.board.Reset()
	m.next = 0
	m.winner = ""
	m.finished = false
	m.draw = false
	m.version++
	m.lastCol, m.lastRow = -1, -1
}

func (m *Match) State() GameState {
	return GameState{
		Board:     m.board.Columns(),
		Next:      m.Next(),
		Winner:    m.winner,
		Finished:  m.finished,
		Draw:      m.draw,
		Width:     m.opts.Width,
		WinLength: m.opts.WinLength,
		Version:   m.version,
		LastCol:   m.lastCol,
		LastRow:   m.lastRow,
	}
}
