package grid

import (
	"fmt"
	"strings"
)

// DefaultWidth est la taille classique du plateau, MaxWidth la plus grande acceptée.
const (
	DefaultWidth = 7
	MaxWidth     = 15
)

// column liste des indices dans l'arène du plateau, jamais des copies.
type column []int

// Board est un plateau carré width x width.
// Toutes les cases vivent dans cells ; les quatre vues ne stockent que des indices.
type Board struct {
	width int
	cells []Owner

	columns        []column
	reversed       []column
	skewed         []column
	skewedReversed []column
}

// New crée un plateau vide et dérive ses vues.
func New(width int) (*Board, error) {
	if width < 1 || width > MaxWidth {
		return nil, fmt.Errorf("%w: board width %d not in [1,%d]", ErrInvalidConfiguration, width, MaxWidth)
	}
	b := &Board{
		width: width,
		cells: make([]Owner, width*width),
	}
	b.columns = make([]column, width)
	for c := 0; c < width; c++ {
		col := make(column, width)
		for r := 0; r < width; r++ {
			col[r] = c*width + r
		}
		b.columns[c] = col
	}
	b.reversed = make([]column, width)
	for c := range b.columns {
		b.reversed[width-1-c] = b.columns[c]
	}
	b.skewed = skew(b.columns)
	b.skewedReversed = skew(b.reversed)
	return b, nil
}

// Default crée un plateau 7x7.
func Default() *Board {
	b, _ := New(DefaultWidth)
	return b
}

// skew répartit la case j de la colonne c dans la vue c+j :
// une diagonale devient une colonne ordinaire.
func skew(cols []column) []column {
	var out []column
	for c, col := range cols {
		push := c
		for _, idx := range col {
			if push == len(out) {
				out = append(out, column{})
			}
			out[push] = append(out[push], idx)
			push++
		}
	}
	return out
}

// Width retourne la largeur (et la hauteur) du plateau.
func (b *Board) Width() int { return b.width }

func (b *Board) index(col, row int) (int, error) {
	if col < 0 || col >= b.width || row < 0 || row >= b.width {
		return 0, fmt.Errorf("%w: (%d,%d) on a %dx%d board", ErrOutOfRange, col, row, b.width, b.width)
	}
	return b.columns[col][row], nil
}

// Owner retourne le propriétaire de la case (col, row).
func (b *Board) Owner(col, row int) (Owner, error) {
	i, err := b.index(col, row)
	if err != nil {
		return EmptyOwner, err
	}
	return b.cells[i], nil
}

// Set change le propriétaire de la case (col, row).
func (b *Board) Set(col, row int, o Owner) error {
	i, err := b.index(col, row)
	if err != nil {
		return err
	}
	b.cells[i] = o
	return nil
}

// Columns retourne une copie des propriétaires, colonne par colonne.
func (b *Board) Columns() [][]Owner {
	out := make([][]Owner, b.width)
	for c, col := range b.columns {
		out[c] = make([]Owner, len(col))
		for r, idx := range col {
			out[c][r] = b.cells[idx]
		}
	}
	return out
}

// Full indique qu'il ne reste aucune case vide.
func (b *Board) Full() bool {
	for _, o := range b.cells {
		if o.IsEmpty() {
			return false
		}
	}
	return true
}

// Reset vide toutes les cases ; les vues restent valides.
func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = EmptyOwner
	}
}

// String dessine le plateau, rangée du haut en premier.
// "." vide, "*" pour une case gagnante.
func (b *Board) String() string {
	var sb strings.Builder
	for r := b.width - 1; r >= 0; r-- {
		for c := 0; c < b.width; c++ {
			o := b.cells[b.columns[c][r]]
			switch o.Kind {
			case Empty:
				sb.WriteByte('.')
			case Player:
				sb.WriteString(string(o.Player))
			case Won:
				sb.WriteByte('*')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
