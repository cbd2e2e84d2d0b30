package grid

import "fmt"

// entry est la projection d'une case pour un joueur donné :
// at est sa position dans la colonne quand matched, sinon rien.
type entry struct {
	at      int
	matched bool
	cell    int
}

// Validate indique si player possède winLength cases alignées
// (colonne, rangée ou diagonale). Les cases de l'alignement trouvé passent à WonBy(player).
func (b *Board) Validate(winLength int, player PlayerID) (bool, error) {
	if winLength < 2 || winLength > b.width {
		return false, fmt.Errorf("%w: winning length %d on a board of width %d", ErrInvalidConfiguration, winLength, b.width)
	}
	if err := CheckPlayer(player); err != nil {
		return false, err
	}

	colModel := b.project(b.columns, player)
	merged := make([]entry, 0, 5*b.width*b.width)
	for _, m := range [][][]entry{colModel, b.project(b.skewed, player), b.project(b.skewedReversed, player)} {
		for _, col := range m {
			merged = append(merged, col...)
		}
	}

	rows := make([]entry, 0, b.width*b.width)
	for _, row := range transpose(colModel) {
		rows = append(rows, row...)
	}

	// les deux balayages marquent chacun leur alignement
	colWin := b.hasWin(merged, winLength, player, true)
	rowWin := b.hasWin(rows, winLength, player, false)
	return colWin || rowWin, nil
}

func (b *Board) project(cols []column, player PlayerID) [][]entry {
	want := Taken(player)
	out := make([][]entry, len(cols))
	for c, col := range cols {
		out[c] = make([]entry, len(col))
		for i, idx := range col {
			out[c][i] = entry{at: i, matched: b.cells[idx] == want, cell: idx}
		}
	}
	return out
}

func transpose(model [][]entry) [][]entry {
	var rows [][]entry
	for _, col := range model {
		for i, e := range col {
			if i == len(rows) {
				rows = append(rows, nil)
			}
			rows[i] = append(rows[i], e)
		}
	}
	return rows
}

// hasWin cherche winLength entrées consécutives dans seq.
// En mode colonne la séquence est parcourue à l'envers et les positions doivent
// décroître de 1 ; en mode rangée elles doivent être égales.
// Les deux dernières entrées ne forment jamais une paire examinée.
func (b *Board) hasWin(seq []entry, winLength int, player PlayerID, col bool) bool {
	if col {
		rev := make([]entry, len(seq))
		for i, e := range seq {
			rev[len(seq)-1-i] = e
		}
		seq = rev
	}
	want := 0
	if col {
		want = 1
	}
	counter := 0
	var winners []int
	for i := 0; i < len(seq)-2; i++ {
		cur, next := seq[i], seq[i+1]
		if cur.matched && next.matched && cur.at-next.at == want {
			counter++
			winners = append(winners, cur.cell)
		} else {
			counter = 0
			winners = winners[:0]
		}
		if counter == winLength-1 {
			winners = append(winners, next.cell)
			for _, idx := range winners {
				b.cells[idx] = WonBy(player)
			}
			return true
		}
	}
	return false
}
