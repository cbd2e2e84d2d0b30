package grid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonPositiveWidth(t *testing.T) {
	for _, w := range []int{0, -3, MaxWidth + 1, 40000} {
		_, err := New(w)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	}
}

func TestNewAcceptsMaxWidth(t *testing.T) {
	b, err := New(MaxWidth)
	require.NoError(t, err)
	assert.Len(t, b.skewed, 2*MaxWidth-1)
}

func TestNewBuildsEmptySquareBoard(t *testing.T) {
	b := Default()
	require.Equal(t, DefaultWidth, b.Width())
	cols := b.Columns()
	require.Len(t, cols, DefaultWidth)
	for _, col := range cols {
		require.Len(t, col, DefaultWidth)
		for _, o := range col {
			assert.True(t, o.IsEmpty())
		}
	}
	assert.False(t, b.Full())
}

func TestSkewedViewsShape(t *testing.T) {
	b, err := New(5)
	require.NoError(t, err)
	assert.Len(t, b.skewed, 9)
	assert.Len(t, b.skewedReversed, 9)

	// la case j de la colonne c tombe dans la vue c+j
	for c := 0; c < 5; c++ {
		for j := 0; j < 5; j++ {
			assert.Contains(t, b.skewed[c+j], b.columns[c][j])
			assert.Contains(t, b.skewedReversed[c+j], b.reversed[c][j])
		}
	}
	total := 0
	for _, v := range b.skewed {
		total += len(v)
	}
	assert.Equal(t, 25, total)
	assert.Equal(t, b.columns[0], b.reversed[4])
}

func TestViewsShareCells(t *testing.T) {
	b, err := New(4)
	require.NoError(t, err)
	require.NoError(t, b.Set(1, 2, Taken("R")))

	i := b.columns[1][2]
	assert.Equal(t, Taken("R"), b.cells[b.reversed[2][2]])
	assert.Contains(t, b.skewed[3], i)
	assert.Contains(t, b.skewedReversed[2+2], i)
	assert.Len(t, b.cells, 16)
}

func TestOutOfRange(t *testing.T) {
	b := Default()
	_, err := b.Owner(7, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = b.Owner(0, -1)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.ErrorIs(t, b.Set(-1, 0, Taken("R")), ErrOutOfRange)
	require.ErrorIs(t, b.Set(0, 7, Taken("R")), ErrOutOfRange)
}

func TestResetAndFull(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	for c := 0; c < 2; c++ {
		for r := 0; r < 2; r++ {
			require.NoError(t, b.Set(c, r, Taken("Y")))
		}
	}
	assert.True(t, b.Full())
	b.Reset()
	assert.False(t, b.Full())
	o, err := b.Owner(1, 1)
	require.NoError(t, err)
	assert.Equal(t, EmptyOwner, o)
}

func TestString(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	require.NoError(t, b.Set(0, 0, Taken("R")))
	require.NoError(t, b.Set(2, 2, WonBy("Y")))
	assert.Equal(t, "..*\n...\nR..\n", b.String())

	// un identifiant déjà en minuscule reste distinct de sa case gagnante
	require.NoError(t, b.Set(1, 1, Taken("y")))
	assert.Equal(t, "..*\n.y.\nR..\n", b.String())
}

func TestOwnerText(t *testing.T) {
	cols := [][]Owner{{EmptyOwner, Taken("R"), WonBy("Y")}}
	raw, err := json.Marshal(cols)
	require.NoError(t, err)
	assert.JSONEq(t, `[["","R","win Y"]]`, string(raw))

	var back [][]Owner
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, cols, back)

	var o Owner
	require.ErrorIs(t, o.UnmarshalText([]byte("win ")), ErrInvalidPlayer)
}
