package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type colour int32

var colours = NewEnumTable[colour]("colour", "UNKNOWN", "OTHER", "RED")

func TestEnumTable(t *testing.T) {
	assert.True(t, colours.IsValid(2))
	assert.False(t, colours.IsValid(3))
	assert.False(t, colours.IsValid(-1))
	assert.Equal(t, "RED", colours.Name(2))
	assert.Equal(t, "colour(9)", colours.Name(9))
	assert.Equal(t, "RED", colours.Text(2))
	assert.Equal(t, "9", colours.Text(9))
	assert.Equal(t, "-4", colours.Text(-4))

	v, err := colours.Parse("red")
	require.NoError(t, err)
	assert.Equal(t, colour(2), v)

	v, err = colours.Parse("9")
	require.NoError(t, err)
	assert.Equal(t, colour(9), v)

	_, err = colours.Parse("GREEN")
	assert.Error(t, err)
}

func TestEnumTableUnmarshalJSON(t *testing.T) {
	var c colour
	require.NoError(t, colours.UnmarshalJSON([]byte(`"OTHER"`), &c))
	assert.Equal(t, colour(1), c)
	require.NoError(t, colours.UnmarshalJSON([]byte(`2`), &c))
	assert.Equal(t, colour(2), c)
	assert.Error(t, colours.UnmarshalJSON([]byte(`"BLUE"`), &c))
	assert.Error(t, colours.UnmarshalJSON([]byte(`{}`), &c))
}

func TestEnumTableTextParsesBack(t *testing.T) {
	for _, v := range []colour{0, 2, 3, 99, -1} {
		got, err := colours.Parse(colours.Text(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
