package cipher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimensions(t *testing.T) {
	cases := []struct {
		in            string
		width, height int
	}{
		{"3,2", 3, 2},
		{" 9 , 3 ", 9, 3},
		{"0,0", 0, 0},
		{"254,1", 254, 1},
		{"1 2,4", 12, 4},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			w, h, err := ParseDimensions(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.width, w)
			assert.Equal(t, tc.height, h)
		})
	}
}

func TestParseDimensionsErrors(t *testing.T) {
	cases := []struct {
		in  string
		err error
	}{
		{"", ErrDimensionFormat},
		{"3", ErrDimensionFormat},
		{"3,2,1", ErrDimensionFormat},
		{"a,b", ErrDimensionFormat},
		{"3,", ErrDimensionFormat},
		{"255,2", ErrDimensionRange},
		{"2,-1", ErrDimensionRange},
		{"1000,1000", ErrDimensionRange},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			_, _, err := ParseDimensions(tc.in)
			if !errors.Is(err, tc.err) {
				t.Fatalf("ParseDimensions(%q) error = %v; want %v", tc.in, err, tc.err)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	cases := []struct {
		token string
		want  Direction
	}{
		{"c", Clockwise},
		{"C", Clockwise},
		{"cc", CounterClockwise},
		{"CC", CounterClockwise},
		{"  cc\n", CounterClockwise},
	}
	for _, tc := range cases {
		got, err := ParseDirection(tc.token)
		require.NoError(t, err, tc.token)
		assert.Equal(t, tc.want, got, tc.token)
	}

	for _, bad := range []string{"", "cw", "cC", "ccc", "clockwise"} {
		_, err := ParseDirection(bad)
		assert.ErrorIs(t, err, ErrUnknownDirection, bad)
	}
}

func TestDirectionHelpers(t *testing.T) {
	assert.Equal(t, "clockwise", Clockwise.String())
	assert.Equal(t, "counter-clockwise", CounterClockwise.String())
	assert.Equal(t, "Direction(7)", Direction(7).String())

	assert.Equal(t, "c", Clockwise.Token())
	assert.Equal(t, "cc", CounterClockwise.Token())

	assert.Equal(t, CounterClockwise, Clockwise.Opposite())
	assert.Equal(t, Clockwise, CounterClockwise.Opposite())

	for _, d := range []Direction{Clockwise, CounterClockwise} {
		parsed, err := ParseDirection(d.Token())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
}
