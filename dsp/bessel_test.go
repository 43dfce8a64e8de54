package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBesselI0KnownValues(t *testing.T) {

	/*
	 * Reference values from standard tables of I0.
	 */
	cases := []struct {
		x        float64
		expected float64
	}{
		{0, 1},
		{1, 1.2660658777520084},
		{5, 27.239871823604442},
		{10, 2815.7166284662544},
	}

	for _, c := range cases {
		got, err := BesselI0(c.x)
		assert.NoError(t, err)
		relErr := math.Abs(got-c.expected) / c.expected
		assert.Lessf(t, relErr, 1e-6, "I0(%v): got %v, want %v", c.x, got, c.expected)
	}

}

func TestBesselI0RejectsOutOfDomain(t *testing.T) {
	_, err := BesselI0(25)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrBesselDomain)
}
