package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestKaiserBetaKnownValues(t *testing.T) {
	assert.InDelta(t, 5.6533, kaiserBeta(60), 1e-3)
	assert.InDelta(t, 2.1166, kaiserBeta(30), 1e-3)
	assert.Equal(t, 0.0, kaiserBeta(15))
}

func TestKaiserLengthKnownValue(t *testing.T) {
	assert.Equal(t, 47, kaiserLength(40, 0.1))
}

func TestKaiserWindowOddLengthAndUnityCenter(t *testing.T) {
	window, err := KaiserWindow(40, 0.1)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(window)%2)
	center := (len(window) - 1) / 2
	assert.InDelta(t, 1.0, window[center], 1e-5)
}

func TestKaiserWindowRejectsBadParameters(t *testing.T) {
	_, err := KaiserWindow(0, 0.1)
	assert.ErrorIs(t, err, ErrAttenuation)

	_, err = KaiserWindow(40, 0)
	assert.ErrorIs(t, err, ErrDeltaW)

	_, err = KaiserWindow(40, 1.5)
	assert.ErrorIs(t, err, ErrDeltaW)
}

func TestKaiserWindowAlwaysOdd(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		atten := rapid.Float32Range(21, 90).Draw(t, "atten")
		deltaW := rapid.Float32Range(0.01, 0.5).Draw(t, "delta_w")
		window, err := KaiserWindow(atten, deltaW)

		if err == nil {
			assert.Equal(t, 1, len(window)%2)
		}

	})
}
