package dsp

import (
	"math"
	"testing"

	"github.com/Kasetkin/noaa-apt/internal/synth"
	"github.com/stretchr/testify/assert"
)

func TestDemodulateRecoversEnvelope(t *testing.T) {

	/*
	 * S8: demodulating x[n] = (1 + m*cos(2*pi*fm*n/Fs)) * cos(2*pi*fc*n/Fs)
	 * with fc >> fm recovers an envelope approximating
	 * 1 + m*cos(2*pi*fm*n/Fs), delayed by d samples, after the initial d
	 * samples.
	 */
	const sampleRate = 48000.0
	const carrierHz = 8000.0
	const messageHz = 50.0
	const modIndex = 0.5
	const n = 20000

	atten := float32(50)
	deltaW := float32(0.05)
	input := synth.AMTone(n, carrierHz, messageHz, sampleRate, modIndex)
	envelope, err := Demodulate(input, atten, deltaW)
	assert.NoError(t, err)
	assert.Equal(t, n, len(envelope))

	h, err := Hilbert(atten, deltaW)
	assert.NoError(t, err)
	delay := len(h) / 2

	/*
	 * Everything before the delay must be exactly zero.
	 */
	for i := 0; i < delay; i++ {
		assert.Equal(t, float32(0), envelope[i])
	}

	/*
	 * Past the transient, the envelope should track the expected
	 * modulation within 5%. Output sample i pairs the quadrature channel
	 * with the input delayed by d samples, so it carries the envelope of
	 * input sample i - d.
	 */
	margin := delay + 500

	for i := margin; i < n-500; i++ {
		tFloat := float64(i-delay) / sampleRate
		expected := 1 + modIndex*math.Cos(2*math.Pi*messageHz*tFloat)
		assert.InDeltaf(t, expected, float64(envelope[i]), 0.05*expected, "mismatch at sample %d", i)
	}

}
