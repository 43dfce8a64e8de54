package dsp

import (
	"math"
)

/*
 * Demodulate recovers the AM envelope of a real-valued signal by forming
 * its analytic signal with a Hilbert-transform pair: the quadrature
 * channel is the signal passed through a Hilbert filter, and the
 * envelope is the magnitude of the resulting complex pair, sqrt(x_q^2 +
 * x_delayed^2), with x delayed by the Hilbert filter's group delay so
 * the in-phase and quadrature terms stay aligned.
 *
 * The leading d = len(hilbertFilter)/2 samples of the output are zero
 * and must be treated as invalid by callers; this is the unavoidable
 * startup transient of the group-delay alignment, not a bug.
 */
func Demodulate(signal []float32, atten float32, deltaW float32) ([]float32, error) {
	h, err := Hilbert(atten, deltaW)

	if err != nil {
		return nil, err
	}

	quadrature := Filter(signal, h)
	delay := len(h) / 2
	n := len(signal)
	output := make([]float32, n)

	/*
	 * Samples before the delay have no valid in-phase counterpart and
	 * stay zero; from there on, combine the quadrature and delayed
	 * in-phase channels into the envelope magnitude.
	 */
	for i := delay; i < n; i++ {
		q := quadrature[i]
		inPhase := signal[i-delay]
		output[i] = float32(math.Sqrt(float64(q*q + inPhase*inPhase)))
	}

	return output, nil
}
