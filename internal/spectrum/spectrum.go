// Package spectrum computes the discrete-time Fourier magnitude response
// of a short real-valued sequence, for use by tests that need to verify a
// filter's passband and stopband behavior directly against its frequency
// response.
package spectrum

import (
	"math"
	"math/cmplx"
)

/*
 * Magnitude evaluates the DTFT magnitude of taps at numPoints frequencies
 * evenly spaced over [0, pi) radians/sample. Index i of the result
 * corresponds to angular frequency pi*i/numPoints, that is i/numPoints
 * as a fraction of pi, where 1.0 would be the Nyquist frequency.
 *
 * This is a direct O(len(taps)*numPoints) evaluation rather than an FFT;
 * filters produced by this module's Kaiser-windowed designs are at most
 * a few thousand taps, so the quadratic cost is not a concern for tests.
 */
func Magnitude(taps []float32, numPoints int) []float64 {
	response := make([]float64, numPoints)

	/*
	 * Evaluate H(e^jw) = sum_n taps[n] * e^(-j*w*n) at each frequency
	 * bin and take its magnitude.
	 */
	for i := 0; i < numPoints; i++ {
		omega := math.Pi * float64(i) / float64(numPoints)
		var sum complex128

		for n, tap := range taps {
			angle := -omega * float64(n)
			sum += complex(float64(tap), 0) * cmplx.Exp(complex(0, angle))
		}

		response[i] = cmplx.Abs(sum)
	}

	return response
}
