package dsp

import (
	"math"
)

/*
 * Lowpass designs a lowpass FIR filter via the windowed-ideal-response
 * method: a Kaiser window of length derived from (atten, deltaW),
 * multiplied elementwise with the ideal lowpass impulse response for the
 * given normalised cutoff (fractions of pi radians/sample, in (0, 1)).
 * The returned filter has odd length and is symmetric about its center.
 */
func Lowpass(cutoff float32, atten float32, deltaW float32) ([]float32, error) {
	cutoffF := float64(cutoff)

	if cutoffF <= 0 || cutoffF >= 1 {
		return nil, paramErr("Lowpass", "cutoff", cutoffF, ErrCutoff)
	}

	window, err := KaiserWindow(atten, deltaW)

	if err != nil {
		return nil, err
	}

	length := len(window)

	/*
	 * Unreachable given KaiserWindow's own length derivation, which
	 * always bumps an even result to the next odd one - guarded here
	 * anyway since a filter designer receiving an even-length window is
	 * a violated internal invariant, not a parameter mistake.
	 */
	if length%2 == 0 {
		invariantViolation("kaiser window length must be odd")
	}

	ideal := make([]float32, length)
	center := (length - 1) / 2

	/*
	 * Build the ideal lowpass impulse response, a sinc centered at the
	 * middle tap.
	 */
	for n := -center; n <= center; n++ {

		if n == 0 {
			ideal[center] = cutoff
		} else {
			nFloat := float64(n)
			val := math.Sin(nFloat*math.Pi*cutoffF) / (nFloat * math.Pi)
			ideal[center+n] = float32(val)
		}

	}

	return Product(ideal, window), nil
}

/*
 * Hilbert designs a Hilbert-transform FIR filter via the windowed-ideal-
 * response method: a Kaiser window of length derived from (atten,
 * deltaW), multiplied elementwise with the ideal Hilbert impulse
 * response. The returned filter has odd length and is antisymmetric
 * about its center, with a zero center tap.
 */
func Hilbert(atten float32, deltaW float32) ([]float32, error) {
	window, err := KaiserWindow(atten, deltaW)

	if err != nil {
		return nil, err
	}

	length := len(window)

	/*
	 * Unreachable given KaiserWindow's own length derivation; guarded
	 * here since a filter designer receiving an even-length window is a
	 * violated internal invariant.
	 */
	if length%2 == 0 {
		invariantViolation("kaiser window length must be odd")
	}

	ideal := make([]float32, length)
	center := (length - 1) / 2

	/*
	 * Build the ideal Hilbert impulse response: zero at the center and
	 * at every even offset, 2/(pi*n) at every odd offset.
	 */
	for n := -center; n <= center; n++ {

		if n == 0 || n%2 == 0 {
			ideal[center+n] = 0
		} else {
			nFloat := float64(n)
			ideal[center+n] = float32(2.0 / (math.Pi * nFloat))
		}

	}

	return Product(ideal, window), nil
}
