package dsp

/*
 * GCD computes the greatest common divisor of two unsigned 32-bit
 * integers using the Euclidean algorithm. GCD(a, 0) = a and
 * GCD(0, 0) = 0. Used to reduce a sample-rate ratio to lowest terms
 * before designing a resampler.
 */
func GCD(a uint32, b uint32) uint32 {

	/*
	 * Repeatedly replace the larger value with the remainder of dividing
	 * it by the smaller one, until the smaller one reaches zero.
	 */
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
