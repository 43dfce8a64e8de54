package dsp

/*
 * Convergence threshold: the series is truncated once the next term
 * contributes less than this fraction of the accumulated partial sum.
 */
const besselSeriesTolerance = 1e-9

/*
 * BesselI0 computes the modified Bessel function of the first kind,
 * order zero:
 *
 *	I0(x) = sum_{k=0}^inf (x/2)^(2k) / (k!)^2
 *
 * for real x >= 0, accurate to a relative error of 1e-6 over
 * x in [0, 20]. Evaluated in float64 internally regardless of the
 * single-precision signal path, since the series is ill-conditioned in
 * float32 for the larger beta values the Kaiser window can produce.
 *
 * Returns a parameter-domain error instead of a result for x beyond the
 * range this implementation is accurate and safe from overflow for.
 */
func BesselI0(x float64) (float64, error) {

	/*
	 * Beyond this point the series has not been verified for accuracy,
	 * and the Kaiser window derivation never needs it in practice.
	 */
	if x > besselOverflowBeta {
		return 0, paramErr("BesselI0", "x", x, ErrBesselDomain)
	}

	halfX := x / 2.0
	term := 1.0
	sum := 1.0

	/*
	 * Accumulate successive terms of the series until the next one is
	 * negligible relative to the running sum.
	 */
	for k := 1; ; k++ {
		kFloat := float64(k)
		term *= (halfX * halfX) / (kFloat * kFloat)
		sum += term

		if term < besselSeriesTolerance*sum {
			break
		}

	}

	return sum, nil
}
