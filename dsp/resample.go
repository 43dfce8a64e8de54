package dsp

/*
 * defaultResampleAtten and the delta_w formula in ResampleTo define the
 * default filter specification used when the caller does not want to
 * tune the anti-alias filter by hand: 40dB stopband attenuation, with a
 * transition band spanning 20% of the passband. Resample places the
 * cutoff at the input rate's Nyquist frequency (1/L on the upsampled
 * axis), so the passband extends to 90% of the input Nyquist; when the
 * output rate is the lower one (M > L), the signal is not band-limited
 * to the output rate's Nyquist frequency.
 */
const defaultResampleAtten = 40.0

/*
 * ResampleTo resamples a signal from inputRate to outputRate, deriving
 * the interpolation/decimation ratio from their greatest common divisor
 * and applying a default anti-alias filter specification.
 */
func ResampleTo(signal []float32, inputRate uint32, outputRate uint32) ([]float32, error) {
	g := GCD(inputRate, outputRate)
	l := outputRate / g
	m := inputRate / g
	deltaW := 0.2 / float32(l)
	return Resample(signal, l, m, defaultResampleAtten, deltaW)
}

/*
 * Resample performs rational L/M resampling: conceptually, upsample by L
 * (inserting L-1 zeros between samples), lowpass-filter the result with
 * cutoff 1/L to suppress the imaging introduced by the upsampling, then
 * downsample by M. The filter has unity passband gain and no factor of
 * L is applied, so the output amplitude is the input's scaled by about
 * 1/L (exactly the filter's center tap when L == M). The implementation
 * evaluates only the output samples
 * actually emitted, and only the nonzero products of the zero-stuffed
 * sequence with the filter, so no zero-stuffed buffer is ever
 * materialised.
 *
 * L = 1 takes a fast decimation-only path that skips filter design
 * entirely: y[i] = x[i*M]. Anti-alias filtering in that case is the
 * caller's responsibility.
 */
func Resample(signal []float32, l uint32, m uint32, atten float32, deltaW float32) ([]float32, error) {

	if l == 0 || m == 0 {
		value := float64(l)

		if l != 0 {
			value = float64(m)
		}

		return nil, paramErr("Resample", "L/M", value, ErrRatio)
	}

	/*
	 * Pure decimation: no interpolation needed, so no anti-alias filter
	 * is designed. This is an intentional fast path, not an oversight -
	 * it is the caller's responsibility to pre-filter if required.
	 */
	if l == 1 {
		n := len(signal) / int(m)
		output := make([]float32, n)

		for i := 0; i < n; i++ {
			output[i] = signal[i*int(m)]
		}

		return output, nil
	}

	cutoff := float32(1.0) / float32(l)
	h, err := Lowpass(cutoff, atten, deltaW)

	if err != nil {
		return nil, err
	}

	offset := (len(h) - 1) / 2
	lInt := int(l)
	mInt := int(m)
	nIn := len(signal)
	upperT := nIn * lInt
	outputLen := (upperT + mInt - 1) / mInt
	output := make([]float32, 0, outputLen)

	/*
	 * Walk the upsampled time axis in steps of M, the decimation
	 * factor. Each output sample sums the filter taps that line up with
	 * an actual (non-zero-stuffed) input sample inside the filter's
	 * window around t.
	 */
	for t := 0; t < upperT; t += mInt {
		lowerN := t - offset

		if lowerN < 0 {
			lowerN = 0
		}

		/*
		 * Advance to the first n in the window that is a multiple of
		 * L - the only positions where the zero-stuffed sequence is
		 * nonzero.
		 */
		if rem := lowerN % lInt; rem != 0 {
			lowerN += lInt - rem
		}

		var sum float32

		for n := lowerN; n <= t+offset; n += lInt {
			sampleIdx := n / lInt

			if sampleIdx < nIn {
				sum += h[n+offset-t] * signal[sampleIdx]
			}

		}

		output = append(output, sum)
	}

	return output, nil
}
