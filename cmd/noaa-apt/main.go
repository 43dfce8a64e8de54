package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/Kasetkin/noaa-apt/aptimage"
	"github.com/Kasetkin/noaa-apt/dsp"
	"github.com/Kasetkin/noaa-apt/internal/config"
	"github.com/Kasetkin/noaa-apt/wavio"
)

/*
 * The entry point of our program.
 */
func main() {
	inputPath := pflag.StringP("input", "i", "", "Input WAV recording (required).")
	outputPath := pflag.StringP("output", "o", "", "Output PNG image (required).")
	configPath := pflag.StringP("config", "c", "", "Optional YAML config file with decode parameters.")
	atten := pflag.Float32("atten", 0, "Override the configured filter attenuation, in dB.")
	deltaW := pflag.Float32("delta-w", 0, "Override the configured filter transition width.")
	emitResampled := pflag.String("emit-resampled", "", "Optional debug WAV path for the resampled signal.")
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug-level logging.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: noaa-apt --input <wav> --output <png> [flags]\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}

	if *inputPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "both --input and --output are required")
		pflag.Usage()
		os.Exit(1)
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	flags := runFlags{
		inputPath:     *inputPath,
		outputPath:    *outputPath,
		configPath:    *configPath,
		atten:         *atten,
		deltaW:        *deltaW,
		emitResampled: *emitResampled,
	}

	err := Run(context.Background(), flags)

	/*
	 * Every error Run returns (a parameter-domain error, or a file or
	 * format failure) is reported and exits with status 1. Programmer
	 * errors never arrive here as values: they panic inside dsp with a
	 * stack trace.
	 */
	if err != nil {
		log.Error("decode failed", "error", err)
		os.Exit(1)
	}

}

type runFlags struct {
	inputPath     string
	outputPath    string
	configPath    string
	atten         float32
	deltaW        float32
	emitResampled string
}

/*
 * Run drives the full read -> resample -> demodulate -> assemble ->
 * encode pipeline for one recording.
 */
func Run(ctx context.Context, flags runFlags) error {
	cfg, err := config.Load(flags.configPath)

	/*
	 * Check if the configuration was successfully loaded.
	 */
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	} else {
		atten := cfg.Attenuation
		deltaW := cfg.DeltaW

		if flags.atten > 0 {
			atten = flags.atten
		}

		if flags.deltaW > 0 {
			deltaW = flags.deltaW
		}

		inputPath := sanitizeFlagPath(flags.inputPath)
		outputPath := sanitizeFlagPath(flags.outputPath)
		err := ctx.Err()

		/*
		 * Check if the run was cancelled before any work began.
		 */
		if err != nil {
			return err
		} else {
			signal, sampleRate, err := decodeInput(inputPath)

			/*
			 * Check if the input was successfully decoded.
			 */
			if err != nil {
				return err
			} else {
				err := ctx.Err()

				/*
				 * Check if the run was cancelled after decoding.
				 */
				if err != nil {
					return err
				} else {
					resampled, err := resampleStage(signal, sampleRate, cfg.WorkingRate, flags.emitResampled)

					/*
					 * Check if the signal was successfully resampled.
					 */
					if err != nil {
						return err
					} else {
						err := ctx.Err()

						/*
						 * Check if the run was cancelled after resampling.
						 */
						if err != nil {
							return err
						} else {
							envelope, invalidPrefix, err := demodulateStage(resampled, atten, deltaW)

							/*
							 * Check if the signal was successfully demodulated.
							 */
							if err != nil {
								return err
							} else {
								err := ctx.Err()

								/*
								 * Check if the run was cancelled after demodulating.
								 */
								if err != nil {
									return err
								} else {
									err := encodeOutput(outputPath, envelope, invalidPrefix)

									/*
									 * Check if the image was successfully encoded.
									 */
									if err != nil {
										return err
									} else {
										log.Info("decode complete", "output", outputPath)
										return nil
									}

								}

							}

						}

					}

				}

			}

		}

	}

}

/*
 * decodeInput opens, decodes, and downmixes a WAV recording to mono,
 * returning the signal and its native sample rate.
 */
func decodeInput(path string) ([]float32, uint32, error) {
	start := time.Now()
	input, err := os.Open(path)

	/*
	 * Check if the input file was successfully opened.
	 */
	if err != nil {
		return nil, 0, fmt.Errorf("opening input: %w", err)
	} else {
		defer input.Close()
		wave, err := wavio.Decode(input)

		/*
		 * Check if the wave file was successfully decoded.
		 */
		if err != nil {
			return nil, 0, fmt.Errorf("decoding wave file: %w", err)
		} else {
			signal, err := wave.Mono()

			/*
			 * Check if the signal was successfully downmixed.
			 */
			if err != nil {
				return nil, 0, fmt.Errorf("downmixing to mono: %w", err)
			} else {
				log.Debug("decoded input", "samples", len(signal), "sample_rate", wave.SampleRate(), "elapsed", time.Since(start))
				return signal, wave.SampleRate(), nil
			}

		}

	}

}

/*
 * resampleStage converts signal from its native rate to workingRate and,
 * if emitPath is non-empty, writes the resampled signal to a debug WAV
 * file alongside the real pipeline output.
 */
func resampleStage(signal []float32, sampleRate uint32, workingRate uint32, emitPath string) ([]float32, error) {
	start := time.Now()
	resampled, err := dsp.ResampleTo(signal, sampleRate, workingRate)

	/*
	 * Check if the signal was successfully resampled.
	 */
	if err != nil {
		return nil, fmt.Errorf("resampling: %w", err)
	} else {
		log.Debug("resampled", "samples", len(resampled), "rate", workingRate, "elapsed", time.Since(start))
		err := emitDebugResample(emitPath, resampled, workingRate)

		/*
		 * Check if the optional debug wave file was successfully
		 * written.
		 */
		if err != nil {
			return nil, err
		} else {
			return resampled, nil
		}

	}

}

/*
 * emitDebugResample writes signal to path as a debug WAV file, unless
 * path is empty, in which case it does nothing.
 */
func emitDebugResample(path string, signal []float32, sampleRate uint32) error {

	if path == "" {
		return nil
	} else {
		debugPath := sanitizeFlagPath(path)
		err := writeDebugWAV(debugPath, signal, sampleRate)

		/*
		 * Check if the debug wave file was successfully written.
		 */
		if err != nil {
			return fmt.Errorf("writing debug wave file: %w", err)
		} else {
			return nil
		}

	}

}

/*
 * demodulateStage recovers the AM envelope and reports the length of its
 * invalid leading prefix (the Hilbert filter's group-delay transient).
 */
func demodulateStage(resampled []float32, atten float32, deltaW float32) ([]float32, int, error) {
	start := time.Now()
	envelope, err := dsp.Demodulate(resampled, atten, deltaW)

	/*
	 * Check if the envelope was successfully demodulated.
	 */
	if err != nil {
		return nil, 0, fmt.Errorf("demodulating: %w", err)
	} else {
		h, err := dsp.Hilbert(atten, deltaW)

		/*
		 * Check if the Hilbert filter length was available to compute
		 * the invalid-prefix length.
		 */
		if err != nil {
			return nil, 0, fmt.Errorf("computing Hilbert filter length: %w", err)
		} else {
			invalidPrefix := len(h) / 2
			log.Debug("demodulated", "samples", len(envelope), "invalid_prefix", invalidPrefix, "elapsed", time.Since(start))
			return envelope, invalidPrefix, nil
		}

	}

}

/*
 * encodeOutput assembles the envelope into an APT raster and writes it
 * as a PNG at path.
 */
func encodeOutput(path string, envelope []float32, invalidPrefix int) error {
	start := time.Now()
	img := aptimage.Assemble(envelope, invalidPrefix)
	output, err := os.Create(path)

	/*
	 * Check if the output file was successfully created.
	 */
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	} else {
		defer output.Close()
		err := img.EncodePNG(output)

		/*
		 * Check if the image was successfully encoded.
		 */
		if err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		} else {
			log.Debug("encoded image", "width", img.Width(), "height", img.Height(), "elapsed", time.Since(start))
			return nil
		}

	}

}

func writeDebugWAV(path string, signal []float32, sampleRate uint32) error {
	file, err := os.Create(path)

	/*
	 * Check if the debug wave file was successfully created.
	 */
	if err != nil {
		return err
	} else {
		defer file.Close()
		return wavio.Encode(file, signal, sampleRate)
	}

}
