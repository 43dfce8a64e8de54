/*
 * Package aptimage assembles a demodulated APT envelope into a grayscale
 * raster image, reshaping the flat envelope slice into fixed-width rows
 * at the APT line rate and normalizing each row independently.
 */
package aptimage

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/Kasetkin/noaa-apt/dsp"
)

/*
 * LineWidth is the number of envelope samples, and therefore pixels, in
 * a single APT image row at the module's fixed 11025 Hz working rate.
 */
const LineWidth = 2080

/*
 * Image is a fixed-width 8-bit grayscale raster assembled from a
 * demodulated envelope.
 */
type Image interface {
	Width() int
	Height() int
	EncodePNG(writer io.Writer) error
}

type imageStruct struct {
	width  int
	height int
	pixels []uint8 // row-major, one byte per pixel
}

func (this *imageStruct) Width() int {
	return this.width
}

func (this *imageStruct) Height() int {
	return this.height
}

func (this *imageStruct) EncodePNG(writer io.Writer) error {
	img := image.NewGray(image.Rect(0, 0, this.width, this.height))

	for y := 0; y < this.height; y++ {
		rowStart := y * this.width

		for x := 0; x < this.width; x++ {
			img.SetGray(x, y, color.Gray{Y: this.pixels[rowStart+x]})
		}

	}

	return png.Encode(writer, img)
}

/*
 * Assemble slices a demodulated envelope into consecutive rows of
 * LineWidth samples, discarding the leading invalidPrefix samples (the
 * Hilbert filter's transient, per dsp.Demodulate). Each row is
 * normalized independently against its own peak and quantized to 8-bit
 * grayscale. The final, possibly partial, row is zero-padded.
 */
func Assemble(envelope []float32, invalidPrefix int) Image {

	if invalidPrefix < 0 || invalidPrefix > len(envelope) {
		invalidPrefix = len(envelope)
	}

	usable := envelope[invalidPrefix:]
	numSamples := len(usable)
	height := (numSamples + LineWidth - 1) / LineWidth

	/*
	 * An empty envelope still produces a well-formed, zero-height
	 * image rather than a nil one.
	 */
	if numSamples == 0 {
		height = 0
	}

	pixels := make([]uint8, height*LineWidth)

	for row := 0; row < height; row++ {
		start := row * LineWidth
		end := start + LineWidth

		if end > numSamples {
			end = numSamples
		}

		line := usable[start:end]
		peak := dsp.GetMax(line)
		rowOffset := row * LineWidth

		/*
		 * A silent row (peak 0) stays all black rather than dividing
		 * by zero.
		 */
		if peak <= 0 {
			continue
		}

		scale := 255.0 / peak

		for i, sample := range line {

			if sample < 0 {
				sample = 0
			}

			value := sample * scale

			if value > 255 {
				value = 255
			}

			pixels[rowOffset+i] = uint8(value)
		}

	}

	return &imageStruct{
		width:  LineWidth,
		height: height,
		pixels: pixels,
	}
}
