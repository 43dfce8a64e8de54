package aptimage

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleRowCountAndPadding(t *testing.T) {
	envelope := make([]float32, LineWidth*3+500)

	for i := range envelope {
		envelope[i] = 1.0
	}

	img := Assemble(envelope, 0)
	assert.Equal(t, LineWidth, img.Width())
	assert.Equal(t, 4, img.Height())

	partial := img.(*imageStruct)
	lastRowStart := 3 * LineWidth

	for i := 500; i < LineWidth; i++ {
		assert.Equal(t, uint8(0), partial.pixels[lastRowStart+i])
	}

}

func TestAssembleDiscardsInvalidPrefix(t *testing.T) {
	envelope := make([]float32, LineWidth+100)

	for i := range envelope {
		envelope[i] = 1.0
	}

	img := Assemble(envelope, 100)
	assert.Equal(t, 1, img.Height())
}

func TestAssembleNormalizesPerRow(t *testing.T) {
	row0 := make([]float32, LineWidth)
	row1 := make([]float32, LineWidth)

	for i := range row0 {
		row0[i] = 0.5
		row1[i] = 1.0
	}

	envelope := append(append([]float32{}, row0...), row1...)
	img := Assemble(envelope, 0).(*imageStruct)

	for i := 0; i < LineWidth; i++ {
		assert.Equal(t, uint8(255), img.pixels[i])
		assert.Equal(t, uint8(255), img.pixels[LineWidth+i])
	}

}

func TestAssembleSilentRowStaysBlack(t *testing.T) {
	envelope := make([]float32, LineWidth)
	img := Assemble(envelope, 0).(*imageStruct)

	for _, p := range img.pixels {
		assert.Equal(t, uint8(0), p)
	}

}

func TestAssembleEmptyEnvelope(t *testing.T) {
	img := Assemble(nil, 0)
	assert.Equal(t, 0, img.Height())
}

func TestEncodePNGProducesValidImage(t *testing.T) {
	envelope := make([]float32, LineWidth*2)

	for i := range envelope {
		envelope[i] = float32(i%256) / 255.0
	}

	img := Assemble(envelope, 0)
	buf := &bytes.Buffer{}
	err := img.EncodePNG(buf)
	assert.NoError(t, err)

	decoded, err := png.Decode(buf)
	assert.NoError(t, err)
	bounds := decoded.Bounds()
	assert.Equal(t, LineWidth, bounds.Dx())
	assert.Equal(t, 2, bounds.Dy())
}
