/*
 * Package wavio reads and writes RIFF/WAVE files.
 *
 * The decoder is adapted from a hand-rolled RIFF parser: it reads the
 * RIFF header, the 'fmt ' chunk and the 'data' chunk directly via
 * encoding/binary rather than through a third-party container library,
 * since none of the retrieved examples carries one. Sample formats
 * PCM (8/16/24/32-bit) and IEEE float (32/64-bit) are supported on
 * decode. Encode only ever produces 16-bit PCM mono, which is all the
 * CLI host needs to write out the resampled signal for debugging.
 */
package wavio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	bitsPerByte         = 8
	minChunkHeaderSize  = 8
	minChunkSizeFormat  = 16
	minTotalHeaderSize  = 44
)

const (
	audioPCM        = 0x0001
	audioIEEEFloat  = 0x0003
	formatWAVE      = 0x45564157 // "WAVE"
	idData          = 0x61746164 // "data"
	idFormat        = 0x20746d66 // "fmt "
	idRIFF          = 0x46464952 // "RIFF"
)

/*
 * File represents a decoded RIFF/WAVE file.
 */
type File interface {
	SampleRate() uint32
	BitDepth() uint16
	ChannelCount() uint16

	/*
	 * Mono returns the file's samples downmixed to a single channel by
	 * averaging all channels together.
	 */
	Mono() ([]float32, error)
}

type fileStruct struct {
	sampleRate   uint32
	bitDepth     uint16
	channelCount uint16
	samples      []float64 // interleaved
}

func (this *fileStruct) SampleRate() uint32 {
	return this.sampleRate
}

func (this *fileStruct) BitDepth() uint16 {
	return this.bitDepth
}

func (this *fileStruct) ChannelCount() uint16 {
	return this.channelCount
}

func (this *fileStruct) Mono() ([]float32, error) {
	channelCount := this.channelCount

	/*
	 * A file with no channels cannot be downmixed.
	 */
	if channelCount == 0 {
		return nil, fmt.Errorf("wave file declares zero channels")
	}

	channelCount64 := uint64(channelCount)
	numSamples := uint64(len(this.samples)) / channelCount64
	mono := make([]float32, numSamples)
	scale := 1.0 / float64(channelCount)

	for i := uint64(0); i < numSamples; i++ {
		var sum float64

		for c := uint64(0); c < channelCount64; c++ {
			sum += this.samples[(i*channelCount64)+c]
		}

		mono[i] = float32(sum * scale)
	}

	return mono, nil
}

type riffHeader struct {
	ChunkID   uint32
	ChunkSize uint32
	Format    uint32
}

type formatHeader struct {
	ChunkID      uint32
	ChunkSize    uint32
	AudioFormat  uint16
	ChannelCount uint16
	SampleRate   uint32
	ByteRate     uint32
	BlockAlign   uint16
	BitDepth     uint16
}

type chunkHeader struct {
	ChunkID   uint32
	ChunkSize uint32
}

type dataHeader struct {
	ChunkID   uint32
	ChunkSize uint32
}

/*
 * Skips over a number of bytes in the reader.
 */
func skipData(reader *bytes.Reader, numBytes uint64) error {
	max := uint64(math.MaxInt32)

	if numBytes > max {
		return fmt.Errorf("cannot skip more than %d bytes", max)
	}

	_, err := reader.Seek(int64(numBytes), io.SeekCurrent)
	return err
}

/*
 * Looks ahead at the next chunk header without consuming it.
 */
func lookaheadChunk(reader *bytes.Reader) (*chunkHeader, error) {
	hdr := chunkHeader{}
	err := binary.Read(reader, binary.LittleEndian, &hdr)

	if err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}

	_, err = reader.Seek(-minChunkHeaderSize, io.SeekCurrent)
	return &hdr, err
}

/*
 * Skips over chunks until one with the given id is found.
 */
func skipToChunk(reader *bytes.Reader, chunkId uint32) error {

	for {
		hdr, err := lookaheadChunk(reader)

		if err != nil {
			return err
		}

		if hdr.ChunkID == chunkId {
			return nil
		}

		size := hdr.ChunkSize

		/*
		 * Chunks are padded to an even number of bytes.
		 */
		if size%2 != 0 {
			size++
		}

		err = skipData(reader, uint64(size)+minChunkHeaderSize)

		if err != nil {
			return err
		}

	}

}

func readHeaderRIFF(reader *bytes.Reader) (*riffHeader, error) {
	hdr := riffHeader{}
	err := binary.Read(reader, binary.LittleEndian, &hdr)

	if err != nil {
		return nil, fmt.Errorf("failed to read RIFF header: %w", err)
	} else if hdr.ChunkID != idRIFF {
		return nil, fmt.Errorf("not a RIFF file: chunk id %#08x", hdr.ChunkID)
	} else if hdr.Format != formatWAVE {
		return nil, fmt.Errorf("RIFF file is not in WAVE format: %#08x", hdr.Format)
	}

	return &hdr, nil
}

func readHeaderFormat(reader *bytes.Reader) (*formatHeader, error) {
	hdr := formatHeader{}
	err := binary.Read(reader, binary.LittleEndian, &hdr)

	if err != nil {
		return nil, fmt.Errorf("failed to read format header: %w", err)
	}

	chunkSize := int64(hdr.ChunkSize)
	skip := chunkSize - minChunkSizeFormat

	/*
	 * Some encoders pad the format chunk with extension fields we do
	 * not need.
	 */
	if skip > 0 {

		if skip%2 != 0 {
			skip++
		}

		err = skipData(reader, uint64(skip))

		if err != nil {
			return nil, fmt.Errorf("failed to skip format extension: %w", err)
		}

	}

	if hdr.ChunkID != idFormat {
		return nil, fmt.Errorf("expected 'fmt ' chunk, found %#08x", hdr.ChunkID)
	} else if hdr.AudioFormat != audioPCM && hdr.AudioFormat != audioIEEEFloat {
		return nil, fmt.Errorf("unsupported audio format %#04x", hdr.AudioFormat)
	} else if hdr.AudioFormat == audioPCM && hdr.BitDepth != 8 && hdr.BitDepth != 16 && hdr.BitDepth != 24 && hdr.BitDepth != 32 {
		return nil, fmt.Errorf("unsupported PCM bit depth %d", hdr.BitDepth)
	} else if hdr.AudioFormat == audioIEEEFloat && hdr.BitDepth != 32 && hdr.BitDepth != 64 {
		return nil, fmt.Errorf("unsupported float bit depth %d", hdr.BitDepth)
	}

	return &hdr, nil
}

func readHeaderData(reader *bytes.Reader) (*dataHeader, error) {
	hdr := dataHeader{}
	err := binary.Read(reader, binary.LittleEndian, &hdr)

	if err != nil {
		return nil, fmt.Errorf("failed to read data header: %w", err)
	} else if hdr.ChunkID != idData {
		return nil, fmt.Errorf("expected 'data' chunk, found %#08x", hdr.ChunkID)
	}

	return &hdr, nil
}

/*
 * Decode parses a RIFF/WAVE stream into a File.
 */
func Decode(reader io.Reader) (File, error) {
	buffer, err := io.ReadAll(reader)

	/*
	 * Check if the wave stream was successfully read.
	 */
	if err != nil {
		return nil, fmt.Errorf("failed to read wave stream: %w", err)
	} else {
		byteReader := bytes.NewReader(buffer)
		_, err := readHeaderRIFF(byteReader)

		/*
		 * Check if the RIFF header was successfully read.
		 */
		if err != nil {
			return nil, err
		} else {
			hdrFormat, err := readHeaderFormat(byteReader)

			/*
			 * Check if the format header was successfully read.
			 */
			if err != nil {
				return nil, err
			} else {
				err := skipToChunk(byteReader, idData)

				/*
				 * Check if we successfully arrived at the data chunk.
				 */
				if err != nil {
					return nil, fmt.Errorf("failed to locate data chunk: %w", err)
				} else {
					hdrData, err := readHeaderData(byteReader)

					/*
					 * Check if the data header was successfully read.
					 */
					if err != nil {
						return nil, err
					} else {
						raw := make([]byte, hdrData.ChunkSize)
						_, err := io.ReadFull(byteReader, raw)

						/*
						 * Check if the sample data was read.
						 */
						if err != nil {
							return nil, fmt.Errorf("failed to read sample data: %w", err)
						} else {
							samples, err := bytesToSamples(raw, hdrFormat.AudioFormat, hdrFormat.BitDepth)

							/*
							 * Check if the sample data was decoded.
							 */
							if err != nil {
								return nil, fmt.Errorf("failed to decode sample data: %w", err)
							} else {
								file := fileStruct{
									sampleRate:   hdrFormat.SampleRate,
									bitDepth:     hdrFormat.BitDepth,
									channelCount: hdrFormat.ChannelCount,
									samples:      samples,
								}

								return &file, nil
							}

						}

					}

				}

			}

		}

	}

}

func bytesToSamples(data []byte, sampleFormat uint16, bitDepth uint16) ([]float64, error) {

	switch {
	case sampleFormat == audioPCM && bitDepth == 8:
		return bytesToSamplesLPCM8(data), nil
	case sampleFormat == audioPCM && bitDepth == 16:
		return bytesToSamplesLPCM16(data)
	case sampleFormat == audioPCM && bitDepth == 24:
		return bytesToSamplesLPCM24(data), nil
	case sampleFormat == audioPCM && bitDepth == 32:
		return bytesToSamplesLPCM32(data)
	case sampleFormat == audioIEEEFloat && bitDepth == 32:
		return bytesToSamplesIEEE32(data)
	case sampleFormat == audioIEEEFloat && bitDepth == 64:
		return bytesToSamplesIEEE64(data)
	default:
		return nil, fmt.Errorf("unsupported combination of format %#04x and bit depth %d", sampleFormat, bitDepth)
	}

}

func bytesToSamplesLPCM8(data []byte) []float64 {
	samples := make([]float64, len(data))
	scale := 1.0 / float64(math.MaxInt8)

	for i, b := range data {
		temp := int16(b) + math.MinInt8
		samples[i] = scale * float64(temp)
	}

	return samples
}

func bytesToSamplesLPCM16(data []byte) ([]float64, error) {
	numSamples := len(data) / 2
	samplesInt := make([]int16, numSamples)
	err := binary.Read(bytes.NewReader(data), binary.LittleEndian, samplesInt)

	/*
	 * Check if the LPCM16 data was successfully decoded.
	 */
	if err != nil {
		return nil, fmt.Errorf("failed to decode LPCM16 data: %w", err)
	} else {
		samples := make([]float64, numSamples)
		scale := 2.0 / (math.MaxInt16 - math.MinInt16)

		for i, v := range samplesInt {
			samples[i] = scale * float64(v)
		}

		return samples, nil
	}

}

func bytesToSamplesLPCM24(data []byte) []float64 {
	const size = 3
	numSamples := len(data) / size
	samples := make([]float64, numSamples)
	scale := 1.0 / float64(0x007fffff+1)

	for i := 0; i < numSamples; i++ {
		off := i * size
		v := int32(data[off]) | int32(data[off+1])<<8 | int32(data[off+2])<<16

		/*
		 * Sign-extend the 24-bit two's-complement value.
		 */
		if v&0x00800000 != 0 {
			v |= ^int32(0x00ffffff)
		}

		samples[i] = scale * float64(v)
	}

	return samples
}

func bytesToSamplesLPCM32(data []byte) ([]float64, error) {
	numSamples := len(data) / 4
	samplesInt := make([]int32, numSamples)
	err := binary.Read(bytes.NewReader(data), binary.LittleEndian, samplesInt)

	/*
	 * Check if the LPCM32 data was successfully decoded.
	 */
	if err != nil {
		return nil, fmt.Errorf("failed to decode LPCM32 data: %w", err)
	} else {
		samples := make([]float64, numSamples)
		scale := 2.0 / (float64(math.MaxInt32) - float64(math.MinInt32))

		for i, v := range samplesInt {
			samples[i] = scale * float64(v)
		}

		return samples, nil
	}

}

func bytesToSamplesIEEE32(data []byte) ([]float64, error) {
	numSamples := len(data) / 4
	samplesFloat := make([]float32, numSamples)
	err := binary.Read(bytes.NewReader(data), binary.LittleEndian, samplesFloat)

	/*
	 * Check if the 32-bit IEEE floating-point data was successfully
	 * decoded.
	 */
	if err != nil {
		return nil, fmt.Errorf("failed to decode 32-bit IEEE floating-point data: %w", err)
	} else {
		samples := make([]float64, numSamples)

		for i, v := range samplesFloat {
			samples[i] = float64(v)
		}

		return samples, nil
	}

}

func bytesToSamplesIEEE64(data []byte) ([]float64, error) {
	numSamples := len(data) / 8
	samples := make([]float64, numSamples)
	err := binary.Read(bytes.NewReader(data), binary.LittleEndian, samples)

	/*
	 * Check if the 64-bit IEEE floating-point data was successfully
	 * decoded.
	 */
	if err != nil {
		return nil, fmt.Errorf("failed to decode 64-bit IEEE floating-point data: %w", err)
	} else {
		return samples, nil
	}

}

/*
 * Encode writes a mono signal as 16-bit PCM WAVE data.
 */
func Encode(writer io.Writer, signal []float32, sampleRate uint32) error {
	const bitDepth = 16
	const channelCount = 1
	blockAlign := uint16(channelCount * bitDepth / bitsPerByte)
	byteRate := sampleRate * uint32(blockAlign)
	numSamples := len(signal)
	dataBytes := uint32(numSamples) * uint32(blockAlign)
	riffSize := dataBytes + (minTotalHeaderSize - minChunkHeaderSize)

	samplesInt := make([]int16, numSamples)
	const delta = math.MaxInt16 - math.MinInt16
	scale := 0.5 * float64(delta)

	for i, sample := range signal {
		s := float64(sample)

		if s < -1.0 {
			s = -1.0
		} else if s > 1.0 {
			s = 1.0
		}

		tmp := int32(scale * s)

		if tmp > math.MaxInt16 {
			tmp = math.MaxInt16
		} else if tmp < math.MinInt16 {
			tmp = math.MinInt16
		}

		samplesInt[i] = int16(tmp)
	}

	hdrRiff := riffHeader{
		ChunkID:   idRIFF,
		ChunkSize: riffSize,
		Format:    formatWAVE,
	}

	hdrFormat := formatHeader{
		ChunkID:      idFormat,
		ChunkSize:    minChunkSizeFormat,
		AudioFormat:  audioPCM,
		ChannelCount: channelCount,
		SampleRate:   sampleRate,
		ByteRate:     byteRate,
		BlockAlign:   blockAlign,
		BitDepth:     bitDepth,
	}

	hdrData := dataHeader{
		ChunkID:   idData,
		ChunkSize: dataBytes,
	}

	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, hdrRiff)
	binary.Write(buf, binary.LittleEndian, hdrFormat)
	binary.Write(buf, binary.LittleEndian, hdrData)
	binary.Write(buf, binary.LittleEndian, samplesInt)

	_, err := writer.Write(buf.Bytes())
	return err
}
