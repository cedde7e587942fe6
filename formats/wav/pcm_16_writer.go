// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// headerSize is the canonical PCM layout: RIFF + fmt + data preamble.
const headerSize = 44

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate. This is the
// output side of the mixer: the sample layout matches what MixToMono16
// collects.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	const (
		numChannels   = 1
		bitsPerSample = 16
		bytesPerFrame = numChannels * bitsPerSample / 8
	)

	dataSize := uint32(len(samples) * bytesPerFrame)
	le := binary.LittleEndian

	header := make([]byte, headerSize)
	copy(header[0:], "RIFF")
	le.PutUint32(header[4:], 36+dataSize)
	copy(header[8:], "WAVE")

	copy(header[12:], "fmt ")
	le.PutUint32(header[16:], 16) // PCM fmt chunk size
	le.PutUint16(header[20:], 1)  // PCM format tag
	le.PutUint16(header[22:], numChannels)
	le.PutUint32(header[24:], uint32(sampleRate))
	le.PutUint32(header[28:], uint32(sampleRate*bytesPerFrame))
	le.PutUint16(header[32:], bytesPerFrame)
	le.PutUint16(header[34:], bitsPerSample)

	copy(header[36:], "data")
	le.PutUint32(header[40:], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	// Stream the data chunk out in bounded pieces so a long session
	// never needs one giant byte buffer
	const chunkFrames = 8192
	buf := make([]byte, 0, min(len(samples), chunkFrames)*bytesPerFrame)

	for start := 0; start < len(samples); start += chunkFrames {
		end := min(start+chunkFrames, len(samples))
		buf = buf[:0]
		for _, s := range samples[start:end] {
			buf = le.AppendUint16(buf, uint16(s))
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
