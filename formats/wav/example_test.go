// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/automix/formats/wav"
)

// Example_decoding demonstrates decoding a WAV recording.
func Example_decoding() {
	// Create a sample WAV file
	samples := []int16{100, 200, 300, 400, 500}
	wavData := new(bytes.Buffer)
	wav.WriteWAV16(wavData, 16000, samples)

	// Decode the WAV file
	decoder := wav.Decoder{}
	source, err := decoder.Decode(wavData)
	if err != nil {
		fmt.Printf("Decode error: %v\n", err)
		return
	}

	fmt.Printf("Sample rate: %d Hz\n", source.SampleRate())
	fmt.Printf("Channels: %d\n", source.Channels())

	buf := make([]float32, 10)
	n, err := source.ReadSamples(buf)
	if err != nil && err != io.EOF {
		fmt.Printf("Read error: %v\n", err)
		return
	}

	fmt.Printf("Read %d samples\n", n)
	// Output:
	// Sample rate: 16000 Hz
	// Channels: 1
	// Read 5 samples
}

// Example_encoding demonstrates writing a mixed program as WAV.
func Example_encoding() {
	// A mixed mono program (normally the MixToMono16 result)
	samples := make([]int16, 1000)
	for i := range samples {
		samples[i] = int16((i % 100) * 100)
	}

	output := new(bytes.Buffer)
	err := wav.WriteWAV16(output, 48000, samples)
	if err != nil {
		fmt.Printf("Write error: %v\n", err)
		return
	}

	fmt.Printf("WAV size: %d bytes\n", output.Len())
	fmt.Printf("Header: %d bytes, data: %d bytes\n", 44, output.Len()-44)
	// Output:
	// WAV size: 2044 bytes
	// Header: 44 bytes, data: 2000 bytes
}

// Example_roundTrip writes samples out and reads them back.
func Example_roundTrip() {
	original := []int16{1000, -1000, 2000, -2000, 3000}

	wavData := new(bytes.Buffer)
	if err := wav.WriteWAV16(wavData, 8000, original); err != nil {
		fmt.Printf("Write error: %v\n", err)
		return
	}

	source, err := wav.Decoder{}.Decode(wavData)
	if err != nil {
		fmt.Printf("Decode error: %v\n", err)
		return
	}

	buf := make([]float32, len(original))
	n, err := source.ReadSamples(buf)
	if err != nil && err != io.EOF {
		fmt.Printf("Read error: %v\n", err)
		return
	}

	fmt.Printf("Round trip: %d samples preserved\n", n)
	// Output:
	// Round trip: 5 samples preserved
}

// Example_errorNotWAV shows the sentinel for non-WAV input.
func Example_errorNotWAV() {
	notWAV := bytes.NewReader([]byte("This is just text, not audio"))

	_, err := wav.Decoder{}.Decode(notWAV)
	if err == wav.ErrNotWavFile {
		fmt.Println("Detected: Not a valid WAV file")
	}
	// Output: Detected: Not a valid WAV file
}
