// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"
)

// buildWAV builds an in-memory PCM WAV with the given format fields.
func buildWAV(sampleRate, channels, bitsPerSample int, audioFormat uint16, samples []int16) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bits/8)
	blockAlign := numChannels * (bits / 8)
	dataSize := uint32(len(samples) * 2)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, audioFormat)
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, s)
	}

	return buf.Bytes()
}

func TestDecoder_ValidFile(t *testing.T) {
	t.Parallel()

	data := buildWAV(8000, 1, 16, 1, []int16{100, 200, 300})

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}
}

func TestDecoder_StereoFile(t *testing.T) {
	t.Parallel()

	data := buildWAV(44100, 2, 16, 1, []int16{1, 2, 3, 4})

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
}

func TestDecoder_NotWAV(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("definitely not RIFF data"))); err != ErrNotWavFile {
		t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
	}
}

func TestDecoder_TruncatedHeader(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("RIFF"))); err == nil {
		t.Error("Decode() error = nil, want error for truncated header")
	}
}

func TestDecoder_RejectsNon16Bit(t *testing.T) {
	t.Parallel()

	data := buildWAV(8000, 1, 8, 1, nil)
	if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err != ErrOnlyPCM16bitSupported {
		t.Errorf("Decode() error = %v, want ErrOnlyPCM16bitSupported", err)
	}
}

func TestDecoder_RejectsNonPCM(t *testing.T) {
	t.Parallel()

	// IEEE float format tag
	data := buildWAV(8000, 1, 16, 3, nil)
	if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
		t.Error("Decode() error = nil, want error for non-PCM format")
	}
}

func TestDecoder_SkipsUnknownChunks(t *testing.T) {
	t.Parallel()

	// An INFO chunk between the RIFF header and fmt, as DAW exports do
	data := buildWAV(8000, 1, 16, 1, []int16{100, 200})
	var withInfo bytes.Buffer
	withInfo.Write(data[:12])
	withInfo.WriteString("INFO")
	binary.Write(&withInfo, binary.LittleEndian, uint32(4))
	withInfo.Write([]byte{0, 0, 0, 0})
	withInfo.Write(data[12:])

	// Patch RIFF size for the inserted 12 bytes
	out := withInfo.Bytes()
	riffSize := binary.LittleEndian.Uint32(out[4:8]) + 12
	binary.LittleEndian.PutUint32(out[4:8], riffSize)

	src, err := Decoder{}.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("Decode() error = %v, want unknown chunks skipped", err)
	}
	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	// bytes.Buffer is not a Seeker, forcing the buffered path
	data := buildWAV(8000, 1, 16, 1, []int16{100, 200})
	src, err := Decoder{}.Decode(bytes.NewBuffer(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
}

func TestSource_ReadSamples_Conversion(t *testing.T) {
	t.Parallel()

	data := buildWAV(8000, 1, 16, 1, []int16{0, 16384, 32767, -16384, -32768})
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dst := make([]float32, 5)
	n, err := src.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 5 {
		t.Fatalf("ReadSamples() n = %d, want 5", n)
	}

	expected := []float32{0, 0.5, 1, -0.5, -1}
	for i := 0; i < n; i++ {
		if math.Abs(float64(dst[i]-expected[i])) > 0.01 {
			t.Errorf("dst[%d] = %v, want ~%v", i, dst[i], expected[i])
		}
	}
}

func TestSource_ReadSamples_PartialThenEOF(t *testing.T) {
	t.Parallel()

	data := buildWAV(8000, 1, 16, 1, []int16{100, 200, 300, 400, 500})
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dst := make([]float32, 2)
	if n, err := src.ReadSamples(dst); n != 2 || err != nil {
		t.Fatalf("first ReadSamples() = (%d, %v), want (2, nil)", n, err)
	}
	if n, err := src.ReadSamples(dst); n != 2 || err != nil {
		t.Fatalf("second ReadSamples() = (%d, %v), want (2, nil)", n, err)
	}
	if n, err := src.ReadSamples(dst); n != 1 || err != io.EOF {
		t.Fatalf("third ReadSamples() = (%d, %v), want (1, io.EOF)", n, err)
	}
	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Fatalf("final ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	data := buildWAV(8000, 1, 16, 1, []int16{100})
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_MetadataAndClose(t *testing.T) {
	t.Parallel()

	data := buildWAV(16000, 1, 16, 1, []int16{1, 2})
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.BufSize() <= 0 {
		t.Errorf("BufSize() = %d, want positive", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDecoder_VariousSampleRates(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{8000, 16000, 22050, 44100, 48000, 96000} {
		data := buildWAV(rate, 1, 16, 1, []int16{1})
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("Decode() at %d Hz error = %v", rate, err)
		}
		if src.SampleRate() != rate {
			t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), rate)
		}
	}
}

func BenchmarkDecoder_Decode(b *testing.B) {
	data := buildWAV(44100, 2, 16, 1, make([]int16, 8192))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	data := buildWAV(44100, 2, 16, 1, make([]int16, 65536))
	dst := make([]float32, 4096)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		for {
			n, err := src.ReadSamples(dst)
			if n == 0 || err == io.EOF {
				break
			}
		}
	}
}
