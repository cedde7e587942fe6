// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming front end that feeds the automix
// engine.
//
// This package contains the building blocks used to turn microphone
// recordings into aligned mono block streams:
//   - Source interface for audio input
//   - Resampler for aligning sources to the session sample rate
//   - MonoMixer for folding multi-channel captures to one mic stream
//   - Registry for decoder registration and lookup by extension
//
// # Source Interface
//
// The Source interface is the foundation of the pipeline:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All format decoders and processors implement this interface, allowing
// them to be chained together in processing pipelines.
//
// # Aligning Sources
//
// The automix engine is fixed at one sample rate per session and treats
// every input as a single microphone. Recordings rarely arrive that way,
// so each one is wrapped before mixing:
//
//	aligned := audio.NewMonoMixer(audio.NewResampler(src, 48000))
//	buf := make([]float32, 256)
//	n, err := aligned.ReadSamples(buf)
//
// The Resampler uses cubic interpolation and works for both upsampling
// and downsampling; the MonoMixer averages channels.
//
// # Format Registry
//
// The registry maps container types to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.DecoderFor("session/mic1.wav")
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// This normalized format matches what the engine processes and ensures
// no clipping during intermediate processing.
//
// # Error Handling
//
// Streaming functions return io.EOF when no more data is available.
// Other errors indicate problems with the source or processing:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
