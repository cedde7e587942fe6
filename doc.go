// SPDX-License-Identifier: EPL-2.0

// Package automix provides a Dugan-style automatic microphone mixer for
// Go applications.
//
// The realtime core lives in the engine subpackage: an allocation-free
// gain-sharing mixer that keeps whichever microphone carries the program
// material open while idle channels are attenuated, with the total gain
// held approximately constant. This package adds the offline front end
// for mixing recorded sessions.
//
// # Quick Start
//
// The simplest way to auto-mix a set of recordings is MixToMono16:
//
//	// Decode one recording per microphone
//	var sources []audio.Source
//	for _, path := range paths {
//	    f, _ := os.Open(path)
//	    src, _ := wav.Decoder{}.Decode(f)
//	    sources = append(sources, src)
//	}
//
//	// Auto-mix at 48kHz in 256-sample blocks
//	pcm16, rate, _ := automix.MixToMono16(sources, 48000, 256)
//
//	// pcm16 is the mixed program as mono 16-bit PCM
//
// # Realtime Use
//
// For live audio, drive the engine directly with your host's block
// callback:
//
//	eng := engine.New(numMics, 48000, 256)
//	// audio thread:
//	eng.Process(buffers, 256)
//	// control threads, any time:
//	eng.SetChannelWeight(0, 0.8)
//	// metering reader, ~30Hz:
//	m, ok := eng.ChannelMetering(0)
//
// # Format Decoders
//
// Each format has its own decoder:
//
//	// WAV
//	wavDecoder := wav.Decoder{}
//	src, _ := wavDecoder.Decode(reader)
//
//	// MP3
//	mp3Decoder := mp3.Decoder{}
//	src, _ := mp3Decoder.Decode(reader)
//
//	// Vorbis
//	vorbisDecoder := vorbis.Decoder{}
//	src, _ := vorbisDecoder.Decode(reader)
//
//	// AIFF
//	aiffDecoder := aiff.Decoder{}
//	src, _ := aiffDecoder.Decode(reader)
//
// All decoders return an audio.Source. Sources at the wrong sample rate
// or with multiple channels are aligned automatically by MixToMono16.
//
// # Writing WAV Files
//
// The mixed program can be written as a PCM WAV file:
//
//	file, _ := os.Create("mix.wav")
//	wav.WriteWAV16(file, rate, pcm16)
//
// # Performance
//
// The engine path is optimized for realtime use:
//   - No allocation, locking, or dynamic dispatch per block
//   - Incremental sliding-window RMS (O(1) per sample)
//   - Wait-free parameter updates and metering reads
//
// See the engine and dsp subpackages for detailed documentation.
package automix
