// SPDX-License-Identifier: EPL-2.0

// Package engine implements a Dugan-style gain-sharing automatic
// microphone mixer for up to 32 live inputs.
//
// The Engine continuously redistributes gain across channels so that the
// microphone carrying the loudest program material opens up while idle
// channels attenuate, with the total applied gain held approximately
// constant. This replaces manual fader-riding in broadcast panels,
// conference rooms, theater, and worship venues.
//
// # Quick Start
//
//	eng := engine.New(4, 48000, 256)
//	for {
//	    // buffers is [][]float32: one slice of block samples per mic
//	    eng.Process(buffers, 256)
//	}
//
// Parameters may be changed at any time from other goroutines:
//
//	eng.SetChannelWeight(2, 0.8)
//	eng.SetChannelMute(3, true)
//	eng.SetAttackMs(10)
//
// And metering may be polled (typically ~30Hz) without locking:
//
//	m, ok := eng.ChannelMetering(0)
//	g, ok := eng.GlobalMetering()
//
// # The Block Pipeline
//
// Each Process call runs a fixed phase sequence over the block:
//
//  1. participation flags and parameter snapshot
//  2. sliding-window RMS detection per channel
//  3. noise floor tracking per channel
//  4. activity classification (RMS above floor + margin)
//  5. last-mic-hold evaluation
//  6. Dugan gain-sharing: targets that sum to one over the active set
//  7. NOM attenuation (-10*log10 of the open-mic count)
//  8. per-sample one-pole gain smoothing and in-place application
//  9. metering publication
//
// # Threading Contract
//
// Three roles cooperate without locks:
//
//   - The audio goroutine is the sole caller of Process. Process never
//     blocks, never allocates, and never takes a lock.
//   - Control goroutines call the Set* methods concurrently with Process.
//     Every parameter is an independent atomic cell; the audio goroutine
//     samples each cell once at the top of a block.
//   - A metering reader polls ChannelMetering/GlobalMetering. Meter fields
//     are independent atomic slots; a reader may see fields from adjacent
//     blocks, never a torn value.
//
// Construction is not thread-safe with respect to Process; do not process
// a block while another goroutine still holds a half-built Engine.
//
// # Robustness
//
// Non-finite input (NaN, +Inf, -Inf) is treated as zero before detection
// and before gain application, and never reaches the output or the
// meters, except under global bypass: there Process leaves the buffers
// untouched, non-finite samples included. A nil Engine, nil buffer slice, or out-of-range channel index
// is a silent no-op; metering getters report failure with a false result.
package engine
