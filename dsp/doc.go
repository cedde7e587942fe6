// SPDX-License-Identifier: EPL-2.0

// Package dsp provides the signal-processing building blocks of the
// automatic mixer.
//
// The components here are deliberately small and stateful-per-channel:
//   - RingBuffer: incremental sum-of-squares window
//   - LevelDetector: sliding-window RMS
//   - NoiseFloorTracker: slow adaptive ambient floor estimate
//   - OnePoleSmoother: asymmetric attack/release smoothing
//   - ComputeGains: the Dugan gain-sharing computation
//   - LastMicHold: keeps the most recent talker open briefly
//   - NomAttenuation: number-of-open-mics gain compensation
//
// # Design Constraints
//
// Everything in this package is built for a realtime audio path:
//   - No allocation after construction
//   - No locking, no channels, no goroutines
//   - O(1) work per sample regardless of window length
//
// State is owned by exactly one caller (the engine's audio thread);
// none of these types are safe for concurrent use on their own.
//
// # Sample Format
//
// Audio samples enter as float32 in [-1.0, 1.0]; internal arithmetic
// is float64 for headroom and stability. Non-finite input samples
// (NaN, +Inf, -Inf) are treated as zero at every entry point, so they
// never propagate into levels, gains, or output.
//
// # Typical Wiring
//
// The engine drives one LevelDetector, NoiseFloorTracker, and
// OnePoleSmoother per channel, plus a single LastMicHold and
// NomAttenuation:
//
//	det := dsp.NewLevelDetector(20, 48000)
//	rms := det.ProcessBlock(samples)
//	floor.Update(rms)
//	if floor.IsActive(rms) { ... }
//
// See the engine package for the full nine-phase pipeline.
package dsp
