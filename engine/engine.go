// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math"
	"sync/atomic"

	"github.com/ik5/automix/dsp"
	"github.com/ik5/automix/utils"
)

const (
	// MaxChannels is the largest supported channel count.
	MaxChannels = 32
	// MaxBlockSize is the largest per-call block in samples.
	MaxBlockSize = 4096
)

const (
	defaultRMSWindowMs = 20.0
	defaultAttackMs    = 5.0
	defaultReleaseMs   = 150.0
	defaultHoldTimeMs  = 500.0
	defaultWeight      = 1.0

	minWeight, maxWeight         = 0.0, 1.0
	minAttackMs, maxAttackMs     = 0.1, 100.0
	minReleaseMs, maxReleaseMs   = 1.0, 1000.0
	minHoldTimeMs, maxHoldTimeMs = 0.0, 5000.0
)

const version = "0.1.0"

// Version reports the engine version string.
func Version() string {
	return version
}

// Engine is a Dugan gain-sharing automatic mixer for one audio stream.
// Channel count, sample rate, and maximum block size are fixed at
// construction; everything else is adjustable while audio runs.
//
// All internal buffers are sized in New. Process performs no allocation.
type Engine struct {
	numChannels int
	sampleRate  float64
	maxBlock    int

	// Control-thread cells, sampled once at the top of each block.
	globalBypass atomic.Bool
	attackMs     atomicFloat64
	releaseMs    atomicFloat64
	holdTimeMs   atomicFloat64
	nomEnabled   atomic.Bool

	channels []channelState
	hold     *dsp.LastMicHold
	nomAtten *dsp.NomAttenuation
	global   globalMeters

	// Audio-thread cache of the last applied time constants, so smoother
	// coefficients are recomputed only when a setter changed them.
	curAttackMs  float64
	curReleaseMs float64
	curHoldMs    float64

	// Block scratch. rms..targets are per-channel, ramp is per-sample.
	rms           []float64
	weights       []float64
	active        []bool
	participating []bool
	targets       []float64
	ramp          []float64

	sampleCounter uint64
}

// New creates an engine for numChannels microphones at sampleRate with
// blocks of at most maxBlockSize samples. numChannels is clamped to
// [1, MaxChannels] and maxBlockSize to [1, MaxBlockSize].
//
// The worst-case engine holds several megabytes of sliding-window state;
// it lives on the heap and should be created once, not per block.
func New(numChannels int, sampleRate float64, maxBlockSize int) *Engine {
	if numChannels < 1 {
		numChannels = 1
	}
	if numChannels > MaxChannels {
		numChannels = MaxChannels
	}
	if maxBlockSize < 1 {
		maxBlockSize = 1
	}
	if maxBlockSize > MaxBlockSize {
		maxBlockSize = MaxBlockSize
	}

	e := &Engine{
		numChannels:  numChannels,
		sampleRate:   sampleRate,
		maxBlock:     maxBlockSize,
		channels:     make([]channelState, numChannels),
		hold:         dsp.NewLastMicHold(sampleRate),
		nomAtten:     dsp.NewNomAttenuation(),
		curAttackMs:  defaultAttackMs,
		curReleaseMs: defaultReleaseMs,
		curHoldMs:    defaultHoldTimeMs,

		rms:           make([]float64, numChannels),
		weights:       make([]float64, numChannels),
		active:        make([]bool, numChannels),
		participating: make([]bool, numChannels),
		targets:       make([]float64, numChannels),
		ramp:          make([]float64, maxBlockSize),
	}

	for i := range e.channels {
		e.channels[i].init(sampleRate)
	}

	e.attackMs.Store(defaultAttackMs)
	e.releaseMs.Store(defaultReleaseMs)
	e.holdTimeMs.Store(defaultHoldTimeMs)
	e.nomEnabled.Store(true)

	return e
}

// NumChannels reports the fixed channel count.
func (e *Engine) NumChannels() int {
	if e == nil {
		return 0
	}

	return e.numChannels
}

// SampleRate reports the fixed sample rate.
func (e *Engine) SampleRate() float64 {
	if e == nil {
		return 0
	}

	return e.sampleRate
}

// Process runs one block of audio through the mixer in place.
//
// buffers holds one non-interleaved sample slice per channel; the first
// NumChannels slices are processed, each over min(numSamples, len(slice))
// samples, capped at the maximum block size. A nil engine, nil buffers,
// or non-positive numSamples is a no-op, and a nil channel slice skips
// that channel for the block.
//
// Process is wait-free and allocation-free. It must have a single caller
// at a time (the audio goroutine).
func (e *Engine) Process(buffers [][]float32, numSamples int) {
	if e == nil || buffers == nil || numSamples <= 0 {
		return
	}

	numCh := len(buffers)
	if numCh > e.numChannels {
		numCh = e.numChannels
	}
	if numCh == 0 {
		return
	}
	if numSamples > e.maxBlock {
		numSamples = e.maxBlock
	}

	if e.globalBypass.Load() {
		e.processBypassed(buffers, numCh, numSamples)
		return
	}

	e.refreshTimeConstants()

	// Phase 0: participation flags and parameter snapshot.
	anySolo := false
	for i := 0; i < numCh; i++ {
		if e.channels[i].params.soloed.Load() {
			anySolo = true
			break
		}
	}
	for i := 0; i < numCh; i++ {
		ch := &e.channels[i]
		e.participating[i] = isParticipating(
			ch.params.muted.Load(),
			ch.params.bypassed.Load(),
			ch.params.soloed.Load(),
			anySolo,
		)
		e.weights[i] = ch.params.weight.Load()
		if buffers[i] == nil {
			e.participating[i] = false
		}
	}

	// Phase 1: sliding-window RMS detection.
	for i := 0; i < numCh; i++ {
		if buffers[i] == nil {
			e.rms[i] = 0
			continue
		}
		n := min(numSamples, len(buffers[i]))
		e.rms[i] = e.channels[i].level.ProcessBlock(buffers[i][:n])
	}

	// Phase 2: noise floor tracking.
	for i := 0; i < numCh; i++ {
		if e.participating[i] {
			e.channels[i].floor.Update(e.rms[i])
		}
	}

	// Phase 3: activity classification.
	for i := 0; i < numCh; i++ {
		e.active[i] = e.participating[i] && e.channels[i].floor.IsActive(e.rms[i])
		e.channels[i].active = e.active[i]
	}

	// Phase 4: last-mic-hold. A held channel re-enters the active set
	// with its level propped up to at least the noise floor, so the
	// share computation keeps it open instead of pumping the room up.
	holdCh := e.hold.Update(e.active[:numCh], e.participating[:numCh], numSamples)
	heldRMS := 0.0
	if holdCh != dsp.NoChannel {
		e.active[holdCh] = true
		heldRMS = e.rms[holdCh]
		e.rms[holdCh] = math.Max(e.rms[holdCh], e.channels[holdCh].floor.FloorLinear())
	}

	// Phase 5: Dugan gain-sharing.
	nom := dsp.ComputeGains(e.targets[:numCh], e.rms[:numCh], e.weights[:numCh], e.active[:numCh], e.participating[:numCh])

	if holdCh != dsp.NoChannel {
		e.rms[holdCh] = heldRMS // meters report the real level
	}

	// Phase 6: NOM attenuation.
	e.nomAtten.Update(nom)
	nomLinear := e.nomAtten.Linear()

	// Phases 7+8: per-sample smoothing ramp, then in-place application.
	for i := 0; i < numCh; i++ {
		ch := &e.channels[i]

		target := 0.0
		switch {
		case e.participating[i]:
			target = e.targets[i] * nomLinear
		case ch.params.bypassed.Load() && buffers[i] != nil:
			target = 1
		}
		ch.rawGain = target

		if ch.params.bypassed.Load() {
			// Unity passthrough; the smoother snaps so a later
			// un-bypass ramps from the true gain.
			ch.smoother.SetImmediate(1)
			ch.smoothedGain = 1
			if buffers[i] != nil {
				n := min(numSamples, len(buffers[i]))
				buf := buffers[i][:n]
				for k := range buf {
					buf[k] = dsp.SanitizeSample(buf[k])
				}
				ch.publishMetering(e.rms[i], blockRMS(buf))
			}
			continue
		}

		if buffers[i] == nil {
			continue
		}

		n := min(numSamples, len(buffers[i]))
		for k := 0; k < n; k++ {
			e.ramp[k] = ch.smoother.Process(target)
		}
		ch.smoothedGain = ch.smoother.Current()

		buf := buffers[i][:n]
		var sumSq float64
		for k := range buf {
			s := dsp.SanitizeSample(buf[k])
			out := s * float32(e.ramp[k])
			buf[k] = out
			sumSq += float64(out) * float64(out)
		}

		outputRMS := 0.0
		if n > 0 {
			outputRMS = math.Sqrt(sumSq / float64(n))
		}

		// Phase 9: metering publication.
		ch.publishMetering(e.rms[i], outputRMS)
	}

	e.sampleCounter += uint64(numSamples)
	e.global.publish(nom, e.nomAtten.DB())
}

// processBypassed handles the global-bypass path: the buffer is left
// untouched and metering reflects the input only.
func (e *Engine) processBypassed(buffers [][]float32, numCh, numSamples int) {
	for i := 0; i < numCh; i++ {
		if buffers[i] == nil {
			continue
		}
		n := min(numSamples, len(buffers[i]))
		rms := e.channels[i].level.ProcessBlock(buffers[i][:n])
		inputDB := utils.LinearToDB(rms)
		e.channels[i].meters.publish(inputDB, 0, inputDB, e.channels[i].floor.FloorDB(), false)
	}
	e.sampleCounter += uint64(numSamples)
	e.global.publish(0, 0)
}

// refreshTimeConstants reapplies smoothing and hold times when a setter
// changed them since the previous block. The exp() per coefficient is
// paid here, on the audio thread, only on actual change.
func (e *Engine) refreshTimeConstants() {
	attack := e.attackMs.Load()
	release := e.releaseMs.Load()
	if attack != e.curAttackMs || release != e.curReleaseMs {
		e.curAttackMs = attack
		e.curReleaseMs = release
		for i := range e.channels {
			e.channels[i].smoother.SetCoefficients(attack, release, e.sampleRate)
		}
	}

	holdMs := e.holdTimeMs.Load()
	if holdMs != e.curHoldMs {
		e.curHoldMs = holdMs
		e.hold.SetHoldTimeMs(holdMs, e.sampleRate)
	}

	e.nomAtten.SetEnabled(e.nomEnabled.Load())
}

// blockRMS computes the RMS of one block of sanitized samples.
func blockRMS(buf []float32) float64 {
	if len(buf) == 0 {
		return 0
	}

	var sumSq float64
	for _, s := range buf {
		f := float64(dsp.SanitizeSample(s))
		sumSq += f * f
	}

	return math.Sqrt(sumSq / float64(len(buf)))
}

// Reset clears all DSP state (detectors, floors, smoothers, hold) while
// keeping every parameter cell as set.
func (e *Engine) Reset() {
	if e == nil {
		return
	}

	for i := range e.channels {
		e.channels[i].reset(e.sampleRate)
	}
	e.hold.Reset()
	e.nomAtten.Update(0)
	e.global.publish(0, 0)
	e.sampleCounter = 0
}

// ---- Parameter setters (wait-free, callable from any goroutine) ----

// SetChannelWeight sets the gain-share weight of a channel, clamped to
// [0, 1]. Out-of-range channels are ignored.
func (e *Engine) SetChannelWeight(channel int, weight float64) {
	if e == nil || channel < 0 || channel >= e.numChannels {
		return
	}
	if math.IsNaN(weight) {
		return
	}
	e.channels[channel].params.weight.Store(clampFloat(weight, minWeight, maxWeight))
}

// SetChannelMute mutes or unmutes a channel.
func (e *Engine) SetChannelMute(channel int, muted bool) {
	if e == nil || channel < 0 || channel >= e.numChannels {
		return
	}
	e.channels[channel].params.muted.Store(muted)
}

// SetChannelSolo solos or un-solos a channel. While any channel is
// soloed, non-soloed channels are forced inactive.
func (e *Engine) SetChannelSolo(channel int, soloed bool) {
	if e == nil || channel < 0 || channel >= e.numChannels {
		return
	}
	e.channels[channel].params.soloed.Store(soloed)
}

// SetChannelBypass removes a channel from gain sharing entirely; its
// audio passes through at unity.
func (e *Engine) SetChannelBypass(channel int, bypassed bool) {
	if e == nil || channel < 0 || channel >= e.numChannels {
		return
	}
	e.channels[channel].params.bypassed.Store(bypassed)
}

// SetGlobalBypass makes Process the identity on the buffer.
func (e *Engine) SetGlobalBypass(bypass bool) {
	if e == nil {
		return
	}
	e.globalBypass.Store(bypass)
}

// SetAttackMs sets the gain-rise time constant, clamped to [0.1, 100].
func (e *Engine) SetAttackMs(ms float64) {
	if e == nil || math.IsNaN(ms) {
		return
	}
	e.attackMs.Store(clampFloat(ms, minAttackMs, maxAttackMs))
}

// SetReleaseMs sets the gain-fall time constant, clamped to [1, 1000].
func (e *Engine) SetReleaseMs(ms float64) {
	if e == nil || math.IsNaN(ms) {
		return
	}
	e.releaseMs.Store(clampFloat(ms, minReleaseMs, maxReleaseMs))
}

// SetHoldTimeMs sets the last-mic-hold window, clamped to [0, 5000].
func (e *Engine) SetHoldTimeMs(ms float64) {
	if e == nil || math.IsNaN(ms) {
		return
	}
	e.holdTimeMs.Store(clampFloat(ms, minHoldTimeMs, maxHoldTimeMs))
}

// SetNOMAttenEnabled toggles number-of-open-mics attenuation.
func (e *Engine) SetNOMAttenEnabled(enabled bool) {
	if e == nil {
		return
	}
	e.nomEnabled.Store(enabled)
}

// ---- Metering getters (wait-free, callable from any goroutine) ----

// ChannelMetering returns the snapshot of one channel. The second result
// is false for a nil engine or out-of-range channel.
func (e *Engine) ChannelMetering(channel int) (ChannelMetering, bool) {
	if e == nil || channel < 0 || channel >= e.numChannels {
		return ChannelMetering{}, false
	}

	return e.channels[channel].meters.snapshot(), true
}

// GlobalMetering returns the engine-wide snapshot. The second result is
// false for a nil engine.
func (e *Engine) GlobalMetering() (GlobalMetering, bool) {
	if e == nil {
		return GlobalMetering{}, false
	}

	return e.global.snapshot(), true
}

// AllChannelMetering fills dst with per-channel snapshots and returns
// the number written, capped at min(NumChannels, len(dst)).
func (e *Engine) AllChannelMetering(dst []ChannelMetering) int {
	if e == nil {
		return 0
	}

	count := min(e.numChannels, len(dst))
	for i := 0; i < count; i++ {
		dst[i] = e.channels[i].meters.snapshot()
	}

	return count
}
