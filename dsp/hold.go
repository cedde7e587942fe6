// SPDX-License-Identifier: EPL-2.0

package dsp

import "github.com/ik5/automix/utils"

// defaultHoldTimeMs keeps the last talker open for half a second.
const defaultHoldTimeMs = 500.0

// LastMicHold remembers the most recently active channel and reports it
// as held for a configurable window after all channels go quiet. Holding
// the last mic open avoids pumping the ambient floor up when every talker
// stops at once.
type LastMicHold struct {
	lastActive  int
	holdCounter uint64
	holdSamples uint64
	holding     bool
}

// NewLastMicHold creates a tracker with the default 500ms hold window.
func NewLastMicHold(sampleRate float64) *LastMicHold {
	return &LastMicHold{
		lastActive:  NoChannel,
		holdSamples: uint64(utils.MsToSamples(defaultHoldTimeMs, sampleRate)),
	}
}

// Update advances the hold state by one block and returns the channel to
// keep open, or NoChannel.
//
// While any participating channel is active, the hold is re-armed on the
// highest-numbered active channel and nothing is held. Once everything
// goes quiet the remembered channel stays held until hold time elapses,
// counted in whole blocks of blockSize samples. A held channel that stops
// participating (muted, bypassed, lost solo) releases immediately.
func (h *LastMicHold) Update(active, participating []bool, blockSize int) int {
	anyActive := false
	lastFound := NoChannel
	for i := range active {
		if participating[i] && active[i] {
			anyActive = true
			lastFound = i
		}
	}

	if anyActive {
		h.lastActive = lastFound
		h.holdCounter = 0
		h.holding = false

		return NoChannel
	}

	if h.holdSamples == 0 || h.lastActive == NoChannel {
		h.holding = false

		return NoChannel
	}

	if h.lastActive >= len(participating) || !participating[h.lastActive] {
		h.holding = false
		h.lastActive = NoChannel

		return NoChannel
	}

	h.holdCounter += uint64(blockSize)
	if h.holdCounter < h.holdSamples {
		h.holding = true

		return h.lastActive
	}

	h.holding = false

	return NoChannel
}

// SetHoldTimeMs changes the hold window.
func (h *LastMicHold) SetHoldTimeMs(ms, sampleRate float64) {
	h.holdSamples = uint64(utils.MsToSamples(ms, sampleRate))
}

// Reset forgets the remembered channel.
func (h *LastMicHold) Reset() {
	h.lastActive = NoChannel
	h.holdCounter = 0
	h.holding = false
}

// IsHolding reports whether a channel is currently being held.
func (h *LastMicHold) IsHolding() bool {
	return h.holding
}
