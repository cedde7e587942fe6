// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

// ringBufferMaxCapacity caps the window length: 100ms at 192kHz.
const ringBufferMaxCapacity = 19200

// RingBuffer stores squared sample values in a fixed-length window and
// maintains a running sum so the mean is O(1) per sample.
type RingBuffer struct {
	buf        []float64
	writePos   int
	runningSum float64
	written    uint64
}

// NewRingBuffer creates a ring buffer spanning windowLen squared samples.
// windowLen is clamped to [1, 19200].
func NewRingBuffer(windowLen int) *RingBuffer {
	if windowLen < 1 {
		windowLen = 1
	}
	if windowLen > ringBufferMaxCapacity {
		windowLen = ringBufferMaxCapacity
	}

	return &RingBuffer{
		buf: make([]float64, windowLen),
	}
}

// Push adds a squared sample value, ejecting the oldest one.
func (r *RingBuffer) Push(squared float64) {
	old := r.buf[r.writePos]
	r.runningSum -= old
	r.runningSum += squared

	// Roundoff can drag the sum slightly negative over long runs
	if r.runningSum < 0 {
		r.runningSum = 0
	}

	r.buf[r.writePos] = squared
	r.writePos++
	if r.writePos >= len(r.buf) {
		r.writePos = 0
	}
	r.written++
}

// Mean of the values currently in the window. During partial fill the
// divisor is the number of samples actually written.
func (r *RingBuffer) Mean() float64 {
	count := float64(len(r.buf))
	if r.written < uint64(len(r.buf)) {
		count = float64(r.written)
	}
	if count <= 0 {
		return 0
	}

	return r.runningSum / count
}

// RMS is the square root of Mean.
func (r *RingBuffer) RMS() float64 {
	return math.Sqrt(r.Mean())
}

// Reset empties the window, preserving its length.
func (r *RingBuffer) Reset() {
	for i := range r.buf {
		r.buf[i] = 0
	}
	r.writePos = 0
	r.runningSum = 0
	r.written = 0
}

// WindowLen reports the configured window length in samples.
func (r *RingBuffer) WindowLen() int {
	return len(r.buf)
}
