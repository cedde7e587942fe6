// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"github.com/ik5/automix/utils"
)

// SanitizeSample returns s if finite, otherwise 0. NaN and infinity must
// never reach the squaring stage or the output buffer.
func SanitizeSample(s float32) float32 {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return s
}

// LevelDetector produces a sliding-window RMS estimate of one channel.
type LevelDetector struct {
	ring       *RingBuffer
	currentRMS float64
}

// NewLevelDetector creates a detector with a window of windowMs at the
// given sample rate.
func NewLevelDetector(windowMs, sampleRate float64) *LevelDetector {
	window := utils.MsToSamples(windowMs, sampleRate)
	if window < 1 {
		window = 1
	}

	return &LevelDetector{
		ring: NewRingBuffer(window),
	}
}

// ProcessBlock pushes a block of samples and returns the RMS at the end of
// the block. Non-finite samples count as zero.
func (d *LevelDetector) ProcessBlock(samples []float32) float64 {
	for _, s := range samples {
		sd := float64(SanitizeSample(s))
		d.ring.Push(sd * sd)
	}
	d.currentRMS = d.ring.RMS()

	return d.currentRMS
}

// RMS is the most recent block-end RMS (linear).
func (d *LevelDetector) RMS() float64 {
	return d.currentRMS
}

// RMSdB is the most recent block-end RMS in decibels.
func (d *LevelDetector) RMSdB() float64 {
	return utils.LinearToDB(d.currentRMS)
}

// Reset clears the window and the cached RMS.
func (d *LevelDetector) Reset() {
	d.ring.Reset()
	d.currentRMS = 0
}

// WindowLen reports the RMS window length in samples.
func (d *LevelDetector) WindowLen() int {
	return d.ring.WindowLen()
}
