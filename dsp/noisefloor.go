// SPDX-License-Identifier: EPL-2.0

package dsp

import "github.com/ik5/automix/utils"

const (
	// noiseFloorRiseMs tracks downward toward quiet input (fast).
	noiseFloorRiseMs = 500.0
	// noiseFloorFallMs resists upward pull from loud input (slow).
	noiseFloorFallMs = 5000.0
	// noiseFloorInitDB starts high so the floor settles down quickly.
	noiseFloorInitDB = -60.0
	// defaultMarginDB above the floor at which a channel counts as active.
	defaultMarginDB = 6.0
)

// NoiseFloorTracker follows the minimum recent signal level: it falls
// quickly toward quiet input and rises only slowly, approximating the
// ambient background of the room.
type NoiseFloorTracker struct {
	floor        float64
	smoother     *OnePoleSmoother
	marginLinear float64
}

// NewNoiseFloorTracker creates a tracker initialized at -60dBFS.
func NewNoiseFloorTracker(sampleRate float64) *NoiseFloorTracker {
	initLinear := utils.DBToLinear(noiseFloorInitDB)

	// The smoother's attack coefficient handles input above the current
	// value, so the slow FALL time maps to attack and the fast RISE time
	// to release.
	smoother := NewOnePoleSmootherMs(noiseFloorFallMs, noiseFloorRiseMs, sampleRate)
	smoother.SetImmediate(initLinear)

	return &NoiseFloorTracker{
		floor:        initLinear,
		smoother:     smoother,
		marginLinear: utils.DBToLinear(defaultMarginDB),
	}
}

// Update feeds the current block RMS (linear) into the estimate.
//
// Input below the floor-plus-margin band is tracked; input well above it
// (program material) holds the floor in place instead of dragging it up.
// The floor never drops under the -120dBFS silence limit, which keeps the
// downstream activity division safe.
func (t *NoiseFloorTracker) Update(rmsLinear float64) {
	if rmsLinear < t.floor*t.marginLinear {
		t.floor = t.smoother.Process(rmsLinear)
	} else {
		t.floor = t.smoother.Process(t.floor)
	}

	if minFloor := utils.DBToLinear(utils.SilenceFloorDB); t.floor < minFloor {
		t.floor = minFloor
		t.smoother.SetImmediate(minFloor)
	}
}

// IsActive reports whether rmsLinear clears the floor by the margin.
func (t *NoiseFloorTracker) IsActive(rmsLinear float64) bool {
	return rmsLinear > t.floor*t.marginLinear
}

// FloorLinear is the current estimate in linear units.
func (t *NoiseFloorTracker) FloorLinear() float64 {
	return t.floor
}

// FloorDB is the current estimate in decibels.
func (t *NoiseFloorTracker) FloorDB() float64 {
	return utils.LinearToDB(t.floor)
}

// SetMarginDB changes the activity margin.
func (t *NoiseFloorTracker) SetMarginDB(marginDB float64) {
	t.marginLinear = utils.DBToLinear(marginDB)
}

// Reset restarts the tracker at the initial -60dBFS level.
func (t *NoiseFloorTracker) Reset(sampleRate float64) {
	initLinear := utils.DBToLinear(noiseFloorInitDB)
	t.floor = initLinear
	t.smoother = NewOnePoleSmootherMs(noiseFloorFallMs, noiseFloorRiseMs, sampleRate)
	t.smoother.SetImmediate(initLinear)
}
