// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"github.com/ik5/automix/dsp"
	"github.com/ik5/automix/utils"
)

// channelState bundles the audio-thread-owned DSP state of one channel
// with its parameter cells and meter slots. The DSP members are touched
// only from Process; params and meters are the cross-thread surface.
type channelState struct {
	params channelParams
	meters channelMeters

	level    *dsp.LevelDetector
	floor    *dsp.NoiseFloorTracker
	smoother *dsp.OnePoleSmoother

	rawGain      float64
	smoothedGain float64
	active       bool
}

// init builds the channel in place; channelState holds atomic cells and
// must not be copied.
func (ch *channelState) init(sampleRate float64) {
	ch.level = dsp.NewLevelDetector(defaultRMSWindowMs, sampleRate)
	ch.floor = dsp.NewNoiseFloorTracker(sampleRate)
	ch.smoother = dsp.NewOnePoleSmootherMs(defaultAttackMs, defaultReleaseMs, sampleRate)
	ch.params.weight.Store(defaultWeight)
}

// publishMetering writes the channel's meter slots from block-end state.
// outputRMS is recomputed from the post-gain samples, not approximated.
func (ch *channelState) publishMetering(inputRMS, outputRMS float64) {
	ch.meters.publish(
		utils.LinearToDB(inputRMS),
		utils.LinearToDB(ch.smoothedGain),
		utils.LinearToDB(outputRMS),
		ch.floor.FloorDB(),
		ch.active,
	)
}

// reset clears DSP state, keeping the parameter cells.
func (ch *channelState) reset(sampleRate float64) {
	ch.level.Reset()
	ch.floor.Reset(sampleRate)
	ch.smoother.Reset()
	ch.rawGain = 0
	ch.smoothedGain = 0
	ch.active = false
	ch.meters.publish(utils.SilenceFloorDB, utils.SilenceFloorDB, utils.SilenceFloorDB, ch.floor.FloorDB(), false)
}
