// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// SilenceFloorDB is the level below which a signal is treated as silence.
const SilenceFloorDB = -120.0

// LinearToDB converts a linear amplitude to decibels.
// Zero and negative values are clamped to SilenceFloorDB.
func LinearToDB(linear float64) float64 {
	if linear <= 0 {
		return SilenceFloorDB
	}

	db := 20 * math.Log10(linear)
	if db < SilenceFloorDB {
		return SilenceFloorDB
	}

	return db
}

// DBToLinear converts decibels to a linear amplitude.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// TimeConstantToCoeff computes a one-pole filter coefficient from a time
// constant in milliseconds at the given sample rate. The result is the alpha
// for: y = alpha*x + (1-alpha)*y_prev.
func TimeConstantToCoeff(timeMs, sampleRate float64) float64 {
	if timeMs <= 0 || sampleRate <= 0 {
		return 1 // instant response
	}

	samples := timeMs * 0.001 * sampleRate
	return 1 - math.Exp(-1/samples)
}

// MsToSamples converts milliseconds to a sample count at the given rate.
func MsToSamples(ms, sampleRate float64) int {
	return int(math.Round(ms * 0.001 * sampleRate))
}
