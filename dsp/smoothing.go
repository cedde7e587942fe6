// SPDX-License-Identifier: EPL-2.0

package dsp

import "github.com/ik5/automix/utils"

// OnePoleSmoother is a first-order smoother with separate attack and
// release coefficients. Rising input uses the attack coefficient, falling
// input the release coefficient: fast onset, slow decay.
type OnePoleSmoother struct {
	current      float64
	attackCoeff  float64
	releaseCoeff float64
}

// NewOnePoleSmoother creates a smoother from raw coefficients.
func NewOnePoleSmoother(attackCoeff, releaseCoeff float64) *OnePoleSmoother {
	return &OnePoleSmoother{
		attackCoeff:  attackCoeff,
		releaseCoeff: releaseCoeff,
	}
}

// NewOnePoleSmootherMs creates a smoother from time constants in
// milliseconds at the given sample rate.
func NewOnePoleSmootherMs(attackMs, releaseMs, sampleRate float64) *OnePoleSmoother {
	return &OnePoleSmoother{
		attackCoeff:  utils.TimeConstantToCoeff(attackMs, sampleRate),
		releaseCoeff: utils.TimeConstantToCoeff(releaseMs, sampleRate),
	}
}

// Process advances the smoother one sample toward input and returns the
// smoothed value.
func (s *OnePoleSmoother) Process(input float64) float64 {
	coeff := s.releaseCoeff
	if input > s.current {
		coeff = s.attackCoeff
	}
	s.current += coeff * (input - s.current)

	return s.current
}

// SetImmediate jumps to value without smoothing.
func (s *OnePoleSmoother) SetImmediate(value float64) {
	s.current = value
}

// Reset returns the smoother to zero.
func (s *OnePoleSmoother) Reset() {
	s.current = 0
}

// Current is the last smoothed value.
func (s *OnePoleSmoother) Current() float64 {
	return s.current
}

// SetCoefficients updates both time constants.
func (s *OnePoleSmoother) SetCoefficients(attackMs, releaseMs, sampleRate float64) {
	s.attackCoeff = utils.TimeConstantToCoeff(attackMs, sampleRate)
	s.releaseCoeff = utils.TimeConstantToCoeff(releaseMs, sampleRate)
}

// AttackCoeff exposes the attack alpha for smoothness checks.
func (s *OnePoleSmoother) AttackCoeff() float64 {
	return s.attackCoeff
}
