// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"github.com/ik5/automix/utils"
)

// NomAttenuation applies -10*log10(NOM) dB of global attenuation to
// compensate for the summed noise of multiple open microphones: one open
// mic is unity, four open mics drop the bus by 6dB.
type NomAttenuation struct {
	nom               float64
	attenuationLinear float64
	attenuationDB     float64
	enabled           bool
}

// NewNomAttenuation creates an enabled attenuator at unity.
func NewNomAttenuation() *NomAttenuation {
	return &NomAttenuation{
		nom:               1,
		attenuationLinear: 1,
		enabled:           true,
	}
}

// Update recomputes the attenuation for a new open-mic count.
func (n *NomAttenuation) Update(nom float64) {
	n.nom = nom
	if n.enabled && nom > 1 {
		n.attenuationDB = -10 * math.Log10(nom)
		n.attenuationLinear = utils.DBToLinear(n.attenuationDB)
	} else {
		n.attenuationDB = 0
		n.attenuationLinear = 1
	}
}

// Linear is the current attenuation factor.
func (n *NomAttenuation) Linear() float64 {
	return n.attenuationLinear
}

// DB is the current attenuation in decibels.
func (n *NomAttenuation) DB() float64 {
	return n.attenuationDB
}

// NOM is the last open-mic count fed to Update.
func (n *NomAttenuation) NOM() float64 {
	return n.nom
}

// SetEnabled toggles the attenuation. Disabling returns to unity.
func (n *NomAttenuation) SetEnabled(enabled bool) {
	n.enabled = enabled
	if !enabled {
		n.attenuationDB = 0
		n.attenuationLinear = 1
	}
}

// Enabled reports the current toggle state.
func (n *NomAttenuation) Enabled() bool {
	return n.enabled
}
