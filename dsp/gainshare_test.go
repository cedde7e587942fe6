// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"testing"
)

type shareCase struct {
	rms           []float64
	weights       []float64
	active        []bool
	participating []bool
}

func runShare(c shareCase) ([]float64, float64) {
	gains := make([]float64, len(c.rms))
	nom := ComputeGains(gains, c.rms, c.weights, c.active, c.participating)
	return gains, nom
}

func TestComputeGains_SingleActiveChannel(t *testing.T) {
	t.Parallel()

	gains, nom := runShare(shareCase{
		rms:           []float64{0.5},
		weights:       []float64{1},
		active:        []bool{true},
		participating: []bool{true},
	})

	if math.Abs(gains[0]-1) > 1e-10 {
		t.Errorf("gains[0] = %v, want 1", gains[0])
	}
	if nom != 1 {
		t.Errorf("nom = %v, want 1", nom)
	}
}

func TestComputeGains_TwoEqualChannels(t *testing.T) {
	t.Parallel()

	gains, nom := runShare(shareCase{
		rms:           []float64{0.5, 0.5},
		weights:       []float64{1, 1},
		active:        []bool{true, true},
		participating: []bool{true, true},
	})

	for i, g := range gains {
		if math.Abs(g-0.5) > 1e-10 {
			t.Errorf("gains[%d] = %v, want 0.5", i, g)
		}
	}
	if nom != 2 {
		t.Errorf("nom = %v, want 2", nom)
	}
}

func TestComputeGains_ProportionalDistribution(t *testing.T) {
	t.Parallel()

	gains, _ := runShare(shareCase{
		rms:           []float64{0.75, 0.25},
		weights:       []float64{1, 1},
		active:        []bool{true, true},
		participating: []bool{true, true},
	})

	if math.Abs(gains[0]-0.75) > 1e-10 || math.Abs(gains[1]-0.25) > 1e-10 {
		t.Errorf("gains = %v, want [0.75 0.25]", gains)
	}
}

func TestComputeGains_InactiveChannelGetsZero(t *testing.T) {
	t.Parallel()

	gains, nom := runShare(shareCase{
		rms:           []float64{0.5, 0.5},
		weights:       []float64{1, 1},
		active:        []bool{true, false},
		participating: []bool{true, true},
	})

	if math.Abs(gains[0]-1) > 1e-10 || gains[1] != 0 {
		t.Errorf("gains = %v, want [1 0]", gains)
	}
	if nom != 1 {
		t.Errorf("nom = %v, want 1", nom)
	}
}

func TestComputeGains_NonParticipatingExcluded(t *testing.T) {
	t.Parallel()

	gains, _ := runShare(shareCase{
		rms:           []float64{0.5, 0.5},
		weights:       []float64{1, 1},
		active:        []bool{true, true},
		participating: []bool{true, false},
	})

	if math.Abs(gains[0]-1) > 1e-10 || gains[1] != 0 {
		t.Errorf("gains = %v, want [1 0]", gains)
	}
}

func TestComputeGains_AllSilent(t *testing.T) {
	t.Parallel()

	gains, nom := runShare(shareCase{
		rms:           []float64{0, 0},
		weights:       []float64{1, 1},
		active:        []bool{false, false},
		participating: []bool{true, true},
	})

	if gains[0] != 0 || gains[1] != 0 {
		t.Errorf("gains = %v, want zeros", gains)
	}
	if nom != 0 {
		t.Errorf("nom = %v, want 0", nom)
	}
}

func TestComputeGains_WeightsAffectDistribution(t *testing.T) {
	t.Parallel()

	gains, _ := runShare(shareCase{
		rms:           []float64{0.5, 0.5},
		weights:       []float64{1, 0.5},
		active:        []bool{true, true},
		participating: []bool{true, true},
	})

	// weighted: 0.5 and 0.25, sum 0.75
	if math.Abs(gains[0]-0.5/0.75) > 1e-10 {
		t.Errorf("gains[0] = %v, want %v", gains[0], 0.5/0.75)
	}
	if math.Abs(gains[1]-0.25/0.75) > 1e-10 {
		t.Errorf("gains[1] = %v, want %v", gains[1], 0.25/0.75)
	}
}

func TestComputeGains_DegenerateDenomSplitsByWeight(t *testing.T) {
	t.Parallel()

	// Active channels with vanishing RMS: unit of gain split by weight
	gains, nom := runShare(shareCase{
		rms:           []float64{0, 0},
		weights:       []float64{0.75, 0.25},
		active:        []bool{true, true},
		participating: []bool{true, true},
	})

	if math.Abs(gains[0]-0.75) > 1e-10 || math.Abs(gains[1]-0.25) > 1e-10 {
		t.Errorf("gains = %v, want [0.75 0.25]", gains)
	}
	if nom != 2 {
		t.Errorf("nom = %v, want 2", nom)
	}
}

func TestComputeGains_DegenerateDenomZeroWeightsSplitsEvenly(t *testing.T) {
	t.Parallel()

	gains, _ := runShare(shareCase{
		rms:           []float64{0, 0},
		weights:       []float64{0, 0},
		active:        []bool{true, true},
		participating: []bool{true, true},
	})

	if math.Abs(gains[0]-0.5) > 1e-10 || math.Abs(gains[1]-0.5) > 1e-10 {
		t.Errorf("gains = %v, want [0.5 0.5]", gains)
	}
}

func TestComputeGains_SumIsOne(t *testing.T) {
	t.Parallel()

	gains, _ := runShare(shareCase{
		rms:           []float64{0.1, 0.3, 0.2, 0.4},
		weights:       []float64{1, 0.8, 1, 0.5},
		active:        []bool{true, true, true, true},
		participating: []bool{true, true, true, true},
	})

	var sum float64
	for _, g := range gains {
		sum += g
	}
	if math.Abs(sum-1) > 1.0/(1<<20) {
		t.Errorf("gain sum = %v, want 1 within 2^-20", sum)
	}
}

func TestComputeGains_SumIsOneAcrossManyShapes(t *testing.T) {
	t.Parallel()

	// Deterministic sweep over channel counts and level shapes in place of
	// the upstream property-based check.
	for n := 1; n <= 32; n++ {
		rms := make([]float64, n)
		weights := make([]float64, n)
		active := make([]bool, n)
		participating := make([]bool, n)
		gains := make([]float64, n)

		for i := range rms {
			rms[i] = 0.0001 + float64((i*7919)%997)/997.0
			weights[i] = 0.1 + 0.9*float64((i*104729)%101)/101.0
			active[i] = true
			participating[i] = true
		}

		ComputeGains(gains, rms, weights, active, participating)

		var sum float64
		for i, g := range gains {
			if g < 0 || g > 1 {
				t.Fatalf("n=%d: gains[%d] = %v out of [0,1]", n, i, g)
			}
			sum += g
		}
		if math.Abs(sum-1) > 1e-8 {
			t.Fatalf("n=%d: gain sum = %v, want ~1", n, sum)
		}
	}
}

func TestComputeGains_LouderGetsMoreGain(t *testing.T) {
	t.Parallel()

	gains, _ := runShare(shareCase{
		rms:           []float64{0.6, 0.2},
		weights:       []float64{1, 1},
		active:        []bool{true, true},
		participating: []bool{true, true},
	})

	if gains[0] <= gains[1] {
		t.Errorf("louder channel gain %v should exceed quieter %v", gains[0], gains[1])
	}
}

func TestComputeGains_Deterministic(t *testing.T) {
	t.Parallel()

	c := shareCase{
		rms:           []float64{0.3, 0.1, 0.6},
		weights:       []float64{1, 0.5, 0.8},
		active:        []bool{true, true, true},
		participating: []bool{true, true, true},
	}

	g1, _ := runShare(c)
	g2, _ := runShare(c)
	for i := range g1 {
		if g1[i] != g2[i] {
			t.Errorf("non-deterministic at channel %d: %v vs %v", i, g1[i], g2[i])
		}
	}
}

func BenchmarkComputeGains_32Channels(b *testing.B) {
	const n = 32
	rms := make([]float64, n)
	weights := make([]float64, n)
	active := make([]bool, n)
	participating := make([]bool, n)
	gains := make([]float64, n)
	for i := range rms {
		rms[i] = 0.1 + float64(i)*0.01
		weights[i] = 1
		active[i] = true
		participating[i] = true
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		ComputeGains(gains, rms, weights, active, participating)
	}
}
