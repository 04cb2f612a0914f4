package fbanc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_decimate_nearest_index_preserves_length_ratio(t *testing.T) {
	x := make([]float64, 1000)
	for i := range x {
		x[i] = float64(i)
	}
	out := decimate(x, RRt, RDsp)
	want := int(float64(len(x)) * RDsp / RRt)
	assert.InDelta(t, want, len(out), 1)
}

func Test_decimate_empty_input(t *testing.T) {
	assert.Nil(t, decimate(nil, RRt, RDsp))
}

func Test_ring_snapshot_zero_pads_until_full(t *testing.T) {
	var r ring
	out := make([]float64, L)
	r.push([]float64{1, 2, 3})
	r.snapshot(out)

	for i := 0; i < L-3; i++ {
		assert.Zero(t, out[i])
	}
	assert.Equal(t, []float64{1, 2, 3}, out[L-3:])
}

func Test_ring_snapshot_returns_most_recent_L_once_full(t *testing.T) {
	var r ring
	out := make([]float64, L)
	samples := make([]float64, L+10)
	for i := range samples {
		samples[i] = float64(i)
	}
	r.push(samples)
	r.snapshot(out)

	for i := 0; i < L; i++ {
		assert.Equal(t, float64(i+10), out[i])
	}
}

func Test_Analyzer_Ready_after_L_samples(t *testing.T) {
	a := NewAnalyzer()
	assert.False(t, a.Ready())

	samples := make([]float64, L)
	a.Ingest(samples, samples, samples, RDsp, RDsp) // same rate: decimate is a no-op pass-through
	assert.True(t, a.Ready())
}

func Test_Analyzer_RunPass_accumulates_and_advances_hop(t *testing.T) {
	a := NewAnalyzer()
	samples := make([]float64, L)
	for i := range samples {
		samples[i] = 1
	}
	a.Ingest(samples, samples, samples, RDsp, RDsp)
	assert.True(t, a.Ready())

	a.RunPass()
	assert.Equal(t, 1, a.Count())
	assert.False(t, a.Ready()) // sampleCount dropped by hop, below L again

	ffAvg, _, _, _ := a.AveragedSpectra()
	assert.Len(t, ffAvg, K)
}

func Test_Analyzer_ResetIteration_clears_accumulators_not_rings(t *testing.T) {
	a := NewAnalyzer()
	samples := make([]float64, L)
	a.Ingest(samples, samples, samples, RDsp, RDsp)
	a.RunPass()
	assert.Equal(t, 1, a.Count())

	a.ResetIteration()
	assert.Equal(t, 0, a.Count())
	assert.False(t, a.Ready())

	// sample_count (since the last hop) was zeroed by ResetIteration, so a
	// full L more samples is needed before Ready() trips again, even though
	// the ring buffers themselves were left untouched.
	a.Ingest(make([]float64, L), make([]float64, L), make([]float64, L), RDsp, RDsp)
	assert.True(t, a.Ready())
}
