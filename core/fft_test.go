package fbanc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_realFFT_dc_signal_concentrates_in_bin_zero(t *testing.T) {
	f := newRealFFT(L)
	samples := make([]float64, L)
	win := ones(L)
	for i := range samples {
		samples[i] = 1
	}

	bins := f.transform(samples, win, nil)
	assert.Len(t, bins, K)
	assert.InDelta(t, float64(L), real(bins[0]), 1e-6)
	for k := 1; k < K; k++ {
		assert.InDeltaf(t, 0.0, cmag(bins[k]), 1e-6, "bin %d should be ~0 for a DC input", k)
	}
}

func Test_realFFT_single_tone_peaks_at_expected_bin(t *testing.T) {
	f := newRealFFT(L)
	const targetBin = 100
	samples := make([]float64, L)
	freq := binFreq(targetBin)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / RDsp)
	}

	bins := f.transform(samples, ones(L), nil)

	peak, peakK := 0.0, -1
	for k := 0; k < K; k++ {
		if m := cmag(bins[k]); m > peak {
			peak, peakK = m, k
		}
	}
	assert.Equal(t, targetBin, peakK)
}

func Test_binFreq_monotonic(t *testing.T) {
	for k := 1; k < K; k++ {
		assert.Greater(t, binFreq(k), binFreq(k-1))
	}
	assert.InDelta(t, RDsp/2, binFreq(K-1), 1e-6)
}
