package fbanc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_guardSecondaryPath_preserves_phase_when_flooring(t *testing.T) {
	tiny := complex(1e-10, 1e-10)
	guarded := guardSecondaryPath(tiny)

	assert.InDelta(t, sMagFloor, cmag(guarded), 1e-15)
	assert.InDelta(t, math.Atan2(imag(tiny), real(tiny)), math.Atan2(imag(guarded), real(guarded)), 1e-9)
}

func Test_guardSecondaryPath_leaves_large_magnitude_untouched(t *testing.T) {
	s := complex(0.5, 0.5)
	assert.Equal(t, s, guardSecondaryPath(s))
}

func Test_stepMu_clamped_to_bounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sr := rapid.Float64Range(-10, 10).Draw(t, "sr")
		si := rapid.Float64Range(-10, 10).Draw(t, "si")
		fr := rapid.Float64Range(-10, 10).Draw(t, "fr")
		fi := rapid.Float64Range(-10, 10).Draw(t, "fi")

		mu := stepMu(complex(sr, si), complex(fr, fi))
		assert.GreaterOrEqual(t, mu, muMin)
		assert.LessOrEqual(t, mu, muMax)
	})
}

func Test_SynthesizeTarget_adds_mu_scaled_pp_over_s_to_current_response(t *testing.T) {
	f := BuildFilter(flatInitialCascade(), RDsp)
	secondary := make([]complex128, K)
	ffAvg := make([]complex128, K)
	ppAvg := make([]complex128, K)
	for k := range secondary {
		secondary[k] = 1
		ffAvg[k] = 1
	}
	for k := range ppAvg {
		ppAvg[k] = f.ResponseAt(k) // with S == 1 the update term mu*PP/S is mu*W_current
	}

	target, mu := SynthesizeTarget(f, ffAvg, ppAvg, secondary)
	assert.Len(t, mu, K)
	for k := 0; k < K; k++ {
		expected := f.ResponseAt(k) + complex(mu[k], 0)*f.ResponseAt(k)
		assert.InDelta(t, real(expected), real(target[k]), 1e-6)
		assert.InDelta(t, imag(expected), imag(target[k]), 1e-6)
	}
}
