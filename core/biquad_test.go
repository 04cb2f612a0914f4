package fbanc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_BiquadParam_Clamp_projects_onto_box(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := BiquadParam{
			GainDB: rapid.Float64Range(-1000, 1000).Draw(t, "gain"),
			Q:      rapid.Float64Range(-1000, 1000).Draw(t, "q"),
			Fc:     rapid.Float64Range(-1000, 100000).Draw(t, "fc"),
		}
		p.Clamp()
		assert.GreaterOrEqual(t, p.GainDB, GainDBMin)
		assert.LessOrEqual(t, p.GainDB, GainDBMax)
		assert.GreaterOrEqual(t, p.Q, QMin)
		assert.LessOrEqual(t, p.Q, QMax)
		assert.GreaterOrEqual(t, p.Fc, FcMin)
		assert.LessOrEqual(t, p.Fc, FcMax)
	})
}

func Test_Clamp_idempotent(t *testing.T) {
	p := BiquadParam{GainDB: 500, Q: -5, Fc: 99999}
	p.Clamp()
	once := p
	p.Clamp()
	assert.Equal(t, once, p)
}

func Test_Synthesize_unity_gain_peaking_is_near_unity_away_from_fc(t *testing.T) {
	p := BiquadParam{Type: Peaking, GainDB: 0, Q: 1, Fc: 1000}
	c := Synthesize(p, RDsp)

	// A 0 dB peaking section has identical numerator and denominator, so
	// it sits at unity gain; checked here at 4 kHz, well away from fc.
	resp := c.response(2 * math.Pi * 4000 / RDsp)
	assert.InDelta(t, 1.0, cmag(resp), 0.05)
}

func Test_CascadeResponse_ten_unity_sections_is_unity(t *testing.T) {
	var coeffs [B]BiquadCoeffs
	for i := 0; i < B; i++ {
		coeffs[i] = Synthesize(BiquadParam{Type: Peaking, GainDB: 0, Q: 0.707, Fc: 1000}, RDsp)
	}
	resp := CascadeResponse(coeffs, 1.0, 0)
	assert.InDelta(t, 1.0, cmag(resp), 1e-6)
}

func Test_BiquadState_Step_matches_direct_form_ii_transposed(t *testing.T) {
	c := BiquadCoeffs{B0: 1, B1: 0.5, B2: 0.25, A1: -0.3, A2: 0.1}
	var s BiquadState

	y0 := s.Step(c, 1.0)
	assert.InDelta(t, 1.0, y0, 1e-12)

	y1 := s.Step(c, 0.0)
	wantS1 := c.B1*1.0 - c.A1*y0
	assert.InDelta(t, wantS1, y1, 1e-9)
}

func Test_BiquadState_Reset_zeroes_state(t *testing.T) {
	s := BiquadState{S1: 1, S2: 2}
	s.Reset()
	assert.Equal(t, BiquadState{}, s)
}

func Test_clamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-5, 0, 10))
	assert.Equal(t, 10.0, clamp(50, 0, 10))
	assert.Equal(t, 5.0, clamp(5, 0, 10))
}

func Test_Synthesize_never_produces_nan(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := BiquadParam{
			Type:   BiquadType(rapid.IntRange(0, 2).Draw(t, "type")),
			GainDB: rapid.Float64Range(GainDBMin, GainDBMax).Draw(t, "gain"),
			Q:      rapid.Float64Range(QMin, QMax).Draw(t, "q"),
			Fc:     rapid.Float64Range(FcMin, FcMax).Draw(t, "fc"),
		}
		c := Synthesize(p, RDsp)
		assert.False(t, math.IsNaN(c.B0))
		assert.False(t, math.IsNaN(c.A1))
	})
}
