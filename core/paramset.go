package fbanc

import "math"

// ParamSet is the installed cascade: 31 scalars (10 biquads x
// {gain_dB, Q, fc} + total_gain_dB), the only state the optimizer mutates.
type ParamSet struct {
	Biquads     [B]BiquadParam
	TotalGainDB float64
}

// Clamp projects every scalar onto its box (§3 invariants).
func (ps *ParamSet) Clamp() {
	for i := range ps.Biquads {
		ps.Biquads[i].Clamp()
	}
	ps.TotalGainDB = clamp(ps.TotalGainDB, TotalGainDBMin, TotalGainDBMax)
}

// TotalGainLinear converts the installed total_gain_dB to the linear scalar
// applied by the cascade (§3: total_gain = 10^(total_gain_dB/20)).
func (ps ParamSet) TotalGainLinear() float64 {
	return math.Pow(10, ps.TotalGainDB/20)
}

// Clone returns a deep copy; ParamSet has no pointer fields so a value copy
// already suffices, but Clone documents the intent at optimizer call sites.
func (ps ParamSet) Clone() ParamSet {
	return ps
}

// FeedforwardFilter is the materialized cascade (§3): B BiquadCoeffs plus the
// linear total_gain, derived from a ParamSet at a chosen sample rate.
type FeedforwardFilter struct {
	Sections  [B]BiquadCoeffs
	TotalGain float64
}

// BuildFilter synthesizes coefficients for every section of ps at
// sampleRate (either R_dsp for response evaluation, or R_rt for the
// realtime stepper — §4.2).
func BuildFilter(ps ParamSet, sampleRate float64) FeedforwardFilter {
	var f FeedforwardFilter
	for i, bp := range ps.Biquads {
		f.Sections[i] = Synthesize(bp, sampleRate)
	}
	f.TotalGain = ps.TotalGainLinear()
	return f
}

// ResponseAt evaluates the cascade at analysis bin k (§4.2: always omega =
// 2*pi*k/L, regardless of which rate the coefficients were synthesized at).
func (f FeedforwardFilter) ResponseAt(k int) complex128 {
	return CascadeResponse(f.Sections, f.TotalGain, k)
}

// paramIndex identifies one of the 31 scalars in the optimizer's fixed
// visiting order (§4.7): biquad 0..9 x (gain, Q, fc), then total_gain_dB.
type paramIndex struct {
	biquad int // -1 selects TotalGainDB
	field  paramField
}

type paramField int

const (
	fieldGain paramField = iota
	fieldQ
	fieldFc
	fieldTotalGain
)

// paramOrder enumerates all 31 scalars in the fixed visiting order.
func paramOrder() []paramIndex {
	order := make([]paramIndex, 0, B*3+1)
	for b := 0; b < B; b++ {
		order = append(order,
			paramIndex{biquad: b, field: fieldGain},
			paramIndex{biquad: b, field: fieldQ},
			paramIndex{biquad: b, field: fieldFc},
		)
	}
	order = append(order, paramIndex{biquad: -1, field: fieldTotalGain})
	return order
}

// get reads the current scalar value addressed by idx.
func (ps *ParamSet) get(idx paramIndex) float64 {
	if idx.field == fieldTotalGain {
		return ps.TotalGainDB
	}
	bp := &ps.Biquads[idx.biquad]
	switch idx.field {
	case fieldGain:
		return bp.GainDB
	case fieldQ:
		return bp.Q
	default:
		return bp.Fc
	}
}

// set writes v into the scalar addressed by idx (unclamped; callers clamp
// the candidate before calling set, per §4.7 step 4).
func (ps *ParamSet) set(idx paramIndex, v float64) {
	if idx.field == fieldTotalGain {
		ps.TotalGainDB = v
		return
	}
	bp := &ps.Biquads[idx.biquad]
	switch idx.field {
	case fieldGain:
		bp.GainDB = v
	case fieldQ:
		bp.Q = v
	default:
		bp.Fc = v
	}
}

// paramConstants are the per-scalar tuning constants from the §4.7 table.
type paramConstants struct {
	Epsilon      float64
	LearningRate float64
	MaxStep      float64
	Lo, Hi       float64
}

func (idx paramIndex) constants(c OptimizerConfig) paramConstants {
	switch idx.field {
	case fieldGain:
		return paramConstants{c.GainEpsilon, c.GainLearningRate, c.GainMaxStep, GainDBMin, GainDBMax}
	case fieldQ:
		return paramConstants{c.QEpsilon, c.QLearningRate, c.QMaxStep, QMin, QMax}
	case fieldFc:
		return paramConstants{c.FcEpsilon, c.FcLearningRate, c.FcMaxStep, FcMin, FcMax}
	default:
		return paramConstants{c.TotalGainEpsilon, c.TotalGainLearningRate, c.TotalGainMaxStep, TotalGainDBMin, TotalGainDBMax}
	}
}
