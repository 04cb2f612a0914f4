package fbanc

// RealtimeBridge is the realtime filter bridge (C8): a cascade synthesized
// at R_rt together with its B DF-II-T sample steppers. It is rebuilt from
// scratch whenever the scheduler (C9) accepts a new ParamSet.
type RealtimeBridge struct {
	Filter FeedforwardFilter
	States [B]BiquadState
}

// BuildRealtimeBridge synthesizes coefficients for ps at R_rt (§4.2) and
// returns a bridge with freshly zeroed steppers.
func BuildRealtimeBridge(ps ParamSet) *RealtimeBridge {
	return &RealtimeBridge{Filter: BuildFilter(ps, RRt)}
}

// ResetStates zeroes every section's delay elements (§4.8: done before
// every filtering pass, so a newly accepted cascade never inherits the
// previous cascade's history).
func (r *RealtimeBridge) ResetStates() {
	for i := range r.States {
		r.States[i].Reset()
	}
}

// FilterSample pushes one realtime-rate sample through the B-section
// cascade in order, then applies total_gain (§4.2).
func (r *RealtimeBridge) FilterSample(x float64) float64 {
	y := x
	for i := range r.Filter.Sections {
		y = r.States[i].Step(r.Filter.Sections[i], y)
	}
	return y * r.Filter.TotalGain
}

// FilterBlock filters a contiguous run of realtime-rate samples.
func (r *RealtimeBridge) FilterBlock(in []float64) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = r.FilterSample(x)
	}
	return out
}

// ApplyToRemainder implements the C9 time-domain filtering pass: the
// accepted cascade filters ff, the result drives the secondary-path FIR
// simulating the loudspeaker -> error-mic path, and the simulated
// cancellation is subtracted from the original error-mic stream to produce
// the new FB samples written back in place (§4.8-§4.9). Both the cascade
// steppers and the secondary-path delay line are reset first so the pass
// starts from silence, never from whatever history the previous cascade or
// a previous call left behind.
func (r *RealtimeBridge) ApplyToRemainder(ff, fbOriginal []float64, secondary *FIR) []float64 {
	r.ResetStates()
	secondary.Reset()

	out := make([]float64, len(ff))
	for i, x := range ff {
		antiNoise := secondary.Process(r.FilterSample(x))
		out[i] = fbOriginal[i] - antiNoise
	}
	return out
}
