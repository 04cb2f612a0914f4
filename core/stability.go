package fbanc

import "math"

// Stability gate thresholds (§4.6). Overridable via the YAML tuning file.
type StabilityConfig struct {
	SmoothnessFactor  float64 // reject if S_cur > SmoothnessFactor*prev_smoothness
	SmoothnessFloor   float64 // guard below which the smoothness check is skipped
	SpikeDB           float64 // |H[i]-Hprev[i]| threshold
	SpikeFraction     float64 // fraction of the band allowed to spike
	AbsoluteMinDB     float64
	AbsoluteMaxDB     float64
	GlobalShiftDB     float64
}

// DefaultStabilityConfig returns the §4.6 thresholds.
func DefaultStabilityConfig() StabilityConfig {
	return StabilityConfig{
		SmoothnessFactor: 3.0,
		SmoothnessFloor:  1e-8,
		SpikeDB:          6.0,
		SpikeFraction:    0.10,
		AbsoluteMinDB:    -40.0,
		AbsoluteMaxDB:    10.0,
		GlobalShiftDB:    3.0,
	}
}

const dbFloor = 1e-8

// bandRange returns the [k_lo, k_hi] bin range (inclusive) covering
// 200-1000 Hz at the analysis rate (§4.6).
func bandRange() (lo, hi int) {
	lo, hi = -1, -1
	for k := 0; k < K; k++ {
		f := binFreq(k)
		if f >= 200 && lo == -1 {
			lo = k
		}
		if f <= 1000 {
			hi = k
		}
	}
	return lo, hi
}

// magnitudeDB converts a spectrum's magnitude to dB over the stability
// band, applying the §4.6 floor.
func magnitudeDB(spectrum []complex128) []float64 {
	lo, hi := bandRange()
	out := make([]float64, hi-lo+1)
	for i := range out {
		out[i] = 20 * math.Log10(cmag(spectrum[lo+i])+dbFloor)
	}
	return out
}

// Gate is the stability gate's persistent state: the previously accepted
// iteration's band magnitude (in dB) and smoothness score. Initially all
// zeros with PrevSmoothness = 1.0 (§4.6).
type Gate struct {
	cfg            StabilityConfig
	PrevDB         []float64
	PrevSmoothness float64
}

// NewGate constructs a Gate in its initial state.
func NewGate(cfg StabilityConfig) *Gate {
	lo, hi := bandRange()
	return &Gate{
		cfg:            cfg,
		PrevDB:         make([]float64, hi-lo+1),
		PrevSmoothness: 1.0,
	}
}

// CheckResult reports which (if any) of the four sequential checks failed.
type CheckResult struct {
	Pass    bool
	Reason  string // empty when Pass
	Current float64 // S_cur, the smoothness score of this candidate
	BandDB  []float64
}

// Check runs the four sequential checks of §4.6 against target's magnitude
// in the 200-1000 Hz band. It does not mutate the gate's state — call
// Commit after a pass to advance PrevDB/PrevSmoothness.
func (g *Gate) Check(target []complex128) CheckResult {
	hdb := magnitudeDB(target)

	// 1. Smoothness: second-difference roughness of this candidate.
	var sCur float64
	if n := len(hdb); n >= 3 {
		for i := 0; i < n-2; i++ {
			d := hdb[i+2] - 2*hdb[i+1] + hdb[i]
			sCur += d * d
		}
		sCur /= float64(n - 2)
	}
	if sCur > g.cfg.SmoothnessFactor*g.PrevSmoothness && g.PrevSmoothness > g.cfg.SmoothnessFloor {
		return CheckResult{Pass: false, Reason: "smoothness", Current: sCur, BandDB: hdb}
	}

	// 2. Local spikes vs. the previously accepted band.
	var spikes int
	for i, v := range hdb {
		if math.Abs(v-g.PrevDB[i]) > g.cfg.SpikeDB {
			spikes++
		}
	}
	if float64(spikes) > g.cfg.SpikeFraction*float64(len(hdb)) {
		return CheckResult{Pass: false, Reason: "local_spikes", Current: sCur, BandDB: hdb}
	}

	// 3. Absolute bounds.
	minDB, maxDB := hdb[0], hdb[0]
	for _, v := range hdb {
		minDB = math.Min(minDB, v)
		maxDB = math.Max(maxDB, v)
	}
	if minDB < g.cfg.AbsoluteMinDB || maxDB > g.cfg.AbsoluteMaxDB {
		return CheckResult{Pass: false, Reason: "absolute_bounds", Current: sCur, BandDB: hdb}
	}

	// 4. Global shift.
	var sumDiff float64
	for i, v := range hdb {
		sumDiff += v - g.PrevDB[i]
	}
	meanDiff := sumDiff / float64(len(hdb))
	if math.Abs(meanDiff) > g.cfg.GlobalShiftDB {
		return CheckResult{Pass: false, Reason: "global_shift", Current: sCur, BandDB: hdb}
	}

	return CheckResult{Pass: true, Current: sCur, BandDB: hdb}
}

// Commit advances the gate's state after an accepted candidate (§4.6: "On
// pass: commit prev_smoothness <- S_cur"). Atomic with respect to Check:
// a caller that never calls Commit leaves the gate exactly as it was.
func (g *Gate) Commit(result CheckResult) {
	copy(g.PrevDB, result.BandDB)
	g.PrevSmoothness = result.Current
}
