package fbanc

import "math"

// NPresets is the size of the compiled preset table (§6).
const NPresets = 10

// Preset supplies a length-K complex secondary-path spectrum and the
// initial cascade (ten BiquadParam + total_gain_dB) for one acoustic
// environment (§6).
type Preset struct {
	Name      string
	Secondary []complex128 // length K
	Initial   ParamSet
}

// flatInitialCascade returns the ten-section starting cascade shared by
// every preset: biquads spread log-spaced across the audio band, a low shelf
// first, a high shelf last and peaking sections in between, all at 0 dB gain
// so the optimizer starts from a neutral EQ and moves away from it.
func flatInitialCascade() ParamSet {
	types := [B]BiquadType{
		LowShelf, Peaking, Peaking, Peaking, Peaking,
		Peaking, Peaking, Peaking, Peaking, HighShelf,
	}

	var ps ParamSet
	for i := 0; i < B; i++ {
		// log-spaced centre frequencies between 60 Hz and 12 kHz.
		frac := float64(i) / float64(B-1)
		fc := 60 * math.Pow(12000/60, frac)
		ps.Biquads[i] = BiquadParam{Type: types[i], GainDB: 0, Q: 0.707, Fc: fc}
	}
	ps.TotalGainDB = 0
	return ps
}

// syntheticSecondaryPath returns the length-K spectrum of a short decaying
// exponential impulse response, standing in for a real measured loudspeaker
// -> error-mic transfer function (preset 0's "realistic" secondary path).
func syntheticSecondaryPath(decaySamples float64, scale float64) []complex128 {
	ir := make([]float64, L)
	for n := range ir {
		if n < 256 {
			ir[n] = scale * math.Exp(-float64(n)/decaySamples)
		}
	}
	f := newRealFFT(L)
	bins := f.transform(ir, ones(L), nil)
	out := make([]complex128, K)
	copy(out, bins)
	return out
}

func ones(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// unitySecondaryPath returns a flat, unity-gain secondary path — the
// literal placeholder used by presets that have not yet been measured.
func unitySecondaryPath() []complex128 {
	s := make([]complex128, K)
	for k := range s {
		s[k] = 1
	}
	return s
}

// Presets is the compiled table of N_presets acoustic environments (§6).
//
// Per §9's open question, only preset 0 carries a representative secondary
// path; presets 1-9 are literal placeholders (flat, unity secondary path)
// reproducing the source's partially-populated table rather than silently
// inventing nine more measured environments. Production deployment must
// replace them before trusting mu computations derived from them.
var Presets = buildPresets()

func buildPresets() [NPresets]Preset {
	var presets [NPresets]Preset

	presets[0] = Preset{
		Name:      "measured-default",
		Secondary: syntheticSecondaryPath(40, 0.6),
		Initial:   flatInitialCascade(),
	}

	for i := 1; i < NPresets; i++ {
		presets[i] = Preset{
			Name:      "placeholder",
			Secondary: unitySecondaryPath(),
			Initial:   flatInitialCascade(),
		}
	}

	return presets
}
