package fbanc

import "math"

// BiquadType tags the RBJ cookbook topology a section synthesizes.
type BiquadType int

const (
	LowShelf BiquadType = iota
	Peaking
	HighShelf
)

// Parameter box bounds (§3 invariants, held at all times).
const (
	GainDBMin = -20.0
	GainDBMax = 20.0
	QMin      = 0.3
	QMax      = 10.0
	FcMin     = 20.0
	FcMax     = 20000.0

	TotalGainDBMin = -10.0
	TotalGainDBMax = 10.0
)

// BiquadParam is the tagged, bounded description of one cascade section.
// Mutated only by the optimizer (C7); never destroyed.
type BiquadParam struct {
	Type   BiquadType
	GainDB float64
	Q      float64
	Fc     float64
}

// Clamp projects p onto the parameter box, in place.
func (p *BiquadParam) Clamp() {
	p.GainDB = clamp(p.GainDB, GainDBMin, GainDBMax)
	p.Q = clamp(p.Q, QMin, QMax)
	p.Fc = clamp(p.Fc, FcMin, FcMax)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BiquadCoeffs holds the six normalized (a0 == 1) transfer-function
// coefficients derived from a BiquadParam at a given sample rate.
type BiquadCoeffs struct {
	B0, B1, B2 float64
	A1, A2     float64 // A0 normalized away
}

// Synthesize computes RBJ audio-EQ-cookbook coefficients for p at sampleRate,
// normalizing by a0 so A0 == 1 implicitly (§4.2).
func Synthesize(p BiquadParam, sampleRate float64) BiquadCoeffs {
	a := math.Pow(10, p.GainDB/40)
	omega := 2 * math.Pi * p.Fc / sampleRate
	sinW, cosW := math.Sin(omega), math.Cos(omega)
	alpha := sinW / (2 * p.Q)

	var b0, b1, b2, a0, a1, a2 float64

	switch p.Type {
	case LowShelf:
		sqrtATimes2Alpha := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) - (a-1)*cosW + sqrtATimes2Alpha)
		b1 = 2 * a * ((a - 1) - (a+1)*cosW)
		b2 = a * ((a + 1) - (a-1)*cosW - sqrtATimes2Alpha)
		a0 = (a + 1) + (a-1)*cosW + sqrtATimes2Alpha
		a1 = -2 * ((a - 1) + (a+1)*cosW)
		a2 = (a + 1) + (a-1)*cosW - sqrtATimes2Alpha

	case HighShelf:
		sqrtATimes2Alpha := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) + (a-1)*cosW + sqrtATimes2Alpha)
		b1 = -2 * a * ((a - 1) + (a+1)*cosW)
		b2 = a * ((a + 1) + (a-1)*cosW - sqrtATimes2Alpha)
		a0 = (a + 1) - (a-1)*cosW + sqrtATimes2Alpha
		a1 = 2 * ((a - 1) - (a+1)*cosW)
		a2 = (a + 1) - (a-1)*cosW - sqrtATimes2Alpha

	default: // Peaking
		b0 = 1 + alpha*a
		b1 = -2 * cosW
		b2 = 1 - alpha*a
		a0 = 1 + alpha/a
		a1 = -2 * cosW
		a2 = 1 - alpha/a
	}

	return BiquadCoeffs{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}

// response evaluates a single section's transfer function at digital
// frequency omega (radians/sample), z^-1 = e^{-j*omega}.
func (c BiquadCoeffs) response(omega float64) complex128 {
	zInv := complex(math.Cos(-omega), math.Sin(-omega))
	zInv2 := zInv * zInv
	num := complex(c.B0, 0) + complex(c.B1, 0)*zInv + complex(c.B2, 0)*zInv2
	den := complex(1, 0) + complex(c.A1, 0)*zInv + complex(c.A2, 0)*zInv2
	return cdiv(num, den)
}

// CascadeResponse evaluates the product of all B section responses at bin k,
// evaluated at the analysis rate R_dsp (§4.2), then scales by totalGain.
func CascadeResponse(coeffs [B]BiquadCoeffs, totalGain float64, k int) complex128 {
	omega := 2 * math.Pi * float64(k) / L
	resp := complex(totalGain, 0)
	for _, c := range coeffs {
		resp *= c.response(omega)
	}
	return resp
}

// BiquadState holds the two Direct-Form-II-Transposed delay elements for one
// section's realtime sample stepper (§3: distinct from the stateless
// response-evaluation path used by C5/C7).
type BiquadState struct {
	S1, S2 float64
}

// Step advances the DF-II-T stepper by one sample (§4.2):
//
//	y      = b0*x + s1
//	s1'    = b1*x - a1*y + s2
//	s2'    = b2*x - a2*y
func (s *BiquadState) Step(c BiquadCoeffs, x float64) float64 {
	y := c.B0*x + s.S1
	s.S1 = c.B1*x - c.A1*y + s.S2
	s.S2 = c.B2*x - c.A2*y
	return y
}

// Reset zeroes the delay elements (§4.8: done before every filtering pass).
func (s *BiquadState) Reset() {
	s.S1, s.S2 = 0, 0
}
