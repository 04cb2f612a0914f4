package fbanc

import "gonum.org/v1/gonum/dsp/fourier"

// Analysis constants (§3).
const (
	L = 2048       // FFT length
	K = L/2 + 1    // number of analysis bins
	B = 10         // biquad cascade sections
	NAvg = 10      // FFTs averaged per iteration
	RDsp = 32000.0 // analysis (block-rate) sample rate, Hz
	RRt  = 375000.0 // realtime sample rate, Hz
)

// realFFT performs the length-L real-to-complex transform into K bins
// required by C1. Any library providing an O(L log L) real FFT satisfies
// the spec; this wraps gonum's, which returns exactly L/2+1 coefficients
// for a length-L real sequence.
type realFFT struct {
	fft *fourier.FFT
	buf []float64 // scratch: windowed samples, reused across calls
}

func newRealFFT(n int) *realFFT {
	return &realFFT{
		fft: fourier.NewFFT(n),
		buf: make([]float64, n),
	}
}

// transform windows samples with win (element-wise) and returns the K
// complex bins. dst is reused if it has length K; a nil dst is allocated
// (gonum panics on a non-nil dst of any other length).
func (r *realFFT) transform(samples, win []float64, dst []complex128) []complex128 {
	for i, s := range samples {
		r.buf[i] = s * win[i]
	}
	return r.fft.Coefficients(dst, r.buf)
}

// binFreq returns the analysis frequency f_k = k*R_dsp/L for bin k.
func binFreq(k int) float64 {
	return float64(k) * RDsp / L
}
