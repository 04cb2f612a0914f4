// Package fbanc implements the adaptation core of a feedforward Active Noise
// Cancellation system: block-rate frequency-domain target synthesis, a
// stability gate, sequential coordinate-descent projection onto a ten-section
// biquad cascade, and the realtime filter bridge that applies it.
package fbanc

import "math"

// magSqFloor guards complex division against a near-zero denominator, per
// the division guard required throughout C1/C4/C5.
const magSqFloor = 1e-10

// cdiv divides a by b, flooring |b|^2 at magSqFloor so a noise-floor bin
// never produces an Inf/NaN that would propagate into the target spectrum.
func cdiv(a, b complex128) complex128 {
	denom := real(b)*real(b) + imag(b)*imag(b)
	if denom < magSqFloor {
		denom = magSqFloor
	}
	conj := complex(real(b), -imag(b))
	num := a * conj
	return complex(real(num)/denom, imag(num)/denom)
}

// cmag returns |z|.
func cmag(z complex128) float64 {
	return math.Hypot(real(z), imag(z))
}

// blackmanWindow returns the length-n Blackman window with the coefficients
// fixed by §4.1: w[j] = 0.42 - 0.5*cos(2*pi*j/(n-1)) + 0.08*cos(4*pi*j/(n-1)).
// Computed once and cached by the analyzer (§4.4) against its fixed length L.
func blackmanWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	denom := float64(n - 1)
	for j := 0; j < n; j++ {
		theta := 2 * math.Pi * float64(j) / denom
		w[j] = 0.42 - 0.5*math.Cos(theta) + 0.08*math.Cos(2*theta)
	}
	return w
}
