package fbanc

// MaxFIRLength bounds the secondary-path FIR (§3).
const MaxFIRLength = 8192

// FIR is a length-N FIR filter applied through a length-N circular delay
// line (§4.3), used to simulate the secondary acoustic path.
type FIR struct {
	coeffs     []float64
	buffer     []float64
	writeIndex int
}

// NewFIR builds a FIR from coeffs, truncating to MaxFIRLength if needed.
// truncated reports whether truncation occurred, so a caller with a logging
// sink can warn (§7: this is a graceful-degrade case, not an error).
func NewFIR(coeffs []float64) (f *FIR, truncated bool) {
	if len(coeffs) > MaxFIRLength {
		coeffs = coeffs[:MaxFIRLength]
		truncated = true
	}
	f = &FIR{
		coeffs: append([]float64(nil), coeffs...),
		buffer: make([]float64, len(coeffs)),
	}
	return f, truncated
}

// Process filters one input sample (§4.3):
//
//	buffer[w] = x
//	y = sum_{k=0..N-1} h[k]*buffer[(w-k) mod N]
//	w = (w+1) mod N
func (f *FIR) Process(x float64) float64 {
	n := len(f.coeffs)
	if n == 0 {
		return 0
	}

	f.buffer[f.writeIndex] = x

	var y float64
	readIndex := f.writeIndex
	for k := 0; k < n; k++ {
		y += f.coeffs[k] * f.buffer[readIndex]
		readIndex--
		if readIndex < 0 {
			readIndex = n - 1
		}
	}

	f.writeIndex++
	if f.writeIndex >= n {
		f.writeIndex = 0
	}

	return y
}

// ProcessBlock filters a slice of samples in place order, returning a new
// slice of outputs (§4.3: "batch FIR filtering").
func (f *FIR) ProcessBlock(in []float64) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = f.Process(x)
	}
	return out
}

// Reset zeroes the delay line and rewinds the write pointer (§4.3).
func (f *FIR) Reset() {
	for i := range f.buffer {
		f.buffer[i] = 0
	}
	f.writeIndex = 0
}

// Length reports the number of taps.
func (f *FIR) Length() int {
	return len(f.coeffs)
}
