package fbanc

import "math"

// hop is the 75%-overlap hop size in analysis samples (§4.4): H = L*(1-0.75).
const hop = L * (1 - 0.75)

// ring is a fixed-size circular buffer of exactly L reals (§9 design note:
// "in-place FFT buffers ... contiguous fixed-size arrays; no dynamic
// growth"). Snapshot always returns the most recent L samples, oldest
// first, zero-padded at the front until the stream has produced L samples.
type ring struct {
	buf        [L]float64
	writePos   int
	totalPushed int
}

func (r *ring) push(samples []float64) {
	for _, s := range samples {
		r.buf[r.writePos] = s
		r.writePos = (r.writePos + 1) % L
		r.totalPushed++
	}
}

func (r *ring) snapshot(out []float64) {
	if r.totalPushed >= L {
		idx := r.writePos
		for i := 0; i < L; i++ {
			out[i] = r.buf[idx]
			idx = (idx + 1) % L
		}
		return
	}

	filled := r.totalPushed
	for i := 0; i < L-filled; i++ {
		out[i] = 0
	}
	copy(out[L-filled:], r.buf[:filled])
}

// decimate resamples x from rRt to rDsp by nearest-index lookup (§4.4):
// F' = ceil(F*R_dsp/R_rt) output samples, no anti-alias LPF. Documented
// future improvement per §9 — current contract is nearest-index, literally.
func decimate(x []float64, rRt, rDsp float64) []float64 {
	f := len(x)
	if f == 0 {
		return nil
	}
	fPrime := int(math.Ceil(float64(f) * rDsp / rRt))
	if fPrime < 1 {
		fPrime = 1
	}

	out := make([]float64, fPrime)
	ratio := float64(f) / float64(fPrime)
	for j := 0; j < fPrime; j++ {
		idx := int(math.Round(float64(j) * ratio))
		if idx >= f {
			idx = f - 1
		}
		out[j] = x[idx]
	}
	return out
}

// Analyzer is the block-rate analyzer (C4): it decimates incoming realtime
// frames, ring-buffers them, and runs windowed-FFT passes that accumulate
// averaged FF/FB/SPK spectra and a primary-path estimate.
type Analyzer struct {
	ringFF, ringFB, ringSPK ring
	window                  []float64
	fft                     *realFFT

	sampleCount int // since the last hop, within the current iteration

	ffAccum, fbAccum, spkAccum, ppAccum [K]complex128
	count                                int // c: passes accumulated so far

	scratch [L]float64 // reused snapshot buffer
}

// NewAnalyzer constructs an Analyzer with empty ring buffers and a
// precomputed Blackman window of length L.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		window: blackmanWindow(L),
		fft:    newRealFFT(L),
	}
}

// Ingest decimates one realtime frame for each of FF/FB/SPK from rRt to
// rDsp and appends the result to the ring buffers, advancing sampleCount
// (§4.4 step 1-2).
func (a *Analyzer) Ingest(ffRt, fbRt, spkRt []float64, rRt, rDsp float64) {
	ff := decimate(ffRt, rRt, rDsp)
	fb := decimate(fbRt, rRt, rDsp)
	spk := decimate(spkRt, rRt, rDsp)

	a.ringFF.push(ff)
	a.ringFB.push(fb)
	a.ringSPK.push(spk)

	a.sampleCount += len(ff)
}

// Ready reports whether sample_count has reached L, i.e. a full window is
// available to start FFT passes (§4.4).
func (a *Analyzer) Ready() bool {
	return a.sampleCount >= L
}

// RunPass performs exactly one windowed-FFT pass: snapshot the most recent
// L samples from each ring, window, transform, accumulate bin-wise, form
// the primary-path estimate, and advance the hop (§4.4). The caller (C9)
// invokes this exactly N_avg times once Ready() trips — including, per the
// literal (and intentionally preserved, §9) source behavior, entirely
// within a single Ingest call if the rings were already full.
func (a *Analyzer) RunPass() {
	a.ringFF.snapshot(a.scratch[:])
	ffBins := a.fft.transform(a.scratch[:], a.window, nil)

	a.ringFB.snapshot(a.scratch[:])
	fbBins := a.fft.transform(a.scratch[:], a.window, nil)

	a.ringSPK.snapshot(a.scratch[:])
	spkBins := a.fft.transform(a.scratch[:], a.window, nil)

	for k := 0; k < K; k++ {
		a.ffAccum[k] += ffBins[k]
		a.fbAccum[k] += fbBins[k]
		a.spkAccum[k] += spkBins[k]
		a.ppAccum[k] += cdiv(fbBins[k], ffBins[k])
	}

	a.count++
	a.sampleCount -= hop
}

// AveragedSpectra divides each accumulator by count to produce ff_avg,
// fb_avg, spk_avg and the primary-path estimate PP (§4.4 "Average" step).
func (a *Analyzer) AveragedSpectra() (ffAvg, fbAvg, spkAvg, pp []complex128) {
	n := float64(a.count)
	if n == 0 {
		n = 1
	}
	ffAvg = make([]complex128, K)
	fbAvg = make([]complex128, K)
	spkAvg = make([]complex128, K)
	pp = make([]complex128, K)
	for k := 0; k < K; k++ {
		ffAvg[k] = a.ffAccum[k] / complex(n, 0)
		fbAvg[k] = a.fbAccum[k] / complex(n, 0)
		spkAvg[k] = a.spkAccum[k] / complex(n, 0)
		pp[k] = a.ppAccum[k] / complex(n, 0)
	}
	return
}

// Count reports c, the number of passes accumulated so far (<= N_avg).
func (a *Analyzer) Count() int {
	return a.count
}

// ResetIteration clears the per-iteration accumulators, count, and hop
// bookkeeping, but leaves the ring buffers (continuous signal history)
// untouched (§3: "c becomes authoritative denominator" only after
// average(); ring buffers are never part of this reset).
func (a *Analyzer) ResetIteration() {
	a.ffAccum = [K]complex128{}
	a.fbAccum = [K]complex128{}
	a.spkAccum = [K]complex128{}
	a.ppAccum = [K]complex128{}
	a.count = 0
	a.sampleCount = 0
}
