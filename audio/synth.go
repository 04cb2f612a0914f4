package audio

import "math"

// Amplitudes of the §6 fallback test tones: 1 kHz on FF at 1e-3, 2 kHz on
// FB at 5e-4.
const (
	ffToneAmplitude = 1e-3
	fbToneAmplitude = 5e-4
)

// SyntheticTestTones generates the fallback reference/error/loudspeaker-
// monitor input when no input WAV is supplied (§7 category i graceful
// degrade): a 1 kHz tone on the reference channel at amplitude 1e-3, a
// 2 kHz tone on the error channel at amplitude 5e-4, and the loudspeaker-
// monitor channel tracking the reference tone at reduced amplitude, all at
// sampleRate for durationSeconds.
func SyntheticTestTones(sampleRate int, durationSeconds float64) (ff, fb, spk []float64) {
	n := int(float64(sampleRate) * durationSeconds)
	ff = make([]float64, n)
	fb = make([]float64, n)
	spk = make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		ff[i] = ffToneAmplitude * math.Sin(2*math.Pi*1000*t)
		fb[i] = fbToneAmplitude * math.Sin(2*math.Pi*2000*t)
		spk[i] = 0.5 * ff[i]
	}
	return ff, fb, spk
}
