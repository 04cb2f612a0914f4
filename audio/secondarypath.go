package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	fbanc "github.com/n5kg/adaptive-anc/core"
)

// defaultSecondaryPathTaps is the length of the fallback impulse response
// when no binary IR file is supplied; e^(-2048/100) is negligible, so this
// comfortably captures the full decay within MaxFIRLength.
const defaultSecondaryPathTaps = 2048

// LoadSecondaryPathIR reads a binary file of little-endian IEEE-754
// 32-bit floats (up to fbanc.MaxFIRLength taps) as the secondary-path
// impulse response. On a missing file it falls back to h[n] =
// 0.5*e^(-n/100) and reports fellBack=true so the caller can log a
// warning (§7 category i, graceful degrade — never an error on its own).
func LoadSecondaryPathIR(path string) (ir []float64, fellBack bool, err error) {
	if path == "" {
		return fallbackSecondaryPathIR(), true, nil
	}

	f, openErr := os.Open(path)
	if openErr != nil {
		if os.IsNotExist(openErr) {
			return fallbackSecondaryPathIR(), true, nil
		}
		return nil, false, openErr
	}
	defer f.Close()

	info, statErr := f.Stat()
	if statErr != nil {
		return nil, false, statErr
	}
	if info.Size()%4 != 0 {
		return nil, false, fmt.Errorf("%w: secondary-path IR file %s is not a whole number of float32s", fbanc.ErrUnsupportedFormat, path)
	}

	n := int(info.Size() / 4)
	if n > fbanc.MaxFIRLength {
		n = fbanc.MaxFIRLength
	}

	raw := make([]byte, n*4)
	if _, err := io.ReadFull(f, raw); err != nil {
		return nil, false, fmt.Errorf("fbanc/audio: read secondary-path IR %s: %w", path, err)
	}

	ir = make([]float64, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		ir[i] = float64(math.Float32frombits(bits))
	}
	return ir, false, nil
}

func fallbackSecondaryPathIR() []float64 {
	ir := make([]float64, defaultSecondaryPathTaps)
	for n := range ir {
		ir[n] = 0.5 * math.Exp(-float64(n)/100)
	}
	return ir
}
