package audio

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fbanc "github.com/n5kg/adaptive-anc/core"
)

func writeFloat32LE(t *testing.T, path string, values []float32) {
	t.Helper()
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

func Test_LoadSecondaryPathIR_reads_little_endian_float32(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ir.bin")
	writeFloat32LE(t, path, []float32{1, 0.5, 0.25, -0.125})

	ir, fellBack, err := LoadSecondaryPathIR(path)
	require.NoError(t, err)
	assert.False(t, fellBack)
	require.Len(t, ir, 4)
	assert.InDelta(t, 1.0, ir[0], 1e-6)
	assert.InDelta(t, 0.5, ir[1], 1e-6)
	assert.InDelta(t, 0.25, ir[2], 1e-6)
	assert.InDelta(t, -0.125, ir[3], 1e-6)
}

func Test_LoadSecondaryPathIR_missing_file_falls_back(t *testing.T) {
	ir, fellBack, err := LoadSecondaryPathIR(filepath.Join(t.TempDir(), "nope.bin"))
	require.NoError(t, err)
	assert.True(t, fellBack)
	require.NotEmpty(t, ir)
	assert.InDelta(t, 0.5, ir[0], 1e-9)
	assert.Less(t, ir[len(ir)-1], ir[0])
}

func Test_LoadSecondaryPathIR_empty_path_falls_back(t *testing.T) {
	ir, fellBack, err := LoadSecondaryPathIR("")
	require.NoError(t, err)
	assert.True(t, fellBack)
	assert.NotEmpty(t, ir)
}

func Test_LoadSecondaryPathIR_truncates_beyond_max_taps(t *testing.T) {
	values := make([]float32, fbanc.MaxFIRLength+500)
	path := filepath.Join(t.TempDir(), "long.bin")
	writeFloat32LE(t, path, values)

	ir, _, err := LoadSecondaryPathIR(path)
	require.NoError(t, err)
	assert.Len(t, ir, fbanc.MaxFIRLength)
}
