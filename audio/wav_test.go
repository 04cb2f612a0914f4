package audio

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fbanc "github.com/n5kg/adaptive-anc/core"
)

func Test_WriteWAV_then_ReadWAV_round_trip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	ff := make([]float64, 1000)
	fb := make([]float64, 1000)
	for i := range ff {
		ff[i] = 0.5
		fb[i] = -0.25
	}

	require.NoError(t, WriteWAV(path, [][]float64{ff, fb}, 32000))

	got, err := ReadWAV(path)
	require.NoError(t, err)
	assert.Equal(t, 32000, got.SampleRate)
	require.Len(t, got.Channels, 2)
	assert.Len(t, got.Channels[0], 1000)

	// 16-bit quantization tolerance.
	for _, v := range got.Channels[0] {
		assert.InDelta(t, 0.5, v, 1.0/32767)
	}
	for _, v := range got.Channels[1] {
		assert.InDelta(t, -0.25, v, 1.0/32767)
	}
}

func Test_WriteWAV_clips_out_of_range_samples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	ff := []float64{2.0, -2.0}
	require.NoError(t, WriteWAV(path, [][]float64{ff}, 16000))

	got, err := ReadWAV(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.Channels[0][0], 1.0/32767)
	assert.InDelta(t, -1.0, got.Channels[0][1], 1.0/32767)
}

func Test_ReadWAV_missing_file_is_ErrMissingInput(t *testing.T) {
	_, err := ReadWAV(filepath.Join(t.TempDir(), "nope.wav"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fbanc.ErrMissingInput))
}

func Test_WAVSink_accumulates_frames_and_writes_on_close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sink.wav")
	sink := NewWAVSink(path, 32000)

	require.NoError(t, sink.WriteFrame([]float64{0.1, 0.2}, []float64{0.3, 0.4}))
	require.NoError(t, sink.WriteFrame([]float64{0.5}, []float64{0.6}))
	require.NoError(t, sink.Close())

	got, err := ReadWAV(path)
	require.NoError(t, err)
	assert.Len(t, got.Channels[0], 3)
	assert.Len(t, got.Channels[1], 3)
}
