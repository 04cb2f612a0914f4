// Package audio provides the WAV, secondary-path-impulse-response, and
// synthetic-signal collaborators the adaptation core is driven by — all
// outside the core's scope (§1), reached only through the interfaces it
// exposes.
package audio

import (
	"fmt"
	"os"

	waudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	fbanc "github.com/n5kg/adaptive-anc/core"
)

// Samples holds one fully decoded multi-channel WAV file, normalized to
// [-1, 1] the same way the source's wav_read does.
type Samples struct {
	Channels   [][]float64
	SampleRate int
}

// ReadWAV loads a 16- or 32-bit linear PCM WAV file. Any other bit depth is
// ErrUnsupportedFormat (§7 category ii); a missing file is ErrMissingInput
// (§7 category i) — both graceful-degrade cases the caller falls back from.
func ReadWAV(path string) (*Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", fbanc.ErrMissingInput, path)
		}
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a valid PCM WAV file", fbanc.ErrUnsupportedFormat, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("fbanc/audio: decode %s: %w", path, err)
	}

	var scale float64
	switch dec.BitDepth {
	case 16:
		scale = 32768.0
	case 32:
		scale = 2147483648.0
	default:
		return nil, fmt.Errorf("%w: %d-bit WAV in %s", fbanc.ErrUnsupportedFormat, dec.BitDepth, path)
	}

	numChans := buf.Format.NumChannels
	numSamples := len(buf.Data) / numChans

	channels := make([][]float64, numChans)
	for c := range channels {
		channels[c] = make([]float64, numSamples)
	}
	for i := 0; i < numSamples; i++ {
		for c := 0; c < numChans; c++ {
			channels[c][i] = float64(buf.Data[i*numChans+c]) / scale
		}
	}

	return &Samples{Channels: channels, SampleRate: buf.Format.SampleRate}, nil
}

// WriteWAV writes channels (each normalized to [-1, 1], equal length) as a
// 16-bit linear PCM WAV at sampleRate — the source's wav_write always
// writes 16-bit output regardless of the input's bit depth, and this does
// the same.
func WriteWAV(path string, channels [][]float64, sampleRate int) error {
	if len(channels) == 0 {
		return fmt.Errorf("fbanc/audio: WriteWAV requires at least one channel")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", fbanc.ErrAllocation, path, err)
	}
	defer f.Close()

	numSamples := len(channels[0])
	data := make([]int, numSamples*len(channels))
	for i := 0; i < numSamples; i++ {
		for c, ch := range channels {
			s := ch[i]
			if s > 1 {
				s = 1
			}
			if s < -1 {
				s = -1
			}
			data[i*len(channels)+c] = int(s * 32767.0)
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 16, len(channels), 1)
	buf := &waudio.IntBuffer{
		Format:         &waudio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("fbanc/audio: write %s: %w", path, err)
	}
	return enc.Close()
}

// FrameSink is the shared output interface for anything that consumes the
// running adaptation's FF/FB streams as they are produced — implemented by
// WAVSink (batch file output) and LiveMonitor (§12, optional realtime
// playback).
type FrameSink interface {
	WriteFrame(ff, fb []float64) error
	Close() error
}

// WAVSink buffers every frame it is given and writes a two-channel (FF,
// FB) WAV file on Close.
type WAVSink struct {
	path       string
	sampleRate int
	ff, fb     []float64
}

// NewWAVSink returns a FrameSink that accumulates frames in memory and
// writes them to path on Close.
func NewWAVSink(path string, sampleRate int) *WAVSink {
	return &WAVSink{path: path, sampleRate: sampleRate}
}

func (w *WAVSink) WriteFrame(ff, fb []float64) error {
	w.ff = append(w.ff, ff...)
	w.fb = append(w.fb, fb...)
	return nil
}

func (w *WAVSink) Close() error {
	return WriteWAV(w.path, [][]float64{w.ff, w.fb}, w.sampleRate)
}
