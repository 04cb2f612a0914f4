package audio

/*------------------------------------------------------------------
 *
 * Purpose:	Stream the running adaptation's FF/FB buffers to the
 *		default output device for human review while a run
 *		progresses. Purely additive: nothing in the core depends
 *		on this, and it implements the same FrameSink interface
 *		the batch WAV writer does.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// LiveMonitor plays FF and FB, mixed to mono, through the default output
// device as frames arrive. Never on the hot adaptation path: it is wired
// to a scheduler iteration only by the driver's own explicit choice.
type LiveMonitor struct {
	stream *portaudio.Stream
	out    []float32
}

// NewLiveMonitor opens the default output stream at sampleRate. Call
// Close when the run finishes to release the device.
func NewLiveMonitor(sampleRate float64, framesPerBuffer int) (*LiveMonitor, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("fbanc/audio: portaudio init: %w", err)
	}

	m := &LiveMonitor{out: make([]float32, framesPerBuffer)}
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, framesPerBuffer, &m.out)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("fbanc/audio: open output stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("fbanc/audio: start output stream: %w", err)
	}
	m.stream = stream
	return m, nil
}

// WriteFrame mixes ff and fb to mono and plays them, blocking per the
// underlying stream's buffering. len(ff) and len(fb) must equal the
// framesPerBuffer NewLiveMonitor was opened with.
func (m *LiveMonitor) WriteFrame(ff, fb []float64) error {
	n := len(m.out)
	for i := 0; i < n; i++ {
		var ffv, fbv float64
		if i < len(ff) {
			ffv = ff[i]
		}
		if i < len(fb) {
			fbv = fb[i]
		}
		m.out[i] = float32((ffv + fbv) / 2)
	}
	return m.stream.Write()
}

// Close stops the stream and tears down the PortAudio session.
func (m *LiveMonitor) Close() error {
	if m.stream == nil {
		return nil
	}
	if err := m.stream.Stop(); err != nil {
		m.stream.Close()
		portaudio.Terminate()
		return err
	}
	if err := m.stream.Close(); err != nil {
		portaudio.Terminate()
		return err
	}
	return portaudio.Terminate()
}
