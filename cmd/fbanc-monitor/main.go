/* Small utility: play back a captured FF/FB run through the default
 * output device, for human review of a completed fbancsim run. */
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/n5kg/adaptive-anc/audio"
)

func main() {
	input := pflag.StringP("input", "i", "", "WAV file to play back (FF, FB channels). Required.")
	frameSamples := pflag.IntP("frame-samples", "n", 1875, "Playback buffer size in samples.")
	help := pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fbanc-monitor --input run.wav\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help || *input == "" {
		pflag.Usage()
		if *input == "" {
			os.Exit(1)
		}
		return
	}

	if err := run(*input, *frameSamples); err != nil {
		fmt.Fprintf(os.Stderr, "fbanc-monitor: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, frameSamples int) error {
	samples, err := audio.ReadWAV(path)
	if err != nil {
		return err
	}
	if len(samples.Channels) < 2 {
		return fmt.Errorf("%s needs at least two channels (FF, FB)", path)
	}

	mon, err := audio.NewLiveMonitor(float64(samples.SampleRate), frameSamples)
	if err != nil {
		return err
	}
	defer mon.Close()

	ff, fb := samples.Channels[0], samples.Channels[1]
	for cursor := 0; cursor < len(ff); cursor += frameSamples {
		end := cursor + frameSamples
		if end > len(ff) {
			end = len(ff)
		}
		if err := mon.WriteFrame(ff[cursor:end], fb[cursor:end]); err != nil {
			return err
		}
	}
	return nil
}
