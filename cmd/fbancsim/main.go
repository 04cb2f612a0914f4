/* Batch driver for the feedforward ANC adaptation core: reads a WAV (or
 * falls back to synthetic test tones), iterates the scheduler over it
 * frame by frame, applies every accepted cascade to the remainder of the
 * captured error-mic stream, and writes the result back out. */
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	fbanc "github.com/n5kg/adaptive-anc/core"

	"github.com/n5kg/adaptive-anc/audio"
)

// frameSamples is T=5ms of realtime-rate audio (§3).
const frameSamples = int(fbanc.RRt * 0.005)

func main() {
	preset := pflag.IntP("preset", "p", 0, "Preset index [0, 9].")
	input := pflag.StringP("input", "i", "", "Input WAV (FF, FB, SPK channels). Falls back to synthetic test tones if absent.")
	output := pflag.StringP("output", "o", "out.wav", "Output WAV path (FF, cancelled-FB channels).")
	secondaryPath := pflag.StringP("secondary-path", "s", "", "Binary little-endian float32 secondary-path impulse response. Falls back to a default decay if absent.")
	logPath := pflag.StringP("log", "l", "", "Log file path. Console logging is always on.")
	configPath := pflag.StringP("config", "c", "", "Optional YAML tuning-override file.")
	duration := pflag.Float64P("duration", "d", 2.0, "Synthetic fallback duration in seconds, used only when --input is absent.")
	monitor := pflag.Bool("monitor", false, "Stream FF/FB to the default output device while running.")
	help := pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fbancsim [flags]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}

	if err := run(*preset, *input, *output, *secondaryPath, *logPath, *configPath, *duration, *monitor); err != nil {
		fmt.Fprintf(os.Stderr, "fbancsim: %v\n", err)
		os.Exit(1)
	}
}

func run(presetIdx int, inputPath, outputPath, secondaryPathFile, logPath, configPath string, duration float64, liveMonitor bool) error {
	if presetIdx < 0 || presetIdx >= fbanc.NPresets {
		return fmt.Errorf("preset index %d out of range [0, %d)", presetIdx, fbanc.NPresets)
	}

	sink, err := fbanc.NewSink(logPath)
	if err != nil {
		return err
	}
	defer sink.Close()

	overrides, err := fbanc.LoadTuningOverrides(configPath)
	if err != nil {
		return fmt.Errorf("load tuning overrides: %w", err)
	}
	optimizerCfg := overrides.ApplyOptimizer(fbanc.DefaultOptimizerConfig())
	stabilityCfg := overrides.ApplyStability(fbanc.DefaultStabilityConfig())

	ff, fb, spk, err := loadInput(inputPath, duration, sink)
	if err != nil {
		return err
	}

	secondaryIRTaps, fellBack, err := audio.LoadSecondaryPathIR(secondaryPathFile)
	if err != nil {
		return fmt.Errorf("load secondary-path impulse response: %w", err)
	}
	if fellBack {
		sink.Warn("secondary-path impulse response absent, using default decay")
	}
	secondaryFIR, truncated := fbanc.NewFIR(secondaryIRTaps)
	if truncated {
		sink.Warn("secondary-path impulse response truncated to max length", "max_taps", fbanc.MaxFIRLength)
	}

	var mon *audio.LiveMonitor
	if liveMonitor {
		m, err := audio.NewLiveMonitor(fbanc.RRt, frameSamples)
		if err != nil {
			sink.Warn("live monitor unavailable, continuing without it", "error", err.Error())
		} else {
			mon = m
			defer mon.Close()
		}
	}

	sched := fbanc.NewScheduler(fbanc.Presets[presetIdx], optimizerCfg, stabilityCfg)

	n := len(ff)
	iteration := 0
	for cursor := 0; cursor < n; cursor += frameSamples {
		end := cursor + frameSamples
		if end > n {
			end = n
		}

		sched.IngestFrame(ff[cursor:end], fb[cursor:end], spk[cursor:end], fbanc.RRt, fbanc.RDsp)
		if mon != nil {
			if err := mon.WriteFrame(ff[cursor:end], fb[cursor:end]); err != nil {
				sink.Warn("live monitor write failed", "error", err.Error())
				mon = nil
			}
		}

		if sched.State() != fbanc.StateCalMu {
			continue
		}

		result := sched.AdvanceToCompletion()
		iteration++
		sink.Iteration(iteration, result)
		if result.Rejected {
			continue
		}

		for _, d := range result.Decisions {
			sink.ParamDecision(d)
		}

		if result.Accepted {
			rewritten := result.RealtimeFilter.ApplyToRemainder(ff[end:], fb[end:], secondaryFIR)
			copy(fb[end:], rewritten)
			sink.FilterPass(end, n)
		}
	}

	if err := audio.WriteWAV(outputPath, [][]float64{ff, fb}, int(fbanc.RRt)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func loadInput(path string, duration float64, sink *fbanc.Sink) (ff, fb, spk []float64, err error) {
	if path == "" {
		sink.Warn("no input WAV given, using synthetic test tones", "duration_s", duration)
		ff, fb, spk = audio.SyntheticTestTones(int(fbanc.RRt), duration)
		return ff, fb, spk, nil
	}

	samples, err := audio.ReadWAV(path)
	if err == nil && len(samples.Channels) < 2 {
		err = fmt.Errorf("%w: input WAV needs at least FF and FB channels, got %d", fbanc.ErrUnsupportedFormat, len(samples.Channels))
	}
	if err != nil {
		if errors.Is(err, fbanc.ErrMissingInput) || errors.Is(err, fbanc.ErrUnsupportedFormat) {
			sink.Warn("input WAV unusable, using synthetic test tones", "error", err.Error(), "duration_s", duration)
			ff, fb, spk = audio.SyntheticTestTones(int(fbanc.RRt), duration)
			return ff, fb, spk, nil
		}
		return nil, nil, nil, err
	}

	ff = samples.Channels[0]
	fb = samples.Channels[1]
	if len(samples.Channels) >= 3 {
		spk = samples.Channels[2]
	} else {
		sink.Warn("input WAV has no SPK channel, using silence")
		spk = make([]float64, len(ff))
	}
	return ff, fb, spk, nil
}
