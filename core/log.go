package fbanc

/*------------------------------------------------------------------
 *
 * Purpose:	Mirror the per-iteration adaptation narrative to both the
 *		console and a log file, in structured key/value form.
 *
 * Description:	One Sink wraps two charmbracelet/log loggers sharing the
 *		same formatting options, so every call below writes twice:
 *		once to the console for interactive runs, once to a file
 *		for later analysis. This replaces the source's CSV-writing
 *		logger with the pack's structured logging library, keeping
 *		the same "two destinations from one call" shape.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Sink is the process-wide log destination for the adaptation loop. Build
// one before the first iteration, Close it after the last.
type Sink struct {
	console *charmlog.Logger
	file    *charmlog.Logger
	fh      *os.File
}

// NewSink opens path (created/truncated) for the file destination and
// wires up the console destination on stdout. An empty path disables file
// logging; the console destination is always active.
func NewSink(path string) (*Sink, error) {
	opts := charmlog.Options{ReportTimestamp: true}
	s := &Sink{console: charmlog.NewWithOptions(os.Stdout, opts)}

	if path == "" {
		return s, nil
	}

	fh, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("fbanc: open log file %q: %w", path, err)
	}
	s.fh = fh
	s.file = charmlog.NewWithOptions(fh, opts)
	return s, nil
}

func (s *Sink) both(f func(l *charmlog.Logger)) {
	f(s.console)
	if s.file != nil {
		f(s.file)
	}
}

// Warn logs a graceful-degradation event (§7 categories i-ii): a missing
// or malformed input that the caller is falling back from, not aborting on.
func (s *Sink) Warn(msg string, keyvals ...interface{}) {
	s.both(func(l *charmlog.Logger) { l.Warn(msg, keyvals...) })
}

// Iteration logs the outcome of one completed scheduler iteration: the
// stability verdict plus, when accepted, the loss trajectory.
func (s *Sink) Iteration(n int, result *IterationResult) {
	if result.Rejected {
		s.both(func(l *charmlog.Logger) {
			l.Info("iteration rejected", "n", n, "reason", result.StableCheck.Reason)
		})
		return
	}
	s.both(func(l *charmlog.Logger) {
		l.Info("iteration complete", "n", n,
			"init_loss", result.InitLoss, "final_loss", result.FinalLoss,
			"accepted", result.Accepted)
	})
}

// StabilityOutcome logs a CheckResult on its own, independent of whether
// the iteration that produced it went on to run the optimizer.
func (s *Sink) StabilityOutcome(check CheckResult) {
	s.both(func(l *charmlog.Logger) {
		if check.Pass {
			l.Info("stability check passed", "smoothness", check.Current)
		} else {
			l.Info("stability check failed", "reason", check.Reason, "smoothness", check.Current)
		}
	})
}

// ParamDecision logs one per-parameter accept/reject outcome from the
// optimizer (§6: "per-parameter accept/reject decisions").
func (s *Sink) ParamDecision(d ParamDecision) {
	s.both(func(l *charmlog.Logger) {
		l.Info("param step", "biquad", d.Biquad, "field", d.Field,
			"before", d.Before, "candidate", d.Candidate, "accepted", d.Accepted,
			"loss_before", d.LossBefore, "loss_after", d.LossAfter)
	})
}

// FilterPass logs the range of samples a realtime filtering pass rewrote
// after an accepted iteration (§4.8-§4.9).
func (s *Sink) FilterPass(start, end int) {
	s.both(func(l *charmlog.Logger) {
		l.Info("filtering pass applied", "start", start, "end", end, "count", end-start)
	})
}

// Close flushes and closes the file destination, if one was opened.
func (s *Sink) Close() error {
	if s.fh == nil {
		return nil
	}
	return s.fh.Close()
}
