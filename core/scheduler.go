package fbanc

// State names one node of the C9 adaptation state machine:
//
//	SIGNAL_PROCESS -> CAL_MU -> CAL_FF_RESPONSE -> CAL_TARGET_FF -> STABLE_CHECK
//	  -> { CAL_FF_INIT_LOSS -> UPDATE_EQ_PARAMS -> UPDATE_FILTER_COEFFS } -> SIGNAL_PROCESS
//
// A STABLE_CHECK failure returns directly to SIGNAL_PROCESS, discarding the
// candidate target and the frames that produced it.
type State int

const (
	StateSignalProcess State = iota
	StateCalMu
	StateCalFFResponse
	StateCalTargetFF
	StateStableCheck
	StateCalFFInitLoss
	StateUpdateEQParams
	StateUpdateFilterCoeffs
)

func (s State) String() string {
	switch s {
	case StateSignalProcess:
		return "SIGNAL_PROCESS"
	case StateCalMu:
		return "CAL_MU"
	case StateCalFFResponse:
		return "CAL_FF_RESPONSE"
	case StateCalTargetFF:
		return "CAL_TARGET_FF"
	case StateStableCheck:
		return "STABLE_CHECK"
	case StateCalFFInitLoss:
		return "CAL_FF_INIT_LOSS"
	case StateUpdateEQParams:
		return "UPDATE_EQ_PARAMS"
	case StateUpdateFilterCoeffs:
		return "UPDATE_FILTER_COEFFS"
	default:
		return "UNKNOWN"
	}
}

// IterationResult is what an iteration produces once the machine returns to
// SIGNAL_PROCESS: either a rejected candidate (Rejected, StableCheck only)
// or a completed optimizer pass (Accepted reports whether parameters and
// the realtime bridge actually changed).
type IterationResult struct {
	StableCheck CheckResult
	Rejected    bool

	InitLoss  float64
	FinalLoss float64
	Decisions []ParamDecision
	Accepted  bool

	// RealtimeFilter is non-nil only when Accepted: the freshly built,
	// state-reset bridge the driver should use to filter the remainder of
	// the captured FB stream (§4.8-§4.9).
	RealtimeFilter *RealtimeBridge
}

// Scheduler owns the adaptation state (§3: "The scheduler exclusively owns
// all state above") across iterations: the analyzer's accumulators, the
// stability gate's history, the currently installed ParamSet, and the
// realtime bridge built from the most recently accepted ParamSet.
type Scheduler struct {
	state State

	analyzer     *Analyzer
	gate         *Gate
	params       ParamSet
	secondary    []complex128 // preset complex secondary-path spectrum, for C5
	optimizerCfg OptimizerConfig

	fftCount   int
	frameCount int

	// per-iteration scratch, valid only between CAL_MU and
	// UPDATE_FILTER_COEFFS.
	ffAvg, ppAvg []complex128
	wCurrent     FeedforwardFilter
	wTarget      []complex128
	mu           []float64
	checkResult  CheckResult
	optResult    OptimizeResult

	prevTargetFF []complex128 // last accepted W_target, for diagnostics
}

// NewScheduler constructs a Scheduler for one preset, starting at
// SIGNAL_PROCESS with that preset's initial cascade installed.
func NewScheduler(preset Preset, optimizerCfg OptimizerConfig, stabilityCfg StabilityConfig) *Scheduler {
	return &Scheduler{
		state:        StateSignalProcess,
		analyzer:     NewAnalyzer(),
		gate:         NewGate(stabilityCfg),
		params:       preset.Initial,
		secondary:    preset.Secondary,
		optimizerCfg: optimizerCfg,
	}
}

// State reports the current node of the state machine.
func (s *Scheduler) State() State { return s.state }

// Params reports the currently installed ParamSet.
func (s *Scheduler) Params() ParamSet { return s.params }

// IngestFrame feeds one decimated-and-accumulated realtime frame to the
// analyzer (C4). While the machine is at SIGNAL_PROCESS and a full window
// of N_avg passes becomes available, this call runs all N_avg FFT passes
// immediately and advances to CAL_MU — including, per the literal source
// behavior documented in §9, entirely within this single call if the ring
// buffers were already full before this frame arrived. Ingesting while the
// machine is mid-iteration (any state other than SIGNAL_PROCESS) still
// records the frame in the ring buffers but does not trigger new passes
// until the machine returns to SIGNAL_PROCESS.
func (s *Scheduler) IngestFrame(ffRt, fbRt, spkRt []float64, rRt, rDsp float64) {
	s.analyzer.Ingest(ffRt, fbRt, spkRt, rRt, rDsp)
	s.frameCount++

	if s.state == StateSignalProcess && s.analyzer.Ready() {
		for i := 0; i < NAvg; i++ {
			s.analyzer.RunPass()
		}
		s.fftCount = s.analyzer.Count()
		s.state = StateCalMu
	}
}

// Advance performs exactly one state transition. It returns a non-nil
// IterationResult only when the machine lands back on SIGNAL_PROCESS,
// whether by rejection (at STABLE_CHECK) or by completing the optimizer
// pass (at UPDATE_FILTER_COEFFS). Calling Advance while the machine is at
// SIGNAL_PROCESS is a no-op that returns nil.
func (s *Scheduler) Advance() *IterationResult {
	switch s.state {
	case StateCalMu:
		var fbAvg, spkAvg []complex128
		s.ffAvg, fbAvg, spkAvg, s.ppAvg = s.analyzer.AveragedSpectra()
		_, _ = fbAvg, spkAvg // averaged per §4.4 but not consumed beyond PP estimation
		s.state = StateCalFFResponse
		return nil

	case StateCalFFResponse:
		s.wCurrent = BuildFilter(s.params, RDsp)
		s.state = StateCalTargetFF
		return nil

	case StateCalTargetFF:
		s.wTarget, s.mu = SynthesizeTarget(s.wCurrent, s.ffAvg, s.ppAvg, s.secondary)
		s.state = StateStableCheck
		return nil

	case StateStableCheck:
		s.checkResult = s.gate.Check(s.wTarget)
		if !s.checkResult.Pass {
			s.endIteration()
			return &IterationResult{StableCheck: s.checkResult, Rejected: true}
		}
		s.gate.Commit(s.checkResult)
		s.prevTargetFF = s.wTarget
		s.state = StateCalFFInitLoss
		return nil

	case StateCalFFInitLoss:
		// Optimize computes init_loss internally as its first step; there is
		// no separate suspension point between "compute init_loss" and
		// "run the 31-scalar pass" (§4.7 is one atomic call per iteration).
		s.optResult = Optimize(s.wTarget, s.params, s.optimizerCfg)
		s.state = StateUpdateEQParams
		return nil

	case StateUpdateEQParams:
		s.state = StateUpdateFilterCoeffs
		return nil

	case StateUpdateFilterCoeffs:
		var bridge *RealtimeBridge
		if s.optResult.Accepted {
			s.params = s.optResult.Params
			bridge = BuildRealtimeBridge(s.params)
			bridge.ResetStates()
		}
		result := &IterationResult{
			StableCheck: s.checkResult,
			InitLoss:    s.optResult.InitLoss,
			FinalLoss:   s.optResult.FinalLoss,
			Decisions:   s.optResult.Decisions,
			Accepted:    s.optResult.Accepted,
			RealtimeFilter: bridge,
		}
		s.endIteration()
		return result

	default: // SIGNAL_PROCESS
		return nil
	}
}

// AdvanceToCompletion drives Advance until an IterationResult is produced.
// The state machine never suspends mid-transition (§5), so this always
// terminates within a handful of steps once CAL_MU has been entered.
func (s *Scheduler) AdvanceToCompletion() *IterationResult {
	for s.state != StateSignalProcess {
		if r := s.Advance(); r != nil {
			return r
		}
	}
	return nil
}

// endIteration resets the per-iteration bookkeeping and returns the
// machine to SIGNAL_PROCESS, discarding the analyzer's accumulators but
// not its ring buffers (§3: ring buffers carry continuous signal history
// across iterations).
func (s *Scheduler) endIteration() {
	s.fftCount = 0
	s.frameCount = 0
	s.analyzer.ResetIteration()
	s.state = StateSignalProcess
}
