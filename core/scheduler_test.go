package fbanc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedScheduler(s *Scheduler) {
	frame := make([]float64, int(hop))
	// One frame at R_rt == R_dsp to bypass decimation for test clarity;
	// repeat until the window fills and the machine reaches CAL_MU.
	for i := 0; s.State() != StateCalMu; i++ {
		s.IngestFrame(frame, frame, frame, RDsp, RDsp)
		if i > 2*L {
			panic("scheduler never reached CAL_MU")
		}
	}
}

func Test_Scheduler_starts_at_signal_process_with_preset_params(t *testing.T) {
	s := NewScheduler(Presets[0], DefaultOptimizerConfig(), DefaultStabilityConfig())
	assert.Equal(t, StateSignalProcess, s.State())
	assert.Equal(t, Presets[0].Initial, s.Params())
}

func Test_Scheduler_reaches_cal_mu_after_N_avg_ffts(t *testing.T) {
	s := NewScheduler(Presets[0], DefaultOptimizerConfig(), DefaultStabilityConfig())
	feedScheduler(s)
	assert.Equal(t, StateCalMu, s.State())
}

func Test_Scheduler_Advance_walks_through_every_state_in_order(t *testing.T) {
	s := NewScheduler(Presets[0], DefaultOptimizerConfig(), DefaultStabilityConfig())
	feedScheduler(s)

	// Silent input leaves W_target flat at unity, so the stability check
	// passes and the machine takes the full optimizer branch.
	want := []State{
		StateCalFFResponse, StateCalTargetFF, StateStableCheck, StateCalFFInitLoss,
		StateUpdateEQParams, StateUpdateFilterCoeffs, StateSignalProcess,
	}
	for _, w := range want {
		s.Advance()
		assert.Equal(t, w, s.State())
	}
}

func Test_Scheduler_AdvanceToCompletion_returns_to_signal_process(t *testing.T) {
	s := NewScheduler(Presets[0], DefaultOptimizerConfig(), DefaultStabilityConfig())
	feedScheduler(s)

	result := s.AdvanceToCompletion()
	require.NotNil(t, result)
	assert.Equal(t, StateSignalProcess, s.State())
}

func Test_Scheduler_accepted_iteration_yields_realtime_filter(t *testing.T) {
	s := NewScheduler(Presets[0], DefaultOptimizerConfig(), DefaultStabilityConfig())
	feedScheduler(s)
	result := s.AdvanceToCompletion()
	require.NotNil(t, result)

	if result.Accepted {
		require.NotNil(t, result.RealtimeFilter)
		assert.Equal(t, BuildFilter(s.Params(), RRt), result.RealtimeFilter.Filter)
	} else {
		assert.Nil(t, result.RealtimeFilter)
	}
}

func Test_Scheduler_IngestFrame_does_not_trigger_new_passes_mid_iteration(t *testing.T) {
	s := NewScheduler(Presets[0], DefaultOptimizerConfig(), DefaultStabilityConfig())
	feedScheduler(s)
	assert.Equal(t, StateCalMu, s.State())

	frame := make([]float64, int(hop))
	s.IngestFrame(frame, frame, frame, RDsp, RDsp)
	assert.Equal(t, StateCalMu, s.State())
}
