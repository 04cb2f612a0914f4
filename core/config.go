package fbanc

/*------------------------------------------------------------------
 *
 * Purpose:	Optional YAML tuning overrides for the optimizer and
 *		stability-gate constants, loaded the same way tocalls.yaml
 *		is: a plain Unmarshal into a struct, falling back to the
 *		compiled-in defaults when the file is absent.
 *
 *------------------------------------------------------------------*/

import (
	"os"

	"gopkg.in/yaml.v3"
)

// TuningOverrides is the on-disk shape of an optional fbanc.yaml file. Any
// field left zero-valued (absent from the file) keeps the built-in
// default; the hard parameter box bounds in biquad.go are never part of
// this struct and can never be overridden.
type TuningOverrides struct {
	Optimizer *struct {
		GainEpsilon           *float64 `yaml:"gain_epsilon,omitempty"`
		GainLearningRate      *float64 `yaml:"gain_learning_rate,omitempty"`
		GainMaxStep           *float64 `yaml:"gain_max_step,omitempty"`
		QEpsilon              *float64 `yaml:"q_epsilon,omitempty"`
		QLearningRate         *float64 `yaml:"q_learning_rate,omitempty"`
		QMaxStep              *float64 `yaml:"q_max_step,omitempty"`
		FcEpsilon             *float64 `yaml:"fc_epsilon,omitempty"`
		FcLearningRate        *float64 `yaml:"fc_learning_rate,omitempty"`
		FcMaxStep             *float64 `yaml:"fc_max_step,omitempty"`
		TotalGainEpsilon      *float64 `yaml:"total_gain_epsilon,omitempty"`
		TotalGainLearningRate *float64 `yaml:"total_gain_learning_rate,omitempty"`
		TotalGainMaxStep      *float64 `yaml:"total_gain_max_step,omitempty"`
	} `yaml:"optimizer,omitempty"`

	Stability *struct {
		SmoothnessFactor *float64 `yaml:"smoothness_factor,omitempty"`
		SmoothnessFloor  *float64 `yaml:"smoothness_floor,omitempty"`
		SpikeDB          *float64 `yaml:"spike_db,omitempty"`
		SpikeFraction    *float64 `yaml:"spike_fraction,omitempty"`
		AbsoluteMinDB    *float64 `yaml:"absolute_min_db,omitempty"`
		AbsoluteMaxDB    *float64 `yaml:"absolute_max_db,omitempty"`
		GlobalShiftDB    *float64 `yaml:"global_shift_db,omitempty"`
	} `yaml:"stability,omitempty"`
}

// LoadTuningOverrides reads and parses path. A missing file is not an
// error: it returns a zero-valued TuningOverrides, which ApplyOptimizer and
// ApplyStability treat as
// "no overrides" (§7 category i, graceful degrade).
func LoadTuningOverrides(path string) (TuningOverrides, error) {
	var t TuningOverrides
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, err
	}

	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, err
	}
	return t, nil
}

// ApplyOptimizer overlays any non-nil override fields onto base, returning the
// merged OptimizerConfig. base is typically DefaultOptimizerConfig().
func (t TuningOverrides) ApplyOptimizer(base OptimizerConfig) OptimizerConfig {
	if t.Optimizer == nil {
		return base
	}
	o := t.Optimizer
	setIf(&base.GainEpsilon, o.GainEpsilon)
	setIf(&base.GainLearningRate, o.GainLearningRate)
	setIf(&base.GainMaxStep, o.GainMaxStep)
	setIf(&base.QEpsilon, o.QEpsilon)
	setIf(&base.QLearningRate, o.QLearningRate)
	setIf(&base.QMaxStep, o.QMaxStep)
	setIf(&base.FcEpsilon, o.FcEpsilon)
	setIf(&base.FcLearningRate, o.FcLearningRate)
	setIf(&base.FcMaxStep, o.FcMaxStep)
	setIf(&base.TotalGainEpsilon, o.TotalGainEpsilon)
	setIf(&base.TotalGainLearningRate, o.TotalGainLearningRate)
	setIf(&base.TotalGainMaxStep, o.TotalGainMaxStep)
	return base
}

// ApplyStability overlays any non-nil override fields onto base, returning
// the merged StabilityConfig. base is typically DefaultStabilityConfig().
func (t TuningOverrides) ApplyStability(base StabilityConfig) StabilityConfig {
	if t.Stability == nil {
		return base
	}
	c := t.Stability
	setIf(&base.SmoothnessFactor, c.SmoothnessFactor)
	setIf(&base.SmoothnessFloor, c.SmoothnessFloor)
	setIf(&base.SpikeDB, c.SpikeDB)
	setIf(&base.SpikeFraction, c.SpikeFraction)
	setIf(&base.AbsoluteMinDB, c.AbsoluteMinDB)
	setIf(&base.AbsoluteMaxDB, c.AbsoluteMaxDB)
	setIf(&base.GlobalShiftDB, c.GlobalShiftDB)
	return base
}

func setIf(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
