package main

import "github.com/akorn123w/FishingInTheVoid/config"

// ParamSpec defines a single tunable pacing parameter.
type ParamSpec struct {
	Name    string
	Path    string // Config path for logging
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of pacing parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "click_cooldown_ms", Path: "click.cooldown_ms", Min: 20, Max: 250, Default: 50},
			{Name: "auto_click_interval", Path: "auto_click.interval_sec", Min: 0.25, Max: 4, Default: 1},
			{Name: "boost_window", Path: "store.boost_window_sec", Min: 10, Max: 120, Default: 30},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, ps := range pv.Specs {
		v[i] = ps.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, ps := range pv.Specs {
		normalized[i] = (raw[i] - ps.Min) / (ps.Max - ps.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, ps := range pv.Specs {
		raw[i] = ps.Min + normalized[i]*(ps.Max-ps.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, ps := range pv.Specs {
		clamped[i] = min(max(v[i], ps.Min), ps.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped values into cfg and refreshes its derived fields.
// Order must match Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)
	cfg.Click.CooldownMS = int(clamped[0])
	cfg.AutoClick.IntervalSec = clamped[1]
	cfg.Store.BoostWindowSec = clamped[2]
	return cfg.Refresh()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Click.CooldownMS),
		cfg.AutoClick.IntervalSec,
		cfg.Store.BoostWindowSec,
	}
}
