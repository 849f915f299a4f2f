package main

import (
	"math"
	"sync"
	"time"

	"github.com/akorn123w/FishingInTheVoid/config"
)

// unreachedPenalty is the squared error charged for a run that never reaches the squid.
const unreachedPenalty = 4.0

// PacingEvaluator scores parameter vectors by how close the scripted
// player's time to squid form lands to a target.
type PacingEvaluator struct {
	params     *ParamVector
	configPath string
	seeds      []int64
	cps        float64
	limit      time.Duration
	target     time.Duration

	mu       sync.Mutex
	lastMean float64 // mean time-to-squid of the most recent evaluation, seconds
}

// NewPacingEvaluator creates an evaluator.
func NewPacingEvaluator(params *ParamVector, configPath string, seeds []int64, cps float64, limit, target time.Duration) *PacingEvaluator {
	return &PacingEvaluator{
		params:     params,
		configPath: configPath,
		seeds:      seeds,
		cps:        cps,
		limit:      limit,
		target:     target,
	}
}

// LastMean returns the mean time to squid from the latest evaluation.
func (pe *PacingEvaluator) LastMean() float64 {
	pe.mu.Lock()
	defer pe.mu.Unlock()
	return pe.lastMean
}

// Config returns a fresh config with x applied.
func (pe *PacingEvaluator) Config(x []float64) (*config.Config, error) {
	cfg, err := config.Load(pe.configPath)
	if err != nil {
		return nil, err
	}
	if err := pe.params.ApplyToConfig(cfg, x); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Evaluate returns the mean squared relative error of time-to-squid (lower = better).
func (pe *PacingEvaluator) Evaluate(x []float64) float64 {
	cfg, err := pe.Config(x)
	if err != nil {
		return math.Inf(1)
	}
	rows, err := runSeeds(cfg, pe.seeds, pe.cps, pe.limit)
	if err != nil {
		return math.Inf(1)
	}

	pe.mu.Lock()
	pe.lastMean = Summarize(rows).MeanSec
	pe.mu.Unlock()

	return Score(rows, pe.target)
}

// Score is the fitness of a set of runs against target.
func Score(rows []RunRow, target time.Duration) float64 {
	if len(rows) == 0 {
		return math.Inf(1)
	}
	want := target.Seconds()
	var total float64
	for _, r := range rows {
		if r.SquidFormSec < 0 {
			total += unreachedPenalty
			continue
		}
		rel := (r.SquidFormSec - want) / want
		total += rel * rel
	}
	return total / float64(len(rows))
}
