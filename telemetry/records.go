package telemetry

import (
	"encoding/json"
	"sort"
)

// WindowRecord is one entry in the best-windows table.
type WindowRecord struct {
	AtSec    float64 `json:"at"`
	Stage    string  `json:"stage"`
	CPSMean  float64 `json:"cps_mean"`
	EarnRate float64 `json:"earn_rate"`
}

// Records keeps session bests: the top windows by earn rate and the time
// each stage was first seen at a window end.
type Records struct {
	maxSize    int
	best       []WindowRecord
	stageTimes map[string]float64
	stageOrder []string
	peakYield  int64
}

// NewRecords creates a table holding the best maxSize windows.
func NewRecords(maxSize int) *Records {
	if maxSize < 1 {
		maxSize = 10
	}
	return &Records{
		maxSize:    maxSize,
		best:       make([]WindowRecord, 0, maxSize),
		stageTimes: make(map[string]float64),
	}
}

// Observe folds one flushed window into the table.
func (r *Records) Observe(stats WindowStats) {
	if stats.Stage != "" {
		if _, ok := r.stageTimes[stats.Stage]; !ok {
			r.stageTimes[stats.Stage] = stats.WindowEndSec
			r.stageOrder = append(r.stageOrder, stats.Stage)
		}
	}
	r.peakYield = max(r.peakYield, stats.Yield)
	if stats.EarnRate <= 0 {
		return
	}
	r.insert(WindowRecord{
		AtSec:    stats.WindowEndSec,
		Stage:    stats.Stage,
		CPSMean:  stats.CPSMean,
		EarnRate: stats.EarnRate,
	})
}

// insert keeps best sorted descending by earn rate and capped at maxSize.
func (r *Records) insert(rec WindowRecord) {
	idx := sort.Search(len(r.best), func(i int) bool {
		return r.best[i].EarnRate < rec.EarnRate
	})
	if len(r.best) >= r.maxSize && idx >= r.maxSize {
		return
	}
	r.best = append(r.best, WindowRecord{})
	copy(r.best[idx+1:], r.best[idx:])
	r.best[idx] = rec
	if len(r.best) > r.maxSize {
		r.best = r.best[:r.maxSize]
	}
}

// Best returns the recorded windows, best first.
func (r *Records) Best() []WindowRecord { return r.best }

// StageTime returns when stage was first seen, in session seconds.
func (r *Records) StageTime(stage string) (float64, bool) {
	t, ok := r.stageTimes[stage]
	return t, ok
}

type stageTimeJSON struct {
	Stage string  `json:"stage"`
	AtSec float64 `json:"at"`
}

// MarshalJSON serializes the records with stages in the order they were reached.
func (r *Records) MarshalJSON() ([]byte, error) {
	stages := make([]stageTimeJSON, len(r.stageOrder))
	for i, s := range r.stageOrder {
		stages[i] = stageTimeJSON{Stage: s, AtSec: r.stageTimes[s]}
	}
	return json.MarshalIndent(struct {
		Stages    []stageTimeJSON `json:"stages"`
		Best      []WindowRecord  `json:"best_windows"`
		PeakYield int64           `json:"peak_yield"`
	}{stages, r.best, r.peakYield}, "", "  ")
}
