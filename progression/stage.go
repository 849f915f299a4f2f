// Package progression classifies click totals into evolution stages and
// detects stage edges and division points as the total changes.
package progression

import (
	"fmt"

	"github.com/akorn123w/FishingInTheVoid/config"
)

// Stage is a phase of the avatar's evolution.
type Stage uint8

const (
	Dormant Stage = iota
	Growing
	PreEvolution
	Dividing
	Morphing
	SquidForm
)

var stageNames = [...]string{"dormant", "growing", "pre_evolution", "dividing", "morphing", "squid_form"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", s)
}

// MarshalText encodes the stage name.
func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Thresholds are the click totals at which stages begin.
type Thresholds struct {
	Initial             int64
	PreEvolutionStart   int64
	PreEvolutionEnd     int64
	PostEvolutionStart  int64
	CellDivisionEnd     int64
	SquidTransformation int64
	ClicksPerDivision   int64
	GrowthClicks        int64
}

// FromConfig builds thresholds from the progression config section.
func FromConfig(p config.ProgressionConfig) Thresholds {
	return Thresholds{
		Initial:             p.Initial,
		PreEvolutionStart:   p.PreEvolutionStart,
		PreEvolutionEnd:     p.PreEvolutionEnd,
		PostEvolutionStart:  p.PostEvolutionStart,
		CellDivisionEnd:     p.CellDivisionEnd,
		SquidTransformation: p.SquidTransformation,
		ClicksPerDivision:   p.ClicksPerDivision,
		GrowthClicks:        p.GrowthClicks,
	}
}

// Validate checks that thresholds increase monotonically.
func (t Thresholds) Validate() error {
	seq := []int64{t.Initial, t.PreEvolutionStart, t.PreEvolutionEnd,
		t.PostEvolutionStart, t.CellDivisionEnd, t.SquidTransformation}
	for i := 1; i < len(seq); i++ {
		if seq[i] < seq[i-1] {
			return fmt.Errorf("threshold %d (%d) below threshold %d (%d)", i, seq[i], i-1, seq[i-1])
		}
	}
	if t.ClicksPerDivision <= 0 {
		return fmt.Errorf("clicks per division must be positive, got %d", t.ClicksPerDivision)
	}
	return nil
}

// StageFor classifies a click total. It is monotonic non-decreasing in count.
// Totals between PreEvolutionEnd and PostEvolutionStart stay in PreEvolution.
func (t Thresholds) StageFor(count int64) Stage {
	switch {
	case count >= t.SquidTransformation:
		return SquidForm
	case count >= t.CellDivisionEnd:
		return Morphing
	case count >= t.PostEvolutionStart:
		return Dividing
	case count >= t.PreEvolutionStart:
		return PreEvolution
	case count > t.Initial:
		return Growing
	default:
		return Dormant
	}
}

// Transition is the result of observing a change in the click total.
type Transition struct {
	From      Stage
	To        Stage
	Divisions int // Division points crossed by this change
}

// Changed reports whether the stage differs across the transition.
func (tr Transition) Changed() bool { return tr.From != tr.To }

// Tracker turns successive click totals into edge-triggered transitions.
// Each division point fires at most once per session even if the total
// later drops below it and climbs back: spending 50 clicks at 10000 and
// earning them again does not double the colony a second time. Only points
// above the highest one already fired can divide.
type Tracker struct {
	t            Thresholds
	divisionMark int64 // Highest division point already fired
	entered      [SquidForm + 1]bool
}

// NewTracker creates a tracker positioned at count 0.
func NewTracker(t Thresholds) *Tracker {
	tr := &Tracker{t: t, divisionMark: t.PostEvolutionStart - 1}
	tr.entered[t.StageFor(0)] = true
	return tr
}

// Thresholds returns the tracker's thresholds.
func (tr *Tracker) Thresholds() Thresholds { return tr.t }

// Observe compares the previous and next click totals.
func (tr *Tracker) Observe(prev, next int64) Transition {
	out := Transition{From: tr.t.StageFor(prev), To: tr.t.StageFor(next)}
	if next > prev {
		out.Divisions = tr.crossDivisions(next)
	}
	return out
}

// FirstEntry reports whether s is being entered for the first time this session,
// marking it entered.
func (tr *Tracker) FirstEntry(s Stage) bool {
	if int(s) >= len(tr.entered) || tr.entered[s] {
		return false
	}
	tr.entered[s] = true
	return true
}

// crossDivisions fires every multiple of ClicksPerDivision in
// [PostEvolutionStart, CellDivisionEnd) that is <= next and not yet fired.
func (tr *Tracker) crossDivisions(next int64) int {
	step := tr.t.ClicksPerDivision
	end := tr.t.CellDivisionEnd - 1
	if next < end {
		end = next
	}
	first := firstMultipleAtLeast(max(tr.divisionMark+1, tr.t.PostEvolutionStart), step)
	if first > end {
		return 0
	}
	n := int((end-first)/step) + 1
	tr.divisionMark = first + int64(n-1)*step
	return n
}

func firstMultipleAtLeast(v, step int64) int64 {
	if r := v % step; r != 0 {
		return v + step - r
	}
	return v
}
