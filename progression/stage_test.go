package progression

import (
	"math"
	"testing"

	"github.com/akorn123w/FishingInTheVoid/config"
)

func defaultThresholds() Thresholds {
	return FromConfig(config.Default().Progression)
}

func TestStageFor(t *testing.T) {
	th := defaultThresholds()
	tests := []struct {
		count int64
		want  Stage
	}{
		{0, Dormant},
		{1, Dormant},
		{2, Growing},
		{9799, Growing},
		{9800, PreEvolution},
		{9999, PreEvolution},
		{10000, Dividing},
		{10049, Dividing},
		{10050, Morphing},
		{10099, Morphing},
		{10100, SquidForm},
		{1 << 40, SquidForm},
	}
	for _, tt := range tests {
		if got := th.StageFor(tt.count); got != tt.want {
			t.Errorf("StageFor(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestStageForMonotonic(t *testing.T) {
	th := defaultThresholds()
	prev := th.StageFor(0)
	for c := int64(1); c <= 10200; c++ {
		s := th.StageFor(c)
		if s < prev {
			t.Fatalf("stage regressed at %d: %v -> %v", c, prev, s)
		}
		prev = s
	}
}

func TestValidate(t *testing.T) {
	th := defaultThresholds()
	if err := th.Validate(); err != nil {
		t.Fatalf("default thresholds invalid: %v", err)
	}
	bad := th
	bad.CellDivisionEnd = bad.PostEvolutionStart - 1
	if err := bad.Validate(); err == nil {
		t.Error("Validate() accepted decreasing thresholds")
	}
	bad = th
	bad.ClicksPerDivision = 0
	if err := bad.Validate(); err == nil {
		t.Error("Validate() accepted zero clicks per division")
	}
}

func TestTrackerDivisionsSingleStep(t *testing.T) {
	th := defaultThresholds()
	tr := NewTracker(th)

	total := 0
	prev := int64(9990)
	for next := prev + 1; next <= 10100; next++ {
		total += tr.Observe(prev, next).Divisions
		prev = next
	}
	// 10000, 10010, 10020, 10030, 10040
	if total != 5 {
		t.Errorf("divisions = %d, want 5", total)
	}
}

func TestTrackerDivisionsJump(t *testing.T) {
	th := defaultThresholds()
	tr := NewTracker(th)

	tests := []struct {
		prev, next int64
		want       int
	}{
		{9000, 10005, 1},  // 10000
		{10005, 10009, 0}, // none
		{10009, 10031, 3}, // 10010, 10020, 10030
		{10031, 10500, 1}, // 10040, end is exclusive
		{10500, 20000, 0},
	}
	for _, tt := range tests {
		got := tr.Observe(tt.prev, tt.next).Divisions
		if got != tt.want {
			t.Errorf("Observe(%d, %d).Divisions = %d, want %d", tt.prev, tt.next, got, tt.want)
		}
	}
}

func TestTrackerDivisionFiresOnce(t *testing.T) {
	th := defaultThresholds()
	tr := NewTracker(th)

	if got := tr.Observe(9999, 10000).Divisions; got != 1 {
		t.Fatalf("first crossing = %d, want 1", got)
	}
	// Spending drops the total, earning crosses the same point again.
	if got := tr.Observe(10000, 9950).Divisions; got != 0 {
		t.Errorf("decrease fired %d divisions", got)
	}
	if got := tr.Observe(9950, 10000).Divisions; got != 0 {
		t.Errorf("re-crossing fired %d divisions", got)
	}
	// Dropping again and jumping past a fresh point fires only the fresh one
	tr.Observe(10000, 9900)
	if got := tr.Observe(9900, 10010).Divisions; got != 1 {
		t.Errorf("climb past 10010 fired %d divisions, want 1", got)
	}
}

func TestTrackerTransition(t *testing.T) {
	tr := NewTracker(defaultThresholds())

	tn := tr.Observe(0, 1)
	if tn.Changed() || tn.To != Dormant {
		t.Errorf("0->1 = %+v, want Dormant without change", tn)
	}
	tn = tr.Observe(10099, 10100)
	if !tn.Changed() || tn.From != Morphing || tn.To != SquidForm {
		t.Errorf("10099->10100 = %+v", tn)
	}
}

func TestFirstEntry(t *testing.T) {
	tr := NewTracker(defaultThresholds())
	if tr.FirstEntry(Dormant) {
		t.Error("Dormant reported as first entry at start")
	}
	if !tr.FirstEntry(Morphing) {
		t.Error("Morphing not reported on first entry")
	}
	if tr.FirstEntry(Morphing) {
		t.Error("Morphing reported twice")
	}
}

func TestCurves(t *testing.T) {
	th := defaultThresholds()
	const eps = 1e-9

	tests := []struct {
		name string
		fn   func(int64) float64
		at   int64
		want float64
	}{
		{"growth dormant", th.GrowthScale, 1, 0},
		{"growth half", th.GrowthScale, 501, 0.5},
		{"growth full", th.GrowthScale, 5000, 1},
		{"organelle before", th.OrganelleOpacity, 9799, 1},
		{"organelle mid", th.OrganelleOpacity, 9900, 0.5},
		{"organelle after", th.OrganelleOpacity, 10000, 0},
		{"morph before", th.MorphProgress, 10049, 0},
		{"morph mid", th.MorphProgress, 10075, 0.5},
		{"morph squid", th.MorphProgress, 10100, 1},
		{"background before", th.BackgroundOpacity, 9999, 0},
		{"background full", th.BackgroundOpacity, 10025, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.at); math.Abs(got-tt.want) > eps {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
