package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/akorn123w/FishingInTheVoid/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()
	if len(def) != pv.Dim() {
		t.Fatalf("default len = %d, want %d", len(def), pv.Dim())
	}

	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: round trip %v -> %v", pv.Specs[i].Name, def[i], back[i])
		}
	}
}

func TestParamVectorClamp(t *testing.T) {
	pv := NewParamVector()
	low := make([]float64, pv.Dim())
	high := make([]float64, pv.Dim())
	for i := range low {
		low[i] = -1e6
		high[i] = 1e6
	}
	for i, v := range pv.Clamp(low) {
		if v != pv.Specs[i].Min {
			t.Errorf("%s: clamp low = %v, want %v", pv.Specs[i].Name, v, pv.Specs[i].Min)
		}
	}
	for i, v := range pv.Clamp(high) {
		if v != pv.Specs[i].Max {
			t.Errorf("%s: clamp high = %v, want %v", pv.Specs[i].Name, v, pv.Specs[i].Max)
		}
	}
}

func TestApplyToConfigRefreshesDerived(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	if err := pv.ApplyToConfig(cfg, []float64{100, 2, 45}); err != nil {
		t.Fatal(err)
	}
	if cfg.Derived.ClickCooldown != 100*time.Millisecond {
		t.Errorf("cooldown = %v", cfg.Derived.ClickCooldown)
	}
	if cfg.Derived.AutoClickInterval != 2*time.Second {
		t.Errorf("auto interval = %v", cfg.Derived.AutoClickInterval)
	}
	if cfg.Derived.BoostWindow != 45*time.Second {
		t.Errorf("boost window = %v", cfg.Derived.BoostWindow)
	}

	got := pv.ExtractFromConfig(cfg)
	if got[0] != 100 || got[1] != 2 || got[2] != 45 {
		t.Errorf("extract = %v", got)
	}
}

func TestScore(t *testing.T) {
	target := 100 * time.Second
	tests := []struct {
		name string
		rows []RunRow
		want float64
	}{
		{"on target", []RunRow{{SquidFormSec: 100}}, 0},
		{"half off", []RunRow{{SquidFormSec: 150}, {SquidFormSec: 50}}, 0.25},
		{"unreached", []RunRow{{SquidFormSec: -1}}, unreachedPenalty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.rows, target); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
		})
	}
	if !math.IsInf(Score(nil, target), 1) {
		t.Error("empty rows should score +Inf")
	}
}

func TestSummarize(t *testing.T) {
	rows := []RunRow{
		{SquidFormSec: 10, Purchases: 2},
		{SquidFormSec: 20, Purchases: 4},
		{SquidFormSec: -1, Purchases: 0},
	}
	s := Summarize(rows)
	if s.Runs != 3 || s.Reached != 2 {
		t.Errorf("runs=%d reached=%d", s.Runs, s.Reached)
	}
	if s.MeanSec != 15 {
		t.Errorf("mean = %v, want 15", s.MeanSec)
	}
	if s.MeanBuys != 2 {
		t.Errorf("mean buys = %v, want 2", s.MeanBuys)
	}

	if empty := Summarize(nil); empty.Reached != 0 || empty.MeanSec != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestRunSeedsDeterministic(t *testing.T) {
	cfg := config.Default()
	seeds := []int64{1, 2}
	limit := 30 * time.Second

	a, err := runSeeds(cfg, seeds, 6, limit)
	if err != nil {
		t.Fatal(err)
	}
	b, err := runSeeds(cfg, seeds, 6, limit)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("seed %d not deterministic: %+v vs %+v", seeds[i], a[i], b[i])
		}
		if a[i].Clicks == 0 {
			t.Errorf("seed %d earned nothing", seeds[i])
		}
	}
}

func TestReportWritesRuns(t *testing.T) {
	dir := t.TempDir()
	if err := report(config.Default(), []int64{3}, 4, 10*time.Second, dir); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "runs.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var rows []RunRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Seed != 3 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(75 * time.Second); got != "1m15s" {
		t.Errorf("got %q", got)
	}
	if got := formatDuration(time.Hour + 2*time.Second); got != "1h00m02s" {
		t.Errorf("got %q", got)
	}
}
