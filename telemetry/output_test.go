package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akorn123w/FishingInTheVoid/config"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("empty dir should disable output, got %v, %v", om, err)
	}
	// Every method is a no-op on nil
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteSnapshot(Bookmark{}, nil); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager should be inert")
	}
}

func TestOutputManagerCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{Session: "s", WindowEndSec: float64(i * 10), Stage: "dormant"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WritePurchase(PurchaseRecord{Session: "s", ItemID: "click_plus", Level: 1, Cost: 10}); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePerf(PerfStats{}, 10); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkIdle, Description: "quiet"}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := readLines(t, filepath.Join(dir, "telemetry.csv"))
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "session,window_end,") {
		t.Errorf("header = %q", lines[0])
	}

	purchases := readLines(t, filepath.Join(dir, "purchases.csv"))
	if len(purchases) != 2 || !strings.Contains(purchases[1], "click_plus") {
		t.Errorf("purchases.csv = %q", purchases)
	}
	bookmarks := readLines(t, filepath.Join(dir, "bookmarks.csv"))
	if len(bookmarks) != 2 || !strings.HasPrefix(bookmarks[1], "idle,") {
		t.Errorf("bookmarks.csv = %q", bookmarks)
	}
}

func TestOutputManagerSnapshotAndRecords(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	bm := Bookmark{Type: BookmarkStageReached, AtSec: 5}
	if err := om.WriteSnapshot(bm, map[string]int{"click_count": 1}); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "snapshots", "*.json"))
	if len(matches) != 1 {
		t.Errorf("snapshots = %v", matches)
	}

	r := NewRecords(2)
	r.Observe(WindowStats{Stage: "dormant", WindowEndSec: 10, EarnRate: 1, Yield: 1})
	r.Observe(WindowStats{Stage: "growing", WindowEndSec: 20, EarnRate: 3, Yield: 2})
	if err := om.WriteRecords(r); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "records.json"))
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Stages []struct {
			Stage string `json:"stage"`
		} `json:"stages"`
		PeakYield int64 `json:"peak_yield"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Stages) != 2 || got.Stages[0].Stage != "dormant" || got.PeakYield != 2 {
		t.Errorf("records = %+v", got)
	}
}

func TestOutputManagerWriteConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}

func TestRecordsKeepsBest(t *testing.T) {
	r := NewRecords(2)
	for i, rate := range []float64{1, 5, 3, 0} {
		r.Observe(WindowStats{WindowEndSec: float64(i), EarnRate: rate, Stage: "growing"})
	}
	best := r.Best()
	if len(best) != 2 || best[0].EarnRate != 5 || best[1].EarnRate != 3 {
		t.Errorf("best = %+v", best)
	}
	if at, ok := r.StageTime("growing"); !ok || at != 0 {
		t.Errorf("stage time = %v, %v", at, ok)
	}
	if _, ok := r.StageTime("squid_form"); ok {
		t.Error("unseen stage should be absent")
	}
}
