package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_StageReached(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bms := bd.Check(WindowStats{WindowEndSec: 10, Stage: "dormant"})
	if !hasBookmark(bms, BookmarkStageReached) {
		t.Fatal("expected stage_reached on first stage")
	}
	if bms[0].AtSec != 10 {
		t.Errorf("at = %v, want 10", bms[0].AtSec)
	}

	if hasBookmark(bd.Check(WindowStats{Stage: "dormant"}), BookmarkStageReached) {
		t.Error("same stage should not fire twice")
	}
	if !hasBookmark(bd.Check(WindowStats{Stage: "growing"}), BookmarkStageReached) {
		t.Error("expected stage_reached on new stage")
	}
	// Regressing to a seen stage is not a milestone
	if hasBookmark(bd.Check(WindowStats{Stage: "dormant"}), BookmarkStageReached) {
		t.Error("revisited stage should not fire")
	}
}

func TestBookmarkDetector_CPSSpike(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{Stage: "growing", CPSMean: 3})
	}
	if !hasBookmark(bd.Check(WindowStats{Stage: "growing", CPSMean: 9}), BookmarkCPSSpike) {
		t.Error("expected cps_spike")
	}
	if hasBookmark(bd.Check(WindowStats{Stage: "growing", CPSMean: 4}), BookmarkCPSSpike) {
		t.Error("unexpected cps_spike")
	}
}

func TestBookmarkDetector_EarnSurge(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{EarnRate: 5})
	}
	if !hasBookmark(bd.Check(WindowStats{EarnRate: 50}), BookmarkEarnSurge) {
		t.Error("expected earn_surge")
	}
}

func TestBookmarkDetector_Idle(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// Idle before ever earning is not reported
	for i := 0; i < 5; i++ {
		if hasBookmark(bd.Check(WindowStats{}), BookmarkIdle) {
			t.Fatal("idle before first earnings")
		}
	}

	bd.Check(WindowStats{ClickEarnings: 5})
	var fired int
	for i := 0; i < 6; i++ {
		if hasBookmark(bd.Check(WindowStats{}), BookmarkIdle) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("idle fired %d times, want 1", fired)
	}
}

func TestBookmarkDetector_Satiety(t *testing.T) {
	bd := NewBookmarkDetector(10)
	if !hasBookmark(bd.Check(WindowStats{SatietyLevel: 2, SatietyLevelUps: 1}), BookmarkSatiety) {
		t.Error("expected satiety_level")
	}
}
