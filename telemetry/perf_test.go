package telemetry

import (
	"math"
	"testing"
	"time"
)

// stepClock returns a clock that advances only when advance is called.
func stepClock() (func() time.Time, func(time.Duration)) {
	now := time.Unix(0, 0)
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	clock, advance := stepClock()
	pc.SetClock(clock)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseAutoClick)
		advance(100 * time.Microsecond)
		pc.StartPhase(PhaseAmbient)
		advance(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration != 300*time.Microsecond {
		t.Errorf("avg tick = %v, want 300µs", stats.AvgTickDuration)
	}
	if stats.PhaseAvg[PhaseAutoClick] != 100*time.Microsecond {
		t.Errorf("auto_click avg = %v, want 100µs", stats.PhaseAvg[PhaseAutoClick])
	}
	if stats.PhaseAvg[PhaseAmbient] != 200*time.Microsecond {
		t.Errorf("ambient avg = %v, want 200µs", stats.PhaseAvg[PhaseAmbient])
	}
	if math.Abs(stats.TicksPerSecond-1e6/300) > 1e-6 {
		t.Errorf("ticks/sec = %v", stats.TicksPerSecond)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)
	clock, advance := stepClock()
	pc.SetClock(clock)

	// Five slow ticks, then five fast ones push them out of the window
	for i := 0; i < 10; i++ {
		d := 10 * time.Millisecond
		if i >= 5 {
			d = time.Millisecond
		}
		pc.StartTick()
		pc.StartPhase(PhaseFood)
		advance(d)
		pc.EndTick()
	}

	stats := pc.Stats()
	if pc.sampleCount != 5 {
		t.Errorf("sample count = %d, want window size 5", pc.sampleCount)
	}
	if stats.AvgTickDuration != time.Millisecond || stats.MaxTickDuration != time.Millisecond {
		t.Errorf("avg=%v max=%v, want only the fast ticks", stats.AvgTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)
	clock, advance := stepClock()
	pc.SetClock(clock)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseBoost)
		advance(10 * time.Microsecond)
		pc.StartPhase(PhaseEffects)
		advance(490 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if math.Abs(stats.PhasePct[PhaseBoost]-2) > 1e-9 {
		t.Errorf("boost = %v%%, want 2%%", stats.PhasePct[PhaseBoost])
	}
	if math.Abs(stats.PhasePct[PhaseEffects]-98) > 1e-9 {
		t.Errorf("effects = %v%%, want 98%%", stats.PhasePct[PhaseEffects])
	}

	row := stats.ToCSV(12.5)
	if row.WindowEnd != 12.5 || row.EffectsPct != stats.PhasePct[PhaseEffects] || row.AvgTickUS != 500 {
		t.Errorf("csv row = %+v", row)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	clock, advance := stepClock()
	pc.SetClock(clock)

	pc.RecordFrame()
	if pc.Stats().FPS != 0 {
		t.Error("single frame should not report FPS")
	}
	advance(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 20*time.Millisecond {
		t.Errorf("frame duration = %v, want 20ms", stats.FrameDuration)
	}
	if math.Abs(stats.FPS-50) > 1e-9 {
		t.Errorf("FPS = %v, want 50", stats.FPS)
	}
}
