package game

import (
	"errors"
	"log/slog"
	"time"

	"github.com/akorn123w/FishingInTheVoid/store"
	"github.com/akorn123w/FishingInTheVoid/telemetry"
)

// recordEvent feeds an event into the stats collector.
func (g *Game) recordEvent(ev Event) {
	c := g.collector
	if c == nil {
		return
	}
	switch ev.Kind {
	case EventClick:
		c.RecordClick(ev.At, ev.Amount)
	case EventClickRejected:
		c.RecordRejectedClick()
	case EventAutoClick:
		c.RecordAutoClick(ev.Amount)
	case EventPurchase:
		c.RecordPurchase(ev.Amount)
	case EventPurchaseFailed:
		c.RecordPurchaseFailed(failureReason(ev.Err))
	case EventCellsDivided:
		c.RecordDivision()
	case EventFoodSpawned:
		c.RecordFoodSpawned()
	case EventFoodRefused:
		c.RecordFoodRefused()
	case EventConsumptionFinished:
		c.RecordFoodEaten(int(ev.Amount))
	case EventSatietyLevelUp:
		c.RecordSatietyLevelUp()
	case EventStageChanged:
		c.RecordStageChange()
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, store.ErrInsufficientFunds):
		return telemetry.FailureInsufficientFunds
	case errors.Is(err, store.ErrMaxLevelReached):
		return telemetry.FailureMaxLevel
	default:
		return telemetry.FailureUnknownItem
	}
}

// flushTelemetry writes a stats window once it has elapsed and checks for bookmarks.
func (g *Game) flushTelemetry(now time.Time) {
	if g.collector == nil || !g.collector.ShouldFlush(now) {
		return
	}

	stats := g.collector.Flush(now, telemetry.GameState{
		ClickCount:     g.Economy.ClickCount,
		LifetimeClicks: g.Economy.LifetimeClicks,
		Yield:          g.Yield(),
		AutoClickers:   g.Economy.AutoClickers,
		Stage:          g.Stage().String(),
		Cells:          g.Colony.Len(),
		Food:           len(g.Food.Particles),
		SatietyLevel:   g.Satiety.Level,
	})
	perfStats := g.perf.Stats()

	g.records.Observe(stats)
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndSec); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.output != nil {
			if err := g.output.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
			if err := g.output.WriteSnapshot(bm, g.Snapshot(now)); err != nil {
				slog.Error("failed to write snapshot", "error", err)
			}
		}
	}
}

// writePurchase appends a purchase row when output is enabled.
func (g *Game) writePurchase(rc store.Receipt, now time.Time) {
	if g.output == nil {
		return
	}
	rec := telemetry.PurchaseRecord{
		Session:    g.collector.Session(),
		ElapsedSec: g.collector.Elapsed(now).Seconds(),
		ItemID:     rc.ItemID,
		Kind:       rc.Kind.String(),
		Level:      rc.Level,
		Rarity:     rc.Rarity.String(),
		Cost:       rc.Cost,
		Balance:    g.Economy.ClickCount,
		Yield:      g.Yield(),
	}
	if err := g.output.WritePurchase(rec); err != nil {
		slog.Error("failed to write purchase", "error", err)
	}
}
