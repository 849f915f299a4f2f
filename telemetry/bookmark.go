package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkStageReached BookmarkType = "stage_reached"
	BookmarkCPSSpike     BookmarkType = "cps_spike"
	BookmarkEarnSurge    BookmarkType = "earn_surge"
	BookmarkIdle         BookmarkType = "idle"
	BookmarkSatiety      BookmarkType = "satiety_level"
)

// idleWindows is how many consecutive windows without earnings count as idle.
const idleWindows = 3

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Session     string       `csv:"session"`
	AtSec       float64      `csv:"at"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"at", b.AtSec,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in a session.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	seenStages map[string]bool
	idleCount  int
	earnedEver bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
		seenStages:  make(map[string]bool),
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(b *Bookmark) {
		if b != nil {
			b.Session = stats.Session
			b.AtSec = stats.WindowEndSec
			bookmarks = append(bookmarks, *b)
		}
	}

	add(bd.checkStage(stats))
	add(bd.checkSatiety(stats))
	add(bd.checkIdle(stats))
	if len(bd.getHistory()) >= 3 {
		add(bd.checkCPSSpike(stats))
		add(bd.checkEarnSurge(stats))
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkStage fires the first time each stage is observed at a window end.
func (bd *BookmarkDetector) checkStage(stats WindowStats) *Bookmark {
	if stats.Stage == "" || bd.seenStages[stats.Stage] {
		return nil
	}
	bd.seenStages[stats.Stage] = true
	return &Bookmark{
		Type:        BookmarkStageReached,
		Description: fmt.Sprintf("Reached %s at %d clicks", stats.Stage, stats.ClickCount),
	}
}

func (bd *BookmarkDetector) checkSatiety(stats WindowStats) *Bookmark {
	if stats.SatietyLevelUps == 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSatiety,
		Description: fmt.Sprintf("Satiety level %d (+%d this window)", stats.SatietyLevel, stats.SatietyLevelUps),
	}
}

// checkIdle fires once per idle stretch, after at least one window earned.
func (bd *BookmarkDetector) checkIdle(stats WindowStats) *Bookmark {
	if stats.ClickEarnings+stats.AutoEarnings > 0 {
		bd.earnedEver = true
		bd.idleCount = 0
		return nil
	}
	if !bd.earnedEver {
		return nil
	}
	bd.idleCount++
	if bd.idleCount != idleWindows {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkIdle,
		Description: fmt.Sprintf("No clicks earned for %d windows", idleWindows),
	}
}

func (bd *BookmarkDetector) checkCPSSpike(stats WindowStats) *Bookmark {
	var sum float64
	history := bd.getHistory()
	for _, h := range history {
		sum += h.CPSMean
	}
	avg := sum / float64(len(history))
	if avg == 0 {
		return nil
	}
	if stats.CPSMean > avg*2.0 && stats.CPSMean >= 5 {
		return &Bookmark{
			Type:        BookmarkCPSSpike,
			Description: fmt.Sprintf("CPS %.1f is %.1fx average (%.1f)", stats.CPSMean, stats.CPSMean/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkEarnSurge(stats WindowStats) *Bookmark {
	var sum float64
	history := bd.getHistory()
	for _, h := range history {
		sum += h.EarnRate
	}
	avg := sum / float64(len(history))
	if avg == 0 {
		return nil
	}
	if stats.EarnRate > avg*3.0 && stats.EarnRate >= 10 {
		return &Bookmark{
			Type:        BookmarkEarnSurge,
			Description: fmt.Sprintf("Earning %.1f/s, %.1fx average (%.1f)", stats.EarnRate, stats.EarnRate/avg, avg),
		}
	}
	return nil
}
