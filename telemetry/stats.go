package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	Session        string  `csv:"session"`
	WindowStartSec float64 `csv:"-"`
	WindowEndSec   float64 `csv:"window_end"`

	// Session state at window end
	ClickCount     int64  `csv:"click_count"`
	LifetimeClicks int64  `csv:"lifetime_clicks"`
	Yield          int64  `csv:"yield"`
	AutoClickers   int64  `csv:"auto_clickers"`
	Stage          string `csv:"stage"`
	Cells          int    `csv:"cells"`
	Food           int    `csv:"food"`
	SatietyLevel   int    `csv:"satiety_level"`

	// Events during window
	Clicks          int   `csv:"clicks"`
	RejectedClicks  int   `csv:"rejected_clicks"`
	ClickEarnings   int64 `csv:"click_earnings"`
	AutoEarnings    int64 `csv:"auto_earnings"`
	Purchases       int   `csv:"purchases"`
	Spent           int64 `csv:"spent"`
	FailedFunds     int   `csv:"failed_funds"`
	FailedMaxLevel  int   `csv:"failed_max_level"`
	FailedUnknown   int   `csv:"failed_unknown"`
	Divisions       int   `csv:"divisions"`
	FoodSpawned     int   `csv:"food_spawned"`
	FoodRefused     int   `csv:"food_refused"`
	FoodEaten       int   `csv:"food_eaten"`
	SatietyLevelUps int   `csv:"satiety_level_ups"`
	StageChanges    int   `csv:"stage_changes"`

	// Rates
	EarnRate float64 `csv:"earn_rate"` // Clicks earned per second, manual plus auto
	CPSMean  float64 `csv:"cps_mean"`
	CPSStd   float64 `csv:"cps_std"`
	CPSP90   float64 `csv:"cps_p90"`
}

// Quantile returns the empirical p-quantile of values. values is not modified.
// Returns 0 if values is empty.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	p = min(max(p, 0), 1)
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session", s.Session),
		slog.Float64("window_end", s.WindowEndSec),
		slog.Int64("click_count", s.ClickCount),
		slog.Int64("lifetime_clicks", s.LifetimeClicks),
		slog.Int64("yield", s.Yield),
		slog.Int64("auto_clickers", s.AutoClickers),
		slog.String("stage", s.Stage),
		slog.Int("cells", s.Cells),
		slog.Int("food", s.Food),
		slog.Int("satiety_level", s.SatietyLevel),
		slog.Int("clicks", s.Clicks),
		slog.Int("rejected_clicks", s.RejectedClicks),
		slog.Int64("click_earnings", s.ClickEarnings),
		slog.Int64("auto_earnings", s.AutoEarnings),
		slog.Int("purchases", s.Purchases),
		slog.Int64("spent", s.Spent),
		slog.Int("failed_funds", s.FailedFunds),
		slog.Int("failed_max_level", s.FailedMaxLevel),
		slog.Int("failed_unknown", s.FailedUnknown),
		slog.Int("divisions", s.Divisions),
		slog.Int("food_spawned", s.FoodSpawned),
		slog.Int("food_refused", s.FoodRefused),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("satiety_level_ups", s.SatietyLevelUps),
		slog.Int("stage_changes", s.StageChanges),
		slog.Float64("earn_rate", s.EarnRate),
		slog.Float64("cps_mean", s.CPSMean),
		slog.Float64("cps_std", s.CPSStd),
		slog.Float64("cps_p90", s.CPSP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndSec,
		"stage", s.Stage,
		"click_count", s.ClickCount,
		"lifetime_clicks", s.LifetimeClicks,
		"yield", s.Yield,
		"auto_clickers", s.AutoClickers,
		"cells", s.Cells,
		"food", s.Food,
		"satiety_level", s.SatietyLevel,
		"clicks", s.Clicks,
		"rejected_clicks", s.RejectedClicks,
		"purchases", s.Purchases,
		"spent", s.Spent,
		"divisions", s.Divisions,
		"food_eaten", s.FoodEaten,
		"earn_rate", s.EarnRate,
		"cps_mean", s.CPSMean,
		"cps_p90", s.CPSP90,
	)
}
