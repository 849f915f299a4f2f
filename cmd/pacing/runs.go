package main

import (
	"fmt"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/akorn123w/FishingInTheVoid/config"
	"github.com/akorn123w/FishingInTheVoid/game"
	"github.com/akorn123w/FishingInTheVoid/progression"
	"github.com/akorn123w/FishingInTheVoid/telemetry"
)

// stepDT is the simulated time between autoplayer steps.
const stepDT = 50 * time.Millisecond

// RunRow is one seeded session, written to runs.csv. Stage times are -1
// when the stage was never reached.
type RunRow struct {
	Seed         int64   `csv:"seed"`
	CPS          float64 `csv:"cps"`
	Reached      string  `csv:"reached"`
	ElapsedSec   float64 `csv:"elapsed_sec"`
	Clicks       int64   `csv:"lifetime_clicks"`
	Purchases    int     `csv:"purchases"`
	FoodEaten    int     `csv:"food_eaten"`
	GrowingSec   float64 `csv:"growing_sec"`
	PreEvoSec    float64 `csv:"pre_evolution_sec"`
	DividingSec  float64 `csv:"dividing_sec"`
	MorphingSec  float64 `csv:"morphing_sec"`
	SquidFormSec float64 `csv:"squid_form_sec"`
}

func stageSec(res game.RunResult, s progression.Stage) float64 {
	if d, ok := res.StageTimes[s]; ok {
		return d.Seconds()
	}
	return -1
}

func rowFor(seed int64, cps float64, res game.RunResult) RunRow {
	return RunRow{
		Seed:         seed,
		CPS:          cps,
		Reached:      res.Reached.String(),
		ElapsedSec:   res.Elapsed.Seconds(),
		Clicks:       res.Clicks,
		Purchases:    res.Purchases,
		FoodEaten:    res.FoodEaten,
		GrowingSec:   stageSec(res, progression.Growing),
		PreEvoSec:    stageSec(res, progression.PreEvolution),
		DividingSec:  stageSec(res, progression.Dividing),
		MorphingSec:  stageSec(res, progression.Morphing),
		SquidFormSec: stageSec(res, progression.SquidForm),
	}
}

// runSeeds plays one session per seed in parallel.
func runSeeds(cfg *config.Config, seeds []int64, cps float64, limit time.Duration) ([]RunRow, error) {
	rows := make([]RunRow, len(seeds))
	errs := make([]error, len(seeds))
	start := time.Unix(0, 0)

	var wg sync.WaitGroup
	for i, seed := range seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			g, err := game.NewGame(cfg, game.Options{Seed: s})
			if err != nil {
				errs[idx] = fmt.Errorf("seed %d: %w", s, err)
				return
			}
			res := game.Simulate(g, game.NewAutoplayer(cps, true), start, stepDT, limit)
			rows[idx] = rowFor(s, cps, res)
		}(i, seed)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// Summary describes time-to-squid across runs.
type Summary struct {
	Runs     int
	Reached  int
	MeanSec  float64
	StdSec   float64
	P10Sec   float64
	MedSec   float64
	P90Sec   float64
	MeanBuys float64
}

// Summarize aggregates rows. Time statistics cover runs that reached the squid.
func Summarize(rows []RunRow) Summary {
	s := Summary{Runs: len(rows)}
	var times, buys []float64
	for _, r := range rows {
		buys = append(buys, float64(r.Purchases))
		if r.SquidFormSec >= 0 {
			times = append(times, r.SquidFormSec)
		}
	}
	s.Reached = len(times)
	if len(buys) > 0 {
		s.MeanBuys = stat.Mean(buys, nil)
	}
	if len(times) == 0 {
		return s
	}
	s.MeanSec, s.StdSec = stat.MeanStdDev(times, nil)
	if len(times) == 1 {
		s.StdSec = 0
	}
	s.P10Sec = telemetry.Quantile(times, 0.1)
	s.MedSec = telemetry.Quantile(times, 0.5)
	s.P90Sec = telemetry.Quantile(times, 0.9)
	return s
}
