// Package main measures how long a scripted player takes to reach each
// stage and tunes pacing knobs toward a target time-to-squid with CMA-ES.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/akorn123w/FishingInTheVoid/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func makeSeeds(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	return seeds
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 8, "Number of seeded runs per evaluation")
	cps := flag.Float64("cps", 6, "Scripted clicks per second")
	maxMinutes := flag.Float64("max-minutes", 60, "Stop each run after this much simulated time")
	target := flag.Float64("target-minutes", 0, "Tune toward this time-to-squid (0 = report only)")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of tuning evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	limit := time.Duration(*maxMinutes * float64(time.Minute))
	evalSeeds := makeSeeds(*seeds)

	if *target <= 0 {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		if err := report(cfg, evalSeeds, *cps, limit, *outputDir); err != nil {
			log.Fatal(err)
		}
		return
	}

	targetDur := time.Duration(*target * float64(time.Minute))
	if err := tune(*configPath, evalSeeds, *cps, limit, targetDur, *maxEvals, *population, *outputDir); err != nil {
		log.Fatal(err)
	}
}

// report runs every seed once and writes runs.csv.
func report(cfg *config.Config, seeds []int64, cps float64, limit time.Duration, dir string) error {
	start := time.Now()
	rows, err := runSeeds(cfg, seeds, cps, limit)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, "runs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("writing runs: %w", err)
	}

	s := Summarize(rows)
	fmt.Printf("%d runs at %.1f cps in %s\n", s.Runs, cps, formatDuration(time.Since(start)))
	fmt.Printf("  reached squid: %d/%d\n", s.Reached, s.Runs)
	if s.Reached > 0 {
		fmt.Printf("  time to squid: mean=%s std=%s p10=%s p50=%s p90=%s\n",
			secs(s.MeanSec), secs(s.StdSec), secs(s.P10Sec), secs(s.MedSec), secs(s.P90Sec))
	}
	fmt.Printf("  purchases per run: %.1f\n", s.MeanBuys)
	fmt.Printf("Runs saved to: %s\n", path)
	return nil
}

func secs(v float64) string {
	return formatDuration(time.Duration(v * float64(time.Second)))
}

func tune(configPath string, seeds []int64, cps float64, limit, target time.Duration, maxEvals, population int, dir string) error {
	params := NewParamVector()
	evaluator := NewPacingEvaluator(params, configPath, seeds, cps, limit, target)

	base, err := evaluator.Config(params.DefaultVector())
	if err != nil {
		return fmt.Errorf("loading base config: %w", err)
	}
	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(base))

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0, // Sequential evaluation; seeds already run in parallel
	}

	popSize := population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(dir, "pacing_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness", "mean_squid_sec"}
	for _, ps := range params.Specs {
		header = append(header, ps.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		clamped := params.Clamp(params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = append([]float64(nil), clamped...)
		}

		mean := evaluator.LastMean()
		row := []string{strconv.Itoa(evalCount), fmt.Sprintf("%.6f", fitness), fmt.Sprintf("%.1f", mean)}
		for _, v := range clamped {
			row = append(row, fmt.Sprintf("%.6f", v))
		}
		logWriter.Write(row)
		logWriter.Flush()

		elapsed := time.Since(startTime)
		remaining := time.Duration(maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
		fmt.Printf("Eval %d/%d: squid at %s (target %s) fitness=%.4f best=%.4f | elapsed: %s, ETA: %s\n",
			evalCount, maxEvals, secs(mean), formatDuration(target), fitness, bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Tuning %d parameters, population=%d, max_evals=%d, seeds=%d\n", dim, popSize, maxEvals, len(seeds))

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		return fmt.Errorf("no evaluations completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, ps := range params.Specs {
		fmt.Printf("  %s (%s): %.4f\n", ps.Name, ps.Path, bestParams[i])
	}

	bestCfg, err := evaluator.Config(bestParams)
	if err != nil {
		return fmt.Errorf("applying best params: %w", err)
	}
	outPath := filepath.Join(dir, "best_config.yaml")
	if err := bestCfg.WriteYAML(outPath); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}
	fmt.Printf("\nBest config saved to: %s\n", outPath)
	return nil
}
