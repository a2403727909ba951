package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/config"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/logging"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/metrics"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/report"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/session"
)

type options struct {
	configDir string
	runs      int
	seedStep  int64
	limit     float64
	step      float64
	players   int
	loneWolf  bool
	pngDir    string
	journal   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configDir, "config", ".", "directory holding "+config.FileName)
	flag.IntVar(&opts.runs, "runs", 5, "number of AI matches")
	flag.Int64Var(&opts.seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&opts.limit, "limit", 3600, "simulated seconds before a match is abandoned")
	flag.Float64Var(&opts.step, "step", 5, "simulated seconds between victory checks")
	flag.IntVar(&opts.players, "players", 0, "override the configured number of players")
	flag.BoolVar(&opts.loneWolf, "lonewolf", false, "play the lone wolf fleet")
	flag.StringVar(&opts.pngDir, "png", "", "directory to write a board report per run")
	flag.BoolVar(&opts.journal, "journal", false, "print every match event")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.runs <= 0 {
		return fmt.Errorf("-runs must be > 0")
	}
	cfg, err := config.Load(opts.configDir)
	if err != nil {
		return err
	}
	if opts.players > 0 {
		cfg.Match.Players = opts.players
	}
	if opts.loneWolf {
		cfg.Match.LoneWolf = true
	}

	zl := logging.New(cfg.LogLevel, os.Stderr, true)
	log := logging.NewLogger(zl)
	rec, err := metrics.New()
	if err != nil {
		return err
	}

	fmt.Printf("=== Sea War Simulation ===\n")
	fmt.Printf("runs=%d seed_base=%d seed_step=%d limit=%.0fs\n\n", opts.runs, cfg.Seed, opts.seedStep, opts.limit)

	start := time.Now()
	finished, shots, hits := 0, 0, 0
	base := cfg.Seed
	for i := 0; i < opts.runs; i++ {
		cfg.Seed = base + int64(i)*opts.seedStep
		r, err := runOne(cfg, opts, i+1, log, rec)
		if err != nil {
			return fmt.Errorf("run %d: %w", i+1, err)
		}
		fmt.Println(r)
		if r.Finished {
			finished++
		}
		shots += r.Shots
		hits += r.Hits
	}

	accuracy := 0.0
	if shots > 0 {
		accuracy = float64(hits) / float64(shots) * 100
	}
	fmt.Printf("\nfinished %d/%d matches, %d shots, %.1f%% hits, %s wall time\n",
		finished, opts.runs, shots, accuracy, time.Since(start).Round(time.Millisecond))
	return nil
}

func runOne(cfg config.Config, opts options, index int, log logging.Logger, rec *metrics.Recorder) (session.Result, error) {
	s, err := session.New(cfg, log, rec)
	if err != nil {
		return session.Result{}, err
	}
	if err := s.Match.StartPlacement(); err != nil {
		return session.Result{}, err
	}
	s.RunUntilVictory(opts.limit, opts.step)

	if opts.journal {
		fmt.Print(s.Journal.Format())
	}
	if opts.pngDir != "" {
		path := filepath.Join(opts.pngDir, fmt.Sprintf("run-%03d-seed-%d.png", index, cfg.Seed))
		if err := report.WritePNG(path, report.Boards(s.Match, report.DefaultLayout())); err != nil {
			return session.Result{}, err
		}
	}
	return s.Result(), nil
}
