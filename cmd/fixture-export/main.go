package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/envsim"
	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/replay"
	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/runlog"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to run-log database")
	runID := flag.String("run", "", "run ID to export (default latest)")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/runlog.db --out path/to/fixture.json [--run id]")
		os.Exit(2)
	}

	if err := run(*dbPath, *runID, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

func run(dbPath, runID, outPath string) error {
	store, err := runlog.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	var rr runlog.RunRow
	if runID != "" {
		rr, err = store.Run(runID)
	} else {
		rr, err = store.LatestRun()
	}
	if err != nil {
		return fmt.Errorf("find run: %w", err)
	}

	ticks, err := store.Ticks(rr.RunID)
	if err != nil {
		return fmt.Errorf("read ticks: %w", err)
	}
	if len(ticks) == 0 {
		return fmt.Errorf("run %s has no recorded ticks", rr.RunID)
	}

	fixture := buildFixture(rr, ticks)
	if err := replay.WriteFixture(outPath, fixture); err != nil {
		return err
	}

	fmt.Printf("Wrote fixture to %s (%d ticks from run %s)\n", outPath, len(ticks), shortID(rr.RunID))
	return nil
}

// #endregion extract

// #region build

// buildFixture turns a recorded run into a deterministic fixture: the
// recorded disturbances become the scripted wind and the recorded
// outcomes the expected ticks.
func buildFixture(rr runlog.RunRow, ticks []runlog.TickRow) *replay.Fixture {
	cfg := envsim.DefaultConfig()
	cfg.InitialAltitude = rr.InitialAltitude
	cfg.WindIntensity = rr.WindIntensity

	disturbances := make([]int, len(ticks))
	expected := make([]replay.ExpectedTick, len(ticks))
	for i, t := range ticks {
		disturbances[i] = t.Disturbance
		expected[i] = replay.ExpectedTick{
			Tick:     t.Tick,
			Altitude: t.Altitude,
			Action:   t.Action,
			Source:   t.Source,
		}
	}

	return &replay.Fixture{
		Description:  fmt.Sprintf("Exported run %s: %d recorded ticks", rr.RunID, len(ticks)),
		Config:       replay.FromEnvConfig(cfg),
		Policy:       rr.Policy,
		Disturbances: disturbances,
		Expected:     expected,
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion build
