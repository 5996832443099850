package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/control"
	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/envsim"
	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/replay"
	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/runlog"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	dbDSN := flag.String("db", "", "path to run-log database (DB mode)")
	runID := flag.String("run", "", "run ID to replay (DB mode; default latest)")
	flag.Parse()

	if (*fixturePath == "" && *dbDSN == "") || (*fixturePath != "" && *dbDSN != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		fmt.Fprintln(os.Stderr, "       replay --db path/to/runlog.db [--run id]")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbDSN, *runID)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	results, err := replay.Replay(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}

	return printComparison(results, f.Expected)
}

// #endregion fixture-mode

// #region db-mode

// runDBMode re-runs a recorded run's disturbance script through the current
// pipeline and compares against the recorded outcomes.
func runDBMode(dsn, runID string) int {
	store, err := runlog.Open(dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open run log: %v\n", err)
		return 2
	}
	defer store.Close()

	var run runlog.RunRow
	if runID != "" {
		run, err = store.Run(runID)
	} else {
		run, err = store.LatestRun()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "find run: %v\n", err)
		return 2
	}

	ticks, err := store.Ticks(run.RunID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read ticks: %v\n", err)
		return 2
	}
	if len(ticks) == 0 {
		fmt.Fprintf(os.Stderr, "run %s has no recorded ticks\n", run.RunID)
		return 2
	}

	f := toFixture(run, ticks)
	results, err := replay.Replay(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}

	fmt.Printf("Replaying run %s (%s, %d ticks)\n", run.RunID, run.Policy, len(ticks))
	return printComparison(results, f.Expected)
}

// toFixture rebuilds a replay fixture from a recorded run: the recorded
// disturbances become the script, the recorded outcomes the expectations.
func toFixture(run runlog.RunRow, ticks []runlog.TickRow) *replay.Fixture {
	cfg := envsim.DefaultConfig()
	cfg.InitialAltitude = run.InitialAltitude
	cfg.WindIntensity = run.WindIntensity

	f := &replay.Fixture{
		Description: fmt.Sprintf("recorded run %s", run.RunID),
		Config:      replay.FromEnvConfig(cfg),
		Policy:      run.Policy,
	}

	for _, t := range ticks {
		f.Disturbances = append(f.Disturbances, t.Disturbance)
		f.Expected = append(f.Expected, replay.ExpectedTick{
			Tick:     t.Tick,
			Altitude: t.Altitude,
			Action:   t.Action,
			Source:   t.Source,
		})
	}
	return f
}

// #endregion db-mode

// #region output

// printComparison outputs the expected-vs-replayed table and returns the
// exit code: 0 on full match, 1 on any divergence.
func printComparison(results []control.TickOutcome, expected []replay.ExpectedTick) int {
	diffs := replay.Compare(results, expected)
	diverged := make(map[int]bool, len(diffs))
	for _, d := range diffs {
		diverged[d.Tick] = true
	}

	fmt.Printf("%-6s| %-10s| %-10s| %s\n", "Tick", "Expected", "Replayed", "Match")
	fmt.Printf("%-6s+%-11s+%-11s+%s\n", "------", "-----------", "-----------", "------")

	byTick := make(map[int]control.TickOutcome, len(results))
	for _, r := range results {
		byTick[r.Tick] = r
	}
	for _, exp := range expected {
		match := "OK"
		if diverged[exp.Tick] {
			match = "DIFF"
		}
		gotDesc := "missing"
		if got, ok := byTick[exp.Tick]; ok {
			gotDesc = fmt.Sprintf("alt %d %+d", got.Altitude, got.Action)
		}
		fmt.Printf("%-6d| %-10s| %-10s| %s\n",
			exp.Tick, fmt.Sprintf("alt %d %+d", exp.Altitude, exp.Action), gotDesc, match)
	}

	sum := replay.Summarize(results)
	fmt.Printf("\nSummary: %d ticks, %d stable, %d critical, %d planner, final altitude %d\n",
		sum.Ticks, sum.StableTicks, sum.CriticalTicks, sum.PlannerTicks, sum.FinalAltitude)

	if len(diffs) > 0 {
		fmt.Printf("%d divergence(s)\n", len(diffs))
		return 1
	}
	return 0
}

// #endregion output
