package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/runlog"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to run-log database")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show single run detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of tables")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/runlog.db [--last N] [--run id] [--json]")
		os.Exit(2)
	}

	store, err := runlog.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *runID != "" {
		err = runDetailMode(store, *runID, *jsonOut)
	} else {
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID           string  `json:"run_id"`
	Policy          string  `json:"policy"`
	WindIntensity   float64 `json:"wind_intensity"`
	InitialAltitude int     `json:"initial_altitude"`
	StartedAt       string  `json:"started_at"`
	Ticks           int     `json:"ticks"`
	StabilityRate   float64 `json:"stability_rate"`
	PlannerTicks    int     `json:"planner_ticks"`
}

func runListMode(store *runlog.Store, last int, jsonOut bool) error {
	runs, err := store.ListRuns(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	// Store returns newest first; reverse for chronological order.
	rows := make([]listRow, len(runs))
	for i, r := range runs {
		sum, err := store.RunSummary(r.RunID)
		if err != nil {
			return err
		}
		rows[len(runs)-1-i] = listRow{
			RunID:           r.RunID,
			Policy:          r.Policy,
			WindIntensity:   r.WindIntensity,
			InitialAltitude: r.InitialAltitude,
			StartedAt:       r.StartedAt.Format("2006-01-02T15:04:05Z"),
			Ticks:           sum.Ticks,
			StabilityRate:   sum.StabilityRate,
			PlannerTicks:    sum.PlannerTicks,
		}
	}

	if jsonOut {
		return printJSON(rows)
	}
	return printListTable(rows)
}

func printListTable(rows []listRow) error {
	fmt.Printf("%-10s  %-10s  %6s  %4s  %6s  %7s  %7s  %s\n",
		"Run", "Policy", "Wind", "Alt0", "Ticks", "Stable", "Planner", "Started")
	fmt.Printf("%-10s+-%-10s+-%6s+-%4s+-%6s+-%7s+-%7s+-%s\n",
		"----------", "----------", "------", "----", "------", "-------", "-------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-10s  %-10s  %6.2f  %4d  %6d  %6.0f%%  %7d  %s\n",
			shortID(r.RunID), r.Policy, r.WindIntensity, r.InitialAltitude,
			r.Ticks, r.StabilityRate*100, r.PlannerTicks, r.StartedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	RunID           string              `json:"run_id"`
	Policy          string              `json:"policy"`
	WindIntensity   float64             `json:"wind_intensity"`
	InitialAltitude int                 `json:"initial_altitude"`
	StartedAt       string              `json:"started_at"`
	Ticks           []runlog.TickRow    `json:"ticks"`
	Summary         runlog.Summary      `json:"summary"`
	PolicyStats     []runlog.PolicyStat `json:"policy_stats"`
}

func runDetailMode(store *runlog.Store, runID string, jsonOut bool) error {
	run, err := store.Run(runID)
	if err != nil {
		return err
	}
	ticks, err := store.Ticks(runID)
	if err != nil {
		return err
	}
	sum, err := store.RunSummary(runID)
	if err != nil {
		return err
	}
	stats, err := store.PolicyStats(runID)
	if err != nil {
		return err
	}

	out := detailOutput{
		RunID:           run.RunID,
		Policy:          run.Policy,
		WindIntensity:   run.WindIntensity,
		InitialAltitude: run.InitialAltitude,
		StartedAt:       run.StartedAt.Format("2006-01-02T15:04:05Z"),
		Ticks:           ticks,
		Summary:         sum,
		PolicyStats:     stats,
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Run:       %s\n", out.RunID)
	fmt.Printf("Policy:    %s\n", out.Policy)
	fmt.Printf("Wind:      %.2f\n", out.WindIntensity)
	fmt.Printf("Altitude:  %d (initial)\n", out.InitialAltitude)
	fmt.Printf("Started:   %s\n", out.StartedAt)

	fmt.Printf("\n%-5s  %5s  %6s  %-8s  %-10s  %4s  %-8s  %s\n",
		"Tick", "Wind", "Action", "Source", "Policy", "Alt", "Zone", "Why")
	fmt.Printf("%-5s+-%5s+-%6s+-%-8s+-%-10s+-%4s+-%-8s+-%s\n",
		"-----", "-----", "------", "--------", "----------", "----", "--------", "-----")
	for _, t := range ticks {
		fmt.Printf("%-5d  %+5d  %+6d  %-8s  %-10s  %4d  %-8s  %s\n",
			t.Tick, t.Disturbance, t.Action, t.Source, t.Policy, t.Altitude, zoneLabel(t), t.Explanation)
	}

	fmt.Printf("\nSummary: %d ticks, %d stable (%.0f%%), %d critical, %d planner rescues\n",
		sum.Ticks, sum.StableTicks, sum.StabilityRate*100, sum.CriticalTicks, sum.PlannerTicks)

	if len(stats) > 0 {
		fmt.Printf("\nPolicy stats (planner ticks excluded):\n")
		for _, st := range stats {
			fmt.Printf("  %-12s %4d ticks, %4d stable (%.0f%%)\n",
				st.Policy, st.Ticks, st.StableTicks, st.StableRate*100)
		}
	}

	return nil
}

// #endregion detail-mode

// #region output

func zoneLabel(t runlog.TickRow) string {
	switch {
	case t.Critical:
		return "CRITICAL"
	case !t.Stable:
		return "unstable"
	default:
		return "safe"
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
