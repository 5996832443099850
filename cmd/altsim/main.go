package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/control"
	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/envsim"
	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/runlog"
)

// #region main

func main() {
	ticks := flag.Int("ticks", 20, "number of simulation ticks to run")
	policyName := flag.String("policy", "reactive", "active policy: reactive | predictive")
	altitude := flag.Int("altitude", 5, "initial altitude (clamped into bounds)")
	intensity := flag.Float64("intensity", 1.0, "wind intensity in [0,1]; 0 = calm, 1 = uniform")
	seed := flag.Int64("seed", 0, "wind RNG seed; 0 = time-seeded")
	interval := flag.Duration("interval", 0, "pause between ticks (e.g. 250ms); 0 = run flat out")
	dbDSN := flag.String("db", envOr("ALTSIM_DB", runlog.MemoryDSN), "run-log DSN; default in-memory")
	flag.Parse()

	cfg := envsim.DefaultConfig()
	cfg.InitialAltitude = *altitude
	cfg.WindIntensity = *intensity
	cfg.Seed = *seed

	store, err := runlog.Open(*dbDSN)
	if err != nil {
		log.Fatalf("open run log: %v", err)
	}
	defer store.Close()

	ctrl := control.NewController(cfg, store)
	if err := ctrl.SwitchPolicy(*policyName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v (known: %v)\n", err, ctrl.PolicyNames())
		os.Exit(2)
	}

	fmt.Printf("Altitude-hold simulation | run %s\n", ctrl.RunID())
	fmt.Printf("  policy=%s altitude=%d intensity=%.2f ticks=%d\n",
		ctrl.ActivePolicy(), ctrl.Environment().Altitude(), *intensity, *ticks)
	printHeader()

	for i := 0; i < *ticks; i++ {
		out := ctrl.Step()
		printTick(out)
		if *interval > 0 {
			time.Sleep(*interval)
		}
	}

	sum, err := store.RunSummary(ctrl.RunID())
	if err != nil {
		log.Fatalf("summarize run: %v", err)
	}
	fmt.Printf("\nSummary: %d ticks, %d stable (%.0f%%), %d critical, %d planner rescues\n",
		sum.Ticks, sum.StableTicks, sum.StabilityRate*100, sum.CriticalTicks, sum.PlannerTicks)
}

// #endregion main

// #region output

func printHeader() {
	fmt.Printf("%-5s| %-5s| %-7s| %-8s| %-4s| %-9s| %s\n",
		"Tick", "Wind", "Action", "Source", "Alt", "Zone", "Why")
	fmt.Printf("%-5s+%-6s+%-8s+%-9s+%-5s+%-10s+%s\n",
		"-----", "------", "--------", "---------", "-----", "----------", "-----")
}

func printTick(out control.TickOutcome) {
	zone := "safe"
	switch {
	case out.Critical:
		zone = "CRITICAL"
	case !out.Stable:
		zone = "unstable"
	}
	fmt.Printf("%-5d| %+-5d| %+-7d| %-8s| %-4d| %-9s| %s\n",
		out.Tick, out.Disturbance, out.Action, out.Source, out.Altitude, zone, out.Explanation)
}

// #endregion output

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
