// Package runlog is the write-only diagnostics store for simulation runs.
// Tick outcomes and run metadata land in SQLite (in-memory by default) for
// offline inspection; nothing here is ever read back into simulation state.
package runlog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/control"
)

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id            TEXT PRIMARY KEY,
	policy            TEXT NOT NULL,
	wind_intensity    REAL NOT NULL,
	initial_altitude  INTEGER NOT NULL,
	started_at        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tick_log (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       TEXT NOT NULL,
	tick         INTEGER NOT NULL,
	disturbance  INTEGER NOT NULL,
	action       INTEGER NOT NULL,
	source       TEXT NOT NULL,
	policy       TEXT NOT NULL,
	altitude     INTEGER NOT NULL,
	stable       INTEGER NOT NULL DEFAULT 0,
	critical     INTEGER NOT NULL DEFAULT 0,
	explanation  TEXT,
	created_at   TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE INDEX IF NOT EXISTS idx_tick_log_run ON tick_log(run_id, tick);
`

// #endregion schema

// #region store

// MemoryDSN opens a private in-memory database, the default for library use:
// diagnostics live exactly as long as the process.
const MemoryDSN = ":memory:"

// Store records runs and ticks in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a run-log database and runs migrations. Pass
// MemoryDSN for an in-memory log.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open runlog: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate runlog: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for ad-hoc inspection queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store

// #region recorder

// BeginRun inserts the run row. Implements control.Recorder.
func (s *Store) BeginRun(meta control.RunMeta) error {
	startedAt := meta.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, policy, wind_intensity, initial_altitude, started_at)
		 VALUES (?, ?, ?, ?, ?)`,
		meta.RunID, meta.Policy, meta.WindIntensity, meta.InitialAltitude,
		startedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordTick appends one tick outcome. Implements control.Recorder.
func (s *Store) RecordTick(runID string, out control.TickOutcome) error {
	_, err := s.db.Exec(
		`INSERT INTO tick_log
		 (run_id, tick, disturbance, action, source, policy, altitude, stable, critical, explanation, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, out.Tick, out.Disturbance, out.Action, string(out.Source),
		out.PolicyName, out.Altitude, boolInt(out.Stable), boolInt(out.Critical),
		nullIfEmpty(out.Explanation), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert tick: %w", err)
	}
	return nil
}

// #endregion recorder

// #region queries

// Summary aggregates one run's tick log.
type Summary struct {
	RunID         string
	Ticks         int
	StableTicks   int
	CriticalTicks int
	PlannerTicks  int
	StabilityRate float64
}

// RunSummary computes aggregate stats for a run. A run with no ticks yields
// a zero summary, not an error.
func (s *Store) RunSummary(runID string) (Summary, error) {
	row := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(stable), 0),
		        COALESCE(SUM(critical), 0),
		        COALESCE(SUM(CASE WHEN source = 'planner' THEN 1 ELSE 0 END), 0)
		 FROM tick_log WHERE run_id = ?`, runID,
	)
	sum := Summary{RunID: runID}
	if err := row.Scan(&sum.Ticks, &sum.StableTicks, &sum.CriticalTicks, &sum.PlannerTicks); err != nil {
		return Summary{}, fmt.Errorf("summarize run %s: %w", runID, err)
	}
	if sum.Ticks > 0 {
		sum.StabilityRate = float64(sum.StableTicks) / float64(sum.Ticks)
	}
	return sum, nil
}

// PolicyStat aggregates decide-source ticks per policy across a run.
type PolicyStat struct {
	Policy      string
	Ticks       int
	StableTicks int
	StableRate  float64
}

// PolicyStats returns per-policy aggregates for a run, ordered by policy
// name. Planner-sourced ticks are excluded: they measure the planner, not
// the policy.
func (s *Store) PolicyStats(runID string) ([]PolicyStat, error) {
	rows, err := s.db.Query(
		`SELECT policy, COUNT(*), COALESCE(SUM(stable), 0)
		 FROM tick_log
		 WHERE run_id = ? AND source = 'policy'
		 GROUP BY policy ORDER BY policy`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("policy stats: %w", err)
	}
	defer rows.Close()

	var stats []PolicyStat
	for rows.Next() {
		var st PolicyStat
		if err := rows.Scan(&st.Policy, &st.Ticks, &st.StableTicks); err != nil {
			return nil, fmt.Errorf("scan policy stat: %w", err)
		}
		if st.Ticks > 0 {
			st.StableRate = float64(st.StableTicks) / float64(st.Ticks)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// RunRow is one row of the runs table.
type RunRow struct {
	RunID           string
	Policy          string
	WindIntensity   float64
	InitialAltitude int
	StartedAt       time.Time
}

// Run fetches a single run row by ID.
func (s *Store) Run(runID string) (RunRow, error) {
	var r RunRow
	var startedStr string
	err := s.db.QueryRow(
		`SELECT run_id, policy, wind_intensity, initial_altitude, started_at
		 FROM runs WHERE run_id = ?`, runID,
	).Scan(&r.RunID, &r.Policy, &r.WindIntensity, &r.InitialAltitude, &startedStr)
	if err != nil {
		return RunRow{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	r.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
	return r, nil
}

// LatestRun returns the most recently started run.
func (s *Store) LatestRun() (RunRow, error) {
	runs, err := s.ListRuns(1)
	if err != nil {
		return RunRow{}, err
	}
	if len(runs) == 0 {
		return RunRow{}, fmt.Errorf("no runs recorded")
	}
	return runs[0], nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRow, error) {
	rows, err := s.db.Query(
		`SELECT run_id, policy, wind_intensity, initial_altitude, started_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRow
	for rows.Next() {
		var r RunRow
		var startedStr string
		if err := rows.Scan(&r.RunID, &r.Policy, &r.WindIntensity, &r.InitialAltitude, &startedStr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// TickRow is one row of the tick log, decoded for inspection.
type TickRow struct {
	Tick        int
	Disturbance int
	Action      int
	Source      string
	Policy      string
	Altitude    int
	Stable      bool
	Critical    bool
	Explanation string
}

// Ticks returns a run's tick log in tick order.
func (s *Store) Ticks(runID string) ([]TickRow, error) {
	rows, err := s.db.Query(
		`SELECT tick, disturbance, action, source, policy, altitude, stable, critical, explanation
		 FROM tick_log WHERE run_id = ? ORDER BY tick ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list ticks: %w", err)
	}
	defer rows.Close()

	var ticks []TickRow
	for rows.Next() {
		var t TickRow
		var stable, critical int
		var explanation sql.NullString
		if err := rows.Scan(&t.Tick, &t.Disturbance, &t.Action, &t.Source, &t.Policy,
			&t.Altitude, &stable, &critical, &explanation); err != nil {
			return nil, fmt.Errorf("scan tick: %w", err)
		}
		t.Stable = stable != 0
		t.Critical = critical != 0
		if explanation.Valid {
			t.Explanation = explanation.String
		}
		ticks = append(ticks, t)
	}
	return ticks, rows.Err()
}

// #endregion queries

// #region helpers

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
