package control

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/envsim"
	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/planner"
	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/policy"
)

// #region recorder

// RunMeta describes a run for the diagnostics log.
type RunMeta struct {
	RunID           string
	Policy          string
	WindIntensity   float64
	InitialAltitude int
	StartedAt       time.Time
}

// Recorder abstracts the diagnostics run log so the controller can be used
// without one and tested without SQLite. Recording is write-only: nothing
// recorded is ever read back into simulation state.
type Recorder interface {
	BeginRun(meta RunMeta) error
	RecordTick(runID string, out TickOutcome) error
}

// #endregion recorder

// #region controller

// Controller owns the environment, both registered policies, and the
// recovery planner for one run. Ownership is single-threaded and
// cooperative: at most one step (or reset, a tick-equivalent operation) is
// in flight at a time, paced by the caller.
type Controller struct {
	config   envsim.Config
	env      *envsim.Environment
	policies map[string]policy.Policy
	active   string
	recovery *planner.RecoveryPlanner
	recorder Recorder // nil = no diagnostics
	runID    string
	tick     int
}

// NewController wires a controller from config. recorder may be nil.
func NewController(cfg envsim.Config, recorder Recorder) *Controller {
	return newController(cfg, envsim.New(cfg), recorder)
}

// NewControllerWithWind wires a controller around an injected wind source,
// used by the replay harness and tests.
func NewControllerWithWind(cfg envsim.Config, wind envsim.WindSource, recorder Recorder) *Controller {
	return newController(cfg, envsim.NewWithWind(cfg, wind), recorder)
}

func newController(cfg envsim.Config, env *envsim.Environment, recorder Recorder) *Controller {
	reactive := policy.NewReactive(cfg.Band)
	predictive := policy.NewPredictive(cfg.Band)
	c := &Controller{
		config: cfg,
		env:    env,
		policies: map[string]policy.Policy{
			reactive.Name():   reactive,
			predictive.Name(): predictive,
		},
		active:   reactive.Name(),
		recovery: planner.New(cfg.Bounds, cfg.Band),
		recorder: recorder,
	}
	c.beginRun()
	return c
}

// beginRun allocates a fresh run ID and registers it with the recorder.
// Recording failures are logged, never fatal.
func (c *Controller) beginRun() {
	c.runID = uuid.New().String()
	c.tick = 0
	if c.recorder == nil {
		return
	}
	err := c.recorder.BeginRun(RunMeta{
		RunID:           c.runID,
		Policy:          c.active,
		WindIntensity:   c.config.WindIntensity,
		InitialAltitude: c.env.Altitude(),
		StartedAt:       time.Now().UTC(),
	})
	if err != nil {
		log.Printf("[CTRL] begin run record failed: %v", err)
	}
}

// Step executes one tick against the active policy and records the outcome.
func (c *Controller) Step() TickOutcome {
	c.tick++
	out := Step(c.tick, c.env, c.policies[c.active], c.recovery)
	if c.recorder != nil {
		if err := c.recorder.RecordTick(c.runID, out); err != nil {
			log.Printf("[CTRL] tick record failed: %v", err)
		}
	}
	return out
}

// SwitchPolicy changes the active policy by name.
func (c *Controller) SwitchPolicy(name string) error {
	if _, ok := c.policies[name]; !ok {
		return fmt.Errorf("unknown policy %q", name)
	}
	c.active = name
	return nil
}

// Reset starts a new run: the environment resets to the clamped initial
// altitude, both policies clear their state, and a fresh run ID is issued.
// Reset is tick-equivalent and must not interleave with Step.
func (c *Controller) Reset(initial int) {
	c.env.Reset(initial)
	for _, p := range c.policies {
		p.Reset()
	}
	c.beginRun()
}

// #endregion controller

// #region accessors

// ActivePolicy returns the name of the policy currently dispatched.
func (c *Controller) ActivePolicy() string {
	return c.active
}

// PolicyNames returns the registered policy names.
func (c *Controller) PolicyNames() []string {
	names := make([]string, 0, len(c.policies))
	for name := range c.policies {
		names = append(names, name)
	}
	return names
}

// RunID returns the identifier of the current run.
func (c *Controller) RunID() string {
	return c.runID
}

// Tick returns the number of steps executed in the current run.
func (c *Controller) Tick() int {
	return c.tick
}

// Environment exposes the environment for queries (altitude, history,
// classification). Mutations belong to Step and Reset.
func (c *Controller) Environment() *envsim.Environment {
	return c.env
}

// Planner exposes the recovery planner for diagnostics queries.
func (c *Controller) Planner() *planner.RecoveryPlanner {
	return c.recovery
}

// #endregion accessors
