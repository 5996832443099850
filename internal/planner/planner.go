// Package planner computes minimum-cost recovery routes back into the safe
// band. It is invoked when the environment goes critical and pre-empts the
// active policy for that tick.
package planner

import (
	"container/heap"
	"fmt"
	"math"
	"strings"

	"github.com/danielpatrickdp/altitude-hold/go-sim/internal/envsim"
)

// #region result

// CostUnreachable is the sentinel total cost for the (configurationally
// impossible) case where the search exhausts its frontier without reaching
// the safe band. Callers detect "no improvement possible" by comparison,
// never by catching an error.
const CostUnreachable = math.MaxInt

// Result is the outcome of one FindPath call.
type Result struct {
	Path          []int // altitude sequence from start to goal, inclusive
	Actions       []int // actions along the path, one shorter than Path
	TotalCost     int
	NodesExplored int
}

// #endregion result

// #region search-node

// node is one entry in the per-call search arena. Predecessors are arena
// indices, not pointers; the whole arena dies with the call.
type node struct {
	altitude    int
	costSoFar   int
	heuristic   int
	predecessor int // arena index, -1 for the root
	action      int // action taken to reach this node from its predecessor
}

// frontier is a min-heap of arena indices ordered by totalCost with
// insertion order as the deterministic tie-break.
type frontier struct {
	arena   *[]node
	indices []int
}

func (f *frontier) Len() int { return len(f.indices) }

func (f *frontier) Less(i, j int) bool {
	a := (*f.arena)[f.indices[i]]
	b := (*f.arena)[f.indices[j]]
	ta := a.costSoFar + a.heuristic
	tb := b.costSoFar + b.heuristic
	if ta != tb {
		return ta < tb
	}
	return f.indices[i] < f.indices[j]
}

func (f *frontier) Swap(i, j int) {
	f.indices[i], f.indices[j] = f.indices[j], f.indices[i]
}

func (f *frontier) Push(x any) {
	f.indices = append(f.indices, x.(int))
}

func (f *frontier) Pop() any {
	last := len(f.indices) - 1
	idx := f.indices[last]
	f.indices = f.indices[:last]
	return idx
}

// #endregion search-node

// #region planner

// RecoveryPlanner is a pure function of a query altitude and the static
// bounds/band captured at construction. No state survives a FindPath call.
type RecoveryPlanner struct {
	bounds envsim.Bounds
	band   envsim.Band
}

// New creates a planner over the given bounds and safe band.
func New(bounds envsim.Bounds, band envsim.Band) *RecoveryPlanner {
	return &RecoveryPlanner{bounds: bounds, band: band}
}

// heuristicFor returns the admissible distance-to-band estimate: 0 inside
// the band, linear distance outside. Each unit action changes altitude by at
// most 1, so the estimate is also consistent.
func (p *RecoveryPlanner) heuristicFor(altitude int) int {
	switch {
	case altitude < p.band.Low:
		return p.band.Low - altitude
	case altitude > p.band.High:
		return altitude - p.band.High
	default:
		return 0
	}
}

// FindPath runs a best-first search from startAltitude to any altitude
// inside the safe band. Non-zero actions cost 1, the no-op neighbor costs 0;
// altitude is the full search state, so the closed set is keyed by altitude
// and no altitude is reopened once settled.
func (p *RecoveryPlanner) FindPath(startAltitude int) Result {
	start := p.bounds.Clamp(startAltitude)

	arena := []node{{
		altitude:    start,
		costSoFar:   0,
		heuristic:   p.heuristicFor(start),
		predecessor: -1,
	}}
	open := &frontier{arena: &arena}
	heap.Init(open)
	heap.Push(open, 0)

	closed := make(map[int]bool)
	explored := 0

	for open.Len() > 0 {
		idx := heap.Pop(open).(int)
		cur := arena[idx]
		if closed[cur.altitude] {
			continue
		}
		closed[cur.altitude] = true
		explored++

		if p.band.Contains(cur.altitude) {
			path, actions := reconstruct(arena, idx)
			return Result{
				Path:          path,
				Actions:       actions,
				TotalCost:     cur.costSoFar,
				NodesExplored: explored,
			}
		}

		for _, action := range []int{-1, 0, 1} {
			next := p.bounds.Clamp(cur.altitude + action)
			if closed[next] {
				continue
			}
			cost := cur.costSoFar
			if action != 0 {
				cost++
			}
			arena = append(arena, node{
				altitude:    next,
				costSoFar:   cost,
				heuristic:   p.heuristicFor(next),
				predecessor: idx,
				action:      action,
			})
			heap.Push(open, len(arena)-1)
		}
	}

	// Unreachable with a band inside the bounds; defended against anyway.
	return Result{
		Path:          []int{start},
		Actions:       []int{},
		TotalCost:     CostUnreachable,
		NodesExplored: explored,
	}
}

// NextAction returns the first action of the computed plan, 0 when the
// altitude is already inside the band or no plan exists.
func (p *RecoveryPlanner) NextAction(altitude int) int {
	res := p.FindPath(altitude)
	if len(res.Actions) == 0 {
		return 0
	}
	return res.Actions[0]
}

// ExplainPath renders the planned altitude route and the exploration count.
func (p *RecoveryPlanner) ExplainPath(altitude int) string {
	res := p.FindPath(altitude)
	if res.TotalCost == CostUnreachable {
		return fmt.Sprintf("no recovery route from altitude %d (%d nodes explored)", altitude, res.NodesExplored)
	}
	steps := make([]string, len(res.Path))
	for i, a := range res.Path {
		steps[i] = fmt.Sprintf("%d", a)
	}
	return fmt.Sprintf("recovery route %s, cost %d, %d nodes explored",
		strings.Join(steps, " -> "), res.TotalCost, res.NodesExplored)
}

// #endregion planner

// #region reconstruct

// reconstruct walks predecessor links from the goal back to the root.
func reconstruct(arena []node, goal int) (path []int, actions []int) {
	for idx := goal; idx != -1; idx = arena[idx].predecessor {
		path = append(path, arena[idx].altitude)
		if arena[idx].predecessor != -1 {
			actions = append(actions, arena[idx].action)
		}
	}
	reverse(path)
	reverse(actions)
	if actions == nil {
		actions = []int{}
	}
	return path, actions
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// #endregion reconstruct
