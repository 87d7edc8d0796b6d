package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/danieljhkim/gridnav/internal/clock"
	"github.com/danieljhkim/gridnav/internal/graph"
	"github.com/danieljhkim/gridnav/internal/grid"
	"github.com/danieljhkim/gridnav/internal/motion"
	"github.com/danieljhkim/gridnav/internal/solver"
)

// Navigate drives the agent from req.Start to req.Goal, replanning around
// every obstruction the sensor reports.
//
// The caller's grid is never mutated. On failure the returned result still
// records every completed cycle and the error is wrapped so errors.Is matches
// the solver, motion and engine sentinels.
func (e *Engine) Navigate(ctx context.Context, req *NavigateRequest) (*NavigateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g := req.Grid.Clone()
	res := &NavigateResult{
		RunID:        e.newID(),
		Strategy:     e.strategy,
		Start:        req.Start,
		Goal:         req.Goal,
		Heading:      req.Heading,
		Reached:      req.Start,
		FinalHeading: req.Heading,
		Blocked:      []grid.Cell{},
		Cycles:       []Cycle{},
		StartedAt:    e.clock.Now(),
	}
	log := e.logger.With().Str("run_id", res.RunID).Logger()
	log.Info().
		Stringer("start", req.Start).
		Stringer("goal", req.Goal).
		Stringer("heading", req.Heading).
		Str("strategy", string(e.strategy)).
		Msg("navigation started")

	translator := e.translator()
	start, heading := req.Start, req.Heading

	for index := 0; ; index++ {
		if e.maxReplans > 0 && index > e.maxReplans {
			return e.finish(res, g, fmt.Errorf("%w: %d replans from %s", ErrReplanLimit, e.maxReplans, start))
		}
		if err := ctx.Err(); err != nil {
			return e.finish(res, g, err)
		}

		began := e.clock.Now()
		cycle := Cycle{
			Index:           index,
			Start:           start,
			Heading:         heading,
			GridFingerprint: e.hasher.HashGrid(g),
			ObstructedAt:    -1,
		}

		plan, err := solver.Solve(e.strategy, graph.Build(g), start, req.Goal)
		if err != nil {
			e.metrics.RecordPlan(string(e.strategy), planLabel(err), 0)
			log.Warn().Err(err).Int("cycle", index).Stringer("from", start).Msg("planning failed")
			return e.finish(res, g, fmt.Errorf("cycle %d: failed to plan from %s: %w", index, start, err))
		}
		e.metrics.RecordPlan(string(e.strategy), "ok", plan.Cost)
		if index > 0 {
			e.metrics.RecordReplan()
		}
		cycle.Path = plan.Path
		cycle.Cost = plan.Cost
		log.Info().
			Int("cycle", index).
			Stringer("from", start).
			Int("cells", len(plan.Path)).
			Int("cost", plan.Cost).
			Str("grid", cycle.GridFingerprint).
			Msg("path planned")

		tr, travErr := translator.Traverse(ctx, plan.Path, heading)
		cycle.Outcome = tr.Outcome
		cycle.Commands = tr.Commands
		cycle.Moves = tr.Moves
		cycle.Traveled = entered(g, plan.Path, tr.Moves)
		for cmd, n := range motion.CountCommands(tr.Commands) {
			e.metrics.RecordCommands(string(cmd), n)
		}

		res.Reached, res.FinalHeading = tr.Reached, tr.Heading
		res.TotalCommands += len(tr.Commands)
		res.Traveled += cycle.Traveled

		if travErr != nil {
			cycle.Duration = clock.Since(e.clock, began)
			res.Cycles = append(res.Cycles, cycle)
			log.Error().Err(travErr).Int("cycle", index).Stringer("at", tr.Reached).Msg("traversal failed")
			return e.finish(res, g, fmt.Errorf("cycle %d: failed to traverse: %w", index, travErr))
		}

		if tr.Outcome != motion.OutcomeObstructed {
			cycle.Duration = clock.Since(e.clock, began)
			res.Cycles = append(res.Cycles, cycle)
			return e.finish(res, g, nil)
		}

		blocked := plan.Path[tr.Index+1]
		if _, err := g.MarkBarrier(blocked); err != nil {
			cycle.Duration = clock.Since(e.clock, began)
			res.Cycles = append(res.Cycles, cycle)
			return e.finish(res, g, fmt.Errorf("cycle %d: failed to mark barrier: %w", index, err))
		}
		e.metrics.RecordObstruction()
		cycle.ObstructedAt = tr.Index
		cycle.Blocked = &blocked
		cycle.Duration = clock.Since(e.clock, began)
		res.Cycles = append(res.Cycles, cycle)
		res.Blocked = append(res.Blocked, blocked)

		log.Warn().
			Int("cycle", index).
			Stringer("at", plan.Path[tr.Index]).
			Stringer("blocked", blocked).
			Stringer("heading", tr.Heading).
			Msg("obstruction detected, replanning")

		start, heading = plan.Path[tr.Index], tr.Heading
	}
}

// finish stamps the result with its final state and returns err unchanged.
func (e *Engine) finish(res *NavigateResult, g *grid.Grid, err error) (*NavigateResult, error) {
	res.Status = statusFor(err)
	res.Grid = g.Values()
	res.FinishedAt = e.clock.Now()
	if err != nil {
		res.Error = err.Error()
	}

	ev := e.logger.Info()
	if err != nil {
		ev = e.logger.Warn().Err(err)
	}
	ev.Str("run_id", res.RunID).
		Str("status", string(res.Status)).
		Int("cycles", len(res.Cycles)).
		Int("commands", res.TotalCommands).
		Stringer("reached", res.Reached).
		Msg("navigation finished")
	return res, err
}

// entered sums the entry cost of the first moves cells after path[0].
func entered(g *grid.Grid, path []grid.Cell, moves int) int {
	total := 0
	for i := 1; i <= moves && i < len(path); i++ {
		v, err := g.Value(path[i])
		if err != nil {
			continue
		}
		total += v
	}
	return total
}

func planLabel(err error) string {
	switch {
	case errors.Is(err, solver.ErrNoPathFound):
		return "no_path"
	case errors.Is(err, solver.ErrInvalidEndpoint):
		return "invalid_endpoint"
	default:
		return "error"
	}
}
