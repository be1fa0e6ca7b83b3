/*
   Copyright 2020 Joseph Cumines

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package yappla

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxIterations bounds the main search loop (spec §4.6).
const DefaultMaxIterations = 10000

// Planner runs uniform-cost forward search over the state space defined by a
// Domain (spec §4.6). A Planner is reusable across multiple Plan calls
// against different domains/initial states/goals; each call owns its own
// open set, closed set, and back-pointer table for the duration of the call
// (spec §5) — nothing is shared across concurrent Plan invocations on the
// same Planner.
type Planner struct {
	domain        *Domain
	logger        hclog.Logger
	tracer        trace.Tracer
	maxIterations int
}

// NewPlanner constructs a Planner with the given options applied over the
// defaults: a null logger, the global no-op tracer, and
// DefaultMaxIterations.
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{
		logger:        hclog.NewNullLogger(),
		tracer:        otel.Tracer("github.com/yappla/yappla"),
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetDomain sets the domain of actions the planner searches over.
func (p *Planner) SetDomain(domain *Domain) { p.domain = domain }

// Domain returns the planner's current domain.
func (p *Planner) Domain() *Domain { return p.domain }

type backPointer struct {
	prev     State
	hasPrev  bool
	action   string
	hasState bool
}

// Plan runs uniform-cost search from initial to a state satisfying goal,
// using the planner's current domain (spec §4.6). goal is compiled once at
// the start of the call; a syntax error in goal is fatal and returned
// immediately as *InvalidExpression, never inside a PlannerResult. Action
// preconditions are already compiled by NewAction, so Plan reports no
// precondition syntax errors.
//
// If ctx is cancelled mid-search, Plan returns outcome Failure with the
// statistics accumulated so far rather than a partial plan (spec §5);
// passing context.Background() disables this and leaves MaxIterations as the
// only bound.
func (p *Planner) Plan(ctx context.Context, initial State, goal string) (*PlannerResult, error) {
	goalExpr, err := Compile(goal)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx, span := p.tracer.Start(ctx, "Plan", trace.WithAttributes(attribute.String("yappla.run_id", runID)))
	defer span.End()

	logger := p.logger.With("run_id", runID)
	logger.Debug("planning from state", "state", initial.PrettyString(), "goal", goal)

	start := time.Now()

	open := newStateQueue()
	closed := map[string]State{}
	back := map[string]backPointer{}

	initialKey := initial.key()
	open.push(initial, 0)
	back[initialKey] = backPointer{hasState: true}

	iterations := 0
	var (
		result   *PlannerResult
		abortErr error
	)

	for iterations < p.maxIterations {
		if err := ctx.Err(); err != nil {
			logger.Warn("plan cancelled", "iterations", iterations)
			result = &PlannerResult{
				Outcome: Failure,
				Stats:   Stats{TimeSeconds: time.Since(start).Seconds(), Iterations: iterations, RunID: runID},
			}
			break
		}

		if open.empty() {
			break
		}
		state, cost := open.pop()
		closed[state.key()] = state
		iterations++

		logger.Trace("expanding state", "state", state.PrettyString(), "cost", cost)

		goalReached, err := goalExpr.EvalBool(state)
		if err != nil {
			logger.Warn("aborting search: unbound variable", "error", err.Error(), "iterations", iterations)
			result = &PlannerResult{
				Outcome: Failure,
				Stats:   Stats{TimeSeconds: time.Since(start).Seconds(), Iterations: iterations, RunID: runID},
			}
			break
		}
		if goalReached {
			plan := reconstructPlan(back, state)
			outcome := Success
			if len(plan) == 1 {
				outcome = AlreadyAtGoal
			}
			logger.Debug("plan found", "outcome", outcome.String(), "steps", len(plan), "iterations", iterations)
			result = &PlannerResult{
				Outcome: outcome,
				Plan:    plan,
				Stats:   Stats{TimeSeconds: time.Since(start).Seconds(), Iterations: iterations, RunID: runID},
			}
			break
		}

		if p.domain != nil {
			for _, action := range p.domain.Actions() {
				applicable, err := action.Applicable(state)
				if err != nil {
					logger.Warn("aborting search: unbound variable in precondition", "action", action.Name, "error", err.Error())
					abortErr = err
					break
				}
				if !applicable {
					continue
				}
				for _, successor := range action.PossibleOutcomes(state) {
					succKey := successor.key()
					if _, ok := closed[succKey]; ok {
						continue
					}
					newCost := cost + action.Cost
					if open.contains(successor) {
						oldCost := open.value(successor)
						if newCost < oldCost {
							logger.Trace("decrease-key", "diff", Diff(state, successor), "old_cost", oldCost, "new_cost", newCost)
							open.update(successor, newCost)
							back[succKey] = backPointer{prev: state, hasPrev: true, action: action.Name, hasState: true}
						}
					} else {
						open.push(successor, newCost)
						back[succKey] = backPointer{prev: state, hasPrev: true, action: action.Name, hasState: true}
					}
				}
			}
		}
		if abortErr != nil {
			result = &PlannerResult{
				Outcome: Failure,
				Stats:   Stats{TimeSeconds: time.Since(start).Seconds(), Iterations: iterations, RunID: runID},
			}
			break
		}
	}

	if result == nil {
		logger.Debug("plan exhausted without reaching goal", "iterations", iterations)
		result = &PlannerResult{
			Outcome: Failure,
			Stats:   Stats{TimeSeconds: time.Since(start).Seconds(), Iterations: iterations, RunID: runID},
		}
	}

	span.SetAttributes(
		attribute.String("yappla.outcome", result.Outcome.String()),
		attribute.Int("yappla.iterations", result.Stats.Iterations),
	)
	return result, nil
}

// reconstructPlan walks the back-pointer table from goalState to the
// initial state (identified by the entry with hasPrev == false), appending
// each predecessor step, then reverses to produce a forward plan whose first
// entry is (initialState, "") (spec §4.6 step 6).
func reconstructPlan(back map[string]backPointer, goalState State) []PlanStep {
	var steps []PlanStep
	state := goalState
	steps = append(steps, PlanStep{State: state})
	for {
		bp, ok := back[state.key()]
		if !ok || !bp.hasPrev {
			break
		}
		steps[len(steps)-1].Action = bp.action
		steps = append(steps, PlanStep{State: bp.prev})
		state = bp.prev
	}
	// reverse
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
