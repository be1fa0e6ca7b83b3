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

// DefaultCost is the cost assigned to an Action when none is given
// explicitly, matching the original engine's default (yappla/action.py).
const DefaultCost = 10

// Action is a named transition: a compiled precondition, one or more effect
// maps (non-deterministic alternatives), and a cost (spec §4.3). Effects
// must be non-empty once the action participates in search — an action with
// no effect is a no-op and would cause revisit loops.
type Action struct {
	Name         string
	precondition *CompiledExpression
	effects      []map[string]Value
	Cost         int
}

// ActionSpec is the declarative form accepted by NewActionFromSpec:
// Preconditions is the (possibly empty) sublanguage expression of spec §4.1;
// Effects is a slice of name->Value maps, one per alternative outcome — a
// deterministic action has exactly one map, a non-deterministic action
// several (spec §6 Effect syntax).
type ActionSpec struct {
	Name          string
	Preconditions string
	Effects       []map[string]Value
	Cost          int
}

// NewActionFromSpec constructs an Action from its declarative form, the Go
// equivalent of the original engine's Action(**action_definition) unpacking
// in Domain.load_from_dict (yappla/domain.py).
func NewActionFromSpec(spec ActionSpec) (*Action, error) {
	return NewAction(spec.Name, spec.Preconditions, spec.Effects, spec.Cost)
}

// NewAction compiles preconditions and constructs an Action. An empty
// preconditions string means "always applicable". cost <= 0 defaults to
// DefaultCost. At least one effect map must be supplied.
func NewAction(name, preconditions string, effects []map[string]Value, cost int) (*Action, error) {
	compiled, err := Compile(preconditions)
	if err != nil {
		return nil, err
	}
	if cost <= 0 {
		cost = DefaultCost
	}
	return &Action{
		Name:         name,
		precondition: compiled,
		effects:      effects,
		Cost:         cost,
	}, nil
}

// Preconditions returns the source text of the action's precondition
// expression.
func (a *Action) Preconditions() string { return a.precondition.String() }

// Effects returns the action's effect maps, one per non-deterministic
// outcome, in declaration order.
func (a *Action) Effects() []map[string]Value { return a.effects }

// Applicable reports whether a can be applied in state, i.e. whether its
// precondition evaluates truthy against state. An empty precondition is
// always applicable.
func (a *Action) Applicable(state State) (bool, error) {
	return a.precondition.EvalBool(state)
}

// PossibleOutcomes returns, for each effect map, a fresh state equal to
// state with that effect map's overrides applied. The order of outcomes
// mirrors the declaration order of the action's effects. The search treats
// each element as a distinct successor (spec §4.3).
func (a *Action) PossibleOutcomes(state State) []State {
	outcomes := make([]State, 0, len(a.effects))
	for _, eff := range a.effects {
		outcomes = append(outcomes, state.With(eff))
	}
	return outcomes
}

// Apply is a convenience not used by the core search: it collapses
// PossibleOutcomes into a single State. With one outcome, that outcome is
// returned as-is. With several, variables that agree across all outcomes
// keep their common value, and variables that disagree take the Unknown
// sentinel (spec §4.3).
func (a *Action) Apply(state State) State {
	outcomes := a.PossibleOutcomes(state)
	if len(outcomes) == 1 {
		return outcomes[0]
	}
	merged := map[string]Value{}
	names := outcomes[0].Names()
	for _, name := range names {
		first, _ := outcomes[0].get(name)
		agree := true
		for _, o := range outcomes[1:] {
			v, ok := o.get(name)
			if !ok || !v.Equal(first) {
				agree = false
				break
			}
		}
		if agree {
			merged[name] = first
		} else {
			merged[name] = Unknown
		}
	}
	return state.With(merged)
}
