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
	"sort"

	multierror "github.com/hashicorp/go-multierror"
)

// Variable is a declared state variable: its name, allowed values, and
// initial value. This is construction-time metadata above the core search —
// Domain.InitialState derives a State from it, matching the original
// engine's StateVariable / Domain.get_initial_state (yappla/state_variable.py,
// yappla/domain.py).
type Variable struct {
	Name           string
	PossibleValues []Value
	InitialValue   *Value
}

// Domain is a registry of actions keyed by name, plus optionally declared
// Variables (spec §4.4). Action insertion order is tracked so domain
// iteration is deterministic across runs with identical input, which
// combined with the priority queue's FIFO tie-break gives reproducible plans
// (spec §4.6).
type Domain struct {
	actions   map[string]*Action
	order     []string
	variables map[string]Variable
	varOrder  []string
}

// NewDomain constructs an empty Domain.
func NewDomain() *Domain {
	return &Domain{
		actions:   map[string]*Action{},
		variables: map[string]Variable{},
	}
}

// AddAction registers action, overwriting any existing action with the same
// name. Overwriting an existing name keeps its original position in
// iteration order.
func (d *Domain) AddAction(action *Action) {
	if _, exists := d.actions[action.Name]; !exists {
		d.order = append(d.order, action.Name)
	}
	d.actions[action.Name] = action
}

// LoadActions compiles and registers each ActionSpec in order, the Go
// equivalent of the original engine's Domain.load_from_dict action loop
// (yappla/domain.py). It stops and returns the first compile error
// encountered; specs already registered before the failing one remain in
// the domain.
func (d *Domain) LoadActions(specs []ActionSpec) error {
	for _, spec := range specs {
		action, err := NewActionFromSpec(spec)
		if err != nil {
			return err
		}
		d.AddAction(action)
	}
	return nil
}

// Action looks up an action by name, returning nil if absent.
func (d *Domain) Action(name string) *Action { return d.actions[name] }

// Actions returns the domain's actions in deterministic (insertion) order.
func (d *Domain) Actions() []*Action {
	out := make([]*Action, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.actions[name])
	}
	return out
}

// AddVariable registers a declared state variable, overwriting any existing
// declaration with the same name.
func (d *Domain) AddVariable(v Variable) {
	if _, exists := d.variables[v.Name]; !exists {
		d.varOrder = append(d.varOrder, v.Name)
	}
	d.variables[v.Name] = v
}

// Variable looks up a declared variable by name.
func (d *Domain) Variable(name string) (Variable, bool) {
	v, ok := d.variables[name]
	return v, ok
}

// Variables returns the domain's declared variables in deterministic
// (insertion) order.
func (d *Domain) Variables() []Variable {
	out := make([]Variable, 0, len(d.varOrder))
	for _, name := range d.varOrder {
		out = append(out, d.variables[name])
	}
	return out
}

// InitialState builds the initial state from the domain's declared
// variables, using each Variable's InitialValue or, if unset, the Unknown
// sentinel — the Go equivalent of the original engine's
// Domain.get_initial_state, which fills unset variables with "UNK".
func (d *Domain) InitialState() State {
	vars := make(map[string]Value, len(d.varOrder))
	for _, name := range d.varOrder {
		v := d.variables[name]
		if v.InitialValue != nil {
			vars[name] = *v.InitialValue
		} else {
			vars[name] = Unknown
		}
	}
	return NewState(vars)
}

// Validate checks every registered action's structural invariants: a
// non-empty name, a non-empty effects list (spec §3 Action invariant — an
// action with no effect is a no-op that would cause revisit loops), and a
// non-negative cost. All violations across the domain are collected and
// returned together via hashicorp/go-multierror, rather than failing fast
// on the first bad action, so a caller fixing a domain definition sees every
// problem in one pass.
func (d *Domain) Validate() error {
	var result *multierror.Error
	names := make([]string, 0, len(d.actions))
	for name := range d.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		action := d.actions[name]
		if action.Name == "" {
			result = multierror.Append(result, &invalidActionError{name: name, reason: "action has an empty name"})
			continue
		}
		if len(action.effects) == 0 {
			result = multierror.Append(result, &invalidActionError{name: name, reason: "action has no effects and would cause revisit loops"})
		}
		if action.Cost < 0 {
			result = multierror.Append(result, &invalidActionError{name: name, reason: "action has a negative cost"})
		}
	}
	return result.ErrorOrNil()
}

type invalidActionError struct {
	name   string
	reason string
}

func (e *invalidActionError) Error() string {
	return "yappla: action " + e.name + ": " + e.reason
}
