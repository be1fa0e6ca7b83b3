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
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// State is a name -> Value mapping: a complete assignment of the problem's
// state variables. States are immutable from the planner's perspective once
// submitted to Planner.Plan: successor states are always fresh copies (spec
// §3 State).
type State struct {
	vars map[string]Value
}

// NewState constructs a State from a name->Value map. The map is copied; the
// caller may reuse or mutate it afterwards without affecting the State.
func NewState(vars map[string]Value) State {
	cp := make(map[string]Value, len(vars))
	for k, v := range vars {
		cp[k] = v
	}
	return State{vars: cp}
}

func (s State) get(name string) (Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Get returns the value bound to name, and whether it was present.
func (s State) Get(name string) (Value, bool) { return s.get(name) }

// Len returns the number of variables in the state.
func (s State) Len() int { return len(s.vars) }

// Names returns the variable names of the state, sorted for determinism.
func (s State) Names() []string {
	names := make([]string, 0, len(s.vars))
	for k := range s.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// With returns a fresh State equal to s with overrides applied on top. s
// itself is not mutated. This is how Action.PossibleOutcomes derives
// successor states from effect maps.
func (s State) With(overrides map[string]Value) State {
	cp := make(map[string]Value, len(s.vars)+len(overrides))
	for k, v := range s.vars {
		cp[k] = v
	}
	for k, v := range overrides {
		cp[k] = v
	}
	return State{vars: cp}
}

// Equal reports whether s and o have identical key-value pairs (spec §3:
// "two states with identical key-value pairs are considered equal"). This,
// not the truncated Hash, is what the open/closed sets must use to avoid
// collision-driven incorrect pruning (spec §4.2).
func (s State) Equal(o State) bool {
	if len(s.vars) != len(o.vars) {
		return false
	}
	for k, v := range s.vars {
		ov, ok := o.vars[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// key returns a canonical string encoding of s suitable for use as a Go map
// key (full content, not the truncated display Hash) — used internally by
// the closed set and the priority queue's membership index.
func (s State) key() string {
	names := s.Names()
	var sb strings.Builder
	for _, n := range names {
		sb.WriteString(n)
		sb.WriteByte('=')
		sb.WriteString(s.vars[n].Kind().String())
		sb.WriteByte(':')
		sb.WriteString(s.vars[n].String())
		sb.WriteByte(';')
	}
	return sb.String()
}

// Hash returns a 6-hex-digit truncated content digest, stable under
// key-value reordering. It is acceptable for display and for bucketing in
// small problems, but must never be used for equality checks in the
// open/closed sets (spec §4.2) — use Equal for that.
func (s State) Hash() string {
	sum := md5.Sum([]byte(s.key()))
	full := hex.EncodeToString(sum[:])
	return full[len(full)-6:]
}

// PrettyString renders the state's variables, column-wrapped, for logging.
// Not required for correctness (spec §4.2).
func (s State) PrettyString() string {
	const cols = 200
	names := s.Names()
	var (
		lines   []string
		line    []string
		lineLen int
	)
	flush := func() {
		if len(line) > 0 {
			lines = append(lines, strings.Join(line, ", "))
			line = nil
			lineLen = 0
		}
	}
	for _, n := range names {
		v := s.vars[n]
		rec := fmt.Sprintf("%s:%s", n, v.String())
		if lineLen+len(rec)+2 > cols {
			flush()
		}
		line = append(line, rec)
		lineLen += len(rec) + 2
	}
	flush()
	return strings.Join(lines, "\n")
}

// Diff reports the variables that differ between a and b, as [a's value,
// b's value] pairs. For a variable present in only one of the two states,
// the missing side is the zero Value (which has KindBool and reads as
// False); no separate presence flag is kept. This mirrors the
// original engine's diff_dicts helper (yappla/utils.py) used for trace
// logging when a cheaper predecessor reopens a state.
func Diff(a, b State) map[string][2]Value {
	out := map[string][2]Value{}
	seen := map[string]struct{}{}
	for k, av := range a.vars {
		seen[k] = struct{}{}
		bv, ok := b.vars[k]
		if !ok || !av.Equal(bv) {
			out[k] = [2]Value{av, bv}
		}
	}
	for k, bv := range b.vars {
		if _, ok := seen[k]; ok {
			continue
		}
		out[k] = [2]Value{{}, bv}
	}
	return out
}

// Constraint is an inert data placeholder carried over from the original
// engine's constraints mechanism (yappla/state.py, yappla/planner.py). It was
// never wired into the search path there (the relevant code was always
// dead/commented out) and spec.md's design notes single it out as abandoned.
// Planner.Plan never evaluates Constraints; SatisfiesConstraints is exposed
// purely for embedders that want to check it themselves.
type Constraint struct {
	Conditions string
	Constraint string
}

// SatisfiesConstraints evaluates each constraint's activating Conditions
// against s and, where active, requires Constraint to hold. It is never
// called by Planner.Plan.
func (s State) SatisfiesConstraints(constraints []Constraint) (bool, error) {
	for _, c := range constraints {
		cond, err := Compile(c.Conditions)
		if err != nil {
			return false, err
		}
		active, err := cond.EvalBool(s)
		if err != nil {
			return false, err
		}
		if !active {
			continue
		}
		expr, err := Compile(c.Constraint)
		if err != nil {
			return false, err
		}
		ok, err := expr.EvalBool(s)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
