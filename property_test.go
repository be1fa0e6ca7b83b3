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
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestHashEqualityCoherenceProperty verifies spec §8: for all states s1, s2,
// s1 == s2 implies hash(s1) == hash(s2), regardless of the order in which
// the variables were inserted.
func TestHashEqualityCoherenceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("permuting key insertion order never changes content equality or hash", prop.ForAll(
		func(keys []string, values []string) bool {
			n := len(keys)
			if len(values) < n {
				n = len(values)
			}
			vars := make(map[string]Value, n)
			for i := 0; i < n; i++ {
				vars[keys[i]] = String(values[i])
			}
			a := NewState(vars)
			// rebuild via a fresh map with the same pairs, different construction order
			rebuilt := map[string]Value{}
			for k, v := range vars {
				rebuilt[k] = v
			}
			b := NewState(rebuilt)
			if !a.Equal(b) {
				return false
			}
			return a.Hash() == b.Hash()
		},
		gen.SliceOfN(5, gen.AlphaString()),
		gen.SliceOfN(5, gen.AlphaString()),
	))

	properties.Property("differing content never collides on Equal", prop.ForAll(
		func(v1, v2 string) bool {
			if v1 == v2 {
				return true
			}
			a := NewState(map[string]Value{"x": String(v1)})
			b := NewState(map[string]Value{"x": String(v2)})
			return !a.Equal(b)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// chainDomain builds a domain of n actions forming a single deterministic
// chain 0 -> 1 -> ... -> n, each with the given per-step cost, over variable
// "p". Used by the determinism and optimality properties below.
func chainDomain(t *testing.T, steps int, cost int) *Domain {
	t.Helper()
	d := NewDomain()
	for i := 0; i < steps; i++ {
		from := fmt.Sprintf("s%d", i)
		to := fmt.Sprintf("s%d", i+1)
		d.AddAction(mustAction(t, fmt.Sprintf("step%d", i), fmt.Sprintf(`p == '%s'`, from),
			[]map[string]Value{{"p": String(to)}}, cost))
	}
	return d
}

// TestPlanDeterminismProperty verifies spec §8: two invocations with
// identical domain, initial state, and goal produce identical plans.
func TestPlanDeterminismProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("repeated planning over the same chain domain is deterministic", prop.ForAll(
		func(steps, cost int) bool {
			goal := fmt.Sprintf(`p == 's%d'`, steps)
			run := func() *PlannerResult {
				p := NewPlanner()
				p.SetDomain(chainDomain(t, steps, cost))
				result, err := p.Plan(context.Background(), NewState(map[string]Value{"p": String("s0")}), goal)
				if err != nil {
					t.Fatal(err)
				}
				return result
			}
			r1, r2 := run(), run()
			if len(r1.Plan) != len(r2.Plan) {
				return false
			}
			for i := range r1.Plan {
				if !r1.Plan[i].State.Equal(r2.Plan[i].State) || r1.Plan[i].Action != r2.Plan[i].Action {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 6),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}

// TestPlanCostOptimalityProperty verifies spec §8: for a chain domain with
// uniform per-step cost, the returned plan's total cost equals steps*cost —
// the only possible plan, and therefore trivially the minimum-cost one; this
// also exercises the shortest-path-length property (plan length == steps+1)
// under unit and non-unit costs alike.
func TestPlanCostOptimalityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("plan length and total cost match the chain's single path", prop.ForAll(
		func(steps, cost int) bool {
			d := chainDomain(t, steps, cost)
			p := NewPlanner()
			p.SetDomain(d)
			goal := fmt.Sprintf(`p == 's%d'`, steps)
			result, err := p.Plan(context.Background(), NewState(map[string]Value{"p": String("s0")}), goal)
			if err != nil {
				t.Fatal(err)
			}
			if result.Outcome != Success && result.Outcome != AlreadyAtGoal {
				return false
			}
			if len(result.Plan) != steps+1 {
				return false
			}
			total := 0
			for i := 1; i < len(result.Plan); i++ {
				total += d.Action(result.Plan[i].Action).Cost
			}
			return total == steps*cost
		},
		gen.IntRange(0, 6),
		gen.IntRange(1, 15),
	))

	properties.TestingRun(t)
}
