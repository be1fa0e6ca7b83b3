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
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var goalWhitespace = regexp.MustCompile(` +`)

// GoalSpec carries the priority/activation-condition metadata the original
// engine's Goal list attaches to each candidate goal (yappla/goal.py):
// Priority (higher-priority goals are notionally reached first), an
// optional Conditions expression activating this goal, and the actual Goal
// expression. spec.md §1 explicitly demotes priority-tiered goals to a data
// placeholder never consulted by the search itself — Planner.Plan takes a
// single Goal expression (spec §4.6/§6), never a GoalSpec or a GoalSpec
// list. GoalSpec exists purely so embedders can carry and pretty-print the
// same metadata the original engine did; it is never evaluated here.
type GoalSpec struct {
	Priority   int
	Conditions string
	Goal       string
}

// GoalSpecs is a list of GoalSpec, pretty-printed in descending-priority
// order (ties keep their original relative order), matching
// Goal.pretty_str's sort-then-render behaviour.
type GoalSpecs []GoalSpec

// String renders the goal specs one per line: "<priority> [<conditions>]
// <goal>", sorted by descending priority (default priority 10, matching the
// original engine's default).
func (gs GoalSpecs) String() string {
	sorted := make([]GoalSpec, len(gs))
	copy(sorted, gs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priorityOf(sorted[i]) > priorityOf(sorted[j])
	})
	lines := make([]string, 0, len(sorted))
	for _, g := range sorted {
		cond := ""
		if g.Conditions != "" {
			cond = "[" + g.Conditions + "] "
		}
		goal := goalWhitespace.ReplaceAllString(strings.ReplaceAll(g.Goal, "\n", " "), " ")
		lines = append(lines, fmt.Sprintf("%d %s%s", priorityOf(g), cond, goal))
	}
	return strings.Join(lines, "\n")
}

func priorityOf(g GoalSpec) int {
	if g.Priority == 0 {
		return 10
	}
	return g.Priority
}
