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

// Package yappla is a small classical planner: given an initial assignment
// of named state variables, a domain of actions with logical preconditions
// and deterministic or non-deterministic effects, and a goal expressed as a
// Boolean expression over state variables, Planner.Plan returns a
// least-cost sequence of actions transforming the initial state into a
// state satisfying the goal, or reports that no such sequence exists within
// a bounded number of search iterations.
//
// The package does not interpret any upstream planning-problem
// representation (typed fluents, object sorts, compound Boolean trees) —
// callers compile actions and goal strings themselves before calling Plan.
package yappla
