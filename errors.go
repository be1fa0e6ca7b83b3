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

import "fmt"

// InvalidExpression is returned by Compile when text cannot be parsed. It is
// fatal to the call that triggered compilation: NewAction returns it for an
// unparseable precondition, and Planner.Plan returns it, without a
// PlannerResult, for an unparseable goal.
type InvalidExpression struct {
	Text  string
	Cause error
}

func (e *InvalidExpression) Error() string {
	return fmt.Sprintf("yappla: invalid expression %q: %v", e.Text, e.Cause)
}

func (e *InvalidExpression) Unwrap() error { return e.Cause }

// UnboundVariable is produced by CompiledExpression.Eval when a variable
// reference has no matching entry in the state being evaluated against. It
// surfaces as a search-time abort of Planner.Plan (outcome FAILURE), never as
// a silently-false condition.
type UnboundVariable struct {
	Name string
}

func (e *UnboundVariable) Error() string {
	return fmt.Sprintf("yappla: unbound variable %q", e.Name)
}

// UnsupportedValue describes a value outside the supported Value kinds
// (bool, int, real, string, the unknown sentinel). No function in this
// package returns it: effect maps are typed map[string]Value, and Value's
// constructors produce only the supported kinds.
type UnsupportedValue struct {
	Name  string
	Value interface{}
}

func (e *UnsupportedValue) Error() string {
	return fmt.Sprintf("yappla: unsupported value for variable %q: %#v", e.Name, e.Value)
}
