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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionApplicableEmptyPrecondition(t *testing.T) {
	action, err := NewAction("noop", "", []map[string]Value{{}}, 0)
	require.NoError(t, err)
	ok, err := action.Applicable(NewState(nil))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, DefaultCost, action.Cost)
}

func TestActionApplicableChecksPrecondition(t *testing.T) {
	action, err := NewAction("put_left_sock", `left_foot == 'has_nothing'`, []map[string]Value{
		{"left_foot": String("has_sock")},
	}, 10)
	require.NoError(t, err)

	ok, err := action.Applicable(NewState(map[string]Value{"left_foot": String("has_nothing")}))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = action.Applicable(NewState(map[string]Value{"left_foot": String("has_sock")}))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestActionPossibleOutcomesPreservesOrder(t *testing.T) {
	action, err := NewAction("flip", "", []map[string]Value{
		{"x": String("a")},
		{"x": String("b")},
	}, 5)
	require.NoError(t, err)

	outcomes := action.PossibleOutcomes(NewState(map[string]Value{"x": String("start")}))
	require.Len(t, outcomes, 2)
	v0, _ := outcomes[0].Get("x")
	v1, _ := outcomes[1].Get("x")
	assert.Equal(t, "a", v0.Str())
	assert.Equal(t, "b", v1.Str())
}

func TestActionApplySingleOutcome(t *testing.T) {
	action, err := NewAction("put_left_shoe", "", []map[string]Value{
		{"left_foot": String("has_shoe")},
	}, 10)
	require.NoError(t, err)
	result := action.Apply(NewState(map[string]Value{"left_foot": String("has_sock")}))
	v, _ := result.Get("left_foot")
	assert.Equal(t, "has_shoe", v.Str())
}

func TestActionApplyMergesDisagreeingOutcomesAsUnknown(t *testing.T) {
	action, err := NewAction("flip", "", []map[string]Value{
		{"x": String("a"), "y": Bool(true)},
		{"x": String("b"), "y": Bool(true)},
	}, 5)
	require.NoError(t, err)
	result := action.Apply(NewState(map[string]Value{"x": String("start"), "y": Bool(false)}))
	x, _ := result.Get("x")
	y, _ := result.Get("y")
	assert.True(t, x.IsUnknown(), "disagreeing variable across outcomes must merge to Unknown")
	assert.True(t, y.Equal(Bool(true)), "agreeing variable across outcomes keeps its common value")
}
