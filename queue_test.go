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

func stateWithX(x string) State { return NewState(map[string]Value{"x": String(x)}) }

func TestStateQueueEmpty(t *testing.T) {
	q := newStateQueue()
	assert.True(t, q.empty())
	q.push(stateWithX("a"), 1)
	assert.False(t, q.empty())
}

func TestStateQueuePopMinPriority(t *testing.T) {
	q := newStateQueue()
	q.push(stateWithX("a"), 5)
	q.push(stateWithX("b"), 1)
	q.push(stateWithX("c"), 3)

	s, p := q.pop()
	v, _ := s.Get("x")
	assert.Equal(t, "b", v.Str())
	assert.Equal(t, 1, p)
}

func TestStateQueueFIFOTieBreak(t *testing.T) {
	q := newStateQueue()
	q.push(stateWithX("first"), 1)
	q.push(stateWithX("second"), 1)
	q.push(stateWithX("third"), 1)

	var order []string
	for !q.empty() {
		s, _ := q.pop()
		v, _ := s.Get("x")
		order = append(order, v.Str())
	}
	assert.Equal(t, []string{"first", "second", "third"}, order, "equal priorities must pop in insertion order")
}

func TestStateQueueContainsAndValue(t *testing.T) {
	q := newStateQueue()
	s := stateWithX("a")
	require.False(t, q.contains(s))
	q.push(s, 7)
	require.True(t, q.contains(s))
	assert.Equal(t, 7, q.value(s))
}

func TestStateQueueContainsByContent(t *testing.T) {
	q := newStateQueue()
	q.push(NewState(map[string]Value{"x": String("a"), "y": Int(1)}), 1)
	other := NewState(map[string]Value{"y": Int(1), "x": String("a")})
	assert.True(t, q.contains(other), "membership must be by content equality, not identity")
}

func TestStateQueueDecreaseKey(t *testing.T) {
	q := newStateQueue()
	s := stateWithX("a")
	q.push(s, 10)
	q.update(s, 3)
	assert.Equal(t, 3, q.value(s))

	q.push(stateWithX("b"), 5)
	popped, p := q.pop()
	v, _ := popped.Get("x")
	assert.Equal(t, "a", v.Str())
	assert.Equal(t, 3, p)
}
