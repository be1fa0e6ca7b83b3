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

import "container/heap"

// stateQueue is a min-priority queue over State, keyed by content equality,
// supporting membership test, current-priority lookup, and decrease-key by
// item identity (spec §4.5). Min-priority ties are broken by insertion order
// (FIFO among equal priorities), which combined with Domain's deterministic
// iteration order gives reproducible plans.
//
// The original engine's PriorityQueue (yappla/utils.py) is a sorted list,
// documented there as O(n log n) per push; this implementation instead uses
// container/heap with an auxiliary key->index map, giving O(log n) push/pop
// and O(log n) decrease-key, as spec §9's design notes suggest for larger
// domains.
type stateQueue struct {
	items []*queueItem
	index map[string]*queueItem
	seq   int
}

type queueItem struct {
	state    State
	priority int
	seq      int // insertion order, for FIFO tie-break
	heapIdx  int
}

func newStateQueue() *stateQueue {
	return &stateQueue{index: map[string]*queueItem{}}
}

// Len, Less, Swap, Push, Pop implement heap.Interface.
func (q *stateQueue) Len() int { return len(q.items) }

func (q *stateQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.seq < b.seq
}

func (q *stateQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].heapIdx = i
	q.items[j].heapIdx = j
}

func (q *stateQueue) Push(x interface{}) {
	item := x.(*queueItem)
	item.heapIdx = len(q.items)
	q.items = append(q.items, item)
}

func (q *stateQueue) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return item
}

// push inserts state with the given priority. The caller must ensure state
// is not already present; re-discovery of a present state must go through
// update.
func (q *stateQueue) push(state State, priority int) {
	item := &queueItem{state: state, priority: priority, seq: q.seq}
	q.seq++
	q.index[state.key()] = item
	heap.Push(q, item)
}

// pop removes and returns the state with minimum priority, along with that
// priority. Ties are broken by insertion order.
func (q *stateQueue) pop() (State, int) {
	item := heap.Pop(q).(*queueItem)
	delete(q.index, item.state.key())
	return item.state, item.priority
}

// contains reports whether state (by content equality) is currently queued.
func (q *stateQueue) contains(state State) bool {
	_, ok := q.index[state.key()]
	return ok
}

// value returns the current priority recorded for state. The caller must
// have checked contains first.
func (q *stateQueue) value(state State) int {
	return q.index[state.key()].priority
}

// update lowers (or raises) the recorded priority of state already present
// in the queue and restores the heap invariant — the decrease-key operation
// the uniform-cost search uses on re-discovering a cheaper path.
func (q *stateQueue) update(state State, priority int) {
	item := q.index[state.key()]
	item.priority = priority
	heap.Fix(q, item.heapIdx)
}

// empty reports whether the queue has no remaining items.
func (q *stateQueue) empty() bool { return len(q.items) == 0 }
