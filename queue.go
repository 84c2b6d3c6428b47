package roadgrowth

import (
	"container/heap"
)

// queuedStump is a Stump and the order it was pushed in.
type queuedStump struct {
	stump *Stump
	seq   uint64
}

// stumpHeap is a max heap on priority. Equal priorities pop in the order
// they were pushed so growth never depends on heap internals.
type stumpHeap []queuedStump

func (h stumpHeap) Len() int {
	return len(h)
}

func (h stumpHeap) Less(i, j int) bool {
	if h[i].stump.Priority != h[j].stump.Priority {
		return h[i].stump.Priority > h[j].stump.Priority
	}
	return h[i].seq < h[j].seq
}

func (h stumpHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *stumpHeap) Push(x interface{}) {
	*h = append(*h, x.(queuedStump))
}

func (h *stumpHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = queuedStump{}
	*h = old[:n-1]
	return item
}

// stumpQueue hands out stumps highest priority first.
type stumpQueue struct {
	items stumpHeap
	seq   uint64
}

func newStumpQueue() *stumpQueue {
	return &stumpQueue{items: stumpHeap{}}
}

func (q *stumpQueue) push(s *Stump) {
	heap.Push(&q.items, queuedStump{stump: s, seq: q.seq})
	q.seq++
}

func (q *stumpQueue) pop() (*Stump, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	return heap.Pop(&q.items).(queuedStump).stump, true
}

func (q *stumpQueue) len() int {
	return len(q.items)
}
