package event

import (
	"github.com/lixenwraith/skirmish/parameter"
)

// envelope pairs a pooled message with its registered kind
type envelope struct {
	kind *kind
	msg  any
}

// messageQueue is a FIFO ring buffer of pending messages
// Single-threaded: pushed by game logic and handlers, consumed by Bus.Dispatch
//
// Capacity is a power of two and doubles when full; no message is ever dropped
type messageQueue struct {
	buf  []envelope
	mask int
	head int // Read index
	size int
}

func newMessageQueue() messageQueue {
	capacity := parameter.MessageQueueSize
	return messageQueue{
		buf:  make([]envelope, capacity),
		mask: capacity - 1,
	}
}

// push appends at the tail. O(1) amortized
func (q *messageQueue) push(e envelope) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)&q.mask] = e
	q.size++
}

// pop removes the oldest envelope; the slot is cleared so the message is not retained
func (q *messageQueue) pop() (envelope, bool) {
	if q.size == 0 {
		return envelope{}, false
	}
	e := q.buf[q.head]
	q.buf[q.head] = envelope{}
	q.head = (q.head + 1) & q.mask
	q.size--
	return e, true
}

func (q *messageQueue) len() int {
	return q.size
}

func (q *messageQueue) grow() {
	next := make([]envelope, len(q.buf)*2)
	for i := 0; i < q.size; i++ {
		next[i] = q.buf[(q.head+i)&q.mask]
	}
	q.buf = next
	q.mask = len(next) - 1
	q.head = 0
}
