package matcher

import "github.com/zappabad/klinechart/internal/dataset"

// openLot is an unmatched execution waiting in its direction's queue.
type openLot struct {
	exec      dataset.Execution
	remaining float64

	next *openLot
}

// lotQueue is a FIFO of open lots, head = earliest arrival.
type lotQueue struct {
	head, tail *openLot
	total      float64
	len        int
}

func (q *lotQueue) push(l *openLot) {
	l.next = nil
	if q.tail != nil {
		q.tail.next = l
	} else {
		q.head = l
	}
	q.tail = l
	q.total += l.remaining
	q.len++
}

func (q *lotQueue) peek() *openLot { return q.head }

func (q *lotQueue) popHead() *openLot {
	l := q.head
	if l == nil {
		return nil
	}
	q.head = l.next
	if q.head == nil {
		q.tail = nil
	}
	l.next = nil
	q.len--
	return l
}

func (q *lotQueue) empty() bool { return q.head == nil }
