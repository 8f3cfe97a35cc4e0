package sim

import (
	"container/heap"
	"errors"
)

// ErrEmptyQueue is returned when an event is requested from an empty EventQueue.
var ErrEmptyQueue = errors.New("event queue is empty")

// queuedEvent pairs an event with its insertion sequence number.
type queuedEvent struct {
	event Event
	seq   uint64
}

// eventHeap implements heap.Interface.
// Order by: timestamp → insertion sequence.
type eventHeap []queuedEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	ti, tj := h[i].event.Timestamp(), h[j].event.Timestamp()
	if !ti.Equal(tj) {
		return ti.Before(tj)
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(queuedEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = queuedEvent{}
	*h = old[0 : n-1]
	return item
}

// EventQueue is a min-heap of events with a total, deterministic order:
// earlier timestamps first, and events sharing a timestamp leave in the order
// they were scheduled. The sequence counter is per queue, so independent runs
// never influence each other.
type EventQueue struct {
	events  eventHeap
	nextSeq uint64
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make(eventHeap, 0)}
	heap.Init(&q.events)
	return q
}

// Schedule inserts e in O(log n).
func (q *EventQueue) Schedule(e Event) {
	if e == nil {
		panic("EventQueue.Schedule: nil event")
	}
	heap.Push(&q.events, queuedEvent{event: e, seq: q.nextSeq})
	q.nextSeq++
}

// PopNext removes and returns the earliest event in O(log n).
func (q *EventQueue) PopNext() (Event, error) {
	if q.events.Len() == 0 {
		return nil, ErrEmptyQueue
	}
	return heap.Pop(&q.events).(queuedEvent).event, nil
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() (Event, error) {
	if q.events.Len() == 0 {
		return nil, ErrEmptyQueue
	}
	return q.events[0].event, nil
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return q.events.Len()
}
