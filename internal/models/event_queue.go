package models

import (
	"container/heap"
	"sync"
	"time"
)

const (
	EventBundlePosted    = "BundlePosted"
	EventBundleReserved  = "BundleReserved"
	EventBundleCollected = "BundleCollected"
	EventBundleNoShow    = "BundleNoShow"
	EventBundleExpired   = "BundleExpired"
	EventDisputeRaised   = "DisputeRaised"
)

// Event represents a point in a bundle's lifecycle
type Event struct {
	Time     time.Time
	Type     string
	EntityID string
	Data     interface{}

	seq uint64
}

// EventQueue is a priority queue of events. Events with the same time come
// out in the order they were enqueued.
type EventQueue struct {
	events []*Event
	next   uint64
	mutex  sync.Mutex
}

// eventHeap implements heap.Interface and holds Events
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Time.Equal(h[j].Time) {
		return h[i].seq < h[j].seq
	}
	return h[i].Time.Before(h[j].Time)
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// NewEventQueue creates a new EventQueue
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]*Event, 0)}
}

// Enqueue adds an event to the queue
func (eq *EventQueue) Enqueue(event *Event) {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	event.seq = eq.next
	eq.next++
	heap.Push((*eventHeap)(&eq.events), event)
}

// Dequeue removes and returns the earliest event from the queue
func (eq *EventQueue) Dequeue() *Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 {
		return nil
	}
	return heap.Pop((*eventHeap)(&eq.events)).(*Event)
}

// Peek returns the earliest event without removing it
func (eq *EventQueue) Peek() *Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 {
		return nil
	}
	return eq.events[0]
}

// IsEmpty returns true if the queue is empty
func (eq *EventQueue) IsEmpty() bool {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	return len(eq.events) == 0
}

// Len returns the number of events in the queue
func (eq *EventQueue) Len() int {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	return len(eq.events)
}

func (eq *EventQueue) DequeueBatch(maxBatchSize int) []*Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()

	batchSize := min(maxBatchSize, len(eq.events))
	batch := make([]*Event, 0, batchSize)

	for i := 0; i < batchSize; i++ {
		event := heap.Pop((*eventHeap)(&eq.events)).(*Event)
		batch = append(batch, event)
	}

	return batch
}
