package containers

import (
	"errors"
	"testing"
)

func TestRingQueue(t *testing.T) {
	rq := NewRingQueue[string](2)
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("Dequeue on empty queue: got %v, want %v", err, ErrQueueEmpty)
	}
	if err := rq.Enqueue("a"); err != nil {
		t.Fatal(err)
	}
	if err := rq.Enqueue("b"); err != nil {
		t.Fatal(err)
	}
	if err := rq.Enqueue("c"); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Enqueue on full queue: got %v, want %v", err, ErrQueueFull)
	}
	if got, _ := rq.Peek(); got != "a" {
		t.Errorf("Peek: got %q, want %q", got, "a")
	}
	if got, _ := rq.Dequeue(); got != "a" {
		t.Errorf("Dequeue: got %q, want %q", got, "a")
	}
	// wraps around
	if err := rq.Enqueue("c"); err != nil {
		t.Fatal(err)
	}
	got := rq.Drain()
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("Drain: got %v, want [b c]", got)
	}
	if !rq.IsEmpty() || rq.Len() != 0 {
		t.Errorf("queue not empty after Drain: len %d", rq.Len())
	}
}
