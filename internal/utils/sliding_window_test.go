package utils

import (
	"testing"
	"time"
)

func TestSlidingWindowCountExpires(t *testing.T) {
	window := NewSlidingWindow(2 * time.Second)
	now := time.Now()
	window.Reserve(now, 0)
	window.Reserve(now.Add(500*time.Millisecond), 0)
	if count := window.Count(now.Add(1 * time.Second)); count != 2 {
		t.Fatalf("expected 2, got %d", count)
	}
	if count := window.Count(now.Add(3 * time.Second)); count != 0 {
		t.Fatalf("expected 0, got %d", count)
	}
}

func TestSlidingWindowReserve(t *testing.T) {
	window := NewSlidingWindow(10 * time.Second)
	now := time.Unix(100, 0)

	if ok, _ := window.Reserve(now, 1); !ok {
		t.Fatalf("expected first reservation")
	}
	ok, wait := window.Reserve(now.Add(3*time.Second), 1)
	if ok {
		t.Fatalf("expected second reservation to be rejected")
	}
	if wait != 7*time.Second {
		t.Fatalf("expected 7s wait, got %s", wait)
	}
	if count := window.Count(now.Add(3 * time.Second)); count != 1 {
		t.Fatalf("rejected reservation must not be recorded, got %d hits", count)
	}
	if ok, _ := window.Reserve(now.Add(10*time.Second), 1); !ok {
		t.Fatalf("expected reservation once the window elapsed")
	}
}
