package tui

import (
	"strings"
	"sync"
)

const defaultFeedCapacity = 512

// Feed is a fixed-size ring of output lines. It is an io.Writer so both the
// console printer and the logger can write into it while the dashboard owns
// the terminal.
type Feed struct {
	mu       sync.Mutex
	capacity int
	lines    []string
	head     int // next write position
	count    int
	partial  string
	changes  chan struct{}
}

func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = defaultFeedCapacity
	}
	return &Feed{
		capacity: capacity,
		lines:    make([]string, capacity),
		changes:  make(chan struct{}, 1),
	}
}

func (f *Feed) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	chunk := string(p)
	for len(chunk) > 0 {
		newlineIdx := strings.IndexByte(chunk, '\n')
		if newlineIdx < 0 {
			f.partial += chunk
			break
		}
		f.partial += chunk[:newlineIdx]
		f.appendLineLocked(strings.TrimRight(f.partial, "\r"))
		f.partial = ""
		chunk = chunk[newlineIdx+1:]
	}
	return len(p), nil
}

// Tail returns up to limit of the most recent complete lines, oldest first.
func (f *Feed) Tail(limit int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if limit <= 0 || f.count == 0 {
		return nil
	}
	n := min(f.count, limit)
	out := make([]string, n)
	start := (f.head - n + f.capacity) % f.capacity
	if start+n <= f.capacity {
		copy(out, f.lines[start:start+n])
	} else {
		first := f.capacity - start
		copy(out, f.lines[start:])
		copy(out[first:], f.lines[:n-first])
	}
	return out
}

// Changes receives a value after new lines arrive. Bursts coalesce.
func (f *Feed) Changes() <-chan struct{} {
	return f.changes
}

func (f *Feed) appendLineLocked(line string) {
	f.lines[f.head] = line
	f.head = (f.head + 1) % f.capacity
	if f.count < f.capacity {
		f.count++
	}
	select {
	case f.changes <- struct{}{}:
	default:
	}
}
