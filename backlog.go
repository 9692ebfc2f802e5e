package main

import (
	"fmt"
	"io"
	"sync"
)

const maxBacklog = 100

// backlog is an io.Writer that keeps the last maxBacklog writes, for
// holding log output while the terminal is showing the machine's screen.
type backlog struct {
	mu      sync.Mutex
	entries []string
	n       int // index of the next entry to write
	dropped int
}

func (b *backlog) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) < maxBacklog {
		b.entries = append(b.entries, string(p))
	} else {
		b.entries[b.n] = string(p)
		b.dropped++
	}
	b.n = (b.n + 1) % maxBacklog
	return len(p), nil
}

// Emit writes the held entries to w, oldest first, and empties the backlog.
func (b *backlog) Emit(w io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dropped > 0 {
		fmt.Fprintf(w, "(%d earlier log lines dropped)\n", b.dropped)
	}
	for i := range b.entries {
		io.WriteString(w, b.entries[(b.n+i)%len(b.entries)])
	}
	b.entries = b.entries[:0]
	b.n = 0
	b.dropped = 0
}
