// Package history records successful route computations for the session
// dashboard. It keeps only the most recent entries; nothing is persisted.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trafficlab/route-planner/pkg/route"
)

// DefaultLimit is how many routes the log keeps when no limit is given.
const DefaultLimit = 10

// Entry is one recorded route computation.
type Entry struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	TotalWeight float64       `json:"totalWeight"`
	Path        []string      `json:"path"`
	Elapsed     time.Duration `json:"elapsedNs"`
}

// Log is a bounded, in-memory route history. Oldest entries are dropped
// once the limit is reached.
type Log struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
}

// NewLog creates a history log keeping at most limit entries.
// limit <= 0 falls back to DefaultLimit.
func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{limit: limit}
}

// Record appends a successful computation and returns the stored entry.
func (l *Log) Record(source, destination string, res route.Result, elapsed time.Duration) Entry {
	entry := Entry{
		ID:          uuid.New().String(),
		Timestamp:   time.Now(),
		Source:      source,
		Destination: destination,
		TotalWeight: res.TotalWeight,
		Path:        append([]string(nil), res.Path...),
		Elapsed:     elapsed,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	if len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
	return entry
}

// Entries returns the recorded routes, newest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	for i, entry := range l.entries {
		out[len(l.entries)-1-i] = entry
	}
	return out
}

// Clear drops all recorded routes.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Stats summarizes the current log contents.
type Stats struct {
	Count         int     `json:"count"`
	AverageWeight float64 `json:"averageWeight"`
}

// Summarize computes aggregate stats over the recorded routes.
func (l *Log) Summarize() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == 0 {
		return Stats{}
	}
	var total float64
	for _, entry := range l.entries {
		total += entry.TotalWeight
	}
	return Stats{
		Count:         len(l.entries),
		AverageWeight: total / float64(len(l.entries)),
	}
}
