// Package journal keeps the retail-side record of completed calculations:
// one entry per posted result, carrying the tape expressions and the
// article count the shop's price-list and credit collaborators consume.
package journal

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/tapecalc/internal/tape"
)

// DefaultCapacity bounds the journal ring when no capacity is given.
const DefaultCapacity = 200

// Entry is one completed calculation.
type Entry struct {
	ID           uuid.UUID `json:"id"`
	Result       float64   `json:"result"`
	ArticleCount int       `json:"article_count"`
	Expressions  []string  `json:"expressions,omitempty"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// Journal is a bounded, append-only record of completed calculations.
// Oldest entries fall off when the capacity is reached.
type Journal struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	log      *slog.Logger
}

// Option configures a Journal.
type Option func(*Journal)

// WithCapacity bounds the ring. Non-positive values keep the default.
func WithCapacity(n int) Option {
	return func(j *Journal) {
		if n > 0 {
			j.capacity = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(j *Journal) {
		if log != nil {
			j.log = log
		}
	}
}

// New creates an empty journal.
func New(opts ...Option) *Journal {
	j := &Journal{
		capacity: DefaultCapacity,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Record appends an entry for a completed calculation and returns it.
func (j *Journal) Record(result float64, articleCount int, steps []tape.Step) Entry {
	entry := Entry{
		ID:           uuid.New(),
		Result:       result,
		ArticleCount: articleCount,
		RecordedAt:   time.Now().UTC(),
	}
	for _, s := range steps {
		entry.Expressions = append(entry.Expressions, s.DisplayValue)
	}

	j.mu.Lock()
	j.entries = append(j.entries, entry)
	if len(j.entries) > j.capacity {
		excess := len(j.entries) - j.capacity
		j.entries = j.entries[excess:]
	}
	j.mu.Unlock()

	j.log.Debug("recorded transaction", "id", entry.ID, "result", result, "articles", articleCount)
	return entry
}

// Len returns the number of retained entries.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// Entries returns a copy of the retained entries, oldest first.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Last returns the most recent entry.
func (j *Journal) Last() (Entry, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.entries) == 0 {
		return Entry{}, false
	}
	return j.entries[len(j.entries)-1], true
}
