// Package memorysink retains compilation activity events in memory, giving
// build tooling a queryable record of what the descriptor compiler did.
package memorysink

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-uses/pkg/activity"
)

// Record is one retained activity event with a stable identifier.
type Record struct {
	ID         uuid.UUID
	Verb       string
	ObjectType string
	ObjectID   string
	Channel    string
	Data       map[string]any
	OccurredAt time.Time
}

// Sink stores records in arrival order. Safe for concurrent writers.
type Sink struct {
	mu      sync.Mutex
	records []Record
}

// New constructs an empty sink.
func New() *Sink {
	return &Sink{}
}

// Log appends record to the sink.
func (s *Sink) Log(_ context.Context, record Record) error {
	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()
	return nil
}

// Records returns a snapshot of everything logged so far.
func (s *Sink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}

// Hook adapts activity events into sink records.
type Hook struct {
	Sink *Sink
}

// Notify maps the event into a Record and forwards it to the sink.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}

	normalized := activity.NormalizeEvent(event)
	if normalized.Verb == "" || normalized.ObjectType == "" || normalized.ObjectID == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	record := Record{
		ID:         uuid.New(),
		Verb:       normalized.Verb,
		ObjectType: normalized.ObjectType,
		ObjectID:   normalized.ObjectID,
		Channel:    normalized.Channel,
		Data:       cloneMap(normalized.Metadata),
		OccurredAt: normalized.OccurredAt,
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now()
	}

	return h.Sink.Log(ctx, record)
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
