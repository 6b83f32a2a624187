package memory

import (
	"context"
	"sync"
	"time"

	appoutbox "luxestay/internal/app/outbox"
	infraoutbox "luxestay/internal/infra/outbox"
)

// Outbox keeps pending event records in memory and feeds the polling worker
// in single-process setups.
type Outbox struct {
	mu      sync.Mutex
	pending []pendingRecord
}

type pendingRecord struct {
	record      appoutbox.EventRecord
	attempts    int
	claimed     bool
	sent        bool
	nextAttempt time.Time
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = append(o.pending, pendingRecord{record: record, nextAttempt: time.Now().UTC()})
	return nil
}

func (o *Outbox) Claim(ctx context.Context, workerID string) (*infraoutbox.Envelope, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now().UTC()
	for i := range o.pending {
		p := &o.pending[i]
		if p.sent || p.claimed || p.nextAttempt.After(now) {
			continue
		}
		p.claimed = true
		rec := p.record
		return &infraoutbox.Envelope{
			ID:         rec.ID,
			Name:       rec.Name,
			Payload:    rec.Payload,
			OccurredAt: rec.OccurredAt,
			Aggregate:  rec.Aggregate,
			Headers:    rec.Headers,
			Attempts:   p.attempts,
		}, nil
	}
	return nil, nil
}

func (o *Outbox) MarkSent(ctx context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if p := o.find(id); p != nil {
		p.sent = true
		p.claimed = false
	}
	return nil
}

func (o *Outbox) MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if p := o.find(id); p != nil {
		p.claimed = false
		p.attempts++
		p.nextAttempt = next
	}
	return nil
}

// Unsent reports how many records still await publication.
func (o *Outbox) Unsent() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	count := 0
	for _, p := range o.pending {
		if !p.sent {
			count++
		}
	}
	return count
}

func (o *Outbox) find(id string) *pendingRecord {
	for i := range o.pending {
		if o.pending[i].record.ID == id {
			return &o.pending[i]
		}
	}
	return nil
}

var (
	_ appoutbox.Outbox  = (*Outbox)(nil)
	_ infraoutbox.Store = (*Outbox)(nil)
)
