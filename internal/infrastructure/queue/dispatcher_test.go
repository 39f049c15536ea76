package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
)

type collectingSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *collectingSink) Record(_ context.Context, e domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *collectingSink) snapshot() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}

func TestDispatcher_DeliversInSessionOrder(t *testing.T) {
	sink := &collectingSink{}
	d := NewDispatcher(2, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	kinds := []domain.AuditKind{domain.AuditLogin, domain.AuditRefresh, domain.AuditLogout}
	for _, k := range kinds {
		d.Enqueue(domain.AuditEvent{SessionID: "s1", Kind: k, At: time.Now()})
	}

	deadline := time.After(2 * time.Second)
	for len(sink.snapshot()) < len(kinds) {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for events, got %d", len(sink.snapshot()))
		case <-time.After(10 * time.Millisecond):
		}
	}

	got := sink.snapshot()
	for i, k := range kinds {
		if got[i].Kind != k {
			t.Fatalf("event %d: expected %s, got %s", i, k, got[i].Kind)
		}
	}
}

func TestDispatcher_SameSessionSameShard(t *testing.T) {
	d := NewDispatcher(8, &collectingSink{}, zerolog.Nop())
	first := d.shardIndex("session-abc")
	for i := 0; i < 10; i++ {
		if d.shardIndex("session-abc") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
