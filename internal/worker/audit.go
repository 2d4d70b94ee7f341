// Package worker consumes the change feed and keeps an audit trail of
// mutations for operational visibility.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"trendly/internal/events"
)

// AuditWorker records every change message it sees and aggregates counts per
// entity/action pair. It never mutates application state.
type AuditWorker struct {
	mu       sync.Mutex
	counts   map[string]int64
	lastSeen time.Time
}

func NewAuditWorker() *AuditWorker {
	return &AuditWorker{
		counts: make(map[string]int64),
	}
}

// HandleChange processes one change message. It is safe for concurrent use.
func (w *AuditWorker) HandleChange(msg *events.ChangeMessage) error {
	if msg.Entity == "" || msg.Action == "" {
		return fmt.Errorf("change message missing entity or action")
	}

	w.mu.Lock()
	w.counts[msg.Entity+"."+msg.Action]++
	w.lastSeen = msg.Timestamp
	w.mu.Unlock()

	slog.Info("Change recorded",
		"entity", msg.Entity,
		"action", msg.Action,
		"id", msg.ID,
		"occurred_at", msg.Timestamp)

	return nil
}

// Counts returns a copy of the per entity/action counters.
func (w *AuditWorker) Counts() map[string]int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make(map[string]int64, len(w.counts))
	for k, v := range w.counts {
		out[k] = v
	}
	return out
}

// LastSeen returns the timestamp of the most recent change, zero if none.
func (w *AuditWorker) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

// LogSummary emits the aggregated counters on every tick until ctx ends.
func (w *AuditWorker) LogSummary(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			counts := w.Counts()
			if len(counts) == 0 {
				continue
			}
			attrs := make([]any, 0, len(counts)*2+2)
			for k, v := range counts {
				attrs = append(attrs, k, v)
			}
			attrs = append(attrs, "last_seen", w.LastSeen())
			slog.InfoContext(ctx, "Change feed summary", attrs...)
		}
	}
}
