package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"lead-voucher-backend/internal/features/lead/models"
)

// EntryStore persists submission log entries.
type EntryStore interface {
	Append(ctx context.Context, entry models.LogEntry) error
}

// EntryReader reads back what a store holds.
type EntryReader interface {
	Entries(ctx context.Context) ([]models.LogEntry, error)
}

// MultiStore appends to every store and joins their errors.
type MultiStore []EntryStore

func (m MultiStore) Append(ctx context.Context, entry models.LogEntry) error {
	var errs []error
	for _, s := range m {
		if err := s.Append(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NopLog discards submissions.
type NopLog struct{}

func (NopLog) Record(context.Context, models.LeadSubmission) {}

// AsyncLog records submissions on a background worker so the caller never waits on
// storage. When the buffer is full the entry is dropped. Store errors are logged and
// otherwise ignored.
type AsyncLog struct {
	store  EntryStore
	logger zerolog.Logger
	now    func() time.Time

	entries chan models.LogEntry
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewAsyncLog(store EntryStore, buffer int, logger zerolog.Logger) *AsyncLog {
	if buffer <= 0 {
		buffer = 1
	}
	l := &AsyncLog{
		store:   store,
		logger:  logger.With().Str("component", "submission_log").Logger(),
		now:     time.Now,
		entries: make(chan models.LogEntry, buffer),
		done:    make(chan struct{}),
	}
	go l.run()
	return l
}

// Record enqueues sub. It never blocks and never fails.
func (l *AsyncLog) Record(_ context.Context, sub models.LeadSubmission) {
	entry := models.NewLogEntry(sub, l.now())

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return
	}
	select {
	case l.entries <- entry:
	default:
		l.logger.Warn().Str("entry_id", entry.ID).Msg("Submission log buffer full, entry dropped")
	}
}

func (l *AsyncLog) run() {
	defer close(l.done)
	for entry := range l.entries {
		// detached from the request; the request may be long gone
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := l.store.Append(ctx, entry); err != nil {
			l.logger.Warn().Err(err).Str("entry_id", entry.ID).Msg("Submission log write failed (non-critical)")
		}
		cancel()
	}
}

// Close stops accepting entries and waits until the queued ones are written.
func (l *AsyncLog) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.entries)
	}
	l.mu.Unlock()
	<-l.done
}
