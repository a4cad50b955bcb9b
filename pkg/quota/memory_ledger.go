package quota

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type counterKey struct {
	accountID uuid.UUID
	periodKey string
}

// MemoryLedger is a mutex-guarded in-memory Ledger for tests and local
// development without a database.
type MemoryLedger struct {
	mu       sync.Mutex
	counters map[counterKey]int64
}

// NewMemoryLedger returns an empty in-memory Ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{counters: make(map[counterKey]int64)}
}

func (l *MemoryLedger) Current(ctx context.Context, accountID uuid.UUID, periodKey string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counters[counterKey{accountID, periodKey}], nil
}

func (l *MemoryLedger) Increment(ctx context.Context, accountID uuid.UUID, periodKey string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counters[counterKey{accountID, periodKey}]++
	return nil
}

// Set seeds a counter value. Test helper.
func (l *MemoryLedger) Set(accountID uuid.UUID, periodKey string, sent int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counters[counterKey{accountID, periodKey}] = sent
}
