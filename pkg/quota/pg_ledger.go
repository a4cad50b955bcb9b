package quota

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mailico/mailico/pkg/pg"
)

// PGLedger stores usage counters in the usage_counters table.
type PGLedger struct {
	pool *pgxpool.Pool
}

// NewPGLedger returns a Postgres-backed Ledger.
func NewPGLedger(pool *pgxpool.Pool) *PGLedger {
	return &PGLedger{pool: pool}
}

func (l *PGLedger) Current(ctx context.Context, accountID uuid.UUID, periodKey string) (int64, error) {
	var sent int64
	err := l.pool.QueryRow(ctx,
		`SELECT emails_sent FROM usage_counters WHERE account_id = $1 AND period_key = $2`,
		accountID, periodKey,
	).Scan(&sent)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return 0, nil
		}
		return 0, errors.Join(ErrLedgerUnavailable, err)
	}
	return sent, nil
}

// Increment is a single atomic upsert. The upstream design used a separate
// update-else-insert pair, which could mint duplicate rows under concurrent
// first sends; folding both steps into one statement closes that window
// without changing observable counter values.
func (l *PGLedger) Increment(ctx context.Context, accountID uuid.UUID, periodKey string) error {
	_, err := l.pool.Exec(ctx,
		`INSERT INTO usage_counters (account_id, period_key, emails_sent)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (account_id, period_key)
		 DO UPDATE SET emails_sent = usage_counters.emails_sent + 1`,
		accountID, periodKey,
	)
	if err != nil {
		return errors.Join(ErrLedgerUnavailable, err)
	}
	return nil
}
