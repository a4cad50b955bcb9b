package dispatch

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mailico/mailico/pkg/pg"
)

// PGStore implements AccountStore, DeliveryRecorder, and RecipientResolver
// on a shared pgx pool.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore returns a Postgres-backed store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Account(ctx context.Context, id uuid.UUID) (*Account, error) {
	var acc Account
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, name, plan, COALESCE(provider_api_key, '')
		 FROM accounts WHERE id = $1`,
		id,
	).Scan(&acc.ID, &acc.Email, &acc.Name, &acc.Plan, &acc.ProviderAPIKey)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}

const insertRecordSQL = `INSERT INTO email_records
	(id, account_id, direction, from_address, to_addresses, subject, body, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (s *PGStore) RecordOutbound(ctx context.Context, rec EmailRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := s.pool.Exec(ctx, insertRecordSQL,
		rec.ID, rec.AccountID, rec.Direction, rec.From,
		strings.Join(rec.To, ", "), rec.Subject, rec.Body, rec.CreatedAt,
	)
	return err
}

func (s *PGStore) RecordInboundBatch(ctx context.Context, recs []EmailRecord) error {
	if len(recs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range recs {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		batch.Queue(insertRecordSQL,
			rec.ID, rec.AccountID, rec.Direction, rec.From,
			strings.Join(rec.To, ", "), rec.Subject, rec.Body, rec.CreatedAt,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	var errs []error
	for range recs {
		if _, err := results.Exec(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ResolveOwners searches sender identities across every account, which is
// why PGStore is handed nothing narrower than the pool: the per-request
// handlers never see this query. Matching is exact equality on the stored
// address.
func (s *PGStore) ResolveOwners(ctx context.Context, addresses []string) (map[string]uuid.UUID, error) {
	if len(addresses) == 0 {
		return map[string]uuid.UUID{}, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT address, account_id FROM sender_identities WHERE address = ANY($1)`,
		addresses,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := make(map[string]uuid.UUID)
	for rows.Next() {
		var addr string
		var accountID uuid.UUID
		if err := rows.Scan(&addr, &accountID); err != nil {
			return nil, err
		}
		owners[addr] = accountID
	}
	return owners, rows.Err()
}
