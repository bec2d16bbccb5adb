package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blendScope/internal/model"
)

// Store provides Postgres persistence for computed rate snapshots.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertRateSnapshots inserts or updates rate snapshots keyed by pool, asset,
// and observation timestamp.
func (s *Store) UpsertRateSnapshots(ctx context.Context, snapshots []model.RateSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, snap := range snapshots {
		batch.Queue(`
			INSERT INTO rate_snapshots (
				pool_id, asset, observed_ts, utilization,
				borrow_apr, supply_apr, borrow_apy, supply_apy,
				curve_rate, ir_modifier, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now())
			ON CONFLICT (pool_id, asset, observed_ts)
			DO UPDATE SET
				utilization = EXCLUDED.utilization,
				borrow_apr = EXCLUDED.borrow_apr,
				supply_apr = EXCLUDED.supply_apr,
				borrow_apy = EXCLUDED.borrow_apy,
				supply_apy = EXCLUDED.supply_apy,
				curve_rate = EXCLUDED.curve_rate,
				ir_modifier = EXCLUDED.ir_modifier,
				updated_at = now()
		`,
			snap.PoolID,
			snap.Asset,
			int64(snap.Timestamp),
			snap.Utilization,
			snap.BorrowAPR,
			snap.SupplyAPR,
			snap.BorrowAPY,
			snap.SupplyAPY,
			snap.CurveRate,
			snap.IRModifier,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range snapshots {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns last_processed_ts for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var ts uint64
	row := s.pool.QueryRow(ctx, `SELECT last_processed_ts FROM rates_state WHERE name=$1`, name)
	if err := row.Scan(&ts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return ts, true, nil
}

// SaveState upserts last_processed_ts for a name.
func (s *Store) SaveState(ctx context.Context, name string, ts uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO rates_state (name, last_processed_ts, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name)
		DO UPDATE SET last_processed_ts = EXCLUDED.last_processed_ts, updated_at = now()
	`, name, int64(ts))
	return err
}
