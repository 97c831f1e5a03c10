package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/frotaops/frota/internal/domain"
)

// snapshotSlot implements domain.SnapshotSlot as a single row in the
// snapshots table, keyed by slot name.
type snapshotSlot struct {
	db   *sql.DB
	name string
}

func (s *snapshotSlot) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM snapshots WHERE slot = ?", s.name,
	).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot slot: %w", err)
	}
	return data, nil
}

func (s *snapshotSlot) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (slot, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		s.name, data,
	)
	if err != nil {
		return fmt.Errorf("save snapshot slot: %w", err)
	}
	return nil
}
