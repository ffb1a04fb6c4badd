package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

type historySQLite struct {
	db      *sql.DB
	profile string
}

// NewHistorySQLiteRepository expects the history table created by storage.Storage.Init.
func NewHistorySQLiteRepository(db *sql.DB, profile string) HistoryRepository {
	return &historySQLite{
		db:      db,
		profile: profile,
	}
}

func (that *historySQLite) Load(ctx context.Context) ([]entity.PastGame, error) {
	var document []byte

	err := that.db.QueryRowContext(ctx, `SELECT document FROM history WHERE profile = ?`, that.profile).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrHistoryNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w: failed to query history: %w", apperror.ErrHistoryUnavailable, err)
	}

	return decodeHistory(document)
}

func (that *historySQLite) Save(ctx context.Context, games []entity.PastGame) error {
	document, err := encodeHistory(games)
	if err != nil {
		return err
	}

	query := `INSERT INTO history (profile, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(profile) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`

	if _, err = that.db.ExecContext(ctx, query, that.profile, string(document), time.Now().Unix()); err != nil {
		return fmt.Errorf("%w: failed to store history: %w", apperror.ErrHistoryUnavailable, err)
	}

	return nil
}
