package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/playpick/numtactoe/internal/apperror"
)

type sqliteSnapshot struct {
	db *sql.DB
}

func NewSQLiteSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &sqliteSnapshot{
		db: db,
	}
}

func (that *sqliteSnapshot) Save(ctx context.Context, gameType, payload string) error {
	query := `INSERT INTO snapshots (game_type, payload) VALUES (?, ?)
		ON CONFLICT(game_type) DO UPDATE SET payload = excluded.payload`

	if _, err := that.db.ExecContext(ctx, query, gameType, payload); err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}

func (that *sqliteSnapshot) Load(ctx context.Context, gameType string) (string, error) {
	query := `SELECT payload FROM snapshots WHERE game_type = ?`

	var payload string
	err := that.db.QueryRowContext(ctx, query, gameType).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", apperror.ErrSnapshotNotFound, gameType)
	}

	if err != nil {
		return "", fmt.Errorf("failed to select snapshot: %w", err)
	}

	return payload, nil
}

func (that *sqliteSnapshot) DeleteByType(ctx context.Context, gameType string) error {
	query := `DELETE FROM snapshots WHERE game_type = ?`

	if _, err := that.db.ExecContext(ctx, query, gameType); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}
