package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/playpick/numtactoe/internal/apperror"
)

// fileSnapshot stores the snapshot as a plain text file named
// <GameTypeName>-GameSnapshot.txt inside a fixed directory.
type fileSnapshot struct {
	dir string
}

func NewFileSnapshotRepository(dir string) (SnapshotRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create snapshot directory: %w", err)
	}

	return &fileSnapshot{dir: dir}, nil
}

func (that *fileSnapshot) Save(_ context.Context, gameType, payload string) error {
	if err := os.WriteFile(that.path(gameType), []byte(payload), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

func (that *fileSnapshot) Load(_ context.Context, gameType string) (string, error) {
	data, err := os.ReadFile(that.path(gameType))

	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", apperror.ErrSnapshotNotFound, gameType)
	}

	if err != nil {
		return "", fmt.Errorf("failed to read snapshot: %w", err)
	}

	return string(data), nil
}

func (that *fileSnapshot) DeleteByType(_ context.Context, gameType string) error {
	err := os.Remove(that.path(gameType))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}

func (that *fileSnapshot) path(gameType string) string {
	return filepath.Join(that.dir, fmt.Sprintf("%s-GameSnapshot.txt", gameType))
}
