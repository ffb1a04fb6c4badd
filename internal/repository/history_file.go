package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

type historyFile struct {
	path string
}

// NewHistoryFileRepository keeps the history document in a single JSON file.
func NewHistoryFileRepository(path string) HistoryRepository {
	return &historyFile{path: path}
}

func (that *historyFile) Load(_ context.Context) ([]entity.PastGame, error) {
	data, err := os.ReadFile(that.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperror.ErrHistoryNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", apperror.ErrHistoryUnavailable, that.path, err)
	}

	return decodeHistory(data)
}

// Save writes to a temporary file and renames it over the old one.
func (that *historyFile) Save(_ context.Context, games []entity.PastGame) error {
	data, err := encodeHistory(games)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(that.path), 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %w", apperror.ErrHistoryUnavailable, err)
	}

	tmp := that.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", apperror.ErrHistoryUnavailable, tmp, err)
	}

	if err = os.Rename(tmp, that.path); err != nil {
		return fmt.Errorf("%w: failed to replace %s: %w", apperror.ErrHistoryUnavailable, that.path, err)
	}

	return nil
}
