package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
)

var ErrInvalidKey = errors.New("invalid storage key")

type Local struct {
	logger  *zap.Logger
	baseDir string
}

func NewLocal(logger *zap.Logger, baseDir string) (*Local, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	logger.Info("local storage ready", zap.String("base_dir", baseDir))

	return &Local{logger: logger, baseDir: baseDir}, nil
}

func (l *Local) EnsureLocation(_ context.Context, owner string) error {
	dir, err := l.resolve(owner)
	if err != nil {
		return err
	}

	return os.MkdirAll(dir, 0o755)
}

func (l *Local) Put(_ context.Context, key string, data []byte, _ string) error {
	p, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return os.WriteFile(p, data, 0o644)
}

func (l *Local) Get(_ context.Context, key string) ([]byte, error) {
	p, err := l.resolve(key)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, ports.ErrBlobNotFound)
	}

	return b, err
}

func (l *Local) Delete(_ context.Context, key string) error {
	p, err := l.resolve(key)
	if err != nil {
		return err
	}

	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", key, ports.ErrBlobNotFound)
	}

	return err
}

// resolve keeps every key inside baseDir.
func (l *Local) resolve(key string) (string, error) {
	for _, seg := range strings.Split(filepath.ToSlash(key), "/") {
		if seg == ".." {
			return "", fmt.Errorf("%q: %w", key, ErrInvalidKey)
		}
	}
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}

	return filepath.Join(l.baseDir, clean), nil
}
