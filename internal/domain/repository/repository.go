package repository

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// SettingsStore is a flat string key/value store.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
