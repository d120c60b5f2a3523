package settings_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/khqr-offline/internal/domain/repository"
	"github.com/Xausdorf/khqr-offline/internal/infrastructure/settings"
)

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) repository.SettingsStore{
		"memory": func(*testing.T) repository.SettingsStore { return settings.NewMemoryStore() },
		"file": func(t *testing.T) repository.SettingsStore {
			return settings.NewFileStore(filepath.Join(t.TempDir(), "nested", "settings.json"))
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			_, err := store.Get(ctx, "last_khqr_payload")
			require.ErrorIs(t, err, repository.ErrNotFound)

			require.NoError(t, store.Set(ctx, "last_khqr_payload", "first"))
			require.NoError(t, store.Set(ctx, "last_khqr_payload", "second"))
			require.NoError(t, store.Set(ctx, "other", "value"))

			got, err := store.Get(ctx, "last_khqr_payload")
			require.NoError(t, err)
			assert.Equal(t, "second", got)

			got, err = store.Get(ctx, "other")
			require.NoError(t, err)
			assert.Equal(t, "value", got)
		})
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.json")

	require.NoError(t, settings.NewFileStore(path).Set(ctx, "k", "v"))

	got, err := settings.NewFileStore(path).Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := settings.NewFileStore(path).Get(context.Background(), "k")

	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}
