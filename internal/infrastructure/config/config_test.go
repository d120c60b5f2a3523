package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/khqr-offline/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, "khqr@ababank", cfg.AccountID)
	assert.Equal(t, "ABA Bank", cfg.AcquiringBank)
	assert.Equal(t, 10, cfg.ExpirationMinutes)
	assert.Equal(t, "Coffee Shop", cfg.DefaultStoreName)
	assert.Equal(t, "85512233455", cfg.DefaultAccountInfo)
	assert.Equal(t, 10, cfg.QRScale)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "khqr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("khqr_account_id: shop@wing\nkhqr_acquiring_bank: Wing Bank\nkhqr_expiration_minutes: 5\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("KHQR_ACQUIRING_BANK", "ACLEDA Bank")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "shop@wing", cfg.AccountID)
	assert.Equal(t, "ACLEDA Bank", cfg.AcquiringBank)
	assert.Equal(t, 5, cfg.ExpirationMinutes)
}

func TestLoad_NegativeExpiration(t *testing.T) {
	t.Setenv("KHQR_EXPIRATION_MINUTES", "-1")

	_, err := config.Load()
	require.Error(t, err)
}
