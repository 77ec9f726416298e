//go:build unit

package config_test

import (
	"os"
	"testing"
	"time"

	"slot-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
		assert.Equal(t, 8, cfg.Ledger.OpenHour)
		assert.Equal(t, 22, cfg.Ledger.CloseHour)
		assert.Equal(t, 60*time.Second, cfg.Ledger.CacheTTL)
		assert.Equal(t, 3, cfg.Ledger.MaxTxRetries)
		assert.Equal(t, config.NotifyDriverLog, cfg.Notify.Driver)
	})

	t.Run("missing required JWT_SECRET", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "restored-after-test")
		require.NoError(t, os.Unsetenv("JWT_SECRET"))

		_, err := config.LoadConfig()
		require.Error(t, err)
	})

	t.Run("inverted business hours rejected", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("LEDGER_OPEN_HOUR", "22")
		t.Setenv("LEDGER_CLOSE_HOUR", "8")

		_, err := config.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid business hours")
	})

	t.Run("unknown store driver rejected", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORE_DRIVER", "sqlite")

		_, err := config.LoadConfig()
		require.Error(t, err)
	})
}

func TestLedgerConfigValidate(t *testing.T) {
	cfg := config.NewTestConfig()
	require.NoError(t, cfg.Ledger.Validate())

	cfg.Ledger.CloseHour = 25
	assert.Error(t, cfg.Ledger.Validate())
}
