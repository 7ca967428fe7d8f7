package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "memory")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, "@every 15m", cfg.ReconcileSchedule)
		assert.True(t, cfg.ReconcileEnabled)
		assert.Equal(t, "points_transactions", cfg.TransactionsTable)
	})

	t.Run("Unknown Driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "sqlite")

		_, err := Load()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown STORE_DRIVER")
	})
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			StoreDriver:       DriverPostgres,
			DBPassword:        "secret",
			DBMaxConns:        10,
			DBMinConns:        1,
			ReconcileEnabled:  true,
			ReconcileSchedule: "*/5 * * * *",
			SessionTTL:        1,
		}
	}

	t.Run("Valid", func(t *testing.T) {
		cfg := base()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Postgres Without Password", func(t *testing.T) {
		cfg := base()
		cfg.DBPassword = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("Bad Schedule", func(t *testing.T) {
		cfg := base()
		cfg.ReconcileSchedule = "every now and then"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Schedule Ignored When Disabled", func(t *testing.T) {
		cfg := base()
		cfg.ReconcileEnabled = false
		cfg.ReconcileSchedule = "bogus"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Malformed Dev Token", func(t *testing.T) {
		cfg := base()
		cfg.DevAdminToken = "no-separator"
		assert.Error(t, cfg.Validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	cfg := Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: 5432, DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.DatabaseDSN())
}
