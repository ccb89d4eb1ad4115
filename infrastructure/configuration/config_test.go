package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguration(t *testing.T) {
	t.Run("defaults_applied", func(t *testing.T) {
		require.NotNil(t, &C, "Configuration should not be nil")
		assert.NotZero(t, C.App.Port, "port should fall back to a default")
		assert.NotEmpty(t, C.Database.Psql.Host, "database host should fall back to a default")
		assert.NotEmpty(t, C.Database.Psql.Port, "database port should fall back to a default")
	})

	t.Run("sync_durations", func(t *testing.T) {
		var s Sync
		assert.Equal(t, 6*time.Hour, s.Staleness(), "staleness defaults to six hours")
		assert.Equal(t, 100*time.Millisecond, s.ItemDelay(), "item delay defaults to 100ms")

		s = Sync{StalenessHours: 12, ItemDelayMs: 250}
		assert.Equal(t, 12*time.Hour, s.Staleness())
		assert.Equal(t, 250*time.Millisecond, s.ItemDelay())
	})
}

func TestGetConfigValue(t *testing.T) {
	t.Run("env_wins", func(t *testing.T) {
		t.Setenv("SANCHALAN_TEST_KEY", "from-env")
		assert.Equal(t, "from-env", getConfigValue("from-config", "SANCHALAN_TEST_KEY", "fallback"))
	})

	t.Run("placeholder_skipped", func(t *testing.T) {
		assert.Equal(t, "fallback", getConfigValue("YOUR_API_KEY_HERE", "SANCHALAN_UNSET_KEY", "fallback"))
	})

	t.Run("config_used_when_env_unset", func(t *testing.T) {
		assert.Equal(t, "from-config", getConfigValue("from-config", "SANCHALAN_UNSET_KEY", "fallback"))
	})
}
