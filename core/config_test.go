package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ENV", "")
		conf := NewConfig()
		assert.Equal(t, "DEV", conf.Env)
		assert.False(t, conf.TestMode)
		assert.Equal(t, StorageDatabase, conf.Storage.Backend)
		assert.Equal(t, EnginePostgres, conf.Database.Engine)
		assert.Equal(t, ":8000", conf.Server.Address)
		assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
	})

	t.Run("test env", func(t *testing.T) {
		t.Setenv("ENV", "test")
		t.Setenv("TEST_SERVER_ADDRESS", ":9999")
		t.Setenv("TEST_DATABASE_ENGINE", "SQLite3")
		t.Setenv("TEST_DATABASE_PORT", "6543")
		t.Setenv("TEST_JWTEXPIRATIONDELTA", "1h")
		t.Setenv("DEV_APPNAME", "ignored")

		conf := NewConfig()
		assert.Equal(t, "TEST", conf.Env)
		assert.True(t, conf.TestMode)
		assert.Equal(t, StorageMemory, conf.Storage.Backend)
		assert.Equal(t, ":9999", conf.Server.Address)
		assert.Equal(t, EngineSQLite, conf.Database.Engine)
		assert.Equal(t, 6543, conf.Database.Port)
		assert.Equal(t, time.Hour, conf.JWTExpirationDelta)
		assert.Equal(t, "Studyhub", conf.AppName)
	})
}

func TestConfig_DefaultFromEmail(t *testing.T) {
	conf := &Config{AppName: "Studyhub", FromEmail: "noreply@localhost"}
	addr := conf.DefaultFromEmail()
	assert.Equal(t, `"Studyhub" <noreply@localhost>`, addr.String())
}
