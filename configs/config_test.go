package configs

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"TOE_SERVER_PORT", "TOE_DATA_PROVIDER", "TOE_DATA_DIR", "TOE_DB_DRIVER", "TOE_DB_SOURCE",
		"TOE_DB_SEED", "TOE_MAX_BODY_BYTES", "TOE_LOG_LEVEL", "TOE_LOG_FORMAT",
		"TOE_JWT_SECRET", "TOE_ADMIN_PASSWORD", "TOE_JWT_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ProviderLocal, cfg.DataProvider)
	assert.Equal(t, "./data/", cfg.DataDir)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, int64(50*1024*1024), cfg.MaxBodyBytes)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.DBSeed)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("TOE_SERVER_PORT", "8080")
	t.Setenv("TOE_DATA_PROVIDER", "gorm")
	t.Setenv("TOE_DB_DRIVER", "postgres")
	t.Setenv("TOE_DB_SEED", "true")
	t.Setenv("TOE_JWT_SECRET", "s3cret")
	t.Setenv("TOE_ADMIN_PASSWORD", "hunter2")
	t.Setenv("TOE_JWT_TTL", "30m")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ProviderGorm, cfg.DataProvider)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.True(t, cfg.DBSeed)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.AuthEnabled())
}

func TestLoadConfigRejectsUnknownValues(t *testing.T) {
	t.Setenv("TOE_DATA_PROVIDER", "mongo")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "unknown data provider")

	t.Setenv("TOE_DATA_PROVIDER", "local")
	t.Setenv("TOE_DB_DRIVER", "mysql")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "unknown database driver")
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(&Config{LogLevel: "debug", LogFormat: "json"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	_, err = NewLogger(&Config{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestOpenDatabaseSQLite(t *testing.T) {
	log := logrus.New()
	db, err := OpenDatabase(&Config{DBDriver: DriverSQLite, DBSource: "file::memory:"}, log)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	sqlDB.Close()

	_, err = OpenDatabase(&Config{DBDriver: "oracle"}, log)
	assert.Error(t, err)
}
