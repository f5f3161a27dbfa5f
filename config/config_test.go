package config

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "TOKEN_TTL", "ORDER_STRICT_TRANSITIONS", "KAFKA_BROKERS", "EVENT_BROKER"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.StrictOrderTransitions)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "none", cfg.EventBroker)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("TOKEN_TTL", "90")
	t.Setenv("ORDER_STRICT_TRANSITIONS", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("MENU_CACHE_TTL", "1m")

	cfg := Load()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 90*time.Second, cfg.TokenTTL)
	assert.False(t, cfg.StrictOrderTransitions)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Minute, cfg.MenuCacheTTL)
}

func TestDSN(t *testing.T) {
	cfg := Config{DBDriver: "mysql", DBUser: "u", DBPass: "p", DBHost: "db", DBName: "cafe"}
	assert.Equal(t, "u:p@tcp(db:3306)/cafe?charset=utf8mb4&parseTime=True&loc=UTC", cfg.DSN())

	cfg.DBDriver = "postgres"
	assert.Contains(t, cfg.DSN(), "port=5432")

	cfg.DBDSN = "override"
	assert.Equal(t, "override", cfg.DSN())
}

func TestInitDBSqlite(t *testing.T) {
	db, err := InitDB(Config{DBDriver: "sqlite", DBDSN: "file::memory:", GinMode: "test"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("SELECT 1").Error)
}

func TestInitDBUnknownDriver(t *testing.T) {
	_, err := InitDB(Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	assert.Nil(t, NewRedisClient(Config{}))

	mr := miniredis.RunT(t)
	client := NewRedisClient(Config{RedisAddr: mr.Addr()})
	require.NotNil(t, client)
	defer client.Close()

	addr := mr.Addr()
	mr.Close()
	assert.Nil(t, NewRedisClient(Config{RedisAddr: addr}))
}
