package postgres

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ database.DB = (*Pool)(nil)

func TestPoolConfig(t *testing.T) {
	cfg := config.DatabaseConfig{
		DBHost: "db.internal", DBPort: "5433", DBName: "jobs", DBUser: "app", DBPassword: "pw",
		ConnectTimeout:      3 * time.Second,
		PoolMaxConns:        12,
		PoolMinConns:        2,
		PoolMaxConnIdleTime: time.Minute,
	}

	pcfg, err := PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", pcfg.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pcfg.ConnConfig.Port)
	assert.Equal(t, "jobs", pcfg.ConnConfig.Database)
	assert.Equal(t, 3*time.Second, pcfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, int32(12), pcfg.MaxConns)
	assert.Equal(t, int32(2), pcfg.MinConns)
	assert.Equal(t, time.Minute, pcfg.MaxConnIdleTime)
}

func TestNilPool(t *testing.T) {
	var p *Pool
	assert.ErrorIs(t, p.Ping(context.Background()), errNilDB)
	assert.ErrorIs(t, p.QueryRow(context.Background(), "SELECT 1").Scan(), errNilDB)
	assert.NoError(t, p.Close())
}
