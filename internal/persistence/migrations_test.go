package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNamesSorted(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "0001_init.sql", names[0])
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestNilHandlesReportUnconfigured(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var pg *Postgres
	assert.Error(t, pg.Ping(ctx))
	assert.Nil(t, pg.PoolHandle())

	var rd *Redis
	assert.Error(t, rd.Ping(ctx))
	_, err := rd.Acquire(ctx, "k")
	assert.Error(t, err)
}
