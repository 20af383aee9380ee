package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csalom/stripe-api/internal/pkg/env"
)

func TestNewLimiterStorage(t *testing.T) {
	mr := miniredis.RunT(t)

	storage, err := NewLimiterStorage(&env.Config{CacheHost: mr.Host(), CachePort: mr.Port()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	require.NoError(t, storage.Set("limiter:127.0.0.1", []byte("1"), time.Minute))
	value, err := storage.Get("limiter:127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)
}

func TestNewLimiterStorage_InvalidPort(t *testing.T) {
	_, err := NewLimiterStorage(&env.Config{CacheHost: "localhost", CachePort: "redis"})
	assert.Error(t, err)
}
