package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/airmaint/airmaint/internal/common/config"
)

func TestNewStoreDefaultsToMemory(t *testing.T) {
	for _, typ := range []string{"", "memory"} {
		store, err := NewStore(&config.DatabaseConfig{Type: typ}, zap.NewNop())
		require.NoError(t, err)
		_, ok := store.(*Memory)
		assert.True(t, ok, "type %q should yield the memory backend", typ)
	}
}

func TestNewStoreFallsBackWhenOptional(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Type:          "oracle",
		MaxRetries:    1,
		RetryInterval: config.Duration(time.Millisecond),
	}
	store, err := NewStore(cfg, zap.NewNop())
	require.NoError(t, err)
	_, ok := store.(*Memory)
	assert.True(t, ok)
}

func TestNewStoreRequiredPropagatesError(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Type:          "oracle",
		Required:      true,
		MaxRetries:    1,
		RetryInterval: config.Duration(time.Millisecond),
	}
	_, err := NewStore(cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}
