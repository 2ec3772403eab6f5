package cache

import (
	"context"
	"testing"

	"dev-match/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_UnavailableBypassesCache(t *testing.T) {
	r := NewRedis(config.RedisConfig{Host: "127.0.0.1", Port: "1"}, nil)
	require.NotNil(t, r)
	assert.False(t, r.Available())

	ctx := context.Background()
	var out map[string]string
	found, err := r.GetJSON(ctx, KeySkillCatalog, &out)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, r.SetJSON(ctx, KeySkillCatalog, map[string]string{"a": "b"}, 0))
	assert.NoError(t, r.Delete(ctx, KeySkillCatalog))
	assert.NoError(t, r.DeleteByPattern(ctx, SkillKeysPattern))
	assert.Error(t, r.Ping(ctx))
	assert.NoError(t, r.Close())
}

func TestRedis_NilReceiverIsSafe(t *testing.T) {
	var r *Redis
	found, err := r.GetJSON(context.Background(), "k", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, found)
	assert.False(t, r.Available())
}
