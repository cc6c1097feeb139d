package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "scholarhub", nil)
	ctx := context.Background()

	assert.False(t, repo.Enabled())
	require.NoError(t, repo.Set(ctx, "dash:1", map[string]int{"a": 1}, time.Minute))

	var dest map[string]int
	err := repo.Get(ctx, "dash:1", &dest)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)

	assert.NoError(t, repo.DeleteByPattern(ctx, "dash:*"))
	assert.NoError(t, repo.Ping(ctx))
	assert.NoError(t, repo.Close())
}

func TestCacheRepositoryKeyPrefix(t *testing.T) {
	assert.Equal(t, "scholarhub:dash:1", NewCacheRepository(nil, "scholarhub", nil).key("dash:1"))
	assert.Equal(t, "dash:1", NewCacheRepository(nil, "", nil).key("dash:1"))
}
