package session

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	libredis "transitpay/libs/redis"
)

func TestRedisStorageContract(t *testing.T) {
	addr := os.Getenv("TRANSIT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRANSIT_TEST_REDIS_ADDR not set")
	}
	client, err := libredis.NewRedisClient(context.Background(), addr, os.Getenv("TRANSIT_TEST_REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	exerciseStorage(t, NewRedisStorage(client, uuid.NewString()))
}
