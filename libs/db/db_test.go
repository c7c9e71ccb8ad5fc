package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	conn, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, 1, conn.Stats().MaxOpenConnections)
	var one int
	require.NoError(t, conn.QueryRow("SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestOpenRejectsBadInput(t *testing.T) {
	_, err := Open(context.Background(), DriverSQLite, " ")
	assert.Error(t, err)

	_, err = Open(context.Background(), "mysql", "user@/db")
	assert.Error(t, err)
}
