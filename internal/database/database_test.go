package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_Error(t *testing.T) {
	cfg := Config{
		Driver:             "invalid",
		ConnectionString:   "invalid",
		MaxOpenConnections: 10,
		MaxIdleConnections: 5,
		ConnMaxLifetime:    time.Hour,
	}

	db, err := Connect(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "sql: unknown driver")
}

func TestConnect_Success(t *testing.T) {
	mockDB, mock, err := sqlmock.NewWithDSN("database_connect_success", sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	mock.ExpectPing()

	db, err := Connect(context.Background(), Config{
		Driver:             "sqlmock",
		ConnectionString:   "database_connect_success",
		MaxOpenConnections: 2,
		MaxIdleConnections: 1,
		ConnMaxLifetime:    time.Minute,
	})
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.Equal(t, 2, db.Stats().MaxOpenConnections)
	assert.NoError(t, db.Close())
}

func TestConnect_PingFails(t *testing.T) {
	mockDB, mock, err := sqlmock.NewWithDSN("database_connect_ping_fails", sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	mock.ExpectPing().WillReturnError(assert.AnError)

	db, err := Connect(context.Background(), Config{Driver: "sqlmock", ConnectionString: "database_connect_ping_fails"})
	assert.Nil(t, db)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to ping database")
}

func TestMigrationsPath(t *testing.T) {
	path, err := MigrationsPath("postgres")
	require.NoError(t, err)
	assert.Equal(t, "file://migrations/postgresql", path)

	path, err = MigrationsPath("mysql")
	require.NoError(t, err)
	assert.Equal(t, "file://migrations/mysql", path)

	_, err = MigrationsPath("sqlite")
	assert.Error(t, err)
}
