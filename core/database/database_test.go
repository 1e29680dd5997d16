package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "warehouse",
			TimeoutSeconds: 1,
		}

		// Connect should fail (timeout or refused)
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("SQLite In Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		assert.NoError(t, err)
		assert.NotNil(t, db)
	})
}

func TestDialectorFor(t *testing.T) {
	tests := []struct {
		driver string
		name   string
	}{
		{DriverSQLServer, "sqlserver"},
		{"", "sqlserver"},
		{DriverMySQL, "mysql"},
		{DriverPostgres, "postgres"},
		{DriverSQLite, "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := dialectorFor(Config{Driver: tt.driver, Host: "h", Port: 1, User: "u", Password: "p@ss", Name: "db"}, 5)
			assert.NoError(t, err)
			assert.Equal(t, tt.name, d.Name())
		})
	}
}
