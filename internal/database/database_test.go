package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"jobrec/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDSN(t *testing.T) {
	base := config.DatabaseConfig{Host: "db", Port: "5432", User: "jobrec", Name: "jobs"}

	tests := []struct {
		name    string
		mutate  func(c *config.DatabaseConfig)
		want    string
		wantErr bool
	}{
		{
			name: "password and sslmode",
			mutate: func(c *config.DatabaseConfig) {
				c.Password = "s3cret"
				c.SSLMode = "disable"
			},
			want: "postgres://jobrec:s3cret@db:5432/jobs?application_name=jobrec&sslmode=disable",
		},
		{
			name:   "no password no sslmode",
			mutate: func(c *config.DatabaseConfig) {},
			want:   "postgres://jobrec@db:5432/jobs?application_name=jobrec",
		},
		{
			name: "password needing escape",
			mutate: func(c *config.DatabaseConfig) {
				c.Password = "p@ss/word"
			},
			want: "postgres://jobrec:p%40ss%2Fword@db:5432/jobs?application_name=jobrec",
		},
		{
			name: "url overrides fields",
			mutate: func(c *config.DatabaseConfig) {
				c.URL = "postgres://neon:pw@ep-cool.neon.tech/jobs?sslmode=require"
				c.Host = ""
			},
			want: "postgres://neon:pw@ep-cool.neon.tech/jobs?sslmode=require",
		},
		{
			name:    "malformed url",
			mutate:  func(c *config.DatabaseConfig) { c.URL = "postgres://%zz" },
			wantErr: true,
		},
		{name: "missing host", mutate: func(c *config.DatabaseConfig) { c.Host = "" }, wantErr: true},
		{name: "missing port", mutate: func(c *config.DatabaseConfig) { c.Port = "" }, wantErr: true},
		{name: "missing user", mutate: func(c *config.DatabaseConfig) { c.User = "" }, wantErr: true},
		{name: "missing name", mutate: func(c *config.DatabaseConfig) { c.Name = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)

			got, err := DSN(c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigurePool(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	configurePool(db, config.DatabaseConfig{MaxOpenConns: 7})

	assert.Equal(t, 7, db.Stats().MaxOpenConnections)
}

func stubOpen(t *testing.T, db *sql.DB, err error) *string {
	t.Helper()
	var gotDSN string
	orig := sqlOpen
	sqlOpen = func(_, dsn string) (*sql.DB, error) {
		gotDSN = dsn
		return db, err
	}
	t.Cleanup(func() { sqlOpen = orig })
	return &gotDSN
}

func TestNewPostgres(t *testing.T) {
	conf := config.DatabaseConfig{
		Host:               "db",
		Port:               "5432",
		User:               "jobrec",
		Password:           "s3cret",
		Name:               "jobs",
		MaxOpenConns:       10,
		MaxIdleConns:       5,
		ConnMaxLifetimeSec: 300,
	}

	t.Run("success logs connection", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		dsn := stubOpen(t, db, nil)
		mock.ExpectPing()
		core, logs := observer.New(zapcore.InfoLevel)

		gotDB, err := NewPostgres(context.Background(), conf, zap.New(core))

		require.NoError(t, err)
		assert.Same(t, db, gotDB)
		assert.Equal(t, "postgres://jobrec:s3cret@db:5432/jobs?application_name=jobrec", *dsn)
		assert.Equal(t, 1, logs.FilterMessage("database connected").Len())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sqlOpen error", func(t *testing.T) {
		stubOpen(t, nil, errors.New("open error"))

		gotDB, err := NewPostgres(context.Background(), conf, zap.NewNop())

		assert.ErrorContains(t, err, "sql open: open error")
		assert.Nil(t, gotDB)
	})

	t.Run("ping error", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)
		mock.ExpectPing().WillReturnError(errors.New("ping failed"))
		mock.ExpectClose()

		gotDB, err := NewPostgres(context.Background(), conf, zap.NewNop())

		assert.ErrorContains(t, err, "db ping: ping failed")
		assert.Nil(t, gotDB)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("incomplete config", func(t *testing.T) {
		gotDB, err := NewPostgres(context.Background(), config.DatabaseConfig{}, zap.NewNop())

		assert.ErrorIs(t, err, errIncompleteConfig)
		assert.Nil(t, gotDB)
	})
}
