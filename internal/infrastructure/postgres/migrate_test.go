package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/pos?sslmode=disable", pgx5URL("postgres://u:p@db:5432/pos?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/pos", pgx5URL("postgresql://u@db/pos"))
	assert.Equal(t, "pgx5://ya", pgx5URL("pgx5://ya"))
}

func TestMigracionesEmbebidas(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000001_init.up.sql")
	assert.Contains(t, names, "000001_init.down.sql")
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	require.NotNil(t, nullIfEmpty("x"))
	assert.Equal(t, "x", derefStr(nullIfEmpty("x")))
	assert.Equal(t, "", derefStr(nil))
}

func TestIsNotFound(t *testing.T) {
	badUUID := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}
	assert.True(t, isNotFound(pgx.ErrNoRows))
	assert.True(t, isNotFound(badUUID))
	assert.True(t, isNotFound(fmt.Errorf("get order: %w", badUUID)))
	assert.True(t, isInvalidText(badUUID))
	assert.False(t, isInvalidText(pgx.ErrNoRows))
	assert.False(t, isNotFound(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isNotFound(errors.New("conexión cerrada")))
}
