package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsPgUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsPgUniqueViolation(unique))
	assert.True(t, IsPgUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.False(t, IsPgUniqueViolation(fk))
	assert.False(t, IsPgUniqueViolation(errors.New("boom")))
	assert.False(t, IsPgUniqueViolation(nil))

	assert.True(t, IsPgForeignKeyViolation(fk))
	assert.False(t, IsPgForeignKeyViolation(unique))
}
