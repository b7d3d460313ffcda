package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/puantaj-api/internal/domain"
)

func TestPgCode(t *testing.T) {
	denied := &pgconn.PgError{Code: "42501", Message: "permission denied for table users"}

	assert.Equal(t, "42501", pgCode(fmt.Errorf("exec: %w", denied)))
	assert.Equal(t, "permission denied for table users", pgMessage(denied))
	assert.Equal(t, "", pgCode(errors.New("conn refused")))
	assert.Equal(t, "conn refused", pgMessage(errors.New("conn refused")))
}

func TestRowsDeleted(t *testing.T) {
	assert.NoError(t, rowsDeleted(2, nil, "x"))

	err := rowsDeleted(0, nil, "no se borró el registro e1")
	assert.ErrorIs(t, err, domain.ErrDelete)
	le, _ := domain.AsLedgerError(err)
	assert.Equal(t, domain.CodeNoRowsAffected, le.Code)

	err = rowsDeleted(0, &pgconn.PgError{Code: "42501", Message: "permission denied"}, "x")
	le, _ = domain.AsLedgerError(err)
	assert.Equal(t, domain.KindDelete, le.Kind)
	assert.Equal(t, "42501", le.Code, "el código del driver se expone tal cual")
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Equal(t, "nota", *nullString("nota"))
}
