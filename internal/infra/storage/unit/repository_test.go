package unit

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

func TestRepository_ListUnits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, tenant_id, name, capacity FROM units WHERE tenant_id = $1 ORDER BY created_at ASC, id ASC")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name", "capacity"}).
			AddRow("u1", "t1", "Cabaña Lago", 4).
			AddRow("u2", "t1", "Loft", 2))

	units, err := NewRepository(db).ListUnits(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Unit{
		{ID: "u1", TenantID: "t1", Name: "Cabaña Lago", Capacity: 4},
		{ID: "u2", TenantID: "t1", Name: "Loft", Capacity: 2},
	}, units)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListUnitsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM units").WillReturnError(errors.New("connection reset"))

	_, err = NewRepository(db).ListUnits(context.Background(), "t1")
	assert.ErrorIs(t, err, ErrExecQuery)
}
