package exchangerate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Repository репозиторий курсов валют
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория курсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает курс арендатора на дату
func (r *Repository) Get(ctx context.Context, tenantID string, day types.Date) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("rate").
		From("exchange_rates").
		Where(squirrel.Eq{"tenant_id": tenantID, "rate_date": day}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var rate float64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rate)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRateNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Get - scan rate: %v", ErrScanRow, err)
	}

	return rate, nil
}

// Upsert сохраняет курс на дату, перезаписывая существующий
func (r *Repository) Upsert(ctx context.Context, tenantID string, day types.Date, rate float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("exchange_rates").
		Columns("tenant_id", "rate_date", "rate").
		Values(tenantID, day, rate).
		Suffix("ON CONFLICT (tenant_id, rate_date) DO UPDATE SET rate = EXCLUDED.rate").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
