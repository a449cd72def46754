package rate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// Repository репозиторий тарифов юнитов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListRates возвращает все тарифы арендатора.
// Цены хранятся в jsonb как объект {"<channel_id>": <цена за ночь>}.
func (r *Repository) ListRates(ctx context.Context, tenantID string) ([]domain.RateEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "unit_id", "start_date", "end_date", "prices").
		From("rate_entries").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("unit_id ASC, start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.RateEntry, 0)
	for rows.Next() {
		var (
			e      domain.RateEntry
			prices []byte
		)
		if err := rows.Scan(&e.ID, &e.UnitID, &e.Start, &e.End, &prices); err != nil {
			return nil, fmt.Errorf("%w: ListRates - scan rate entry: %v", ErrScanRow, err)
		}

		e.Prices = make(map[string]float64)
		if len(prices) > 0 {
			if err := json.Unmarshal(prices, &e.Prices); err != nil {
				return nil, fmt.Errorf("%w: rate entry %s: %v", ErrInvalidPrices, e.ID, err)
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRates - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
