package unit

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// Repository репозиторий юнитов (только чтение, юнитами управляет CRUD-слой)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория юнитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListUnits возвращает все юниты арендатора в порядке создания
func (r *Repository) ListUnits(ctx context.Context, tenantID string) ([]domain.Unit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tenant_id", "name", "capacity").
		From("units").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnits - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnits - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	units := make([]domain.Unit, 0)
	for rows.Next() {
		var u domain.Unit
		if err := rows.Scan(&u.ID, &u.TenantID, &u.Name, &u.Capacity); err != nil {
			return nil, fmt.Errorf("%w: ListUnits - scan unit: %v", ErrScanRow, err)
		}
		units = append(units, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUnits - rows error: %v", ErrScanRow, err)
	}

	return units, nil
}
