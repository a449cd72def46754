package channel

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/money"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// Repository репозиторий каналов продаж
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каналов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListChannels возвращает каналы арендатора. Инвариант единственного канала по умолчанию
// проверяет domain.NewChannelRegistry, репозиторий отдает данные как есть.
func (r *Repository) ListChannels(ctx context.Context, tenantID string) ([]domain.Channel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"name",
		"currency",
		"modifier_type",
		"modifier_value",
		"is_default",
	).
		From("channels").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("is_default DESC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListChannels - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListChannels - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	channels := make([]domain.Channel, 0)
	for rows.Next() {
		var (
			ch            domain.Channel
			currency      string
			modifierType  sql.NullString
			modifierValue sql.NullFloat64
		)
		if err := rows.Scan(
			&ch.ID,
			&ch.TenantID,
			&ch.Name,
			&currency,
			&modifierType,
			&modifierValue,
			&ch.IsDefault,
		); err != nil {
			return nil, fmt.Errorf("%w: ListChannels - scan channel: %v", ErrScanRow, err)
		}

		ch.Currency = money.Currency(currency)
		ch.ModifierType = domain.ModifierNone
		if modifierType.Valid && modifierType.String != "" {
			ch.ModifierType = domain.ModifierType(modifierType.String)
		}
		ch.ModifierValue = modifierValue.Float64
		channels = append(channels, ch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListChannels - rows error: %v", ErrScanRow, err)
	}

	return channels, nil
}
