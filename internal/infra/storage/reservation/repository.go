package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/money"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// codeExclusionViolation SQLSTATE нарушения ограничения EXCLUDE ex_reservations_unit_stay
const codeExclusionViolation = "23P01"

var reservationColumns = []string{
	"id",
	"tenant_id",
	"group_id",
	"unit_id",
	"channel_id",
	"start_date",
	"end_date",
	"status",
	"tax_mode",
	"currency",
	"actual_guest_total",
	"actual_payout",
	"actual_commission",
	"actual_channel_cost",
	"actual_tax",
	"anchor_guest_total",
	"anchor_payout",
	"anchor_commission",
	"anchor_channel_cost",
	"anchor_tax",
	"edited_fields",
	"invoiced_exchange_rate",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBlockingOccupancy возвращает интервалы занятости юнитов арендатора, пересекающие период.
// Пересечение полуинтервалов: start_date < r.End AND end_date > r.Start.
func (r *Repository) ListBlockingOccupancy(
	ctx context.Context,
	tenantID string,
	rng domain.DateRange,
	statuses []domain.ManagementStatus,
) ([]domain.OccupancyInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "unit_id", "start_date", "end_date", "status").
		From("reservations").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		Where(squirrel.Lt{"start_date": rng.End}).
		Where(squirrel.Gt{"end_date": rng.Start}).
		OrderBy("unit_id ASC, start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingOccupancy - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingOccupancy - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.OccupancyInterval, 0)
	for rows.Next() {
		var (
			iv     domain.OccupancyInterval
			status string
		)
		if err := rows.Scan(&iv.ReservationID, &iv.UnitID, &iv.Span.Start, &iv.Span.End, &status); err != nil {
			return nil, fmt.Errorf("%w: ListBlockingOccupancy - scan interval: %v", ErrScanRow, err)
		}
		iv.Status = domain.ManagementStatus(status)
		intervals = append(intervals, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockingOccupancy - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// CheckConflict проверяет, занят ли юнит в периоде блокирующими бронированиями.
// Внутри транзакции найденные строки блокируются (FOR UPDATE) до коммита.
func (r *Repository) CheckConflict(
	ctx context.Context,
	tenantID, unitID string,
	rng domain.DateRange,
	statuses []domain.ManagementStatus,
) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("reservations").
		Where(squirrel.Eq{"tenant_id": tenantID, "unit_id": unitID}).
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		Where(squirrel.Lt{"start_date": rng.End}).
		Where(squirrel.Gt{"end_date": rng.Start})

	// Если используется транзакция, блокируем пересекающиеся бронирования
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CheckConflict - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		// ошибка pq сохраняется в цепочке: вызывающий код отличает отмену сериализуемой транзакции
		return false, fmt.Errorf("%w: CheckConflict - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	conflict := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("%w: CheckConflict - rows error: %v", ErrScanRow, err)
	}

	return conflict, nil
}

// Create сохраняет бронирование; ID и GroupID задаются вызывающим кодом
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(reservationColumns[:len(reservationColumns)-2]...).
		Values(
			res.ID,
			res.TenantID,
			res.GroupID,
			res.UnitID,
			res.ChannelID,
			res.Stay.Start,
			res.Stay.End,
			string(res.Status),
			string(res.TaxMode),
			string(res.Currency),
			res.Actual.GuestTotal,
			res.Actual.Payout,
			res.Actual.Commission,
			res.Actual.ChannelCost,
			res.Actual.Tax,
			res.Anchor.GuestTotal,
			res.Anchor.Payout,
			res.Anchor.Commission,
			res.Anchor.ChannelCost,
			res.Anchor.Tax,
			int(res.Edited),
			res.InvoicedExchangeRate,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == codeExclusionViolation {
			return nil, fmt.Errorf("%w: Create - unit %s in %s: %v", ErrOverlap, res.UnitID, res.Stay, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование арендатора по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// ListByGroup возвращает активные бронирования группы в порядке заезда.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы правка итога группы была атомарной.
func (r *Repository) ListByGroup(ctx context.Context, tenantID, groupID string) ([]domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"group_id": groupID, "tenant_id": tenantID}).
		Where(squirrel.NotEq{"status": []string{string(domain.StatusRejected), string(domain.StatusCancelled)}}).
		OrderBy("start_date ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByGroup - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByGroup - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	group := make([]domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByGroup - scan reservation: %v", ErrScanRow, err)
		}
		group = append(group, *res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByGroup - rows error: %v", ErrScanRow, err)
	}

	return group, nil
}

// UpdateActualValues сохраняет actual-значения и флаги ручных правок. Anchor-колонки не обновляются.
func (r *Repository) UpdateActualValues(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("actual_guest_total", res.Actual.GuestTotal).
		Set("actual_payout", res.Actual.Payout).
		Set("actual_commission", res.Actual.Commission).
		Set("actual_channel_cost", res.Actual.ChannelCost).
		Set("actual_tax", res.Actual.Tax).
		Set("edited_fields", int(res.Edited)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID, "tenant_id": res.TenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateActualValues - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateActualValues", query, args)
}

// UpdateStatus обновляет статус бронирования; invoicedRate сохраняется, если передан
func (r *Repository) UpdateStatus(
	ctx context.Context,
	tenantID, id string,
	status domain.ManagementStatus,
	invoicedRate *float64,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", string(status))
	if invoicedRate != nil {
		updateBuilder = updateBuilder.Set("invoiced_exchange_rate", *invoicedRate)
	}

	query, args, err := updateBuilder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateStatus", query, args)
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                       domain.Reservation
		status, taxMode, currency string
		edited                    int
		invoicedRate              sql.NullFloat64
		createdAt, updatedAt      sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.TenantID,
		&res.GroupID,
		&res.UnitID,
		&res.ChannelID,
		&res.Stay.Start,
		&res.Stay.End,
		&status,
		&taxMode,
		&currency,
		&res.Actual.GuestTotal,
		&res.Actual.Payout,
		&res.Actual.Commission,
		&res.Actual.ChannelCost,
		&res.Actual.Tax,
		&res.Anchor.GuestTotal,
		&res.Anchor.Payout,
		&res.Anchor.Commission,
		&res.Anchor.ChannelCost,
		&res.Anchor.Tax,
		&edited,
		&invoicedRate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Status = domain.ManagementStatus(status)
	res.TaxMode = domain.TaxMode(taxMode)
	res.Currency = money.Currency(currency)
	res.Edited = domain.EditedFields(edited)
	if invoicedRate.Valid {
		rate := invoicedRate.Float64
		res.InvoicedExchangeRate = &rate
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func statusStrings(statuses []domain.ManagementStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
