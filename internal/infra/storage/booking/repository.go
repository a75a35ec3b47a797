package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	"github.com/m04kA/CWP-AllocationService/pkg/dbmetrics"
	"github.com/m04kA/CWP-AllocationService/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

var bookingColumns = []string{
	"id",
	"customer_id",
	"vehicle_id",
	"vehicle_size",
	"service_ids",
	"booking_type",
	"scheduled_at",
	"duration_minutes",
	"status",
	"resource_type",
	"resource_id",
	"customer_latitude",
	"customer_longitude",
	"service_names",
	"total_price",
	"vehicle_brand",
	"vehicle_model",
	"vehicle_license_plate",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование вместе с назначением ресурса
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Вставка защищена exclusion constraint на (resource_type, resource_id, окно)
// для активных статусов: конкурирующая вставка пересекающегося окна получает
// ErrResourceBusy, и вызывающая сторона пробует следующий ресурс
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var lat, lon *float64
	if booking.CustomerLocation != nil {
		lat = &booking.CustomerLocation.Latitude
		lon = &booking.CustomerLocation.Longitude
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"vehicle_id",
			"vehicle_size",
			"service_ids",
			"booking_type",
			"scheduled_at",
			"duration_minutes",
			"status",
			"resource_type",
			"resource_id",
			"customer_latitude",
			"customer_longitude",
			"service_names",
			"total_price",
			"vehicle_brand",
			"vehicle_model",
			"vehicle_license_plate",
			"notes",
		).
		Values(
			booking.CustomerID,
			booking.VehicleID,
			booking.VehicleSize,
			pq.Array(booking.ServiceIDs),
			booking.BookingType,
			booking.ScheduledAt,
			booking.DurationMinutes,
			booking.Status,
			booking.ResourceType,
			booking.ResourceID,
			lat,
			lon,
			pq.Array(booking.ServiceNames),
			booking.TotalPrice,
			booking.VehicleBrand,
			booking.VehicleModel,
			booking.VehicleLicensePlate,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) &&
			(string(pqErr.Code) == pgExclusionViolation || string(pqErr.Code) == pgUniqueViolation) {
			return nil, ErrResourceBusy
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("scheduled_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetActiveByResource получает активные бронирования ресурса, чьи окна
// пересекаются с указанным окном
// Полуоткрытые интервалы: бронирование, заканчивающееся ровно в window.Start,
// не попадает в выборку
//
// Внутри транзакции добавляет FOR UPDATE - блокировка строк конкурентов
// на время критической секции "проверить занятость -> записать бронирование"
func (r *Repository) GetActiveByResource(ctx context.Context, resourceType domain.ResourceType, resourceID int64, window domain.TimeWindow) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"resource_type": resourceType}).
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Where(squirrel.Expr("scheduled_at < ?", window.End)).
		Where(squirrel.Expr("scheduled_at + make_interval(mins => duration_minutes) > ?", window.Start)).
		OrderBy("scheduled_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByResource - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByResource - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountActiveByResourceOnDay считает активные бронирования ресурса,
// начинающиеся в указанный календарный день
// Используется для дневного лимита выездных бригад
func (r *Repository) CountActiveByResourceOnDay(ctx context.Context, resourceType domain.ResourceType, resourceID int64, day time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"resource_type": resourceType}).
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Where(squirrel.GtOrEq{"scheduled_at": dayStart}).
		Where(squirrel.Lt{"scheduled_at": dayEnd}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByResourceOnDay - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByResourceOnDay - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus переводит бронирование из статуса from в новый статус
// Condition на прежний статус закрывает гонку "прочитали - проверили -
// записали": если конкурент успел сменить статус между чтением и UPDATE,
// запрос не затронет строку и вернется ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status, from domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
// После перевода в отменённый статус бронирование исключается из проверок
// пересечений, и ресурс снова доступен для новых бронирований
//
// UPDATE затрагивает строку только в отменяемых статусах: конкурентный
// перевод в in_progress между чтением и отменой дает ErrStatusConflict,
// а не отмену уже начатой мойки
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": cancellableStatusStrings()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// scanBooking сканирует одну строку результата в доменную модель
func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	var lat, lon sql.NullFloat64
	var serviceIDs pq.Int64Array
	var serviceNames pq.StringArray

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.VehicleID,
		&booking.VehicleSize,
		&serviceIDs,
		&booking.BookingType,
		&booking.ScheduledAt,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.ResourceType,
		&booking.ResourceID,
		&lat,
		&lon,
		&serviceNames,
		&booking.TotalPrice,
		&booking.VehicleBrand,
		&booking.VehicleModel,
		&booking.VehicleLicensePlate,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	fillBooking(&booking, serviceIDs, serviceNames, lat, lon, createdAt, updatedAt)
	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime
		var lat, lon sql.NullFloat64
		var serviceIDs pq.Int64Array
		var serviceNames pq.StringArray

		err := rows.Scan(
			&booking.ID,
			&booking.CustomerID,
			&booking.VehicleID,
			&booking.VehicleSize,
			&serviceIDs,
			&booking.BookingType,
			&booking.ScheduledAt,
			&booking.DurationMinutes,
			&booking.Status,
			&booking.ResourceType,
			&booking.ResourceID,
			&lat,
			&lon,
			&serviceNames,
			&booking.TotalPrice,
			&booking.VehicleBrand,
			&booking.VehicleModel,
			&booking.VehicleLicensePlate,
			&booking.Notes,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}

		fillBooking(&booking, serviceIDs, serviceNames, lat, lon, createdAt, updatedAt)
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func fillBooking(
	booking *domain.Booking,
	serviceIDs pq.Int64Array,
	serviceNames pq.StringArray,
	lat, lon sql.NullFloat64,
	createdAt, updatedAt sql.NullTime,
) {
	booking.ServiceIDs = []int64(serviceIDs)
	booking.ServiceNames = []string(serviceNames)
	if lat.Valid && lon.Valid {
		booking.CustomerLocation = &domain.GeoPoint{
			Latitude:  lat.Float64,
			Longitude: lon.Float64,
		}
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
}

// activeStatusStrings возвращает список активных статусов для SQL фильтра
func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// cancellableStatusStrings возвращает статусы, из которых допустима отмена
func cancellableStatusStrings() []string {
	return []string{string(domain.StatusPending), string(domain.StatusConfirmed)}
}
