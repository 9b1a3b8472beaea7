package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"salon_id",
	"user_id",
	"client_phone",
	"client_name",
	"booking_date",
	"start_time",
	"service_ids",
	"total_duration",
	"master_id",
	"status",
	"suspicious",
	"notes",
	"completed_at",
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

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"salon_id",
			"user_id",
			"client_phone",
			"client_name",
			"booking_date",
			"start_time",
			"service_ids",
			"total_duration",
			"master_id",
			"status",
			"suspicious",
			"notes",
		).
		Values(
			booking.SalonID,
			booking.UserID,
			booking.ClientPhone,
			booking.ClientName,
			booking.BookingDate,
			booking.StartTime,
			pq.Array(booking.ServiceIDs),
			booking.TotalDuration,
			booking.MasterID,
			booking.Status,
			booking.Suspicious,
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
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetOpenByClientPhone получает незавершенные бронирования клиента в салоне
// Используется антифрод-проверкой при создании записи
func (r *Repository) GetOpenByClientPhone(ctx context.Context, salonID int64, phone string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	openStatuses := make([]string, len(domain.OpenStatuses))
	for i, s := range domain.OpenStatuses {
		openStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{
			"salon_id":     salonID,
			"client_phone": phone,
			"status":       openStatuses,
		}).
		OrderBy("booking_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenByClientPhone - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenByClientPhone - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBySalonWithFilter получает бронирования салона с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Мастеру (MasterID) - опционально
// - Периоду (StartDate, EndDate) - опционально
// - Статусу (Status) - опционально
// - Включению отмененных бронирований (IncludeInactive)
//
// Внутри транзакции выборка на одну дату блокируется (FOR UPDATE),
// это защищает проверку пересечений при создании и переносе записи.
func (r *Repository) GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"salon_id": filter.SalonID})

	if filter.MasterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"master_id": *filter.MasterID})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	singleDay := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if singleDay {
		selectBuilder = selectBuilder.OrderBy("start_time ASC", "id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDay {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
// completedAt записывается только для завершенных бронирований
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, completedAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableBookings).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if completedAt != nil {
		updateBuilder = updateBuilder.Set("completed_at", *completedAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Reschedule переносит бронирование на другие дату, время и (или) мастера
func (r *Repository) Reschedule(ctx context.Context, id int64, date time.Time, start types.TimeOfDay, masterID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("booking_date", date).
		Set("start_time", start).
		Set("master_id", masterID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Reschedule", query, args)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Cancel", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var serviceIDs pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.SalonID,
		&booking.UserID,
		&booking.ClientPhone,
		&booking.ClientName,
		&booking.BookingDate,
		&booking.StartTime,
		&serviceIDs,
		&booking.TotalDuration,
		&booking.MasterID,
		&booking.Status,
		&booking.Suspicious,
		&booking.Notes,
		&booking.CompletedAt,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.ServiceIDs = []int64(serviceIDs)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
