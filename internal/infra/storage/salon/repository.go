package salon

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

const (
	tableSettings  = "salon_settings"
	tableOverrides = "schedule_overrides"
)

var settingsColumns = []string{
	"salon_id",
	"schedule_mode",
	"weekly_schedule",
	"shift_defaults",
	"slot_interval_minutes",
	"buffer_minutes",
	"booking_horizon_months",
	"allow_unassigned",
	"timezone",
	"last_assigned_master_index",
}

// Repository репозиторий настроек расписания салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салона
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSettings получает настройки салона
// Внутри транзакции строка блокируется: курсор ротации читается и пишется в одной транзакции
func (r *Repository) GetSettings(ctx context.Context, salonID int64) (*domain.SalonSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(append(settingsColumns, "updated_at")...).
		From(tableSettings).
		Where(squirrel.Eq{"salon_id": salonID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %w", ErrBuildQuery, err)
	}

	var (
		settings         domain.SalonSettings
		weekly, shiftRaw []byte
		updatedAt        sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.SalonID,
		&settings.ScheduleMode,
		&weekly,
		&shiftRaw,
		&settings.SlotIntervalMinutes,
		&settings.BufferMinutes,
		&settings.BookingHorizonMonths,
		&settings.AllowUnassigned,
		&settings.Timezone,
		&settings.LastAssignedMasterIndex,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - scan settings: %w", ErrScanRow, err)
	}

	if len(weekly) > 0 {
		if err := json.Unmarshal(weekly, &settings.WeeklySchedule); err != nil {
			return nil, fmt.Errorf("%w: GetSettings - decode weekly_schedule: %w", ErrScanRow, err)
		}
	}
	if len(shiftRaw) > 0 {
		if err := json.Unmarshal(shiftRaw, &settings.ShiftDefaults); err != nil {
			return nil, fmt.Errorf("%w: GetSettings - decode shift_defaults: %w", ErrScanRow, err)
		}
	}
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// UpsertSettings сохраняет настройки салона
// Курсор ротации при обновлении не меняется, его пишет только SaveCursor
func (r *Repository) UpsertSettings(ctx context.Context, settings *domain.SalonSettings) (*domain.SalonSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	values, err := settingsValues(settings)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert(tableSettings).
		Columns(settingsColumns...).
		Values(values...).
		Suffix(`ON CONFLICT (salon_id) DO UPDATE SET
			schedule_mode = EXCLUDED.schedule_mode,
			weekly_schedule = EXCLUDED.weekly_schedule,
			shift_defaults = EXCLUDED.shift_defaults,
			slot_interval_minutes = EXCLUDED.slot_interval_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			booking_horizon_months = EXCLUDED.booking_horizon_months,
			allow_unassigned = EXCLUDED.allow_unassigned,
			timezone = EXCLUDED.timezone,
			updated_at = NOW()
		RETURNING last_assigned_master_index, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - build upsert query: %w", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&settings.LastAssignedMasterIndex, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - execute upsert: %w", ErrExecQuery, err)
	}
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}

// SaveCursor сохраняет курсор ротации мастеров
// Если салон работал на настройках по умолчанию, строка создается целиком
func (r *Repository) SaveCursor(ctx context.Context, settings *domain.SalonSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	values, err := settingsValues(settings)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert(tableSettings).
		Columns(settingsColumns...).
		Values(values...).
		Suffix(`ON CONFLICT (salon_id) DO UPDATE SET
			last_assigned_master_index = EXCLUDED.last_assigned_master_index,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveCursor - build upsert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveCursor - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetOverrides получает исключения расписания за период [from, to]
func (r *Repository) GetOverrides(ctx context.Context, salonID int64, from, to time.Time) (domain.ScheduleOverrides, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"override_date",
		"is_working",
		"start_time",
		"end_time",
		"breaks",
	).
		From(tableOverrides).
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.GtOrEq{"override_date": from}).
		Where(squirrel.LtOrEq{"override_date": to}).
		OrderBy("override_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrides - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrides - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make(domain.ScheduleOverrides)
	for rows.Next() {
		var (
			date       time.Time
			ov         domain.ScheduleOverride
			start, end sql.NullString
			breaks     []byte
		)
		if err := rows.Scan(&date, &ov.IsWorking, &start, &end, &breaks); err != nil {
			return nil, fmt.Errorf("%w: GetOverrides - scan row: %w", ErrScanRow, err)
		}
		if len(breaks) > 0 {
			if err := json.Unmarshal(breaks, &ov.Breaks); err != nil {
				return nil, fmt.Errorf("%w: GetOverrides - decode breaks: %w", ErrScanRow, err)
			}
		}
		ov.Date = date.Format(domain.DateFormat)
		ov.Start = start.String
		ov.End = end.String
		overrides[ov.Date] = ov
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverrides - rows error: %w", ErrScanRow, err)
	}

	return overrides, nil
}

// UpsertOverrides сохраняет исключения расписания одним запросом
func (r *Repository) UpsertOverrides(ctx context.Context, salonID int64, overrides []domain.ScheduleOverride) error {
	if len(overrides) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(tableOverrides).
		Columns("salon_id", "override_date", "is_working", "start_time", "end_time", "breaks")

	for _, ov := range overrides {
		breaks, err := json.Marshal(ov.Breaks)
		if err != nil {
			return fmt.Errorf("%w: UpsertOverrides - breaks: %w", ErrEncode, err)
		}
		insertBuilder = insertBuilder.Values(
			salonID,
			ov.Date,
			ov.IsWorking,
			nullIfEmpty(ov.Start),
			nullIfEmpty(ov.End),
			string(breaks),
		)
	}

	query, args, err := insertBuilder.
		Suffix(`ON CONFLICT (salon_id, override_date) DO UPDATE SET
			is_working = EXCLUDED.is_working,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			breaks = EXCLUDED.breaks,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertOverrides - build upsert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertOverrides - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

// DeleteOverride удаляет исключение расписания на дату
func (r *Repository) DeleteOverride(ctx context.Context, salonID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableOverrides).
		Where(squirrel.Eq{"salon_id": salonID, "override_date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

func settingsValues(s *domain.SalonSettings) ([]interface{}, error) {
	weekly, err := json.Marshal(s.WeeklySchedule)
	if err != nil {
		return nil, fmt.Errorf("%w: weekly_schedule: %w", ErrEncode, err)
	}
	shiftDefaults, err := json.Marshal(s.ShiftDefaults)
	if err != nil {
		return nil, fmt.Errorf("%w: shift_defaults: %w", ErrEncode, err)
	}

	return []interface{}{
		s.SalonID,
		s.ScheduleMode,
		string(weekly),
		string(shiftDefaults),
		s.SlotIntervalMinutes,
		s.BufferMinutes,
		s.BookingHorizonMonths,
		s.AllowUnassigned,
		s.Timezone,
		s.LastAssignedMasterIndex,
	}, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
