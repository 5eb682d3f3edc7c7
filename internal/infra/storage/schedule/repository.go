package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// reservationColumns колонки таблицы schedule_reservations в порядке сканирования
var reservationColumns = []string{
	"id",
	"provider_id",
	"job_id",
	"application_id",
	"scheduled_start_time",
	"scheduled_end_time",
	"actual_start_time",
	"actual_end_time",
	"status",
	"availability_block_id",
	"time_entry_id",
	"location",
	"reminder_sent",
	"reminder_sent_at",
	"lateness_alert_sent",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Инвариант start < end проверяется до записи
func (r *Repository) Create(ctx context.Context, reservation *domain.ScheduleReservation) (*domain.ScheduleReservation, error) {
	if !reservation.Interval().IsValid() {
		return nil, ErrInvalidInterval
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_reservations").
		Columns(
			"provider_id",
			"job_id",
			"application_id",
			"scheduled_start_time",
			"scheduled_end_time",
			"status",
			"availability_block_id",
			"location",
		).
		Values(
			reservation.ProviderID,
			reservation.JobID,
			reservation.ApplicationID,
			reservation.ScheduledStartTime,
			reservation.ScheduledEndTime,
			reservation.Status,
			reservation.AvailabilityBlockID,
			reservation.Location,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("schedule_reservations").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку (используется при одобрении переноса)
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// FindInRange возвращает бронирования провайдера, ПОЛНОСТЬЮ входящие в окно
// [start, end]: scheduledStart >= start И scheduledEnd <= end.
// Намеренно полное включение, а не пересечение — выборка обслуживает листинг
// календарного окна, а не проверку конфликтов.
func (r *Repository) FindInRange(ctx context.Context, filter domain.ScheduleRangeFilter) ([]*domain.ScheduleReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("schedule_reservations").
		Where(squirrel.Eq{"provider_id": filter.ProviderID}).
		Where(squirrel.GtOrEq{"scheduled_start_time": filter.Start}).
		Where(squirrel.LtOrEq{"scheduled_end_time": filter.End}).
		OrderBy("scheduled_start_time ASC")

	// Фильтрация по статусу, если указан
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// FindUpcoming возвращает будущие бронирования провайдера со статусом scheduled,
// отсортированные по времени начала, не более limit штук
func (r *Repository) FindUpcoming(ctx context.Context, providerID int64, now time.Time, limit uint64) ([]*domain.ScheduleReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("schedule_reservations").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"status": domain.ReservationScheduled}).
		Where(squirrel.GtOrEq{"scheduled_start_time": now}).
		OrderBy("scheduled_start_time ASC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindUpcoming - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// FindNeedingReminder возвращает бронирования, которым нужно напоминание:
// статус scheduled, напоминание ещё не отправлено, начало в окне
// [now, now + minutesBefore]
func (r *Repository) FindNeedingReminder(ctx context.Context, now time.Time, minutesBefore int) ([]*domain.ScheduleReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	windowStart, windowEnd := domain.ReminderWindow(now, minutesBefore)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("schedule_reservations").
		Where(squirrel.Eq{"status": domain.ReservationScheduled}).
		Where(squirrel.Eq{"reminder_sent": false}).
		Where(squirrel.GtOrEq{"scheduled_start_time": windowStart}).
		Where(squirrel.LtOrEq{"scheduled_start_time": windowEnd}).
		OrderBy("scheduled_start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindNeedingReminder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindNeedingReminder - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// FindLate возвращает бронирования, начало которых просрочено:
// статус scheduled, алерт ещё не отправлен, начало в окне
// (now - 60 минут, now - 5 минут)
func (r *Repository) FindLate(ctx context.Context, now time.Time) ([]*domain.ScheduleReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	windowStart, windowEnd := domain.LatenessWindow(now)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("schedule_reservations").
		Where(squirrel.Eq{"status": domain.ReservationScheduled}).
		Where(squirrel.Eq{"lateness_alert_sent": false}).
		Where(squirrel.Gt{"scheduled_start_time": windowStart}).
		Where(squirrel.Lt{"scheduled_start_time": windowEnd}).
		OrderBy("scheduled_start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindLate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindLate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// MarkReminderSent помечает бронирование как получившее напоминание
// Флаг выставляется только после попытки отправки — это и делает скан идемпотентным
func (r *Repository) MarkReminderSent(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_reservations").
		Set("reminder_sent", true).
		Set("reminder_sent_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkReminderSent")
}

// MarkLatenessAlertSent помечает бронирование как получившее алерт об опоздании
func (r *Repository) MarkLatenessAlertSent(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_reservations").
		Set("lateness_alert_sent", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkLatenessAlertSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkLatenessAlertSent")
}

// UpdateTimes переносит бронирование на новый интервал и выставляет статус rescheduled
// Используется при одобрении запроса на перенос
func (r *Repository) UpdateTimes(ctx context.Context, id int64, start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidInterval
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_reservations").
		Set("scheduled_start_time", start).
		Set("scheduled_end_time", end).
		Set("status", domain.ReservationRescheduled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTimes - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateTimes")
}

// Start переводит бронирование в in_progress с фиксацией фактического начала
func (r *Repository) Start(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_reservations").
		Set("status", domain.ReservationInProgress).
		Set("actual_start_time", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Start - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Start")
}

// Complete переводит бронирование в completed с фиксацией фактического завершения
func (r *Repository) Complete(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_reservations").
		Set("status", domain.ReservationCompleted).
		Set("actual_end_time", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Complete")
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// execExpectingRow выполняет команду и требует ровно одну затронутую строку
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
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

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку в модель бронирования
func scanReservation(row rowScanner) (*domain.ScheduleReservation, error) {
	var reservation domain.ScheduleReservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.ProviderID,
		&reservation.JobID,
		&reservation.ApplicationID,
		&reservation.ScheduledStartTime,
		&reservation.ScheduledEndTime,
		&reservation.ActualStartTime,
		&reservation.ActualEndTime,
		&reservation.Status,
		&reservation.AvailabilityBlockID,
		&reservation.TimeEntryID,
		&reservation.Location,
		&reservation.ReminderSent,
		&reservation.ReminderSentAt,
		&reservation.LatenessAlertSent,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.ScheduleReservation, error) {
	reservations := make([]*domain.ScheduleReservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
