package reschedule

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

// requestColumns колонки таблицы reschedule_requests в порядке сканирования
var requestColumns = []string{
	"id",
	"schedule_id",
	"job_id",
	"requested_by",
	"requested_for",
	"original_start_time",
	"original_end_time",
	"requested_start_time",
	"requested_end_time",
	"reason",
	"status",
	"approved_by",
	"approved_at",
	"rejection_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с запросами на перенос бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов на перенос
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый запрос на перенос в статусе pending
func (r *Repository) Create(ctx context.Context, request *domain.RescheduleRequest) (*domain.RescheduleRequest, error) {
	if !request.RequestedInterval().IsValid() {
		return nil, ErrInvalidInterval
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reschedule_requests").
		Columns(
			"schedule_id",
			"job_id",
			"requested_by",
			"requested_for",
			"original_start_time",
			"original_end_time",
			"requested_start_time",
			"requested_end_time",
			"reason",
			"status",
		).
		Values(
			request.ScheduleID,
			request.JobID,
			request.RequestedBy,
			request.RequestedFor,
			request.OriginalStartTime,
			request.OriginalEndTime,
			request.RequestedStartTime,
			request.RequestedEndTime,
			request.Reason,
			request.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&request.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return request, nil
}

// GetByID получает запрос на перенос по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("reschedule_requests").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку на время принятия решения
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	request, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// FindPendingFor возвращает все pending запросы, ожидающие решения пользователя
func (r *Repository) FindPendingFor(ctx context.Context, userID int64) ([]*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("reschedule_requests").
		Where(squirrel.Eq{"requested_for": userID}).
		Where(squirrel.Eq{"status": domain.ReschedulePending}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindPendingFor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindPendingFor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// FindByStatus возвращает все запросы в указанном статусе
func (r *Repository) FindByStatus(ctx context.Context, status domain.RescheduleStatus) ([]*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("reschedule_requests").
		Where(squirrel.Eq{"status": status}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// Approve переводит pending запрос в approved
// Guard по текущему статусу выполняется в самом UPDATE: из pending разрешён
// ровно один переход, повторное одобрение получает ErrNotPending
func (r *Repository) Approve(ctx context.Context, id int64, approvedBy int64, approvedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reschedule_requests").
		Set("status", domain.RescheduleApproved).
		Set("approved_by", approvedBy).
		Set("approved_at", approvedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.ReschedulePending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Approve - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "Approve")
}

// Reject переводит pending запрос в rejected с указанием причины
func (r *Repository) Reject(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reschedule_requests").
		Set("status", domain.RescheduleRejected).
		Set("rejection_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.ReschedulePending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reject - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "Reject")
}

// Cancel переводит pending запрос в cancelled (отзыв инициатором)
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reschedule_requests").
		Set("status", domain.RescheduleCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.ReschedulePending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "Cancel")
}

// Delete удаляет запрос на перенос (физическое удаление, использовать осторожно)
// Запрос — единственный след исходного интервала после одобрения,
// рекомендуется хранить историю
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reschedule_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// execGuarded выполняет guarded UPDATE из pending статуса
// Ноль затронутых строк означает, что запрос либо не существует,
// либо уже переведён в терминальный статус
func (r *Repository) execGuarded(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrNotPending
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRequest сканирует одну строку в модель запроса
func scanRequest(row rowScanner) (*domain.RescheduleRequest, error) {
	var request domain.RescheduleRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&request.ID,
		&request.ScheduleID,
		&request.JobID,
		&request.RequestedBy,
		&request.RequestedFor,
		&request.OriginalStartTime,
		&request.OriginalEndTime,
		&request.RequestedStartTime,
		&request.RequestedEndTime,
		&request.Reason,
		&request.Status,
		&request.ApprovedBy,
		&request.ApprovedAt,
		&request.RejectionReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return &request, nil
}

// scanRequests сканирует результаты запроса в слайс моделей
func scanRequests(rows *sql.Rows) ([]*domain.RescheduleRequest, error) {
	requests := make([]*domain.RescheduleRequest, 0)

	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}
