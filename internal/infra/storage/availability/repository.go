package availability

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// blockColumns колонки таблицы availability_blocks в порядке сканирования
var blockColumns = []string{
	"id",
	"provider_id",
	"title",
	"start_time",
	"end_time",
	"is_recurring",
	"recurrence",
	"type",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с блоками доступности провайдера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блоков доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый блок доступности
// Инвариант start < end проверяется до записи
func (r *Repository) Create(ctx context.Context, block *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error) {
	if !block.Interval().IsValid() {
		return nil, ErrInvalidInterval
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	recurrence, err := encodeRecurrence(block)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("availability_blocks").
		Columns(
			"provider_id",
			"title",
			"start_time",
			"end_time",
			"is_recurring",
			"recurrence",
			"type",
			"notes",
		).
		Values(
			block.ProviderID,
			block.Title,
			block.StartTime,
			block.EndTime,
			block.IsRecurring,
			recurrence,
			block.Type,
			block.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time
	block.UpdatedAt = updatedAt.Time

	return block, nil
}

// GetByID получает блок доступности по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("availability_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	block, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %v", ErrScanRow, err)
	}

	return block, nil
}

// FindOverlapping возвращает блоки типа available указанного провайдера,
// чей интервал пересекается с полуоткрытым окном [start, end).
// Граничащие интервалы (end одного == start другого) пересечением НЕ считаются.
//
// Для recurring блоков SQL возвращает кандидатов, а конкретные вхождения
// разворачиваются и фильтруются по окну уже в Go — предикат пересечения
// всегда сравнивает только простые интервалы.
//
// excludeID исключает блок из проверки (используется при повторной проверке
// существующего блока во время обновления).
func (r *Repository) FindOverlapping(ctx context.Context, providerID int64, start, end time.Time, excludeID *int64) ([]*domain.AvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockColumns...).
		From("availability_blocks").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"type": domain.BlockTypeAvailable}).
		Where(squirrel.Or{
			// Полуоткрытое пересечение для одиночных блоков
			squirrel.And{
				squirrel.Eq{"is_recurring": false},
				squirrel.Lt{"start_time": end},
				squirrel.Gt{"end_time": start},
			},
			// Recurring блоки проверяются по materialized вхождениям ниже
			squirrel.Eq{"is_recurring": true},
		}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	// Внутри транзакции блокируем строки провайдера на время проверки конфликтов
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	candidates, err := scanBlocks(rows)
	if err != nil {
		return nil, err
	}

	return filterByWindow(candidates, start, end), nil
}

// FindInRange возвращает все блоки провайдера (любого типа), пересекающиеся
// с окном [start, end), отсортированные по start_time по возрастанию
func (r *Repository) FindInRange(ctx context.Context, providerID int64, start, end time.Time) ([]*domain.AvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("availability_blocks").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"is_recurring": false},
				squirrel.Lt{"start_time": end},
				squirrel.Gt{"end_time": start},
			},
			squirrel.Eq{"is_recurring": true},
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	candidates, err := scanBlocks(rows)
	if err != nil {
		return nil, err
	}

	return filterByWindow(candidates, start, end), nil
}

// Update обновляет блок доступности
// Инвариант start < end проверяется до записи
func (r *Repository) Update(ctx context.Context, block *domain.AvailabilityBlock) error {
	if !block.Interval().IsValid() {
		return ErrInvalidInterval
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	recurrence, err := encodeRecurrence(block)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("availability_blocks").
		Set("title", block.Title).
		Set("start_time", block.StartTime).
		Set("end_time", block.EndTime).
		Set("is_recurring", block.IsRecurring).
		Set("recurrence", recurrence).
		Set("type", block.Type).
		Set("notes", block.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": block.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Update")
}

// ShiftInterval сдвигает интервал блока на новые границы
// Используется при одобрении переноса бронирования со связанным блоком
func (r *Repository) ShiftInterval(ctx context.Context, id int64, start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidInterval
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_blocks").
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ShiftInterval - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "ShiftInterval")
}

// Delete удаляет блок доступности
// Каскадных эффектов нет: связанные бронирования остаются как есть
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
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
		return ErrBlockNotFound
	}

	return nil
}

// filterByWindow оставляет только блоки, имеющие хотя бы одно вхождение в окне
func filterByWindow(blocks []*domain.AvailabilityBlock, start, end time.Time) []*domain.AvailabilityBlock {
	result := make([]*domain.AvailabilityBlock, 0, len(blocks))
	for _, block := range blocks {
		if len(block.OccurrencesWithin(start, end)) > 0 {
			result = append(result, block)
		}
	}
	return result
}

// encodeRecurrence сериализует recurrence паттерн в JSON для хранения в jsonb колонке
func encodeRecurrence(block *domain.AvailabilityBlock) ([]byte, error) {
	if block.Recurrence == nil {
		return nil, nil
	}
	data, err := json.Marshal(block.Recurrence)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeRecurrence, err)
	}
	return data, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBlock сканирует одну строку в модель блока
func scanBlock(row rowScanner) (*domain.AvailabilityBlock, error) {
	var block domain.AvailabilityBlock
	var recurrence []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&block.ID,
		&block.ProviderID,
		&block.Title,
		&block.StartTime,
		&block.EndTime,
		&block.IsRecurring,
		&recurrence,
		&block.Type,
		&block.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(recurrence) > 0 {
		var pattern domain.RecurrencePattern
		if err := json.Unmarshal(recurrence, &pattern); err != nil {
			return nil, fmt.Errorf("decode recurrence: %v", err)
		}
		block.Recurrence = &pattern
	}

	block.CreatedAt = createdAt.Time
	block.UpdatedAt = updatedAt.Time

	return &block, nil
}

// scanBlocks сканирует результаты запроса в слайс блоков
func scanBlocks(rows *sql.Rows) ([]*domain.AvailabilityBlock, error) {
	blocks := make([]*domain.AvailabilityBlock, 0)

	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
