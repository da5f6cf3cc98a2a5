package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/taimeline/taimeline-service/internal/domain"
	"github.com/taimeline/taimeline-service/pkg/dbmetrics"
	"github.com/taimeline/taimeline-service/pkg/psqlbuilder"
)

// exclusionViolationCode код ошибки PostgreSQL при нарушении exclusion constraint
const exclusionViolationCode = "23P01"

// eventColumns полный список колонок таблицы events
var eventColumns = []string{
	"id",
	"business_id",
	"title",
	"description",
	"staff_id",
	"procedure_id",
	"client_name",
	"client_phone",
	"client_email",
	"start_at",
	"end_at",
	"status",
	"source",
	"notes",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с событиями календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое событие
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Проверка "нет пересечения - вставка" должна выполняться в сериализуемой
// транзакции; exclusion constraint в БД страхует инвариант на уровне хранилища
func (r *Repository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("events").
		Columns(
			"id",
			"business_id",
			"title",
			"description",
			"staff_id",
			"procedure_id",
			"client_name",
			"client_phone",
			"client_email",
			"start_at",
			"end_at",
			"status",
			"source",
			"notes",
		).
		Values(
			event.ID,
			event.BusinessID,
			event.Title,
			event.Description,
			event.StaffID,
			event.ProcedureID,
			event.ClientName,
			event.ClientPhone,
			event.ClientEmail,
			event.StartAt,
			event.EndAt,
			event.Status,
			event.Source,
			event.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrOverlapConstraint
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	return event, nil
}

// GetByID получает событие по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	event, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event: %v", ErrScanRow, err)
	}

	return event, nil
}

// GetByStaffAndRange получает события сотрудника, пересекающиеся с интервалом [from, to)
// Используется для построения снапшота занятости при проверке конфликтов.
// По умолчанию отменённые события исключаются.
//
// Если вызов идёт внутри транзакции, добавляется FOR UPDATE - блокировка
// строк сотрудника на время проверки "нет пересечения - вставка"
func (r *Repository) GetByStaffAndRange(ctx context.Context, staffID uuid.UUID, from, to time.Time, includeCancelled bool) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"staff_id": staffID}).
		// Полуоткрытые интервалы: [start_at, end_at) пересекает [from, to)
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC")

	if !includeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.EventStatusCancelled})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetByBusinessWithFilter получает события бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по сотруднику, периоду и включению отменённых событий
func (r *Repository) GetByBusinessWithFilter(ctx context.Context, filter domain.StaffEventsFilter) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"business_id": filter.BusinessID}).
		OrderBy("start_at ASC")

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.RangeStart != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *filter.RangeStart})
	}
	if filter.RangeEnd != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.RangeEnd})
	}
	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.EventStatusCancelled})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// UpdateStatus обновляет статус события
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("events").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Cancel отменяет событие (мягкая отмена - статус меняется, запись остаётся)
// Используется для событий из WhatsApp, чтобы сохранить историю
// для напоминаний и подтверждений
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("events").
		Set("status", domain.EventStatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// Delete удаляет событие физически
// Используется только административным каналом; для WhatsApp-событий
// рекомендуется Cancel
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
}

// execExpectingRow выполняет запрос и проверяет, что затронута хотя бы одна строка
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
		return ErrEventNotFound
	}

	return nil
}

// scanEvent сканирует одну строку в domain.Event
func scanEvent(scan func(dest ...interface{}) error) (*domain.Event, error) {
	var event domain.Event
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&event.ID,
		&event.BusinessID,
		&event.Title,
		&event.Description,
		&event.StaffID,
		&event.ProcedureID,
		&event.ClientName,
		&event.ClientPhone,
		&event.ClientEmail,
		&event.StartAt,
		&event.EndAt,
		&event.Status,
		&event.Source,
		&event.Notes,
		&event.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	return &event, nil
}

// scanEvents сканирует результаты запроса в слайс событий
func scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0)

	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEvents - scan row: %v", ErrScanRow, err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEvents - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// isExclusionViolation проверяет, что ошибка вызвана нарушением exclusion constraint
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == exclusionViolationCode
	}
	return false
}
