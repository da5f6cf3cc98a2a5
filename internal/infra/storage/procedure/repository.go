package procedure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/taimeline/taimeline-service/internal/domain"
	"github.com/taimeline/taimeline-service/pkg/dbmetrics"
	"github.com/taimeline/taimeline-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// procedureColumns полный список колонок таблицы procedures
var procedureColumns = []string{
	"id",
	"business_id",
	"name",
	"description",
	"duration_minutes",
	"price",
	"color",
	"is_active",
	"staff_ids",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с процедурами
// Список квалифицированных сотрудников хранится в колонке staff_ids (uuid[])
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория процедур
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую процедуру
func (r *Repository) Create(ctx context.Context, procedure *domain.Procedure) (*domain.Procedure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if procedure.ID == uuid.Nil {
		procedure.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("procedures").
		Columns(
			"id",
			"business_id",
			"name",
			"description",
			"duration_minutes",
			"price",
			"color",
			"is_active",
			"staff_ids",
		).
		Values(
			procedure.ID,
			procedure.BusinessID,
			procedure.Name,
			procedure.Description,
			procedure.DurationMinutes,
			procedure.Price,
			procedure.Color,
			procedure.IsActive,
			pq.Array(uuidsToStrings(procedure.StaffIDs)),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	procedure.CreatedAt = createdAt.Time
	procedure.UpdatedAt = updatedAt.Time

	return procedure, nil
}

// GetByID получает процедуру по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Procedure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(procedureColumns...).
		From("procedures").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	procedure, err := scanProcedure(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrProcedureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan procedure: %v", ErrScanRow, err)
	}

	return procedure, nil
}

// ListActive получает все активные процедуры бизнеса, отсортированные по имени
func (r *Repository) ListActive(ctx context.Context, businessID uuid.UUID) ([]*domain.Procedure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(procedureColumns...).
		From("procedures").
		Where(squirrel.Eq{"business_id": businessID, "is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	procedures := make([]*domain.Procedure, 0)
	for rows.Next() {
		procedure, err := scanProcedure(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		procedures = append(procedures, procedure)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return procedures, nil
}

// Update обновляет данные процедуры
func (r *Repository) Update(ctx context.Context, procedure *domain.Procedure) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("procedures").
		Set("name", procedure.Name).
		Set("description", procedure.Description).
		Set("duration_minutes", procedure.DurationMinutes).
		Set("price", procedure.Price).
		Set("color", procedure.Color).
		Set("staff_ids", pq.Array(uuidsToStrings(procedure.StaffIDs))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": procedure.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return ErrProcedureNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	procedure.UpdatedAt = updatedAt.Time
	return nil
}

// SoftDelete деактивирует процедуру (is_active = false)
// Запись сохраняется, чтобы исторические события могли на неё ссылаться
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("procedures").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrProcedureNotFound
	}

	return nil
}

// scanProcedure сканирует одну строку в domain.Procedure
func scanProcedure(scan func(dest ...interface{}) error) (*domain.Procedure, error) {
	var procedure domain.Procedure
	var staffIDs pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&procedure.ID,
		&procedure.BusinessID,
		&procedure.Name,
		&procedure.Description,
		&procedure.DurationMinutes,
		&procedure.Price,
		&procedure.Color,
		&procedure.IsActive,
		&staffIDs,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ids, err := stringsToUUIDs(staffIDs)
	if err != nil {
		return nil, fmt.Errorf("parse staff_ids: %v", err)
	}
	procedure.StaffIDs = ids

	procedure.CreatedAt = createdAt.Time
	procedure.UpdatedAt = updatedAt.Time

	return &procedure, nil
}

// uuidsToStrings конвертирует слайс UUID в строки для pq.Array
func uuidsToStrings(ids []uuid.UUID) []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = id.String()
	}
	return result
}

// stringsToUUIDs парсит строки из uuid[] колонки
func stringsToUUIDs(values []string) ([]uuid.UUID, error) {
	result := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	return result, nil
}
