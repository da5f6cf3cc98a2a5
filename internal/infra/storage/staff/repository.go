package staff

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
	"github.com/taimeline/taimeline-service/pkg/dbmetrics"
	"github.com/taimeline/taimeline-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// staffColumns полный список колонок таблицы staff
var staffColumns = []string{
	"id",
	"business_id",
	"name",
	"email",
	"phone",
	"role",
	"is_active",
	"work_schedule",
	"avatar_url",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сотрудниками
// Рабочее расписание хранится в JSONB колонке work_schedule
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового сотрудника
func (r *Repository) Create(ctx context.Context, staff *domain.Staff) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}

	scheduleJSON, err := json.Marshal(staff.Schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrMarshalSchedule, err)
	}

	query, args, err := psqlbuilder.Insert("staff").
		Columns(
			"id",
			"business_id",
			"name",
			"email",
			"phone",
			"role",
			"is_active",
			"work_schedule",
			"avatar_url",
		).
		Values(
			staff.ID,
			staff.BusinessID,
			staff.Name,
			staff.Email,
			staff.Phone,
			staff.Role,
			staff.IsActive,
			scheduleJSON,
			staff.AvatarURL,
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

	staff.CreatedAt = createdAt.Time
	staff.UpdatedAt = updatedAt.Time

	return staff, nil
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	staff, err := scanStaff(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan staff: %v", ErrScanRow, err)
	}

	return staff, nil
}

// ListActive получает всех активных сотрудников бизнеса, отсортированных по имени
// Порядок по имени стабилен и определяет порядок обхода сотрудников резолвером
func (r *Repository) ListActive(ctx context.Context, businessID uuid.UUID) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
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

	staffList := make([]*domain.Staff, 0)
	for rows.Next() {
		staff, err := scanStaff(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		staffList = append(staffList, staff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return staffList, nil
}

// Update обновляет данные сотрудника
func (r *Repository) Update(ctx context.Context, staff *domain.Staff) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	scheduleJSON, err := json.Marshal(staff.Schedule)
	if err != nil {
		return fmt.Errorf("%w: Update: %v", ErrMarshalSchedule, err)
	}

	query, args, err := psqlbuilder.Update("staff").
		Set("name", staff.Name).
		Set("email", staff.Email).
		Set("phone", staff.Phone).
		Set("role", staff.Role).
		Set("work_schedule", scheduleJSON).
		Set("avatar_url", staff.AvatarURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": staff.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return ErrStaffNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	staff.UpdatedAt = updatedAt.Time
	return nil
}

// SoftDelete деактивирует сотрудника (is_active = false)
// Физическое удаление не используется, чтобы сохранить исторические события
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff").
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
		return ErrStaffNotFound
	}

	return nil
}

// scanStaff сканирует одну строку в domain.Staff
func scanStaff(scan func(dest ...interface{}) error) (*domain.Staff, error) {
	var staff domain.Staff
	var scheduleJSON []byte
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&staff.ID,
		&staff.BusinessID,
		&staff.Name,
		&staff.Email,
		&staff.Phone,
		&staff.Role,
		&staff.IsActive,
		&scheduleJSON,
		&staff.AvatarURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(scheduleJSON) > 0 {
		if err := json.Unmarshal(scheduleJSON, &staff.Schedule); err != nil {
			return nil, fmt.Errorf("unmarshal work schedule: %v", err)
		}
	}

	staff.CreatedAt = createdAt.Time
	staff.UpdatedAt = updatedAt.Time

	return &staff, nil
}
