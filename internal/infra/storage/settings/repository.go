package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
	"github.com/taimeline/taimeline-service/pkg/dbmetrics"
	"github.com/taimeline/taimeline-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с настройками календаря бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusiness получает настройки календаря бизнеса
// Если настроек нет, возвращается ErrSettingsNotFound -
// вызывающая сторона применяет значения по умолчанию
func (r *Repository) GetByBusiness(ctx context.Context, businessID uuid.UUID) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"slot_step_minutes",
		"horizon_days",
		"max_slots",
		"request_ttl_minutes",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("calendar_settings").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.CalendarSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.SlotStepMinutes,
		&s.HorizonDays,
		&s.MaxSlots,
		&s.RequestTTLMinutes,
		&s.Timezone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или обновляет настройки календаря бизнеса
// На business_id стоит уникальный индекс - используем ON CONFLICT
func (r *Repository) Upsert(ctx context.Context, s *domain.CalendarSettings) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("calendar_settings").
		Columns(
			"id",
			"business_id",
			"slot_step_minutes",
			"horizon_days",
			"max_slots",
			"request_ttl_minutes",
			"timezone",
		).
		Values(
			s.ID,
			s.BusinessID,
			s.SlotStepMinutes,
			s.HorizonDays,
			s.MaxSlots,
			s.RequestTTLMinutes,
			s.Timezone,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			horizon_days = EXCLUDED.horizon_days,
			max_slots = EXCLUDED.max_slots,
			request_ttl_minutes = EXCLUDED.request_ttl_minutes,
			timezone = EXCLUDED.timezone,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
