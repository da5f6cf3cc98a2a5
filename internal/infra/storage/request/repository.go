package request

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
	"github.com/taimeline/taimeline-service/pkg/dbmetrics"
	"github.com/taimeline/taimeline-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// requestColumns полный список колонок таблицы booking_requests
var requestColumns = []string{
	"id",
	"business_id",
	"client_phone",
	"client_name",
	"procedure_id",
	"requested_date",
	"requested_time",
	"offers",
	"chosen_staff_id",
	"chosen_start_at",
	"chosen_end_at",
	"status",
	"conversation_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на бронирование
// Список предложенных слотов хранится в JSONB колонке offers
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку
func (r *Repository) Create(ctx context.Context, request *domain.BookingRequest) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}

	offersJSON, err := json.Marshal(request.Offers)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrMarshalOffers, err)
	}

	query, args, err := psqlbuilder.Insert("booking_requests").
		Columns(
			"id",
			"business_id",
			"client_phone",
			"client_name",
			"procedure_id",
			"requested_date",
			"requested_time",
			"offers",
			"status",
			"conversation_id",
		).
		Values(
			request.ID,
			request.BusinessID,
			request.ClientPhone,
			request.ClientName,
			request.ProcedureID,
			request.RequestedDate,
			request.RequestedTime,
			offersJSON,
			request.Status,
			request.ConversationID,
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

	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return request, nil
}

// GetByID получает заявку по ID
// Если вызов идёт внутри транзакции, добавляется FOR UPDATE -
// два конкурентных одобрения одной заявки не пройдут проверку статуса одновременно
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("booking_requests").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	request, err := scanRequest(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// GetOpenByConversation получает последнюю открытую заявку переписки
// Используется для корреляции ответов клиента с его заявкой
func (r *Repository) GetOpenByConversation(ctx context.Context, businessID uuid.UUID, conversationID string) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("booking_requests").
		Where(squirrel.Eq{
			"business_id":     businessID,
			"conversation_id": conversationID,
			"status":          openStatusStrings(),
		}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenByConversation - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	request, err := scanRequest(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenByConversation - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// ListOpenByBusiness получает все открытые заявки бизнеса (для панели одобрения)
// Сортировка от новых к старым, как в административном интерфейсе
func (r *Repository) ListOpenByBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("booking_requests").
		Where(squirrel.Eq{
			"business_id": businessID,
			"status":      openStatusStrings(),
		}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.BookingRequest, 0)
	for rows.Next() {
		request, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOpenByBusiness - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOpenByBusiness - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// Update сохраняет изменённые статус и выбранный слот заявки
func (r *Repository) Update(ctx context.Context, request *domain.BookingRequest) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	offersJSON, err := json.Marshal(request.Offers)
	if err != nil {
		return fmt.Errorf("%w: Update: %v", ErrMarshalOffers, err)
	}

	query, args, err := psqlbuilder.Update("booking_requests").
		Set("client_name", request.ClientName).
		Set("offers", offersJSON).
		Set("chosen_staff_id", request.ChosenStaffID).
		Set("chosen_start_at", request.ChosenStartAt).
		Set("chosen_end_at", request.ChosenEndAt).
		Set("status", request.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": request.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// ExpireOlderThan переводит в expired открытые заявки бизнеса, созданные раньше cutoff
// Возвращает количество переведённых заявок
func (r *Repository) ExpireOlderThan(ctx context.Context, businessID uuid.UUID, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_requests").
		Set("status", domain.RequestStatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"business_id": businessID,
			"status":      openStatusStrings(),
		}).
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireOlderThan - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireOlderThan - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireOlderThan - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// openStatusStrings возвращает строковые значения открытых статусов заявки
func openStatusStrings() []string {
	result := make([]string, len(domain.OpenRequestStatuses))
	for i, s := range domain.OpenRequestStatuses {
		result[i] = string(s)
	}
	return result
}

// scanRequest сканирует одну строку в domain.BookingRequest
func scanRequest(scan func(dest ...interface{}) error) (*domain.BookingRequest, error) {
	var request domain.BookingRequest
	var offersJSON []byte
	var chosenStaffID uuid.NullUUID
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&request.ID,
		&request.BusinessID,
		&request.ClientPhone,
		&request.ClientName,
		&request.ProcedureID,
		&request.RequestedDate,
		&request.RequestedTime,
		&offersJSON,
		&chosenStaffID,
		&request.ChosenStartAt,
		&request.ChosenEndAt,
		&request.Status,
		&request.ConversationID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(offersJSON) > 0 {
		if err := json.Unmarshal(offersJSON, &request.Offers); err != nil {
			return nil, fmt.Errorf("unmarshal offers: %v", err)
		}
	}

	if chosenStaffID.Valid {
		request.ChosenStaffID = &chosenStaffID.UUID
	}

	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return &request, nil
}
