package create_event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taimeline/taimeline-service/internal/domain"
	eventRepo "github.com/taimeline/taimeline-service/internal/infra/storage/event"
	procedureRepo "github.com/taimeline/taimeline-service/internal/infra/storage/procedure"
	staffRepo "github.com/taimeline/taimeline-service/internal/infra/storage/staff"
)

// UseCase use case для создания события в календаре
type UseCase struct {
	eventRepo     EventRepository
	staffRepo     StaffRepository
	procedureRepo ProcedureRepository
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	staffRepo StaffRepository,
	procedureRepo ProcedureRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:     eventRepo,
		staffRepo:     staffRepo,
		procedureRepo: procedureRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute выполняет use case создания события
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateEvent: business=%s, staff=%s, start=%s",
		req.BusinessID, req.StaffID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateEvent: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем сотрудника
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateEvent: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateEvent: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if staff.BusinessID != req.BusinessID || !staff.IsActive {
		uc.logger.Warn("CreateEvent: staff id=%s is not available for business=%s", req.StaffID, req.BusinessID)
		return nil, ErrStaffNotFound
	}

	// 3. Получаем процедуру, если она указана
	title := req.Title
	endAt := req.EndAt

	if req.ProcedureID != nil {
		procedure, err := uc.procedureRepo.GetByID(ctx, *req.ProcedureID)
		if err != nil {
			if errors.Is(err, procedureRepo.ErrProcedureNotFound) {
				uc.logger.Warn("CreateEvent: procedure id=%s not found", *req.ProcedureID)
				return nil, ErrProcedureNotFound
			}
			uc.logger.Error("CreateEvent: failed to get procedure id=%s: %v", *req.ProcedureID, err)
			return nil, fmt.Errorf("%w: failed to get procedure: %v", ErrInternal, err)
		}

		if procedure.BusinessID != req.BusinessID {
			uc.logger.Warn("CreateEvent: procedure id=%s does not belong to business=%s",
				*req.ProcedureID, req.BusinessID)
			return nil, ErrProcedureNotFound
		}

		if title == "" {
			title = procedure.Name
		}
		if endAt.IsZero() {
			endAt = req.StartAt.Add(time.Duration(procedure.DurationMinutes) * time.Minute)
		}
	}

	source := domain.EventSource(req.Source)
	if req.Source == "" {
		source = domain.SourceAdmin
	}

	// Переменная для хранения результата
	var result *domain.Event

	// 4. Выполняем проверку пересечений и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем активные события сотрудника в интервале с блокировкой (FOR UPDATE)
		events, err := uc.eventRepo.GetByStaffAndRange(txCtx, req.StaffID, req.StartAt, endAt, false)
		if err != nil {
			uc.logger.Error("CreateEvent: failed to get staff events: %v", err)
			return fmt.Errorf("%w: failed to get staff events: %v", ErrInternal, err)
		}

		// 4.2. Проверяем пересечение с существующими событиями
		if domain.HasConflict(req.StartAt, endAt, events) {
			uc.logger.Warn("CreateEvent: interval [%s, %s) conflicts with existing event for staff=%s",
				req.StartAt.Format(time.RFC3339), endAt.Format(time.RFC3339), req.StaffID)
			return ErrSlotNotAvailable
		}

		// 4.3. Создаем событие
		event := &domain.Event{
			BusinessID:  req.BusinessID,
			Title:       title,
			StaffID:     req.StaffID,
			ProcedureID: req.ProcedureID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			StartAt:     req.StartAt,
			EndAt:       endAt,
			Status:      domain.EventStatusConfirmed,
			Source:      source,
			Notes:       req.Notes,
		}

		created, err := uc.eventRepo.Create(txCtx, event)
		if err != nil {
			// Exclusion constraint в БД - последний рубеж против двойного бронирования
			if errors.Is(err, eventRepo.ErrOverlapConstraint) {
				uc.logger.Warn("CreateEvent: overlap constraint violated for staff=%s", req.StaffID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateEvent: failed to create event: %v", err)
			return fmt.Errorf("%w: failed to create event: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateEvent: successfully created event id=%s", result.ID)

	return toResponse(result), nil
}

func toResponse(event *domain.Event) *Response {
	return &Response{
		ID:          event.ID,
		BusinessID:  event.BusinessID,
		StaffID:     event.StaffID,
		ProcedureID: event.ProcedureID,
		Title:       event.Title,
		ClientName:  event.ClientName,
		ClientPhone: event.ClientPhone,
		StartAt:     event.StartAt,
		EndAt:       event.EndAt,
		Status:      string(event.Status),
		Source:      string(event.Source),
		Notes:       event.Notes,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}
