package find_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
	procedureRepo "github.com/taimeline/taimeline-service/internal/infra/storage/procedure"
	settingsRepo "github.com/taimeline/taimeline-service/internal/infra/storage/settings"
)

// UseCase use case для подбора доступных слотов под процедуру
type UseCase struct {
	staffRepo     StaffRepository
	procedureRepo ProcedureRepository
	eventRepo     EventRepository
	settingsRepo  SettingsRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	staffRepo StaffRepository,
	procedureRepo ProcedureRepository,
	eventRepo EventRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		staffRepo:     staffRepo,
		procedureRepo: procedureRepo,
		eventRepo:     eventRepo,
		settingsRepo:  settingsRepo,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case подбора доступных слотов.
//
// Слоты перебираются по дням горизонта, внутри дня - по сотрудникам в
// стабильном порядке. Перебор останавливается, как только набран лимит.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindAvailableSlots: business=%s, procedure=%s", req.BusinessID, req.ProcedureID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем настройки календаря с учетом дефолтов
	settings, err := uc.settingsRepo.GetByBusiness(ctx, req.BusinessID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("FindAvailableSlots: failed to get settings for business=%s: %v", req.BusinessID, err)
			return nil, fmt.Errorf("%w: failed to get calendar settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultCalendarSettings(req.BusinessID)
		uc.logger.Info("FindAvailableSlots: using default settings for business=%s", req.BusinessID)
	}

	horizonDays := req.HorizonDays
	if horizonDays == 0 {
		horizonDays = settings.HorizonDays
	}
	maxSlots := req.MaxResults
	if maxSlots == 0 {
		maxSlots = settings.MaxSlots
	}

	// 3. Получаем процедуру. Неизвестная или неактивная процедура
	// означает пустой результат, а не ошибку
	procedure, err := uc.procedureRepo.GetByID(ctx, req.ProcedureID)
	if err != nil {
		if errors.Is(err, procedureRepo.ErrProcedureNotFound) {
			uc.logger.Warn("FindAvailableSlots: procedure id=%s not found", req.ProcedureID)
			return emptyResponse(req), nil
		}
		uc.logger.Error("FindAvailableSlots: failed to get procedure id=%s: %v", req.ProcedureID, err)
		return nil, fmt.Errorf("%w: failed to get procedure: %v", ErrInternal, err)
	}

	if procedure.BusinessID != req.BusinessID || !procedure.IsActive {
		uc.logger.Warn("FindAvailableSlots: procedure id=%s is not available for business=%s",
			req.ProcedureID, req.BusinessID)
		return emptyResponse(req), nil
	}

	// 4. Получаем активных сотрудников и отбираем тех, кто выполняет процедуру
	allStaff, err := uc.staffRepo.ListActive(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("FindAvailableSlots: failed to list staff for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	var qualified []*domain.Staff
	for _, s := range allStaff {
		if procedure.CanBePerformedBy(s.ID) {
			qualified = append(qualified, s)
		}
	}

	if len(qualified) == 0 {
		uc.logger.Info("FindAvailableSlots: no qualified staff for procedure id=%s", req.ProcedureID)
		return emptyResponse(req), nil
	}

	// 5. Определяем начало горизонта в таймзоне бизнеса
	loc := settings.Location()

	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = uc.timeProvider.Now()
	}
	horizonStart := dayStart(startDate, loc)
	horizonEnd := horizonStart.AddDate(0, 0, horizonDays)

	// 6. Снимаем снапшот событий каждого сотрудника один раз на весь горизонт
	eventsByStaff := make(map[uuid.UUID][]*domain.Event, len(qualified))
	for _, s := range qualified {
		events, err := uc.eventRepo.GetByStaffAndRange(ctx, s.ID, horizonStart, horizonEnd, false)
		if err != nil {
			uc.logger.Error("FindAvailableSlots: failed to get events for staff=%s: %v", s.ID, err)
			return nil, fmt.Errorf("%w: failed to get staff events: %v", ErrInternal, err)
		}
		eventsByStaff[s.ID] = events
	}

	// 7. Перебираем дни и сотрудников, проверяя кандидатов на пересечения
	duration := time.Duration(procedure.DurationMinutes) * time.Minute
	slots := make([]domain.AvailableSlot, 0, maxSlots)

	for day := 0; day < horizonDays && len(slots) < maxSlots; day++ {
		date := horizonStart.AddDate(0, 0, day)
		weekday := date.Weekday()

		for _, s := range qualified {
			if len(slots) >= maxSlots {
				break
			}

			intervals := s.Schedule.IntervalsFor(weekday)
			for _, interval := range intervals {
				candidates, err := generateCandidateStarts(interval, date, loc, procedure.DurationMinutes, settings.SlotStepMinutes)
				if err != nil {
					uc.logger.Error("FindAvailableSlots: failed to build candidates for staff=%s: %v", s.ID, err)
					return nil, fmt.Errorf("%w: failed to build slot candidates: %v", ErrInternal, err)
				}

				for _, start := range candidates {
					if len(slots) >= maxSlots {
						break
					}

					end := start.Add(duration)
					if domain.HasConflict(start, end, eventsByStaff[s.ID]) {
						continue
					}

					slots = append(slots, domain.AvailableSlot{
						StaffID:   s.ID,
						StaffName: s.Name,
						StartAt:   start,
						EndAt:     end,
					})
				}
			}
		}
	}

	uc.logger.Info("FindAvailableSlots: found %d slots for business=%s, procedure=%s",
		len(slots), req.BusinessID, req.ProcedureID)

	return &Response{
		BusinessID:  req.BusinessID,
		ProcedureID: req.ProcedureID,
		Slots:       slots,
	}, nil
}

func emptyResponse(req *Request) *Response {
	return &Response{
		BusinessID:  req.BusinessID,
		ProcedureID: req.ProcedureID,
		Slots:       []domain.AvailableSlot{},
	}
}
