package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
	eventRepo "github.com/taimeline/taimeline-service/internal/infra/storage/event"
	"github.com/taimeline/taimeline-service/internal/service/events/models"
)

// Service сервис для работы с событиями календаря
type Service struct {
	eventRepo EventRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса событий
func NewService(eventRepo EventRepository, logger Logger) *Service {
	return &Service{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// GetByID получает событие по ID
func (s *Service) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.EventResponse, error) {
	s.logger.Info("GetByID: fetching event id=%s", id)

	event, err := s.getOwned(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainEvent(event), nil
}

// List получает события бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по сотруднику, периоду и включению отменённых событий
func (s *Service) List(ctx context.Context, req *models.ListEventsRequest) (*models.EventListResponse, error) {
	s.logger.Info("List: fetching events for business=%s, staff=%v", req.BusinessID, req.StaffID)

	if req.BusinessID == uuid.Nil {
		s.logger.Warn("List: missing business id")
		return nil, fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}

	if req.RangeStart != nil && req.RangeEnd != nil && !req.RangeStart.Before(*req.RangeEnd) {
		s.logger.Warn("List: invalid range for business=%s", req.BusinessID)
		return nil, fmt.Errorf("%w: rangeStart must be before rangeEnd", ErrInvalidInput)
	}

	events, err := s.eventRepo.GetByBusinessWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d events for business=%s", len(events), req.BusinessID)
	return models.FromDomainEventList(events), nil
}

// Cancel отменяет событие (мягкая отмена)
// Отменённое событие освобождает время сотрудника, но остается в истории
func (s *Service) Cancel(ctx context.Context, businessID, id uuid.UUID) (*models.EventResponse, error) {
	s.logger.Info("Cancel: cancelling event id=%s", id)

	event, err := s.getOwned(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	if !event.CanBeCancelled() {
		s.logger.Warn("Cancel: event id=%s has status %s and cannot be cancelled", id, event.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrCannotCancel, event.Status)
	}

	if err := s.eventRepo.Cancel(ctx, id); err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("Cancel: repository error for event id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Перечитываем событие, чтобы вернуть актуальные статус и cancelled_at
	cancelled, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Cancel: failed to reload event id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled event id=%s", id)
	return models.FromDomainEvent(cancelled), nil
}

// UpdateStatus меняет статус события (например, completed после визита)
func (s *Service) UpdateStatus(ctx context.Context, businessID, id uuid.UUID, status string) (*models.EventResponse, error) {
	s.logger.Info("UpdateStatus: updating event id=%s to status=%s", id, status)

	domainStatus := domain.EventStatus(status)
	switch domainStatus {
	case domain.EventStatusConfirmed, domain.EventStatusPending, domain.EventStatusCompleted:
	case domain.EventStatusCancelled:
		// Отмена идёт через Cancel, чтобы проставить cancelled_at
		return nil, fmt.Errorf("%w: use cancel endpoint to cancel an event", ErrInvalidStatus)
	default:
		s.logger.Warn("UpdateStatus: unknown status %s for event id=%s", status, id)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	event, err := s.getOwned(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	if event.IsCancelled() {
		s.logger.Warn("UpdateStatus: event id=%s is cancelled", id)
		return nil, fmt.Errorf("%w: event is cancelled", ErrInvalidStatus)
	}

	if err := s.eventRepo.UpdateStatus(ctx, id, domainStatus); err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("UpdateStatus: repository error for event id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	event.Status = domainStatus

	s.logger.Info("UpdateStatus: successfully updated event id=%s", id)
	return models.FromDomainEvent(event), nil
}

// Delete удаляет событие безвозвратно
// В отличие от отмены, удаление убирает событие из истории
func (s *Service) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	s.logger.Info("Delete: deleting event id=%s", id)

	if _, err := s.getOwned(ctx, businessID, id); err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("Delete: repository error for event id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted event id=%s", id)
	return nil
}

// getOwned получает событие и проверяет принадлежность бизнесу
func (s *Service) getOwned(ctx context.Context, businessID, id uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("event id=%s not found", id)
			return nil, ErrEventNotFound
		}
		s.logger.Error("failed to get event id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if event.BusinessID != businessID {
		s.logger.Warn("event id=%s does not belong to business=%s", id, businessID)
		return nil, ErrEventNotFound
	}

	return event, nil
}
