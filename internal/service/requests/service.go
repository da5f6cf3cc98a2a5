package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	requestRepo "github.com/taimeline/taimeline-service/internal/infra/storage/request"
	"github.com/taimeline/taimeline-service/internal/service/requests/models"
)

// Service сервис для работы с заявками на бронирование
// Переходы машины состояний живут в use cases, сервис отвечает за чтение
type Service struct {
	requestRepo RequestRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(requestRepo RequestRepository, logger Logger) *Service {
	return &Service{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.RequestResponse, error) {
	s.logger.Info("GetByID: fetching request id=%s", id)

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: request id=%s not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if request.BusinessID != businessID {
		s.logger.Warn("GetByID: request id=%s does not belong to business=%s", id, businessID)
		return nil, ErrRequestNotFound
	}

	s.logger.Info("GetByID: successfully fetched request id=%s", id)
	return models.FromDomainRequest(request), nil
}

// ListOpen получает открытые заявки бизнеса (для панели одобрения)
func (s *Service) ListOpen(ctx context.Context, businessID uuid.UUID) (*models.RequestListResponse, error) {
	s.logger.Info("ListOpen: fetching open requests for business=%s", businessID)

	if businessID == uuid.Nil {
		s.logger.Warn("ListOpen: missing business id")
		return nil, fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}

	requests, err := s.requestRepo.ListOpenByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("ListOpen: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListOpen - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListOpen: successfully fetched %d requests for business=%s", len(requests), businessID)
	return models.FromDomainRequestList(requests), nil
}
