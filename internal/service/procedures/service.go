package procedures

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
	procedureRepo "github.com/taimeline/taimeline-service/internal/infra/storage/procedure"
	staffRepo "github.com/taimeline/taimeline-service/internal/infra/storage/staff"
	"github.com/taimeline/taimeline-service/internal/service/procedures/models"
)

// Service сервис для работы с процедурами
type Service struct {
	procedureRepo ProcedureRepository
	staffRepo     StaffRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса процедур
func NewService(
	procedureRepo ProcedureRepository,
	staffRepo StaffRepository,
	logger Logger,
) *Service {
	return &Service{
		procedureRepo: procedureRepo,
		staffRepo:     staffRepo,
		logger:        logger,
	}
}

// Create создает новую процедуру
// Все назначенные сотрудники должны существовать и принадлежать бизнесу
func (s *Service) Create(ctx context.Context, req *models.CreateProcedureRequest) (*models.ProcedureResponse, error) {
	s.logger.Info("Create: creating procedure for business=%s, name=%s", req.BusinessID, req.Name)

	if req.BusinessID == uuid.Nil {
		s.logger.Warn("Create: missing business id")
		return nil, fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}
	if req.Name == "" {
		s.logger.Warn("Create: missing name for business=%s", req.BusinessID)
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if err := validateDuration(req.DurationMinutes); err != nil {
		s.logger.Warn("Create: invalid duration for business=%s: %v", req.BusinessID, err)
		return nil, err
	}

	if err := s.validateStaffIDs(ctx, req.BusinessID, req.StaffIDs); err != nil {
		s.logger.Warn("Create: staff validation failed for business=%s: %v", req.BusinessID, err)
		return nil, err
	}

	procedure := &domain.Procedure{
		BusinessID:      req.BusinessID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Color:           req.Color,
		IsActive:        true,
		StaffIDs:        req.StaffIDs,
	}

	created, err := s.procedureRepo.Create(ctx, procedure)
	if err != nil {
		s.logger.Error("Create: repository error for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created procedure id=%s", created.ID)
	return models.FromDomainProcedure(created), nil
}

// GetByID получает процедуру по ID
func (s *Service) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.ProcedureResponse, error) {
	s.logger.Info("GetByID: fetching procedure id=%s", id)

	procedure, err := s.getOwned(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainProcedure(procedure), nil
}

// List получает активные процедуры бизнеса
func (s *Service) List(ctx context.Context, businessID uuid.UUID) (*models.ProcedureListResponse, error) {
	s.logger.Info("List: fetching procedures for business=%s", businessID)

	procedures, err := s.procedureRepo.ListActive(ctx, businessID)
	if err != nil {
		s.logger.Error("List: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d procedures for business=%s", len(procedures), businessID)
	return models.FromDomainProcedureList(procedures), nil
}

// Update обновляет данные процедуры
// Обновляются только переданные поля
func (s *Service) Update(ctx context.Context, businessID, id uuid.UUID, req *models.UpdateProcedureRequest) (*models.ProcedureResponse, error) {
	s.logger.Info("Update: updating procedure id=%s", id)

	procedure, err := s.getOwned(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		procedure.Name = *req.Name
	}
	if req.Description != nil {
		procedure.Description = req.Description
	}
	if req.DurationMinutes != nil {
		if err := validateDuration(*req.DurationMinutes); err != nil {
			s.logger.Warn("Update: invalid duration for procedure id=%s: %v", id, err)
			return nil, err
		}
		procedure.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		procedure.Price = req.Price
	}
	if req.Color != nil {
		procedure.Color = *req.Color
	}
	if req.IsActive != nil {
		procedure.IsActive = *req.IsActive
	}
	if req.StaffIDs != nil {
		if err := s.validateStaffIDs(ctx, businessID, *req.StaffIDs); err != nil {
			s.logger.Warn("Update: staff validation failed for procedure id=%s: %v", id, err)
			return nil, err
		}
		procedure.StaffIDs = *req.StaffIDs
	}

	if err := s.procedureRepo.Update(ctx, procedure); err != nil {
		if errors.Is(err, procedureRepo.ErrProcedureNotFound) {
			return nil, ErrProcedureNotFound
		}
		s.logger.Error("Update: repository error for procedure id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated procedure id=%s", id)
	return models.FromDomainProcedure(procedure), nil
}

// Delete деактивирует процедуру (мягкое удаление)
// Исторические события продолжают ссылаться на процедуру
func (s *Service) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	s.logger.Info("Delete: deactivating procedure id=%s", id)

	if _, err := s.getOwned(ctx, businessID, id); err != nil {
		return err
	}

	if err := s.procedureRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, procedureRepo.ErrProcedureNotFound) {
			return ErrProcedureNotFound
		}
		s.logger.Error("Delete: repository error for procedure id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deactivated procedure id=%s", id)
	return nil
}

// validateDuration проверяет длительность процедуры
func validateDuration(durationMinutes int) error {
	if durationMinutes < domain.MinProcedureDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be at least %d",
			ErrInvalidInput, domain.MinProcedureDurationMinutes)
	}
	if durationMinutes > domain.MaxProcedureDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must not exceed %d",
			ErrInvalidInput, domain.MaxProcedureDurationMinutes)
	}
	if durationMinutes%domain.MinProcedureDurationMinutes != 0 {
		return fmt.Errorf("%w: durationMinutes must be a multiple of %d",
			ErrInvalidInput, domain.MinProcedureDurationMinutes)
	}
	return nil
}

// validateStaffIDs проверяет, что все сотрудники существуют и принадлежат бизнесу
func (s *Service) validateStaffIDs(ctx context.Context, businessID uuid.UUID, staffIDs []uuid.UUID) error {
	for _, staffID := range staffIDs {
		staff, err := s.staffRepo.GetByID(ctx, staffID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				return fmt.Errorf("%w: id=%s", ErrStaffNotFound, staffID)
			}
			return fmt.Errorf("%w: failed to get staff id=%s: %v", ErrInternal, staffID, err)
		}
		if staff.BusinessID != businessID {
			return fmt.Errorf("%w: id=%s", ErrStaffNotFound, staffID)
		}
	}
	return nil
}

// getOwned получает процедуру и проверяет принадлежность бизнесу
func (s *Service) getOwned(ctx context.Context, businessID, id uuid.UUID) (*domain.Procedure, error) {
	procedure, err := s.procedureRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, procedureRepo.ErrProcedureNotFound) {
			s.logger.Warn("procedure id=%s not found", id)
			return nil, ErrProcedureNotFound
		}
		s.logger.Error("failed to get procedure id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if procedure.BusinessID != businessID {
		s.logger.Warn("procedure id=%s does not belong to business=%s", id, businessID)
		return nil, ErrProcedureNotFound
	}

	return procedure, nil
}
