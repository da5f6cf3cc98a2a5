package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
	staffRepo "github.com/taimeline/taimeline-service/internal/infra/storage/staff"
	"github.com/taimeline/taimeline-service/internal/service/staff/models"
)

// Service сервис для работы с сотрудниками
type Service struct {
	staffRepo StaffRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(staffRepo StaffRepository, logger Logger) *Service {
	return &Service{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// Create создает нового сотрудника
// Рабочее расписание проверяется на корректность интервалов
// и отсутствие пересечений внутри дня
func (s *Service) Create(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Create: creating staff for business=%s, name=%s", req.BusinessID, req.Name)

	if req.BusinessID == uuid.Nil {
		s.logger.Warn("Create: missing business id")
		return nil, fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}
	if req.Name == "" {
		s.logger.Warn("Create: missing name for business=%s", req.BusinessID)
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if err := req.Schedule.Validate(); err != nil {
		s.logger.Warn("Create: invalid schedule for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	staff := &domain.Staff{
		BusinessID: req.BusinessID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       req.Role,
		IsActive:   true,
		Schedule:   req.Schedule,
		AvatarURL:  req.AvatarURL,
	}

	created, err := s.staffRepo.Create(ctx, staff)
	if err != nil {
		s.logger.Error("Create: repository error for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created staff id=%s", created.ID)
	return models.FromDomainStaff(created), nil
}

// GetByID получает сотрудника по ID
func (s *Service) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.StaffResponse, error) {
	s.logger.Info("GetByID: fetching staff id=%s", id)

	staff, err := s.getOwned(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainStaff(staff), nil
}

// List получает активных сотрудников бизнеса
func (s *Service) List(ctx context.Context, businessID uuid.UUID) (*models.StaffListResponse, error) {
	s.logger.Info("List: fetching staff for business=%s", businessID)

	staff, err := s.staffRepo.ListActive(ctx, businessID)
	if err != nil {
		s.logger.Error("List: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d staff for business=%s", len(staff), businessID)
	return models.FromDomainStaffList(staff), nil
}

// Update обновляет данные сотрудника
// Обновляются только переданные поля
func (s *Service) Update(ctx context.Context, businessID, id uuid.UUID, req *models.UpdateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Update: updating staff id=%s", id)

	staff, err := s.getOwned(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		staff.Name = *req.Name
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Phone != nil {
		staff.Phone = req.Phone
	}
	if req.Role != nil {
		staff.Role = *req.Role
	}
	if req.AvatarURL != nil {
		staff.AvatarURL = req.AvatarURL
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}
	if req.Schedule != nil {
		if err := req.Schedule.Validate(); err != nil {
			s.logger.Warn("Update: invalid schedule for staff id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		staff.Schedule = *req.Schedule
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("Update: repository error for staff id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated staff id=%s", id)
	return models.FromDomainStaff(staff), nil
}

// Delete деактивирует сотрудника (мягкое удаление)
// Существующие события сотрудника остаются в календаре
func (s *Service) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	s.logger.Info("Delete: deactivating staff id=%s", id)

	if _, err := s.getOwned(ctx, businessID, id); err != nil {
		return err
	}

	if err := s.staffRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		s.logger.Error("Delete: repository error for staff id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deactivated staff id=%s", id)
	return nil
}

// getOwned получает сотрудника и проверяет принадлежность бизнесу
func (s *Service) getOwned(ctx context.Context, businessID, id uuid.UUID) (*domain.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("staff id=%s not found", id)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("failed to get staff id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if staff.BusinessID != businessID {
		s.logger.Warn("staff id=%s does not belong to business=%s", id, businessID)
		return nil, ErrStaffNotFound
	}

	return staff, nil
}
