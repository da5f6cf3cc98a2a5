package create_staff

import (
	"context"

	"github.com/taimeline/taimeline-service/internal/service/staff/models"
)

type StaffService interface {
	Create(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
