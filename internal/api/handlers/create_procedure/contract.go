package create_procedure

import (
	"context"

	"github.com/taimeline/taimeline-service/internal/service/procedures/models"
)

type ProcedureService interface {
	Create(ctx context.Context, req *models.CreateProcedureRequest) (*models.ProcedureResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
