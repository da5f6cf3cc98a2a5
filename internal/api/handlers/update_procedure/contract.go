package update_procedure

import (
	"context"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/service/procedures/models"
)

type ProcedureService interface {
	Update(ctx context.Context, businessID, id uuid.UUID, req *models.UpdateProcedureRequest) (*models.ProcedureResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
