package delete_procedure

import (
	"context"

	"github.com/google/uuid"
)

type ProcedureService interface {
	Delete(ctx context.Context, businessID, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
