package create_event

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

func validateRequest(req *Request) error {
	if req.BusinessID == uuid.Nil {
		return fmt.Errorf("%w: business_id is required", ErrInvalidRequest)
	}

	if req.StaffID == uuid.Nil {
		return fmt.Errorf("%w: staff_id is required", ErrInvalidRequest)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: start_at is required", ErrInvalidRequest)
	}

	if req.ProcedureID == nil {
		if req.EndAt.IsZero() {
			return fmt.Errorf("%w: end_at is required when procedure_id is not set", ErrInvalidRequest)
		}
		if req.Title == "" {
			return fmt.Errorf("%w: title is required when procedure_id is not set", ErrInvalidRequest)
		}
	}

	if !req.EndAt.IsZero() && !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: start_at must be before end_at", ErrInvalidRequest)
	}

	if req.Source != "" {
		switch domain.EventSource(req.Source) {
		case domain.SourceAdmin, domain.SourceWhatsApp, domain.SourceGoogleCalendar, domain.SourceManual:
		default:
			return fmt.Errorf("%w: unknown source %q", ErrInvalidRequest, req.Source)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidRequest, domain.MaxNotesLength)
	}

	return nil
}
