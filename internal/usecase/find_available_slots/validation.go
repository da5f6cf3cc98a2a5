package find_available_slots

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

func validateRequest(req *Request) error {
	if req.BusinessID == uuid.Nil {
		return fmt.Errorf("%w: business_id is required", ErrInvalidRequest)
	}

	if req.ProcedureID == uuid.Nil {
		return fmt.Errorf("%w: procedure_id is required", ErrInvalidRequest)
	}

	if req.HorizonDays < 0 || req.HorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: horizon_days must be between 0 and %d", ErrInvalidRequest, domain.MaxHorizonDays)
	}

	if req.MaxResults < 0 {
		return fmt.Errorf("%w: max_results must not be negative", ErrInvalidRequest)
	}

	return nil
}
