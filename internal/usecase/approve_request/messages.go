package approve_request

import (
	"fmt"
	"time"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// Клиентские сообщения уходят в мессенджер на английском

func confirmationMessage(procedureName string, startAt time.Time, loc *time.Location) string {
	local := startAt.In(loc)
	return fmt.Sprintf(
		"Your appointment is confirmed!\n\n%s\n%s at %s\n\nSee you soon!",
		procedureName,
		local.Format("Monday, January 2"),
		local.Format(domain.TimeFormat),
	)
}

func slotTakenMessage() string {
	return "Unfortunately, the time you selected is no longer available. " +
		"Send \"appointment\" to see the updated times."
}
