package handle_inbound_message

import (
	"fmt"
	"strings"
	"time"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// Клиентские сообщения уходят в мессенджер на английском

func welcomeMessage(procedures []*domain.Procedure) string {
	var b strings.Builder
	b.WriteString("Hello! Welcome to our booking service.\n\n")
	b.WriteString("Here are our services:\n")
	for i, p := range procedures {
		b.WriteString(fmt.Sprintf("%d. %s (%d min)\n", i+1, p.Name, p.DurationMinutes))
	}
	b.WriteString("\nReply with the number of the service you would like to book.")
	return b.String()
}

func noProceduresMessage() string {
	return "Hello! We have no services available for online booking right now. Please contact us directly."
}

func slotsMessage(procedureName string, offers []domain.AvailableSlot, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Available times for %s:\n\n", procedureName))
	for i, offer := range offers {
		local := offer.StartAt.In(loc)
		b.WriteString(fmt.Sprintf("%d. %s at %s with %s\n",
			i+1,
			local.Format("Mon, Jan 2"),
			local.Format(domain.TimeFormat),
			offer.StaffName,
		))
	}
	b.WriteString("\nReply with the number of the time that works for you.")
	return b.String()
}

func noSlotsMessage(procedureName string) string {
	return fmt.Sprintf(
		"Unfortunately, there are no available times for %s in the coming days. Please contact us directly.",
		procedureName,
	)
}

func selectionReceivedMessage(offer domain.AvailableSlot, loc *time.Location) string {
	local := offer.StartAt.In(loc)
	return fmt.Sprintf(
		"Great choice! %s at %s with %s.\n\nYour request has been sent for confirmation. We will let you know shortly.",
		local.Format("Monday, January 2"),
		local.Format(domain.TimeFormat),
		offer.StaffName,
	)
}

func invalidSelectionMessage(count int) string {
	return fmt.Sprintf("Please reply with a number between 1 and %d to pick one of the offered times.", count)
}

func awaitingApprovalMessage() string {
	return "Your booking request is being reviewed. We will get back to you shortly!"
}

func cancelInfoMessage() string {
	return "To cancel or reschedule an appointment, please contact us directly and we will be happy to help."
}

func fallbackMessage() string {
	return "Hi! Send \"appointment\" to see our services and book a time."
}
