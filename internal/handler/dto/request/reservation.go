package request

import (
	"strings"

	"slot-booking/internal/usecase/commands"
)

type BookRequest struct {
	OwnerID       string `json:"ownerId" binding:"required"`
	LineUserID    string `json:"lineUserId"`
	StartDateTime string `json:"startDateTime" binding:"required,slotid"`
	DurationHours int    `json:"durationHours" binding:"required,min=1,max=24"`
}

// ToInput falls back to the session's LINE user when the body names none.
func (r BookRequest) ToInput(sessionLineUserID string) commands.BookInput {
	lineUserID := strings.TrimSpace(r.LineUserID)
	if lineUserID == "" {
		lineUserID = sessionLineUserID
	}
	return commands.BookInput{
		OwnerID:       strings.TrimSpace(r.OwnerID),
		LineUserID:    lineUserID,
		StartDateTime: r.StartDateTime,
		DurationHours: r.DurationHours,
	}
}

type ListReservationsQuery struct {
	Start string `form:"start" binding:"required,slotid"`
	End   string `form:"end" binding:"required,slotid"`
}
