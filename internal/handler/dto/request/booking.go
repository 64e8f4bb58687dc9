package request

import (
	"time"

	"shareit/internal/usecase/commands"
)

type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ItemID: r.ItemID,
		Start:  r.Start,
		End:    r.End,
	}
}
