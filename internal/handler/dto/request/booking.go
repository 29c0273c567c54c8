package request

import (
	"strings"
	"time"

	"slotbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
	GuestName  string    `json:"guest_name" binding:"required,max=200"`
	GuestEmail string    `json:"guest_email" binding:"required,email,max=320"`
}

func (r CreateBookingRequest) ToInput(handle string) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		Handle:     handle,
		Start:      r.Start,
		End:        r.End,
		GuestName:  strings.TrimSpace(r.GuestName),
		GuestEmail: strings.TrimSpace(r.GuestEmail),
	}
}

type CancelBookingRequest struct {
	Token  string `json:"token" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

func (r CancelBookingRequest) ToInput(bookingID uuid.UUID) commands.CancelBookingInput {
	return commands.CancelBookingInput{
		BookingID: bookingID,
		Token:     r.Token,
		Reason:    strings.TrimSpace(r.Reason),
	}
}

type RescheduleBookingRequest struct {
	Token string    `json:"token" binding:"required"`
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

func (r RescheduleBookingRequest) ToInput(bookingID uuid.UUID) commands.RescheduleBookingInput {
	return commands.RescheduleBookingInput{
		BookingID: bookingID,
		Token:     r.Token,
		Start:     r.Start,
		End:       r.End,
	}
}

// ListBookingsQuery binds the host booking list parameters.
type ListBookingsQuery struct {
	From   time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
	To     time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
	Cursor string    `form:"cursor"`
	Limit  int       `form:"limit" binding:"omitempty,min=1,max=200"`
}
