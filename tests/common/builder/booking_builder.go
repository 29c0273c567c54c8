//go:build unit || e2e

package builder

import (
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/domain/booking"
	reqdto "slotbook/internal/handler/dto/request"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	HostID     uuid.UUID
	GuestName  string
	GuestEmail string
	Start      time.Time
	End        time.Time
	CalendarID string
	Now        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		HostID:     uuid.New(),
		GuestName:  "Grace Hopper",
		GuestEmail: "grace@example.com",
		Start:      start,
		End:        start.Add(30 * time.Minute),
		CalendarID: availability.DefaultCalendarID,
		Now:        time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	guest, err := booking.NewGuest(b.GuestName, b.GuestEmail)
	if err != nil {
		return nil, err
	}
	slot, err := booking.NewTimeSlot(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.HostID, guest, slot, b.CalendarID, b.Now), nil
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		Start:      b.Start,
		End:        b.End,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:         uuid.New(),
		HostID:     b.HostID,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		Start:      b.Start,
		End:        b.End,
		Status:     booking.StatusScheduled.String(),
		CreatedAt:  b.Now,
		UpdatedAt:  b.Now,
	}
}
