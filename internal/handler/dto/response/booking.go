package response

import (
	"time"

	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReminderResponse struct {
	Type   string     `json:"type"`
	SendAt time.Time  `json:"send_at"`
	SentAt *time.Time `json:"sent_at,omitempty"`
}

type BookingResponse struct {
	ID              uuid.UUID          `json:"id"`
	HostID          uuid.UUID          `json:"host_id"`
	GuestName       string             `json:"guest_name"`
	GuestEmail      string             `json:"guest_email"`
	Start           time.Time          `json:"start"`
	End             time.Time          `json:"end"`
	Status          string             `json:"status"`
	RescheduleCount int                `json:"reschedule_count"`
	CancelReason    *string            `json:"cancel_reason,omitempty"`
	Reminders       []ReminderResponse `json:"reminders"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type ActionLinkResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BookingActionResponse is returned by state-changing booking endpoints.
// Links are only present when new guest tokens were issued.
type BookingActionResponse struct {
	Booking    BookingResponse     `json:"booking"`
	Cancel     *ActionLinkResponse `json:"cancel,omitempty"`
	Reschedule *ActionLinkResponse `json:"reschedule,omitempty"`
	Degraded   []string            `json:"degraded,omitempty"`
}

type BookingListResponse struct {
	Items      []BookingResponse `json:"items"`
	NextCursor *string           `json:"next_cursor,omitempty"`
}

type GuestBookingResponse struct {
	Booking         BookingResponse `json:"booking"`
	HostDisplayName string          `json:"host_display_name"`
	HostTimeZone    string          `json:"host_time_zone"`
	Purpose         string          `json:"purpose"`
}

func FromBookingView(v *queries.BookingView) (BookingResponse, error) {
	var res BookingResponse
	if err := copier.Copy(&res, v); err != nil {
		return BookingResponse{}, errs.Wrap(err, "failed to map booking view")
	}
	if res.Reminders == nil {
		res.Reminders = []ReminderResponse{}
	}
	return res, nil
}

func FromBookingResult(r *commands.BookingResult) (*BookingActionResponse, error) {
	view := queries.NewBookingView(r.Booking)
	b, err := FromBookingView(&view)
	if err != nil {
		return nil, err
	}
	res := &BookingActionResponse{Booking: b, Degraded: r.Effects.Degraded}
	if r.Links != nil {
		res.Cancel = &ActionLinkResponse{
			Token:     r.Links.Cancel.Token,
			ExpiresAt: time.Unix(r.Links.Cancel.ExpiresAt, 0).UTC(),
		}
		res.Reschedule = &ActionLinkResponse{
			Token:     r.Links.Reschedule.Token,
			ExpiresAt: time.Unix(r.Links.Reschedule.ExpiresAt, 0).UTC(),
		}
	}
	return res, nil
}

func FromBookingList(views []*queries.BookingView, next *queries.Cursor) (*BookingListResponse, error) {
	res := &BookingListResponse{Items: make([]BookingResponse, 0, len(views))}
	for _, v := range views {
		b, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		res.Items = append(res.Items, b)
	}
	if next != nil && next.After != "" {
		res.NextCursor = &next.After
	}
	return res, nil
}

func FromGuestBookingView(v *queries.GuestBookingView) (*GuestBookingResponse, error) {
	b, err := FromBookingView(&v.Booking)
	if err != nil {
		return nil, err
	}
	return &GuestBookingResponse{
		Booking:         b,
		HostDisplayName: v.HostDisplayName,
		HostTimeZone:    v.HostTimeZone,
		Purpose:         v.Purpose,
	}, nil
}
