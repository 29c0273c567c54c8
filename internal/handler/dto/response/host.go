package response

import (
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/domain/host"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type HostProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	TimeZone    string    `json:"time_zone"`
	DurationMin int       `json:"duration_min"`
}

// HostResponse is the owner's view of the host, including policy and hours.
type HostResponse struct {
	ID           uuid.UUID                           `json:"id"`
	Handle       string                              `json:"handle"`
	DisplayName  string                              `json:"display_name"`
	Email        string                              `json:"email"`
	TimeZone     string                              `json:"time_zone"`
	DurationMin  int                                 `json:"duration_min"`
	BufferMin    int                                 `json:"buffer_min"`
	MinNoticeMin int                                 `json:"min_notice_min"`
	CalendarIDs  []string                            `json:"calendar_ids"`
	WeeklyHours  map[string][]availability.BlockSpec `json:"weekly_hours"`
	CreatedAt    time.Time                           `json:"created_at"`
	UpdatedAt    time.Time                           `json:"updated_at"`
}

type SlotResponse struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	LocalStart string    `json:"local_start"`
	LocalEnd   string    `json:"local_end"`
}

type SlotsResponse struct {
	Date            string         `json:"date"`
	TimeZone        string         `json:"time_zone"`
	DurationMin     int            `json:"duration_min"`
	Slots           []SlotResponse `json:"slots"`
	CalendarChecked bool           `json:"calendar_checked"`
}

type CalendarConnectResponse struct {
	AuthURL string `json:"auth_url"`
}

type CalendarConnectedResponse struct {
	HostID    uuid.UUID `json:"host_id"`
	Connected bool      `json:"connected"`
}

func FromHostProfileView(v *queries.HostProfileView) (*HostProfileResponse, error) {
	var res HostProfileResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, errs.Wrap(err, "failed to map host profile")
	}
	return &res, nil
}

func FromSlotsView(v *queries.SlotsView) (*SlotsResponse, error) {
	var res SlotsResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, errs.Wrap(err, "failed to map slots")
	}
	if res.Slots == nil {
		res.Slots = []SlotResponse{}
	}
	return &res, nil
}

func FromHost(h *host.Host) *HostResponse {
	p := h.Policy()
	return &HostResponse{
		ID:           h.ID(),
		Handle:       h.Handle().String(),
		DisplayName:  h.DisplayName(),
		Email:        h.Email(),
		TimeZone:     p.TimeZone(),
		DurationMin:  p.DurationMin(),
		BufferMin:    p.BufferMin(),
		MinNoticeMin: p.MinNoticeMin(),
		CalendarIDs:  p.CalendarIDs(),
		WeeklyHours:  h.WeeklyHours().Specs(),
		CreatedAt:    h.CreatedAt(),
		UpdatedAt:    h.UpdatedAt(),
	}
}
