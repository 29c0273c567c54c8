package request

import (
	"strings"

	"slotbook/internal/domain/availability"
	"slotbook/internal/usecase/commands"
)

type SetupProfileRequest struct {
	Handle      string `json:"handle" binding:"required,min=3,max=40"`
	DisplayName string `json:"display_name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email,max=320"`
	TimeZone    string `json:"time_zone" binding:"max=64"`
}

func (r SetupProfileRequest) ToInput() commands.SetupProfileInput {
	return commands.SetupProfileInput{
		Handle:      r.Handle,
		DisplayName: strings.TrimSpace(r.DisplayName),
		Email:       strings.TrimSpace(r.Email),
		TimeZone:    strings.TrimSpace(r.TimeZone),
	}
}

// UpdatePolicyRequest only touches the fields that are present.
type UpdatePolicyRequest struct {
	TimeZone     *string   `json:"time_zone" binding:"omitempty,max=64"`
	DurationMin  *int      `json:"duration_min" binding:"omitempty,min=1"`
	BufferMin    *int      `json:"buffer_min" binding:"omitempty,min=0"`
	MinNoticeMin *int      `json:"min_notice_min" binding:"omitempty,min=0"`
	CalendarIDs  *[]string `json:"calendar_ids"`
}

func (r UpdatePolicyRequest) ToInput() commands.UpdatePolicyInput {
	return commands.UpdatePolicyInput{
		TimeZone:     r.TimeZone,
		DurationMin:  r.DurationMin,
		BufferMin:    r.BufferMin,
		MinNoticeMin: r.MinNoticeMin,
		CalendarIDs:  r.CalendarIDs,
	}
}

// WeeklyHoursRequest maps weekday keys (sun..sat) to HH:MM blocks.
type WeeklyHoursRequest struct {
	Days map[string][]availability.BlockSpec `json:"days" binding:"required"`
}
