package commands

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/host"
	"slotbook/internal/domain/reminder"
	"slotbook/internal/pkg/ics"
	"slotbook/internal/usecase/shared"
)

var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "guest_confirmed"}}<p>Hi {{.GuestName}},</p>
<p>Your meeting with {{.HostName}} is booked for <strong>{{.When}}</strong>.</p>
<p><a href="{{.Links.RescheduleURL}}">Reschedule</a> or <a href="{{.Links.CancelURL}}">cancel</a>.</p>{{end}}
{{define "guest_rescheduled"}}<p>Hi {{.GuestName}},</p>
<p>Your meeting with {{.HostName}} moved to <strong>{{.When}}</strong>.</p>
<p>Links from earlier emails no longer work. <a href="{{.Links.RescheduleURL}}">Reschedule</a> or <a href="{{.Links.CancelURL}}">cancel</a>.</p>{{end}}
{{define "guest_canceled"}}<p>Hi {{.GuestName}},</p>
<p>Your meeting with {{.HostName}} on {{.When}} has been canceled.</p>{{end}}
{{define "host_new"}}<p>{{.GuestName}} ({{.GuestEmail}}) booked <strong>{{.When}}</strong>.</p>{{end}}
{{define "host_rescheduled"}}<p>{{.GuestName}} ({{.GuestEmail}}) moved their meeting to <strong>{{.When}}</strong>.</p>{{end}}
{{define "host_canceled"}}<p>{{.GuestName}} ({{.GuestEmail}}) canceled the meeting on {{.When}}.{{if .Reason}} Reason: {{.Reason}}{{end}}</p>{{end}}
{{define "reminder"}}<p>Reminder: {{.GuestName}} and {{.HostName}} meet {{.Lead}}, at <strong>{{.When}}</strong>.</p>{{end}}
`))

type mailData struct {
	GuestName  string
	GuestEmail string
	HostName   string
	When       string
	Reason     string
	Lead       string
	Links      guestLinks
}

func newMailData(h *host.Host, b *booking.Booking) mailData {
	d := mailData{
		GuestName:  b.Guest().Name(),
		GuestEmail: b.Guest().Email(),
		HostName:   h.DisplayName(),
		When:       formatWhen(b.TimeSlot().Start(), h.Policy().Location()),
	}
	if r := b.CancelReason(); r != nil {
		d.Reason = *r
	}
	return d
}

func formatWhen(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Mon, Jan 2 2006 15:04 MST")
}

func render(name string, data mailData) string {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		// static templates
		panic(err)
	}
	return buf.String()
}

func invite(method ics.Method, h *host.Host, b *booking.Booking, now time.Time) shared.Attachment {
	ev := ics.Event{
		UID:       b.ID().String() + "@slotbook",
		Sequence:  b.RescheduleCount(),
		Summary:   fmt.Sprintf("%s <> %s", b.Guest().Name(), h.DisplayName()),
		Start:     b.TimeSlot().Start(),
		End:       b.TimeSlot().End(),
		Organizer: h.Email(),
		Attendees: []string{b.Guest().Email()},
		Stamp:     now,
	}
	if method == ics.MethodCancel {
		ev.Sequence++
	}
	return shared.Attachment{
		Filename:    "invite.ics",
		ContentType: ics.ContentType + "; method=" + string(method),
		Data:        ics.Render(method, ev),
	}
}

func guestConfirmationMessage(h *host.Host, b *booking.Booking, links guestLinks, now time.Time) shared.Message {
	d := newMailData(h, b)
	d.Links = links
	return shared.Message{
		To:          []string{b.Guest().Email()},
		Subject:     "Booked: meeting with " + h.DisplayName(),
		HTMLBody:    render("guest_confirmed", d),
		Attachments: []shared.Attachment{invite(ics.MethodRequest, h, b, now)},
	}
}

func guestRescheduleMessage(h *host.Host, b *booking.Booking, links guestLinks, now time.Time) shared.Message {
	d := newMailData(h, b)
	d.Links = links
	return shared.Message{
		To:          []string{b.Guest().Email()},
		Subject:     "Rescheduled: meeting with " + h.DisplayName(),
		HTMLBody:    render("guest_rescheduled", d),
		Attachments: []shared.Attachment{invite(ics.MethodRequest, h, b, now)},
	}
}

func guestCancellationMessage(h *host.Host, b *booking.Booking, now time.Time) shared.Message {
	return shared.Message{
		To:          []string{b.Guest().Email()},
		Subject:     "Canceled: meeting with " + h.DisplayName(),
		HTMLBody:    render("guest_canceled", newMailData(h, b)),
		Attachments: []shared.Attachment{invite(ics.MethodCancel, h, b, now)},
	}
}

func hostNewBookingMessage(h *host.Host, b *booking.Booking, now time.Time) shared.Message {
	return shared.Message{
		To:          []string{h.Email()},
		Subject:     "New booking: " + b.Guest().Name(),
		HTMLBody:    render("host_new", newMailData(h, b)),
		Attachments: []shared.Attachment{invite(ics.MethodRequest, h, b, now)},
	}
}

func hostRescheduleMessage(h *host.Host, b *booking.Booking, now time.Time) shared.Message {
	return shared.Message{
		To:          []string{h.Email()},
		Subject:     "Rescheduled: " + b.Guest().Name(),
		HTMLBody:    render("host_rescheduled", newMailData(h, b)),
		Attachments: []shared.Attachment{invite(ics.MethodRequest, h, b, now)},
	}
}

func hostCancellationMessage(h *host.Host, b *booking.Booking, now time.Time) shared.Message {
	return shared.Message{
		To:          []string{h.Email()},
		Subject:     "Canceled: " + b.Guest().Name(),
		HTMLBody:    render("host_canceled", newMailData(h, b)),
		Attachments: []shared.Attachment{invite(ics.MethodCancel, h, b, now)},
	}
}

func reminderMessage(h *host.Host, b *booking.Booking, r reminder.Reminder) shared.Message {
	d := newMailData(h, b)
	switch r.Type() {
	case reminder.Type24h:
		d.Lead = "tomorrow"
	default:
		d.Lead = "in one hour"
	}
	return shared.Message{
		To:       []string{b.Guest().Email(), h.Email()},
		Subject:  "Reminder: " + b.Guest().Name() + " <> " + h.DisplayName(),
		HTMLBody: render("reminder", d),
	}
}
