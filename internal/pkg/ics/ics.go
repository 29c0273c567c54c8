// Package ics renders iCalendar (RFC 5545) invites for booking notifications.
package ics

import (
	"strconv"
	"time"

	ical "github.com/arran4/golang-ical"
)

type Method string

const (
	MethodRequest Method = Method(ical.MethodRequest)
	MethodCancel  Method = Method(ical.MethodCancel)
)

const ContentType = "text/calendar; charset=utf-8"

const productID = "-//slotbook//booking//EN"

type Event struct {
	UID         string
	Sequence    int
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Organizer   string
	Attendees   []string
	Stamp       time.Time
}

// Render returns the serialized calendar. Text escaping and line folding
// are done by the library.
func Render(method Method, ev Event) []byte {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.Method(method))

	e := cal.AddEvent(ev.UID)
	e.SetProperty(ical.ComponentPropertySequence, strconv.Itoa(ev.Sequence))
	e.SetDtStampTime(ev.Stamp)
	e.SetStartAt(ev.Start)
	e.SetEndAt(ev.End)
	e.SetSummary(ev.Summary)
	if ev.Description != "" {
		e.SetDescription(ev.Description)
	}
	if ev.Organizer != "" {
		e.SetOrganizer("mailto:" + ev.Organizer)
	}
	for _, a := range ev.Attendees {
		e.AddAttendee(a, ical.ParticipationRoleReqParticipant)
	}

	status := ical.ObjectStatusConfirmed
	if method == MethodCancel {
		status = ical.ObjectStatusCancelled
	}
	e.SetProperty(ical.ComponentPropertyStatus, string(status))

	return []byte(cal.Serialize())
}
