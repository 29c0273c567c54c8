package reminder

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	Type24h Type = "24h"
	Type1h  Type = "1h"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	return t == Type24h || t == Type1h
}

func (t Type) Offset() time.Duration {
	switch t {
	case Type24h:
		return 24 * time.Hour
	case Type1h:
		return time.Hour
	default:
		return 0
	}
}

// Types lists reminder types in send order.
var Types = []Type{Type24h, Type1h}

type Reminder struct {
	id     uuid.UUID
	typ    Type
	sendAt time.Time
	sentAt *time.Time
}

func newPending(typ Type, sendAt time.Time) Reminder {
	return Reminder{id: uuid.New(), typ: typ, sendAt: sendAt.UTC()}
}

func Reconstruct(id uuid.UUID, typ Type, sendAt time.Time, sentAt *time.Time) Reminder {
	r := Reminder{id: id, typ: typ, sendAt: sendAt.UTC()}
	if sentAt != nil {
		s := sentAt.UTC()
		r.sentAt = &s
	}
	return r
}

func (r Reminder) ID() uuid.UUID     { return r.id }
func (r Reminder) Type() Type        { return r.typ }
func (r Reminder) SendAt() time.Time { return r.sendAt }

func (r Reminder) SentAt() *time.Time {
	if r.sentAt == nil {
		return nil
	}
	s := *r.sentAt
	return &s
}

func (r Reminder) IsSent() bool {
	return r.sentAt != nil
}

func (r Reminder) IsDue(now time.Time) bool {
	return !r.IsSent() && !r.sendAt.After(now)
}

// Calculate returns the pending reminders for a meeting at start. A type is
// included only while its send time is still in the future.
func Calculate(start, now time.Time) []Reminder {
	out := make([]Reminder, 0, len(Types))
	for _, typ := range Types {
		sendAt := start.Add(-typ.Offset())
		if sendAt.After(now) {
			out = append(out, newPending(typ, sendAt))
		}
	}
	return out
}

// Recompute moves reminders to a new start time. Sent reminders are kept
// untouched. For each type a pending reminder is produced for newStart unless
// its send time has passed or a sent reminder of that type already went out
// for that exact send time. A pending reminder that already matches is
// reused as is, so repeated calls return the same set.
func Recompute(existing []Reminder, newStart, now time.Time) []Reminder {
	out := make([]Reminder, 0, len(existing)+len(Types))
	for _, r := range existing {
		if r.IsSent() {
			out = append(out, r)
		}
	}

	for _, typ := range Types {
		sendAt := newStart.Add(-typ.Offset()).UTC()
		if !sendAt.After(now) || sentFor(existing, typ, sendAt) {
			continue
		}
		if r, ok := pendingFor(existing, typ, sendAt); ok {
			out = append(out, r)
			continue
		}
		out = append(out, newPending(typ, sendAt))
	}
	return out
}

// Due returns the pending reminders whose send time has arrived.
func Due(reminders []Reminder, now time.Time) []Reminder {
	var out []Reminder
	for _, r := range reminders {
		if r.IsDue(now) {
			out = append(out, r)
		}
	}
	return out
}

// MarkSent returns a copy of reminders with the matching one stamped at now.
// A reminder that was already sent keeps its original timestamp.
func MarkSent(reminders []Reminder, id uuid.UUID, now time.Time) []Reminder {
	out := make([]Reminder, len(reminders))
	copy(out, reminders)
	for i := range out {
		if out[i].id == id && out[i].sentAt == nil {
			sent := now.UTC()
			out[i].sentAt = &sent
		}
	}
	return out
}

func Pending(reminders []Reminder) []Reminder {
	var out []Reminder
	for _, r := range reminders {
		if !r.IsSent() {
			out = append(out, r)
		}
	}
	return out
}

func sentFor(reminders []Reminder, typ Type, sendAt time.Time) bool {
	for _, r := range reminders {
		if r.IsSent() && r.typ == typ && r.sendAt.Equal(sendAt) {
			return true
		}
	}
	return false
}

func pendingFor(reminders []Reminder, typ Type, sendAt time.Time) (Reminder, bool) {
	for _, r := range reminders {
		if !r.IsSent() && r.typ == typ && r.sendAt.Equal(sendAt) {
			return r, true
		}
	}
	return Reminder{}, false
}
