//go:build unit || e2e

package fakes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type Calendar struct {
	mu sync.Mutex

	Busy      []availability.BusyInterval
	BusyErr   error
	InsertErr error
	UpdateErr error
	DeleteErr error

	Inserted []shared.CalendarEvent
	Updated  []string
	Deleted  []string
	nextID   int
}

func (c *Calendar) ListBusy(_ context.Context, _ uuid.UUID, _ []string, timeMin, timeMax time.Time) ([]availability.BusyInterval, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.BusyErr != nil {
		return nil, c.BusyErr
	}
	var out []availability.BusyInterval
	for _, b := range c.Busy {
		if b.Start.Before(timeMax) && timeMin.Before(b.End) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (c *Calendar) InsertEvent(_ context.Context, _ uuid.UUID, _ string, ev shared.CalendarEvent) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.InsertErr != nil {
		return "", c.InsertErr
	}
	c.nextID++
	c.Inserted = append(c.Inserted, ev)
	return fmt.Sprintf("evt-%d", c.nextID), nil
}

func (c *Calendar) UpdateEvent(_ context.Context, _ uuid.UUID, _ string, eventID string, _ shared.CalendarEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.UpdateErr != nil {
		return c.UpdateErr
	}
	c.Updated = append(c.Updated, eventID)
	return nil
}

func (c *Calendar) DeleteEvent(_ context.Context, _ uuid.UUID, _ string, eventID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.DeleteErr != nil {
		return c.DeleteErr
	}
	c.Deleted = append(c.Deleted, eventID)
	return nil
}

type Notifier struct {
	mu   sync.Mutex
	Err  error
	Sent []shared.Message
	// Reject fails every message addressed to one of these recipients.
	Reject map[string]bool
}

func (n *Notifier) Send(_ context.Context, msg shared.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	for _, to := range msg.To {
		if n.Reject[to] {
			return fmt.Errorf("recipient %s rejected", to)
		}
	}
	n.Sent = append(n.Sent, msg)
	return nil
}

type Publisher struct {
	mu     sync.Mutex
	Err    error
	Panic  bool
	Events []shared.BookingEvent
}

func (p *Publisher) Publish(_ context.Context, ev shared.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Panic {
		panic("publisher exploded")
	}
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, ev)
	return nil
}

func (p *Publisher) Types() []shared.BookingEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]shared.BookingEventType, 0, len(p.Events))
	for _, ev := range p.Events {
		out = append(out, ev.Type)
	}
	return out
}

type Markers struct {
	mu       sync.Mutex
	consumed map[string]bool
	Err      error
}

func NewMarkers() *Markers {
	return &Markers{consumed: make(map[string]bool)}
}

func (m *Markers) IsConsumed(_ context.Context, key shared.MarkerKey) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	return m.consumed[key.String()], nil
}

func (m *Markers) Consume(_ context.Context, key shared.MarkerKey) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	if m.consumed[key.String()] {
		return false, nil
	}
	m.consumed[key.String()] = true
	return true, nil
}

func (m *Markers) Release(_ context.Context, key shared.MarkerKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.consumed, key.String())
	return nil
}

func (m *Markers) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.consumed)
}
