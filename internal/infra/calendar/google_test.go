//go:build unit

package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

type memCreds struct {
	tokens map[uuid.UUID]*oauth2.Token
}

func (m *memCreds) Find(_ context.Context, hostID uuid.UUID) (*oauth2.Token, error) {
	tok, ok := m.tokens[hostID]
	if !ok {
		return nil, infra.NewRepositoryError(infra.KindNotFound, "calendar credentials not found")
	}
	return tok, nil
}

func (m *memCreds) Save(_ context.Context, hostID uuid.UUID, tok *oauth2.Token) error {
	m.tokens[hostID] = tok
	return nil
}

func newTestGoogle(t *testing.T, handler http.HandlerFunc, creds *memCreds) *Google {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := NewGoogle(config.GoogleConfig{ClientID: "id", ClientSecret: "secret"}, creds)
	g.opts = []option.ClientOption{option.WithEndpoint(srv.URL + "/")}
	return g
}

func TestGoogle_ListBusy(t *testing.T) {
	hostID := uuid.New()
	creds := &memCreds{tokens: map[uuid.UUID]*oauth2.Token{hostID: {AccessToken: "access"}}}

	var gotAuth string
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"calendars": map[string]any{
				"primary": map[string]any{
					"busy": []map[string]string{
						{"start": "2025-06-02T10:00:00Z", "end": "2025-06-02T10:30:00Z"},
					},
				},
			},
		})
	}, creds)

	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	busy, err := g.ListBusy(context.Background(), hostID, []string{"primary"}, from, from.Add(24*time.Hour))
	require.NoError(t, err)

	want := []availability.BusyInterval{{
		Start:      time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		End:        time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
		CalendarID: "primary",
	}}
	if diff := cmp.Diff(want, busy); diff != "" {
		t.Errorf("busy mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Bearer access", gotAuth)
}

func TestGoogle_NotConnected(t *testing.T) {
	g := newTestGoogle(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("calendar api must not be called for unconnected hosts")
	}, &memCreds{tokens: map[uuid.UUID]*oauth2.Token{}})

	_, err := g.ListBusy(context.Background(), uuid.New(), []string{"primary"}, time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, shared.ErrCalendarNotConnected)
}

func TestGoogle_DeleteEventAlreadyGone(t *testing.T) {
	hostID := uuid.New()
	creds := &memCreds{tokens: map[uuid.UUID]*oauth2.Token{hostID: {AccessToken: "access"}}}
	g := newTestGoogle(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusGone)
		_, _ = w.Write([]byte(`{"error":{"code":410,"message":"deleted"}}`))
	}, creds)

	assert.NoError(t, g.DeleteEvent(context.Background(), hostID, "primary", "evt-1"))
}

func TestToGoogleEvent(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	ev := toGoogleEvent(shared.CalendarEvent{
		Summary:   "Grace Hopper <> Ada Lovelace",
		Start:     start,
		End:       start.Add(30 * time.Minute),
		TimeZone:  "Europe/London",
		Attendees: []string{"grace@example.com"},
	})

	assert.Equal(t, "2025-06-02T10:00:00Z", ev.Start.DateTime)
	assert.Equal(t, "Europe/London", ev.End.TimeZone)
	require.Len(t, ev.Attendees, 1)
	assert.Equal(t, "grace@example.com", ev.Attendees[0].Email)
}

func TestDisabled(t *testing.T) {
	var d Disabled
	_, err := d.ListBusy(context.Background(), uuid.New(), nil, time.Now(), time.Now())
	assert.ErrorIs(t, err, shared.ErrCalendarNotConnected)
	assert.ErrorIs(t, d.Exchange(context.Background(), uuid.New(), "code"), ErrGoogleNotConfigured)
}
