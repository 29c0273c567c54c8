package calendar

import (
	"context"
	"net/http"
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type CredentialStore interface {
	Find(ctx context.Context, hostID uuid.UUID) (*oauth2.Token, error)
	Save(ctx context.Context, hostID uuid.UUID, tok *oauth2.Token) error
}

type Google struct {
	oauth  *oauth2.Config
	creds  CredentialStore
	tracer trace.Tracer
	opts   []option.ClientOption
}

func NewGoogle(cfg config.GoogleConfig, creds CredentialStore) *Google {
	return &Google{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{gcal.CalendarEventsScope, gcal.CalendarReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		creds:  creds,
		tracer: otel.Tracer("slotbook/calendar"),
	}
}

func (g *Google) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (g *Google) Exchange(ctx context.Context, hostID uuid.UUID, code string) error {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return errs.Wrap(err, "oauth2 exchange")
	}
	return g.creds.Save(ctx, hostID, tok)
}

func (g *Google) ListBusy(ctx context.Context, hostID uuid.UUID, calendarIDs []string, timeMin, timeMax time.Time) ([]availability.BusyInterval, error) {
	ctx, span := g.start(ctx, "calendar.ListBusy", hostID)
	defer span.End()

	srv, err := g.service(ctx, hostID)
	if err != nil {
		return nil, record(span, err)
	}

	req := &gcal.FreeBusyRequest{
		TimeMin: timeMin.UTC().Format(time.RFC3339),
		TimeMax: timeMax.UTC().Format(time.RFC3339),
	}
	for _, id := range calendarIDs {
		req.Items = append(req.Items, &gcal.FreeBusyRequestItem{Id: id})
	}
	resp, err := srv.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, record(span, errs.Wrap(err, "freebusy query"))
	}

	var busy []availability.BusyInterval
	for id, cal := range resp.Calendars {
		if len(cal.Errors) > 0 {
			return nil, record(span, errs.Newf("freebusy calendar %s: %s", id, cal.Errors[0].Reason))
		}
		for _, p := range cal.Busy {
			start, err := time.Parse(time.RFC3339, p.Start)
			if err != nil {
				return nil, record(span, errs.Wrap(err, "parse busy start"))
			}
			end, err := time.Parse(time.RFC3339, p.End)
			if err != nil {
				return nil, record(span, errs.Wrap(err, "parse busy end"))
			}
			busy = append(busy, availability.BusyInterval{Start: start.UTC(), End: end.UTC(), CalendarID: id})
		}
	}
	span.SetAttributes(attribute.Int("calendar.busy_count", len(busy)))
	return busy, nil
}

func (g *Google) InsertEvent(ctx context.Context, hostID uuid.UUID, calendarID string, ev shared.CalendarEvent) (string, error) {
	ctx, span := g.start(ctx, "calendar.InsertEvent", hostID)
	defer span.End()

	srv, err := g.service(ctx, hostID)
	if err != nil {
		return "", record(span, err)
	}
	created, err := srv.Events.Insert(calendarID, toGoogleEvent(ev)).SendUpdates("none").Context(ctx).Do()
	if err != nil {
		return "", record(span, errs.Wrap(err, "insert event"))
	}
	return created.Id, nil
}

func (g *Google) UpdateEvent(ctx context.Context, hostID uuid.UUID, calendarID, eventID string, ev shared.CalendarEvent) error {
	ctx, span := g.start(ctx, "calendar.UpdateEvent", hostID)
	defer span.End()

	srv, err := g.service(ctx, hostID)
	if err != nil {
		return record(span, err)
	}
	if _, err := srv.Events.Patch(calendarID, eventID, toGoogleEvent(ev)).SendUpdates("none").Context(ctx).Do(); err != nil {
		return record(span, errs.Wrap(err, "patch event"))
	}
	return nil
}

// DeleteEvent treats an event that is already gone as deleted.
func (g *Google) DeleteEvent(ctx context.Context, hostID uuid.UUID, calendarID, eventID string) error {
	ctx, span := g.start(ctx, "calendar.DeleteEvent", hostID)
	defer span.End()

	srv, err := g.service(ctx, hostID)
	if err != nil {
		return record(span, err)
	}
	err = srv.Events.Delete(calendarID, eventID).SendUpdates("none").Context(ctx).Do()
	if err != nil && !isGone(err) {
		return record(span, errs.Wrap(err, "delete event"))
	}
	return nil
}

func (g *Google) service(ctx context.Context, hostID uuid.UUID) (*gcal.Service, error) {
	tok, err := g.creds.Find(ctx, hostID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, shared.ErrCalendarNotConnected
		}
		return nil, err
	}
	ts := &persistingTokenSource{
		base:   g.oauth.TokenSource(context.WithoutCancel(ctx), tok),
		last:   tok.AccessToken,
		hostID: hostID,
		creds:  g.creds,
	}
	opts := append([]option.ClientOption{option.WithTokenSource(oauth2.ReuseTokenSource(tok, ts))}, g.opts...)
	return gcal.NewService(ctx, opts...)
}

func (g *Google) start(ctx context.Context, name string, hostID uuid.UUID) (context.Context, trace.Span) {
	return g.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("host.id", hostID.String())))
}

func record(span trace.Span, err error) error {
	if !errs.Is(err, shared.ErrCalendarNotConnected) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func isGone(err error) bool {
	var gerr *googleapi.Error
	if errs.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound || gerr.Code == http.StatusGone
	}
	return false
}

func toGoogleEvent(ev shared.CalendarEvent) *gcal.Event {
	out := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       &gcal.EventDateTime{DateTime: ev.Start.Format(time.RFC3339), TimeZone: ev.TimeZone},
		End:         &gcal.EventDateTime{DateTime: ev.End.Format(time.RFC3339), TimeZone: ev.TimeZone},
	}
	for _, email := range ev.Attendees {
		out.Attendees = append(out.Attendees, &gcal.EventAttendee{Email: email})
	}
	return out
}

// persistingTokenSource writes refreshed access tokens back to the store.
type persistingTokenSource struct {
	base   oauth2.TokenSource
	last   string
	hostID uuid.UUID
	creds  CredentialStore
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.creds.Save(ctx, s.hostID, tok)
	}
	return tok, nil
}
