package commands

import (
	"context"
	"time"

	"slotbook/internal/pkg/actiontoken"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

const connectStateTTL = 15 * time.Minute

var ErrCalendarDisabled = errs.Mark(errs.New("calendar integration is not configured"), errs.ErrUnavailable)

// CalendarAuthorizer runs the OAuth2 authorization code flow for a host.
type CalendarAuthorizer interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, hostID uuid.UUID, code string) error
}

type CalendarCommands interface {
	// StartConnect returns the provider consent URL for the host.
	StartConnect(ctx context.Context, hostID uuid.UUID) (string, error)
	// CompleteConnect stores credentials for the host named by state.
	CompleteConnect(ctx context.Context, state, code string) (uuid.UUID, error)
}

type calendarUseCaseImpl struct {
	uow        shared.UnitOfWork
	authorizer CalendarAuthorizer
	tokens     ActionTokens
}

func NewCalendarUseCase(uow shared.UnitOfWork, authorizer CalendarAuthorizer, tokens ActionTokens) CalendarCommands {
	return &calendarUseCaseImpl{uow: uow, authorizer: authorizer, tokens: tokens}
}

func (uc *calendarUseCaseImpl) StartConnect(ctx context.Context, hostID uuid.UUID) (string, error) {
	if _, err := uc.uow.Hosts().FindByID(ctx, hostID); err != nil {
		return "", mapHostErr(err)
	}
	state, err := uc.tokens.Sign(hostID, actiontoken.PurposeCalendarConnect, connectStateTTL, actiontoken.Extra{})
	if err != nil {
		return "", errs.Wrap(err, "sign connect state")
	}
	url := uc.authorizer.AuthCodeURL(state.Token)
	if url == "" {
		return "", ErrCalendarDisabled
	}
	return url, nil
}

func (uc *calendarUseCaseImpl) CompleteConnect(ctx context.Context, state, code string) (uuid.UUID, error) {
	claims, err := uc.tokens.Verify(state, actiontoken.PurposeCalendarConnect)
	if err != nil {
		return uuid.Nil, err
	}
	hostID, err := claims.SubjectID()
	if err != nil {
		return uuid.Nil, err
	}
	if code == "" {
		return uuid.Nil, errs.Mark(errs.New("authorization code is required"), errs.ErrValidation)
	}
	if err := uc.authorizer.Exchange(ctx, hostID, code); err != nil {
		if errs.Is(err, errs.ErrUnavailable) {
			return uuid.Nil, err
		}
		return uuid.Nil, errs.Mark(errs.Wrap(err, "calendar authorization"), errs.ErrUnavailable)
	}
	return hostID, nil
}
