package commands

import "slotbook/internal/pkg/errs"

var (
	ErrHostNotFound        = errs.Mark(errs.New("host not found"), errs.ErrNotFound)
	ErrBookingNotFound     = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrHostExists          = errs.Mark(errs.New("host profile already exists"), errs.ErrConflict)
	ErrHandleTaken         = errs.Mark(errs.New("handle is already taken"), errs.ErrConflict)
	ErrSlotNotOffered      = errs.Mark(errs.New("requested time is not an offered slot"), errs.ErrConflict)
	ErrSlotUnavailable     = errs.Mark(errs.New("requested time is no longer available"), errs.ErrConflict)
	ErrDurationMismatch    = errs.Mark(errs.New("requested duration does not match the host policy"), errs.ErrValidation)
	ErrGuestMismatch       = errs.Mark(errs.New("token does not belong to this booking's guest"), errs.ErrForbidden)
	ErrNotBookingOwner     = errs.Mark(errs.New("booking belongs to another host"), errs.ErrForbidden)
	ErrTokenUsed           = errs.Mark(errs.New("action token has already been used"), errs.ErrTokenUsed)
	ErrTokenSubject        = errs.Mark(errs.New("action token was issued for another booking"), errs.ErrToken)
	ErrCalendarUnavailable = errs.Mark(errs.New("calendar busy check failed"), errs.ErrUnavailable)
)
