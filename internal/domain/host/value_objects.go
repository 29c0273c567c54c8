package host

import (
	"regexp"
	"strings"

	"slotbook/internal/pkg/errs"
)

var ErrInvalidHandle = errs.Mark(errs.New("handle must be 3-40 characters of a-z, 0-9 or '-'"), errs.ErrValidation)

var handlePattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{1,38})[a-z0-9]$`)

// Handle is the public identifier used in booking page URLs.
type Handle struct {
	value string
}

func NewHandle(raw string) (Handle, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if !handlePattern.MatchString(v) {
		return Handle{}, ErrInvalidHandle
	}
	return Handle{value: v}, nil
}

func (h Handle) String() string {
	return h.value
}
