package api

import "slotbook/internal/pkg/errs"

var (
	errMissingToken = errs.New("token query parameter is required")
	errNoHost       = errs.New("host id missing from request context")
	errMissingCode  = errs.New("code and state are required")
)
