package httperr

import (
	"net/http"

	"slotbook/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	CodeValidation      = "validation"
	CodeNotFound        = "not_found"
	CodeForbidden       = "forbidden"
	CodeTokenInvalid    = "token_invalid"
	CodeTokenExpired    = "token_expired"
	CodeTokenPurpose    = "token_purpose"
	CodeTokenUsed       = "token_used"
	CodeConflict        = "conflict"
	CodeAlreadyCanceled = "already_canceled"
	CodeUnauthorized    = "unauthorized"
	CodeUnavailable     = "unavailable"
	CodeRateLimited     = "rate_limited"
	CodeInternal        = "internal"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, code, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort classifies err by category and responds accordingly. Internal
// errors get a generic message; the cause stays attached to the context.
func Abort(c *gin.Context, err error) {
	status, code := Classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	AbortWithError(c, status, err, code, msg, nil)
}

func Classify(err error) (int, string) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errs.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errs.Is(err, errs.ErrTokenUsed):
		return http.StatusGone, CodeTokenUsed
	case errs.Is(err, errs.ErrTokenExpired):
		return http.StatusUnauthorized, CodeTokenExpired
	case errs.Is(err, errs.ErrTokenPurpose):
		return http.StatusUnauthorized, CodeTokenPurpose
	case errs.Is(err, errs.ErrToken):
		return http.StatusUnauthorized, CodeTokenInvalid
	case errs.Is(err, errs.ErrAlreadyCanceled):
		return http.StatusConflict, CodeAlreadyCanceled
	case errs.Is(err, errs.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errs.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable, CodeUnavailable
	}
	return http.StatusInternalServerError, CodeInternal
}
