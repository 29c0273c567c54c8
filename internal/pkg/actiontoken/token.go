// Package actiontoken signs and verifies single-purpose, expiring credentials
// that let a guest act on one booking without an account. Replay protection
// is not handled here; callers consult a usage marker keyed by
// (subject, purpose, nonce).
package actiontoken

import (
	"errors"
	"strings"
	"time"

	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Purpose string

const (
	PurposeCancel     Purpose = "cancel_booking"
	PurposeReschedule Purpose = "reschedule_booking"
	// PurposeCalendarConnect carries the host id through the OAuth2 round trip.
	PurposeCalendarConnect Purpose = "calendar_connect"
)

func (p Purpose) Valid() bool {
	switch p {
	case PurposeCancel, PurposeReschedule, PurposeCalendarConnect:
		return true
	}
	return false
}

var (
	ErrTokenInvalid = errs.Mark(errs.New("action token is invalid"), errs.ErrToken)
	ErrTokenExpired = errs.Mark(errs.New("action token has expired"), errs.ErrTokenExpired)
	ErrTokenPurpose = errs.Mark(errs.New("action token purpose mismatch"), errs.ErrTokenPurpose)
)

type Claims struct {
	Purpose Purpose `json:"purpose"`
	Email   string  `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// SubjectID is the booking (or host, for calendar_connect) the token was issued for.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, errs.Wrap(ErrTokenInvalid, "subject is not a uuid")
	}
	return id, nil
}

func (c *Claims) Nonce() string {
	return c.ID
}

type Extra struct {
	Email string
}

type Issued struct {
	Token     string
	ExpiresAt int64
	Nonce     string
}

type Service struct {
	secretKey []byte
	clock     clock.Clock
}

func NewService(secretKey string, clk clock.Clock) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		clock:     clk,
	}
}

func (s *Service) Sign(subjectID uuid.UUID, purpose Purpose, ttl time.Duration, extra Extra) (Issued, error) {
	if !purpose.Valid() {
		return Issued{}, errs.Newf("unknown token purpose %q", purpose)
	}
	if ttl <= 0 {
		return Issued{}, errs.New("token ttl must be positive")
	}

	now := s.clock.Now()
	exp := now.Add(ttl)
	nonce := uuid.NewString()
	claims := Claims{
		Purpose: purpose,
		Email:   strings.ToLower(strings.TrimSpace(extra.Email)),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			ID:        nonce,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return Issued{}, errs.Wrap(err, "sign action token")
	}
	return Issued{Token: token, ExpiresAt: claims.ExpiresAt.Unix(), Nonce: nonce}, nil
}

// Verify checks signature, expiry and purpose. It is stateless.
func (s *Service) Verify(tokenString string, expected Purpose) (*Claims, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != expected {
		return nil, errs.Wrapf(ErrTokenPurpose, "expected %s", expected)
	}
	return claims, nil
}

// Parse checks signature and expiry and accepts any known purpose.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secretKey, nil
	},
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if !claims.Purpose.Valid() || claims.ID == "" {
		return nil, ErrTokenInvalid
	}
	if _, err := claims.SubjectID(); err != nil {
		return nil, err
	}
	return claims, nil
}
