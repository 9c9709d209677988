package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidPhone   = errors.New("phone number must start with '+' followed by country code and number")
	ErrMissingCallSID = errors.New("call_sid is required")
	ErrInvalidRole    = errors.New("message role is required")
)

// E.164 shape: leading '+', no leading zero, 7 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

// Status tracks what happened to an outbound call request.
type Status string

const (
	StatusInitiated Status = "initiated"
	StatusFailed    Status = "failed"
)

// Call records one outbound call trigger.
type Call struct {
	ID        string
	Phone     string
	CallSID   string
	Status    Status
	Error     string
	CreatedAt time.Time
}

// NormalizePhone strips spaces and dashes and validates the result.
func NormalizePhone(raw string) (string, error) {
	phone := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(raw))
	if !phonePattern.MatchString(phone) {
		return "", ErrInvalidPhone
	}
	return phone, nil
}

// NewInitiatedCall records a call the voice service accepted.
func NewInitiatedCall(id, phone, callSID string, at time.Time) *Call {
	return &Call{ID: id, Phone: phone, CallSID: callSID, Status: StatusInitiated, CreatedAt: at}
}

// NewFailedCall records a call the voice service rejected or never answered.
func NewFailedCall(id, phone string, cause error, at time.Time) *Call {
	c := &Call{ID: id, Phone: phone, Status: StatusFailed, CreatedAt: at}
	if cause != nil {
		c.Error = cause.Error()
	}
	return c
}
