package errs

import (
	"errors"
	"net/http"
)

// Collaborator outcomes collapse into a closed cause set. The orchestration
// logic branches only on these, never on transport-specific error shapes.
var (
	ErrNotFound    = errors.New("not found")
	ErrRejected    = errors.New("rejected")
	ErrUnavailable = errors.New("service unavailable")
)

var (
	ErrLoanNotFound    = errors.New("loan not found")
	ErrAlreadyReturned = errors.New("loan already returned")
)

// FromStatus classifies a collaborator response status into a cause.
// 404 means the addressed resource does not exist, 400/409 a business-rule
// refusal (inactive user, no copies left); everything else non-2xx is an
// upstream fault.
func FromStatus(code int) error {
	switch {
	case code >= http.StatusOK && code < http.StatusMultipleChoices:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusBadRequest || code == http.StatusConflict:
		return ErrRejected
	default:
		return ErrUnavailable
	}
}

// IsUpstream reports whether err originated from a collaborator call.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrRejected) ||
		errors.Is(err, ErrUnavailable)
}
