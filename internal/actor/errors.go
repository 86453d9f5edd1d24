package actor

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies actor failures.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindValidation
	KindNotFound
	KindServer
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Sentinels matched with errors.Is against any *Error of the same Kind.
var (
	ErrNetwork    = errors.New("actor unreachable")
	ErrValidation = errors.New("actor rejected request")
	ErrNotFound   = errors.New("actor record not found")
	ErrServer     = errors.New("actor server error")
	ErrDecode     = errors.New("actor response undecodable")
)

// Error is returned by every Client call that fails.
type Error struct {
	Kind Kind
	// Op is the request path, e.g. "PUT /api/presets/focus".
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("actor %s: %s (status %d): %s", e.Op, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("actor %s: %s: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k Kind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindServer:
		return ErrServer
	case KindDecode:
		return ErrDecode
	default:
		return nil
	}
}

// kindForStatus maps an HTTP status >= 400 to a Kind.
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity, status == http.StatusConflict:
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// KindOf returns the Kind of err, or 0 when err is not an actor error.
func KindOf(err error) Kind {
	var actorErr *Error
	if errors.As(err, &actorErr) {
		return actorErr.Kind
	}
	return 0
}
