package sportsdb

import "errors"

var (
	ErrNotConfigured = errors.New("sports api base url not configured")
	ErrNetwork       = errors.New("sports api request failed")
	ErrParse         = errors.New("sports api response not understood")
	ErrNotFound      = errors.New("sports api returned no data")
)

// Outcome collapses a directory error into what the caller can act on.
type Outcome int

const (
	Found Outcome = iota
	Empty
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Empty:
		return "empty"
	default:
		return "failed"
	}
}

func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return Found
	case errors.Is(err, ErrNotFound):
		return Empty
	default:
		return Failed
	}
}

// IsUnreachable reports whether err means the request never produced a
// response worth parsing.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrNotConfigured)
}
