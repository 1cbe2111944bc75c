package pilot

import (
	"errors"
	"fmt"
)

// RefreshState is where a refresh ended. Committed is the only success.
type RefreshState int

const (
	Committed RefreshState = iota
	FetchFailed
	ParseFailed
	RemoteError
	MissingSkills
	MissingImplants
	MalformedData
)

var stateNames = [...]string{
	Committed:       "committed",
	FetchFailed:     "fetch failed",
	ParseFailed:     "parse failed",
	RemoteError:     "remote error",
	MissingSkills:   "missing skills",
	MissingImplants: "missing implants",
	MalformedData:   "malformed data",
}

func (s RefreshState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("RefreshState(%d)", int(s))
	}

	return stateNames[s]
}

var (
	ErrFetchFailed    = errors.New("unable to fetch character sheet")
	ErrParseFailed    = errors.New("unable to parse character sheet")
	ErrRemoteError    = errors.New("api returned an error")
	ErrMissingSection = errors.New("character sheet section missing")
	ErrMalformedData  = errors.New("malformed character sheet")
)

// RefreshError is returned by Refresh for every failure. The pilot is left
// untouched whenever one is returned. Error() is meant for end users.
type RefreshError struct {
	State RefreshState
	Pilot string

	// Code and Text are set for RemoteError.
	Code int
	Text string

	// Section is "skills" or "implants" for the Missing states.
	Section string

	Err error
}

func (e *RefreshError) Error() string {
	switch e.State {
	case FetchFailed:
		return fmt.Sprintf("Unable to fetch %s's data: %s", e.Pilot, e.cause())
	case ParseFailed, MalformedData:
		return fmt.Sprintf("Unable to parse %s's data: %s", e.Pilot, e.cause())
	case RemoteError:
		return fmt.Sprintf("API Error: %s", e.Text)
	case MissingSkills, MissingImplants:
		return fmt.Sprintf("Unable to fetch %s's %s", e.Pilot, e.Section)
	default:
		return fmt.Sprintf("refresh of %s ended in state %s", e.Pilot, e.State)
	}
}

func (e *RefreshError) cause() string {
	if e.Err == nil {
		return e.State.String()
	}

	return e.Err.Error()
}

func (e *RefreshError) sentinel() error {
	switch e.State {
	case FetchFailed:
		return ErrFetchFailed
	case ParseFailed:
		return ErrParseFailed
	case RemoteError:
		return ErrRemoteError
	case MissingSkills, MissingImplants:
		return ErrMissingSection
	case MalformedData:
		return ErrMalformedData
	default:
		return nil
	}
}

// Unwrap exposes both the matching Err* sentinel and the underlying cause.
func (e *RefreshError) Unwrap() []error {
	var errs []error
	if s := e.sentinel(); s != nil {
		errs = append(errs, s)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// RefreshStateOf reports the state a Refresh error ended in. nil maps to
// Committed; errors that aren't a *RefreshError map to FetchFailed.
func RefreshStateOf(err error) RefreshState {
	if err == nil {
		return Committed
	}

	var refreshErr *RefreshError
	if errors.As(err, &refreshErr) {
		return refreshErr.State
	}

	return FetchFailed
}
