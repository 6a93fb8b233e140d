package stats

import "fmt"

// Severity tells the collector whether a failed lookup may be skipped.
type Severity int

const (
	// Recoverable failures come from the transport or a non-2xx status.
	Recoverable Severity = iota
	// Fatal failures abort the run.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Recoverable:
		return "recoverable"
	case Fatal:
		return "fatal"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// FetchError reports a failed lookup for one combination.
type FetchError struct {
	Severity    Severity
	Combination Combination
	Err         error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s/%s/%s: %v",
		e.Combination.Release, e.Combination.Module, e.Combination.Company, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.StatusCode)
}
