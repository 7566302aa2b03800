package client

import (
	"fmt"
	"time"
)

// Error kinds reported on failed results. A transport failure, a malformed
// body, and a timeout are distinct from "response received but assertion
// failed" and are never conflated with it.
const (
	KindTransport = "transport"
	KindMalformed = "malformed"
	KindTimeout   = "timeout"
	KindCanceled  = "canceled"
)

// TransportError covers network failures and non-2xx HTTP statuses.
type TransportError struct {
	URL    string
	Status int // 0 when the request never produced a response
	Err    error
	Body   string
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.Status, e.Body)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError covers HTTP success with an unparseable body or a
// body missing required fields.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}
	return "malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// TimeoutError covers requests that exceeded the configured ceiling.
type TimeoutError struct {
	URL     string
	Elapsed time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.URL, e.Elapsed.Round(time.Millisecond))
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// CanceledError covers requests abandoned because the run's context was
// canceled, typically an operator interrupt. Kept apart from timeouts so an
// interrupted scenario is not reported as an endpoint latency problem.
type CanceledError struct {
	URL string
	Err error
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("request to %s canceled: %v", e.URL, e.Err)
}

func (e *CanceledError) Unwrap() error { return e.Err }
