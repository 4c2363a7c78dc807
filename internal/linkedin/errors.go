package linkedin

import "fmt"

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	// KindTransient covers 429 and 5xx responses that remained after the
	// bounded retry loop. Not expected to be fatal to the caller.
	KindTransient ErrorKind = iota
	// KindRejected covers other non-2xx responses (401, 403, 400, ...).
	// These do not self-resolve and are never retried.
	KindRejected
	// KindUnreachable covers transport failures (connection errors,
	// timeouts) that survived the retry loop.
	KindUnreachable
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindRejected:
		return "rejected"
	case KindUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// APIError is returned by Client calls that reached a terminal failure.
// StatusCode and Body are zero/empty for KindUnreachable.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindUnreachable:
		return fmt.Sprintf("linkedin api unreachable: %v", e.Err)
	default:
		return fmt.Sprintf("linkedin api request %s: status %d: %s", e.Kind, e.StatusCode, e.Body)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}
