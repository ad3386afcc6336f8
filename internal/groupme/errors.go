package groupme

import (
	"errors"
	"fmt"
	"strings"
)

// TransportErrorKind classifies a failed network exchange.
type TransportErrorKind int

const (
	// KindConnection wraps the error returned by the HTTP client.
	KindConnection TransportErrorKind = iota
	// KindInvalidResponse means a response arrived but its body could not be read.
	KindInvalidResponse
	// KindNoData means the exchange succeeded with an empty body where a payload was expected.
	KindNoData
)

func (k TransportErrorKind) String() string {
	switch k {
	case KindConnection:
		return "connection error"
	case KindInvalidResponse:
		return "invalid response"
	case KindNoData:
		return "no data"
	default:
		return "unknown transport error"
	}
}

// TransportError reports a failure to complete the HTTP exchange.
type TransportError struct {
	Op   string
	Kind TransportErrorKind
	Err  error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("groupme: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("groupme: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that did not match the expected JSON shape.
type DecodeError struct {
	Op     string
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("groupme: %s: decode response (status %d): %v", e.Op, e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RemoteError carries the error list GroupMe reported in meta.errors.
// Callers can use errors.As to extract it:
//
//	var remote *groupme.RemoteError
//	if errors.As(err, &remote) {
//	    log.Println(remote.Errors)
//	}
type RemoteError struct {
	Op     string
	Code   int
	Errors []string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("groupme: %s: remote error %d: %s", e.Op, e.Code, strings.Join(e.Errors, "; "))
}

// ContractViolationError means the envelope reported success but carried no
// payload. Field names the missing member when the payload itself was present.
type ContractViolationError struct {
	Op    string
	Code  int
	Field string
}

func (e *ContractViolationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("groupme: %s: response.%s missing from successful envelope (code %d)", e.Op, e.Field, e.Code)
	}
	return fmt.Sprintf("groupme: %s: response missing from successful envelope (code %d)", e.Op, e.Code)
}

// IsRemoteError reports whether err is a *RemoteError with an entry containing substr.
// An empty substr matches any remote error.
func IsRemoteError(err error, substr string) bool {
	var remote *RemoteError
	if !errors.As(err, &remote) {
		return false
	}
	if substr == "" {
		return true
	}
	for _, msg := range remote.Errors {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
