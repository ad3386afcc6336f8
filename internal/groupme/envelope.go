package groupme

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Envelope is the {meta, response} wrapper every GroupMe endpoint returns.
type Envelope[T any] struct {
	Meta     Meta `json:"meta"`
	Response *T  `json:"response"`
}

// Meta holds the status block of an Envelope.
type Meta struct {
	Code   int      `json:"code"`
	Errors []string `json:"errors,omitempty"`
}

// decodeEnvelope unwraps a payload of type T. The error list is checked before
// the payload is looked at, so a populated response next to meta.errors is
// never returned.
func decodeEnvelope[T any](op string, status int, body []byte) (T, error) {
	var zero T
	if len(bytes.TrimSpace(body)) == 0 {
		if status < 200 || status >= 300 {
			return zero, emptyBodyError(op, status)
		}
		return zero, &TransportError{Op: op, Kind: KindNoData}
	}

	var env Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, &DecodeError{Op: op, Status: status, Err: err}
	}
	if len(env.Meta.Errors) > 0 {
		return zero, &RemoteError{Op: op, Code: env.Meta.Code, Errors: env.Meta.Errors}
	}
	if env.Response == nil {
		return zero, &ContractViolationError{Op: op, Code: env.Meta.Code}
	}
	return *env.Response, nil
}

// decodeNoPayload validates the envelope of an operation that has no payload
// type. Several of these endpoints answer with an empty body on success.
func decodeNoPayload(op string, status int, body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		if status >= 200 && status < 300 {
			return nil
		}
		return emptyBodyError(op, status)
	}

	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		return &DecodeError{Op: op, Status: status, Err: err}
	}
	if len(env.Meta.Errors) > 0 {
		return &RemoteError{Op: op, Code: env.Meta.Code, Errors: env.Meta.Errors}
	}
	return nil
}

// decodeField unwraps the payload member named key. A successful envelope
// whose payload lacks key, or holds null there, is a contract violation.
func decodeField[T any](op string, status int, body []byte, key string) (T, error) {
	var zero T
	fields, err := decodeEnvelope[map[string]json.RawMessage](op, status, body)
	if err != nil {
		return zero, err
	}
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return zero, &ContractViolationError{Op: op, Code: status, Field: key}
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, &DecodeError{Op: op, Status: status, Err: err}
	}
	return out, nil
}

// emptyBodyError reports a non-2xx status that came without an envelope.
func emptyBodyError(op string, status int) error {
	return &RemoteError{Op: op, Code: status, Errors: []string{http.StatusText(status)}}
}
