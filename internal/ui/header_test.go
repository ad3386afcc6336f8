package ui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/five82/huddle/internal/groupme"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"deadline", fmt.Errorf("poll: %w", context.DeadlineExceeded), "TIMEOUT"},
		{"cancelled", context.Canceled, "CANCELLED"},
		{"deadline_in_transport", &groupme.TransportError{Op: "me", Kind: groupme.KindConnection, Err: context.DeadlineExceeded}, "TIMEOUT"},
		{"unauthorized", &groupme.RemoteError{Op: "me", Code: 401}, "UNAUTHORIZED"},
		{"forbidden", &groupme.RemoteError{Op: "me", Code: 403}, "FORBIDDEN"},
		{"not_found", &groupme.RemoteError{Op: "group", Code: 404}, "NOT FOUND"},
		{"rate_limited", &groupme.RemoteError{Op: "groups", Code: 429}, "RATE LIMITED"},
		{"other_remote", &groupme.RemoteError{Op: "groups", Code: 500}, "API ERROR 500"},
		{"decode", &groupme.DecodeError{Op: "groups", Status: 200, Err: errors.New("bad json")}, "BAD RESPONSE"},
		{"contract", &groupme.ContractViolationError{Op: "group", Code: 200}, "BAD RESPONSE"},
		{"no_data", &groupme.TransportError{Op: "group", Kind: groupme.KindNoData}, "BAD RESPONSE"},
		{"dns", &groupme.TransportError{Op: "me", Kind: groupme.KindConnection, Err: errors.New("dial tcp: lookup api.groupme.com: no such host")}, "HOST NOT FOUND"},
		{"dial_timeout", &groupme.TransportError{Op: "me", Kind: groupme.KindConnection, Err: errors.New("dial tcp 1.2.3.4:443: i/o timeout")}, "TIMEOUT"},
		{"refused", &groupme.TransportError{Op: "me", Kind: groupme.KindConnection, Err: errors.New("connection refused")}, "OFFLINE"},
		{"other", errors.New("boom"), "ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyError(tc.err); got != tc.want {
				t.Fatalf("classifyError = %q, want %q", got, tc.want)
			}
		})
	}
}
