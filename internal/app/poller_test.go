package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/huddle/internal/groupme"
	"github.com/five82/huddle/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestCalculateBackoff_NeverBelowBase(t *testing.T) {
	base := time.Minute
	if got := calculateBackoff(3, base); got != base {
		t.Fatalf("calculateBackoff(3, 1m) = %v, want 1m", got)
	}
}

func TestRefresh_Success(t *testing.T) {
	f := &fakeClient{
		me:     groupme.CurrentUser{ID: "u1", Name: "Al"},
		groups: []groupme.Group{{ID: "10", Name: "Family"}},
	}
	var store state.Store
	refresh(context.Background(), &store, f, zerolog.Nop())

	snap := store.Snapshot()
	if !snap.HasMe || snap.Me.ID != "u1" {
		t.Fatalf("me = %#v", snap.Me)
	}
	if len(snap.Groups) != 1 || snap.Groups[0].Name != "Family" {
		t.Fatalf("groups = %#v", snap.Groups)
	}
	if f.groupOpts.PerPage != groupsPerPage {
		t.Fatalf("PerPage = %d, want %d", f.groupOpts.PerPage, groupsPerPage)
	}
}

func TestRefresh_MeFailureSkipsGroups(t *testing.T) {
	f := &fakeClient{meErr: errors.New("offline")}
	var store state.Store
	store.Update(&groupme.CurrentUser{ID: "u1"}, []groupme.Group{{ID: "10"}}, nil)

	refresh(context.Background(), &store, f, zerolog.Nop())

	if f.groupCalls != 0 {
		t.Fatalf("Groups called %d times after Me failed", f.groupCalls)
	}
	snap := store.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.LastError == nil {
		t.Fatalf("failures=%d err=%v", snap.ConsecutiveFailures, snap.LastError)
	}
	if len(snap.Groups) != 1 {
		t.Fatalf("previous groups lost: %#v", snap.Groups)
	}
}

func TestStartPoller_StopsOnCancel(t *testing.T) {
	f := &fakeClient{me: groupme.CurrentUser{ID: "u1"}}
	var store state.Store
	ctx, cancel := context.WithCancel(context.Background())

	StartPoller(ctx, &store, f, 10*time.Millisecond, zerolog.Nop())

	deadline := time.Now().Add(2 * time.Second)
	for !store.Snapshot().HasMe {
		if time.Now().After(deadline) {
			t.Fatal("poller never refreshed the store")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
}

func TestPreflight_UnauthorizedIsFatal(t *testing.T) {
	f := &fakeClient{meErr: &groupme.RemoteError{Op: "me", Code: 401, Errors: []string{"unauthorized"}}}
	var store state.Store
	if err := preflight(context.Background(), &store, f, zerolog.Nop()); err == nil {
		t.Fatal("preflight accepted a rejected token")
	}
}

func TestPreflight_NetworkErrorIsNotFatal(t *testing.T) {
	f := &fakeClient{meErr: &groupme.TransportError{Op: "me", Kind: groupme.KindConnection, Err: errors.New("dial tcp")}}
	var store state.Store
	if err := preflight(context.Background(), &store, f, zerolog.Nop()); err != nil {
		t.Fatalf("preflight = %v, want nil", err)
	}
	if store.Snapshot().ConsecutiveFailures != 1 {
		t.Fatal("failure not recorded")
	}
}
