// Package state provides thread-safe state shared by the poller and the UI.
//
// # Overview
//
// The background poller fetches the current user and the group list from
// GroupMe and hands them to a Store. The UI reads a Snapshot on its own
// schedule. Neither side blocks on the other's network or rendering work.
//
//	Producer (Poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ client.Me()    │            │                 │
//	│ client.Groups()│            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  repeat...     │            │  render UI      │
//	└────────────────┘            └─────────────────┘
//
// # Update Semantics
//
//	// Success: replace user and groups, clear the error
//	store.Update(&me, groups, nil)
//
//	// Failure: keep the last good data, record the error
//	store.Update(nil, nil, err)
//
// Each failure increments ConsecutiveFailures; a success resets it.
// IsOffline reports two or more failures in a row.
//
// # Copying
//
// Update and Snapshot copy the group slice, so callers may modify what they
// pass in or get back. Group members and attachments are not deep copied;
// treat them as read-only. LastError is wrapped with %w on the way out, so
// errors.As still finds a *groupme.RemoteError underneath.
//
// # Testing Considerations
//
// The zero Store is ready to use and Snapshot returns a zero Snapshot until
// the first Update.
package state
