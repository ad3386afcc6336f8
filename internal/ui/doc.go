// Package ui provides the terminal user interface for huddle.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds all state. Update reacts to key
// presses, window resizes, the refresh tick and the results of API calls.
// View renders with Lip Gloss. Network calls never run inside Update; they
// are returned as tea.Cmd closures that report back with a message.
//
// # Package Structure
//
//   - app.go: Model, Options, Init/Update/View, global keys and Run
//   - groups.go: snapshot handling, group ordering, unread markers, groups pane
//   - conversation.go: message loading, paging, merging, likes, messages pane
//   - composer.go: the message input and sending
//   - leaderboard.go: the most liked messages overlay
//   - header.go: status bar, command bar and error classification
//   - help.go: help overlay built from the key map
//   - keys.go: key bindings
//   - theme.go, style_helpers.go: palettes, styles and box drawing
//
// # Data Sources
//
// The current user and the group list come from state.Store, which the
// background poller in package app keeps fresh. The UI copies a snapshot
// every tick. Messages, likes and leaderboards are fetched on demand through
// the Client interface, which *groupme.Client satisfies.
//
// When a snapshot shows a newer last message for the open group, the newest
// page is fetched and merged by message ID. Other groups with new activity
// get an unread marker until they are opened.
//
// # Key Bindings
//
//   - Tab: switch between the groups and messages panes
//   - j/k, g/G: move the cursor
//   - Enter: open the selected group
//   - c: write a message (Enter sends, Esc keeps the draft and closes)
//   - l: like or unlike the selected message
//   - o: load older messages (also k at the top)
//   - r: reload the open group
//   - b: leaderboard, p cycles day/week/month
//   - T: cycle theme (saved to prefs)
//   - h or ?: help
//   - e or Ctrl+C: exit
//
// # Preferences
//
// The theme and the last opened group are written to the prefs file so the
// next session starts where this one ended.
package ui
