// Package app provides the orchestration layer for huddle.
//
// # Overview
//
// This package wires together configuration, logging, the GroupMe client,
// polling, state management and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Architecture
//
//  1. Load configuration (TOML file, .env, environment)
//  2. Open the log file and build a zerolog logger
//  3. Create the GroupMe client with the configured token and base URL
//  4. Create the shared state.Store for UI and poller coordination
//  5. Preflight: fetch the user and group list once; a rejected token is fatal
//  6. Launch the background poller goroutine
//  7. Start the TUI and block until the user exits or the context is cancelled
//
// # Components
//
//   - app.go: Run, shared setup and the preflight check
//   - poller.go: background refresh of the user and groups with backoff
//   - commands.go: one-shot subcommands (me, groups, messages, send, like, unlike, top)
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read file, .env and environment
//	       ├─────> logging.New()        Log to file, never the terminal
//	       ├─────> groupme.NewClient()  HTTP client
//	       ├─────> state.Store{}        Shared state container
//	       ├─────> preflight()          First fetch, token check
//	       ├─────> StartPoller()        Launch background updates
//	       └─────> ui.Run()             Start TUI (blocks)
//
// # Polling Behavior
//
// The poller refreshes at the configured interval (default 15 seconds). Each
// round fetches the current user and then the group list and updates the store.
// When a round fails the store keeps the previous data and records the error.
// The next wait doubles per consecutive failure, capped at 30 seconds but
// never shorter than the configured interval.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Missing token or invalid configuration
//   - GroupMe answering 401 to the preflight fetch
//
// Recoverable errors (logged, polling continues):
//   - Network failures and timeouts
//   - Remote errors other than 401 during polling
//
// One-shot commands return every error to the caller. ErrUsage marks bad
// arguments so the CLI can print help instead of a stack of wrapped errors.
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{PollEvery: 30}); err != nil {
//		log.Fatalf("huddle failed: %v", err)
//	}
package app
