package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/huddle/internal/groupme"
	"github.com/five82/huddle/internal/state"
)

const (
	defaultPollInterval = 15 * time.Second
	maxBackoff          = 30 * time.Second
	groupsPerPage       = 50
)

// pollSource is the part of the GroupMe API the poller reads.
type pollSource interface {
	Me(ctx context.Context) (groupme.CurrentUser, error)
	Groups(ctx context.Context, opts groupme.ListGroupsOptions) ([]groupme.Group, error)
}

// StartPoller launches a background goroutine that refreshes the store. After
// a failure the next attempt waits longer, up to maxBackoff. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, client pollSource, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			refresh(ctx, store, client, logger)
		}
	}()
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff. The result is never shorter than base.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures > 16 {
		failures = 16
	}
	backoff := base << failures
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	if backoff < base {
		return base
	}
	return backoff
}

func refresh(ctx context.Context, store *state.Store, client pollSource, logger zerolog.Logger) {
	me, err := client.Me(ctx)
	if err != nil {
		store.Update(nil, nil, err)
		logger.Warn().Err(err).Msg("user poll failed")
		return
	}
	groups, err := client.Groups(ctx, groupme.ListGroupsOptions{PerPage: groupsPerPage})
	if err != nil {
		store.Update(nil, nil, err)
		logger.Warn().Err(err).Msg("groups poll failed")
		return
	}
	store.Update(&me, groups, nil)
	logger.Debug().Int("groups", len(groups)).Msg("poll complete")
}
