package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/huddle/internal/config"
	"github.com/five82/huddle/internal/groupme"
	"github.com/five82/huddle/internal/logging"
	"github.com/five82/huddle/internal/prefs"
	"github.com/five82/huddle/internal/state"
	"github.com/five82/huddle/internal/ui"
)

// Options configure the huddle application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/huddle/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
	LogLevel   string // empty uses the config value
}

// runtime is what both the TUI and one-shot commands need.
type runtime struct {
	cfg    config.Config
	client *groupme.Client
	logger zerolog.Logger
	close  func()
}

func setup(opts Options) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollSeconds = opts.PollEvery
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	var output io.Writer = io.Discard
	closeLog := func() {}
	if file, err := logging.OpenFile(cfg.LogFile); err == nil {
		output = file
		closeLog = func() { _ = file.Close() }
	} else {
		fmt.Fprintf(os.Stderr, "huddle: logging disabled: %v\n", err)
	}
	logger := logging.New(logging.Options{
		Service: "huddle",
		Level:   logging.ParseLevel(cfg.LogLevel),
		Format:  os.Getenv("HUDDLE_LOG_FORMAT"),
		Output:  output,
	})

	client, err := groupme.NewClient(cfg.Token,
		groupme.WithBaseURL(cfg.APIURL),
		groupme.WithLogger(logger.With().Str("component", "groupme").Logger()),
	)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("init groupme client: %w", err)
	}

	return &runtime{cfg: cfg, client: client, logger: logger, close: closeLog}, nil
}

// Run boots the huddle TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	store := &state.Store{}
	interval := rt.cfg.PollInterval()

	rt.logger.Info().
		Dur("poll_interval", interval).
		Str("api_url", rt.cfg.APIURL).
		Msg("starting huddle")

	if err := preflight(ctx, store, rt.client, rt.logger); err != nil {
		return err
	}
	StartPoller(ctx, store, rt.client, interval, rt.logger)

	initialGroup := userPrefs.LastGroup
	if rt.cfg.DefaultGroup != "" {
		initialGroup = rt.cfg.DefaultGroup
	}

	err = ui.Run(ui.Options{
		Context:      ctx,
		Client:       rt.client,
		Store:        store,
		Logger:       rt.logger.With().Str("component", "ui").Logger(),
		PollTick:     time.Second,
		MessageLimit: rt.cfg.MessageLimit,
		ThemeName:    userPrefs.Theme,
		InitialGroup: initialGroup,
		PrefsPath:    opts.PrefsPath,
	})
	if err != nil {
		rt.logger.Error().Err(err).Msg("ui exited with error")
		return err
	}
	rt.logger.Info().Msg("huddle stopped")
	return nil
}

const preflightTimeout = 5 * time.Second

// preflight populates the store before the first frame. A rejected token is
// fatal; anything else is left for the poller to retry.
func preflight(ctx context.Context, store *state.Store, client pollSource, logger zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, preflightTimeout)
	defer cancel()

	refresh(ctx, store, client, logger)

	var remote *groupme.RemoteError
	if err := store.Snapshot().LastError; errors.As(err, &remote) && remote.Code == 401 {
		return fmt.Errorf("groupme rejected the access token: %w", err)
	}
	return nil
}
