// Package config loads huddle's settings.
//
// # Overview
//
// Configuration comes from four layers, each overriding the previous one:
//
//  1. Built-in defaults (see Default)
//  2. A TOML file, ~/.config/huddle/config.toml unless a path is given
//  3. A .env file in the working directory, loaded into the environment
//  4. Process environment variables
//
// The merged result is validated with go-playground/validator before Load
// returns it. A missing config file or .env file is not an error.
//
// # Configuration Fields
//
//	token          GROUPME_TOKEN          required, the GroupMe access token
//	api_url        HUDDLE_API_URL         default https://api.groupme.com
//	poll_seconds   HUDDLE_POLL_SECONDS    default 15, 1..3600
//	log_level      HUDDLE_LOG_LEVEL       default info, any zerolog level name
//	log_file       HUDDLE_LOG_FILE        default ~/.local/state/huddle/huddle.log
//	default_group  HUDDLE_DEFAULT_GROUP   group selected at startup (optional)
//	message_limit  HUDDLE_MESSAGE_LIMIT   default 20, 1..100
//
// # TOML Format
//
//	token = "abc123"
//	poll_seconds = 30
//	log_level = "debug"
//	default_group = "1234567"
//
// # Path Expansion
//
// The config path and log_file accept "~" for the home directory. Relative
// paths are made absolute against the working directory.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures
//   - File read and TOML parse errors (not os.ErrNotExist)
//   - A malformed .env file
//   - Environment values that do not parse into the field type
//   - Validation failures, listing every invalid field in one message
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//	client, err := groupme.NewClient(cfg.Token, groupme.WithBaseURL(cfg.APIURL))
//
// # Testing Considerations
//
// Load reads the process environment and working directory. Tests should
// point HOME at a temp dir, unset the variables above and t.Chdir into an
// empty directory before calling it.
package config
