package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings huddle needs to talk to GroupMe.
type Config struct {
	Token        string `toml:"token" envconfig:"GROUPME_TOKEN" validate:"required"`
	APIURL       string `toml:"api_url" envconfig:"HUDDLE_API_URL" validate:"required,url"`
	PollSeconds  int    `toml:"poll_seconds" envconfig:"HUDDLE_POLL_SECONDS" validate:"min=1,max=3600"`
	LogLevel     string `toml:"log_level" envconfig:"HUDDLE_LOG_LEVEL" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFile      string `toml:"log_file" envconfig:"HUDDLE_LOG_FILE" validate:"required"`
	DefaultGroup string `toml:"default_group" envconfig:"HUDDLE_DEFAULT_GROUP"`
	MessageLimit int    `toml:"message_limit" envconfig:"HUDDLE_MESSAGE_LIMIT" validate:"min=1,max=100"`
}

const (
	defaultConfigPath   = "~/.config/huddle/config.toml"
	defaultAPIURL       = "https://api.groupme.com"
	defaultPollSeconds  = 15
	defaultLogLevel     = "info"
	defaultLogFile      = "~/.local/state/huddle/huddle.log"
	defaultMessageLimit = 20
)

// dotenvPath is read before the environment is consulted. A missing file is ignored.
var dotenvPath = ".env"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Default returns the configuration used when no file or environment
// overrides are present. The token is left empty.
func Default() Config {
	return Config{
		APIURL:       defaultAPIURL,
		PollSeconds:  defaultPollSeconds,
		LogLevel:     defaultLogLevel,
		LogFile:      mustExpand(defaultLogFile),
		MessageLimit: defaultMessageLimit,
	}
}

// Load builds the configuration from, in increasing precedence, defaults,
// the TOML file at path, a .env file in the working directory and the
// process environment. The result is validated before it is returned.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := readFile(resolved, &cfg); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(bytes, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// normalize trims values and restores defaults for blanks.
func (c *Config) normalize() {
	c.Token = strings.TrimSpace(c.Token)
	c.DefaultGroup = strings.TrimSpace(c.DefaultGroup)

	c.APIURL = strings.TrimSpace(c.APIURL)
	if c.APIURL == "" {
		c.APIURL = defaultAPIURL
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}

	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.LogFile == "" {
		c.LogFile = defaultLogFile
	}
	c.LogFile = mustExpand(c.LogFile)
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Field()+" "+validationMessage(fe))
	}
	sort.Strings(msgs)
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() == "token" {
			return "is required (set GROUPME_TOKEN or token in the config file)"
		}
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "url":
		return "must be an absolute URL"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	}
	return "is invalid"
}

// PollInterval returns the background refresh cadence.
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return defaultPollSeconds * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
