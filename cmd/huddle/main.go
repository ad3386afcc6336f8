// huddle is a terminal client for GroupMe.
//
// Without arguments it starts the interactive UI. With a command it runs
// once and prints the result, for example:
//
//	huddle groups
//	huddle send 1234567 "running late"
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/five82/huddle/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	var opts app.Options

	flagSet := pflag.NewFlagSet("huddle", pflag.ContinueOnError)
	flagSet.StringVar(&opts.ConfigPath, "config", "", "path to config.toml (optional)")
	flagSet.StringVar(&opts.PrefsPath, "prefs", "", "path to the UI preferences file (optional)")
	flagSet.IntVar(&opts.PollEvery, "poll", 0, "refresh interval in seconds (optional, defaults to 15s)")
	flagSet.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flagSet.BoolP("help", "h", false, "show help")
	// Message text after the command must not be read as flags.
	flagSet.SetInterspersed(false)

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return 0
		}
		fmt.Fprintf(os.Stderr, "huddle: %v\n", err)
		return 2
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if args := flagSet.Args(); len(args) > 0 {
		err := app.RunCommand(ctx, opts, args, os.Stdout)
		switch {
		case errors.Is(err, app.ErrUsage):
			fmt.Fprintf(os.Stderr, "huddle: %v\n\n", err)
			printHelp(flagSet)
			return 2
		case err != nil:
			fmt.Fprintf(os.Stderr, "huddle: %v\n", err)
			return 1
		}
		return 0
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "huddle: %v\n", err)
		return 1
	}
	return 0
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprint(os.Stderr, `huddle is a terminal client for GroupMe.

Without a command, starts the interactive UI. The access token is read
from GROUPME_TOKEN, a .env file, or the token key in config.toml.

Usage:
  huddle [flags]
  huddle [flags] <command> [args]

Commands:
`)
	for _, c := range app.Commands {
		fmt.Fprintf(os.Stderr, "  %-28s %s\n", c.Usage, c.Summary)
	}
	fmt.Fprint(os.Stderr, "\nFlags:\n")
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
