package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/shazow/wifiseek/internal/config"
)

var (
	// Version is the version of the application. It is set at build time.
	Version string = "dev"
)

// main is the entry point of the application
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, performs the requested search and returns the process
// exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.Default()
	rootFlagSet := flag.NewFlagSet("wifiseek", flag.ContinueOnError)
	rootFlagSet.SetOutput(stderr)
	cfg.RegisterFlags(rootFlagSet)

	exitCode := 0

	watchCmd := &ffcli.Command{
		Name:       "watch",
		ShortUsage: "wifiseek [flags] watch",
		ShortHelp:  "Follow the search in an interactive view",
		LongHelp:   "Runs the same scan, filter and retry loop as the root command, showing progress and results live. Flags go before the subcommand.",
		FlagSet:    flag.NewFlagSet("watch", flag.ContinueOnError),
		Exec: func(ctx context.Context, args []string) error {
			a, err := newApp(&cfg, stdout, stderr, true)
			if err != nil {
				return err
			}
			defer a.Close()
			exitCode = a.runWatch(ctx)
			return nil
		},
	}

	root := &ffcli.Command{
		ShortUsage:  "wifiseek [flags] [<subcommand>]",
		ShortHelp:   "Scan for nearby wireless networks, filter and sort them",
		FlagSet:     rootFlagSet,
		Options:     config.Options(),
		Subcommands: []*ffcli.Command{watchCmd},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected arguments: %v", args)
			}
			a, err := newApp(&cfg, stdout, stderr, false)
			if err != nil {
				return err
			}
			defer a.Close()
			exitCode = a.runScan(ctx)
			return nil
		},
	}

	if err := root.Parse(config.ExpandAliases(args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error parsing flags: %v\n", err)
		return 1
	}

	if cfg.Version {
		fmt.Fprintln(stdout, Version)
		return 0
	}

	if err := root.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return exitCode
}
