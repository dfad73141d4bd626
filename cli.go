package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/shazow/wifiseek/internal/config"
	"github.com/shazow/wifiseek/internal/debug"
	"github.com/shazow/wifiseek/internal/log"
	"github.com/shazow/wifiseek/internal/poll"
	"github.com/shazow/wifiseek/internal/sink"
	"github.com/shazow/wifiseek/internal/tui"
	"github.com/shazow/wifiseek/wifi"
)

// newScanner is replaced in tests.
var newScanner = GetScanner

// app is one configured run of the command.
type app struct {
	cfg     *config.Config
	query   wifi.Query
	scanner wifi.Scanner

	stdout, stderr io.Writer
	logger         *slog.Logger
	tuiLog         *log.TUIHandler
	closers        []io.Closer
}

// newApp validates cfg and sets up logging, theme and scanner. The watch
// view owns the terminal, so in that mode log records only go to the log
// file and the view.
func newApp(cfg *config.Config, stdout, stderr io.Writer, watch bool) (*app, error) {
	a := &app{cfg: cfg, stdout: stdout, stderr: stderr}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	q, err := cfg.Query()
	if err != nil {
		return nil, err
	}
	a.query = q

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	var file io.Writer
	if cfg.LogFile != "" {
		f, err := debug.OpenFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, f)
		file = f
	}
	var handler slog.Handler
	if watch {
		a.tuiLog = log.NewTUIHandler(debug.NewHandler(io.Discard, level, file))
		handler = a.tuiLog
	} else {
		handler = debug.NewHandler(stderr, level, file)
	}
	a.logger = slog.New(handler).With("run_id", uuid.NewString())
	slog.SetDefault(a.logger)

	if err := tui.LoadThemeFile(cfg.Theme); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}

	a.scanner, err = newScanner(cfg.Backend, a.logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize %s backend: %w", cfg.Backend, err)
	}
	return a, nil
}

// Close releases the log file.
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *app) controller(ctx context.Context, sinks []poll.Sink, observer func(poll.Event)) *poll.Controller {
	return &poll.Controller{
		Scanner:     a.scanner,
		Interface:   resolveInterface(ctx, a.cfg.Interface, a.logger),
		Query:       a.query,
		Retry:       a.cfg.Retry,
		Delay:       a.cfg.Timeout.Duration(),
		MaxAttempts: a.cfg.MaxAttempts,
		Sinks:       sinks,
		Observer:    observer,
		Logger:      a.logger,
	}
}

// outputSinks are the sinks that write to files or stdout, in the order
// results are delivered.
func (a *app) outputSinks(status *sink.Status) []poll.Sink {
	var sinks []poll.Sink
	if a.cfg.Output != "" {
		sinks = append(sinks, &sink.File{Path: a.cfg.Output, Status: status, Logger: a.logger})
	}
	if a.cfg.Print {
		sinks = append(sinks, &sink.Console{W: a.stdout})
	}
	if a.cfg.QR {
		sinks = append(sinks, &sink.QRCode{W: a.stdout})
	}
	return sinks
}

// runScan searches once, or until a match when retrying, reporting
// progress on stderr.
func (a *app) runScan(ctx context.Context) int {
	status := sink.NewStatus(a.stderr, a.query)
	c := a.controller(ctx, a.outputSinks(status), status.Observe)
	a.logger.Debug("starting search", "interface", c.Interface, "backend", a.cfg.Backend, "query", a.query.String(), "retry", c.Retry)
	return exitStatus(c.Run(ctx))
}

// runWatch runs the search behind the interactive view. Stdout sinks run
// after the view closes so they do not draw over it.
func (a *app) runWatch(ctx context.Context) int {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var fileSinks []poll.Sink
	if a.cfg.Output != "" {
		fileSinks = append(fileSinks, &sink.File{Path: a.cfg.Output, Logger: a.logger})
	}

	c := a.controller(runCtx, fileSinks, nil)
	m := tui.NewModel(c.Interface, a.query, cancel)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(a.stderr))
	c.Observer = func(ev poll.Event) { p.Send(tui.PollEventMsg(ev)) }
	a.tuiLog.SetOutput(p.Send)
	defer a.tuiLog.SetOutput(nil)

	results := make(chan poll.Result, 1)
	go func() {
		res := c.Run(runCtx)
		results <- res
		p.Send(tui.ResultMsg(res))
	}()

	if _, err := p.Run(); err != nil {
		a.logger.Error("watch view failed", "error", err)
		fmt.Fprintf(a.stderr, "error running program: %v\n", err)
	}
	cancel()
	res := <-results

	if res.State == poll.StateMatched {
		for _, s := range a.outputSinks(nil) {
			if _, ok := s.(*sink.File); ok {
				continue
			}
			if err := s.Emit(ctx, a.query, res.Networks); err != nil {
				a.logger.Warn("failed to emit results", "sink", fmt.Sprintf("%T", s), "error", err)
			}
		}
	}
	return exitStatus(res)
}

// exitStatus maps a controller result to the process exit code. Not
// finding anything is a successful run.
func exitStatus(res poll.Result) int {
	if res.IsFailure() {
		return 1
	}
	return 0
}
