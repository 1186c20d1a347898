// Package app wires option parsing, the editor launch and the git bootstrap
// into one run of the launcher.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/devstart/devstart/internal/ctxlog"
	"github.com/devstart/devstart/internal/editor"
	"github.com/devstart/devstart/internal/options"
	"github.com/devstart/devstart/internal/process"
	"github.com/devstart/devstart/internal/report"
	"github.com/devstart/devstart/internal/vcs"
	"github.com/spf13/pflag"
)

// App holds the collaborators of a run.
type App struct {
	Runner  process.Runner
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Version string

	// LoadGitConfig overrides how git configuration is read. Nil means
	// vcs.LoadGitConfig.
	LoadGitConfig vcs.ConfigLoader
}

// Run parses args and performs the launch. cwd and cwdErr are the result of
// looking up the process working directory.
//
// The returned error is an *ExitError whenever the process should end with a
// non-zero status. Version control failures are reported but never returned.
func (a *App) Run(ctx context.Context, args []string, cwd string, cwdErr error) error {
	rep := report.New(a.Stdout, a.Stderr)

	res, err := options.Parse(args, cwd, cwdErr)
	for _, w := range res.Warnings {
		rep.Warnf("%s", w)
	}
	switch {
	case errors.Is(err, pflag.ErrHelp):
		if err := options.WriteUsage(a.Stdout); err != nil {
			return exitf(ExitFailure, err)
		}
		return nil
	case errors.Is(err, options.ErrVersion):
		fmt.Fprintf(a.Stdout, "%s %s\n", options.Command, a.Version)
		return nil
	case err != nil:
		var unimpl *options.UnimplementedError
		if errors.As(err, &unimpl) {
			return exitf(ExitUsage, err)
		}
		var envErr *options.EnvironmentError
		if errors.As(err, &envErr) {
			return exitf(ExitEnvironment, err)
		}
		return exitf(ExitFailure, err)
	}
	cfg := res.Config

	ctx = ctxlog.WithLogger(ctx, a.logger(cfg))
	log := ctxlog.FromContext(ctx)
	log.Debug("resolved launch config",
		"dir", cfg.TargetDirectory,
		"profile", cfg.Profile.String(),
		"git", cfg.EnableVersionControl)

	getenv := a.Getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	settings, warnings := LoadSettings(getenv)
	for _, w := range warnings {
		rep.Warnf("%s", w)
	}

	rep.Infof("Opening %s with profile %s", cfg.TargetDirectory, cfg.Profile)
	launcher := &editor.Launcher{Runner: a.Runner, Executable: settings.Editor}
	if err := launcher.Launch(ctx, cfg); err != nil {
		return exitf(ExitFailure, err)
	}

	if cfg.EnableVersionControl {
		client := &vcs.Client{
			Runner:     a.Runner,
			Executable: settings.Git,
			Timeout:    settings.GitTimeout,
			LoadConfig: a.LoadGitConfig,
		}
		a.bootstrap(ctx, rep, client, cfg)
	}
	return nil
}

func (a *App) bootstrap(ctx context.Context, rep *report.Reporter, client *vcs.Client, cfg options.LaunchConfig) {
	res, err := client.Bootstrap(ctx, cfg)
	if errors.Is(err, vcs.ErrUnavailable) {
		rep.Warnf("skipping git bootstrap: %v", err)
		return
	}
	if err != nil {
		if res != nil {
			rep.Block("Status:", res.Status)
		}
		rep.Errorf("git bootstrap failed: %v", err)
		return
	}
	ctxlog.FromContext(ctx).Debug("git bootstrap finished", "action", res.Action.String())

	switch res.Action {
	case vcs.ActionInitialized:
		rep.Infof("Initialized git repository in %s", cfg.TargetDirectory)
		if res.Enclosing != "" {
			rep.Warnf("%s is inside the repository at %s", cfg.TargetDirectory, res.Enclosing)
		}
		rep.Hint("Next steps:", res.Guidance...)
	case vcs.ActionSynchronized:
		rep.Block("Status:", res.Status)
		if res.Remote != nil {
			rep.Infof("Pulled from %s (%s)", res.Remote.Name, res.Remote.URL)
		} else {
			rep.Infof("Pulled latest changes")
		}
		rep.Block("Pull:", res.Pull)
	}
}

func (a *App) logger(cfg options.LaunchConfig) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.Stderr, &slog.HandlerOptions{Level: level}))
}
