// Package vcs bootstraps git for the launcher's target directory: it
// initializes a repository when there is none and otherwise shows its status
// and pulls from the configured remote.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devstart/devstart/internal/ctxlog"
	"github.com/devstart/devstart/internal/options"
	"github.com/devstart/devstart/internal/process"
)

// DefaultExecutable is the git client looked up on PATH.
const DefaultExecutable = "git"

// DefaultTimeout bounds every git subprocess.
const DefaultTimeout = 2 * time.Minute

// ErrUnavailable means the git client could not be run at all.
var ErrUnavailable = errors.New("git client not available")

// Step names a git subcommand run during bootstrap.
type Step string

const (
	StepInit   Step = "init"
	StepStatus Step = "status"
	StepPull   Step = "pull"
)

// StepError reports the bootstrap step that failed. Later steps did not run.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	// ExitError already names the command.
	var exitErr *process.ExitError
	if errors.As(e.Err, &exitErr) {
		return e.Err.Error()
	}
	return fmt.Sprintf("git %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Action is what Bootstrap did to the target directory.
type Action int

const (
	// ActionInitialized means a new repository was created.
	ActionInitialized Action = iota + 1
	// ActionSynchronized means an existing repository was pulled.
	ActionSynchronized
)

func (a Action) String() string {
	switch a {
	case ActionInitialized:
		return "initialized"
	case ActionSynchronized:
		return "synchronized"
	default:
		return "none"
	}
}

// Result describes what a bootstrap did, up to the first failing step.
type Result struct {
	Action Action
	// Status is the short status output, set for ActionSynchronized.
	Status string
	// Pull is the pull output, set for ActionSynchronized.
	Pull string
	// Remote is the remote the pull used, when one is configured.
	Remote *Remote
	// Guidance lists the manual steps left after ActionInitialized.
	Guidance []string
	// Enclosing is set when a new repository was nested inside another one.
	Enclosing string
}

// Client runs the git bootstrap through a process.Runner.
type Client struct {
	Runner     process.Runner
	Executable string
	// Timeout bounds each subprocess. Zero means DefaultTimeout.
	Timeout time.Duration
	// LoadConfig reads git configuration. Nil means LoadGitConfig.
	LoadConfig ConfigLoader
}

// CheckAvailable checks that the git client can be executed.
func (c *Client) CheckAvailable(ctx context.Context) error {
	out, err := c.run(ctx, "", "--version")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	ctxlog.FromContext(ctx).Debug("git client available", "version", strings.TrimSpace(out.Stdout))
	return nil
}

// Bootstrap initializes or synchronizes the repository in cfg.TargetDirectory.
// It never initializes over an existing repository, and it stops at the first
// failing step. When the pull fails, the result of the steps before it is
// returned along with the *StepError.
func (c *Client) Bootstrap(ctx context.Context, cfg options.LaunchConfig) (*Result, error) {
	if err := c.CheckAvailable(ctx); err != nil {
		return nil, err
	}

	dir := cfg.TargetDirectory
	present, err := HasRepository(dir)
	if err != nil {
		return nil, err
	}
	if !present {
		return c.initialize(ctx, dir)
	}
	return c.synchronize(ctx, dir)
}

func (c *Client) initialize(ctx context.Context, dir string) (*Result, error) {
	ctxlog.FromContext(ctx).Debug("no repository found, initializing", "dir", dir)

	if _, err := c.run(ctx, dir, "init"); err != nil {
		return nil, &StepError{Step: StepInit, Err: err}
	}

	res := &Result{
		Action:    ActionInitialized,
		Enclosing: EnclosingRepository(dir),
		Guidance: []string{
			"git remote add origin <url>",
			"git add . && git commit -m \"Initial commit\"",
			"git push -u origin HEAD",
		},
	}
	if !hasIdentity(c.config(dir)) {
		res.Guidance = append([]string{
			"git config --global user.name \"Your Name\"",
			"git config --global user.email you@example.com",
		}, res.Guidance...)
	}
	return res, nil
}

func (c *Client) synchronize(ctx context.Context, dir string) (*Result, error) {
	ctxlog.FromContext(ctx).Debug("repository found, synchronizing", "dir", dir)

	status, err := c.run(ctx, dir, "status", "--short", "--branch")
	if err != nil {
		return nil, &StepError{Step: StepStatus, Err: err}
	}

	res := &Result{Action: ActionSynchronized, Status: status.Stdout}
	if r, ok := remote(c.config(dir)); ok {
		res.Remote = &r
	}

	pull, err := c.run(ctx, dir, "pull")
	if err != nil {
		return res, &StepError{Step: StepPull, Err: err}
	}
	res.Pull = pull.Stdout
	return res, nil
}

func (c *Client) run(ctx context.Context, dir string, args ...string) (process.Output, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	exe := c.Executable
	if exe == "" {
		exe = DefaultExecutable
	}
	return c.Runner.Run(ctx, process.Command{Name: exe, Args: args, Dir: dir})
}
