// Package process is the only place that spawns operating-system processes.
// Everything else talks to a Runner so tests can substitute processtest.Fake.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/devstart/devstart/internal/ctxlog"
)

// Command describes one external program invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory. Empty means the launcher's own.
	Dir string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Output is the captured result of a command that ran to completion.
type Output struct {
	Stdout string
	Stderr string
}

// Runner starts and runs external commands.
type Runner interface {
	// Start spawns cmd in its own process group with stdin and stdout on the
	// null device and returns without waiting for it.
	Start(ctx context.Context, cmd Command) error
	// Run executes cmd to completion. A non-zero exit yields *ExitError.
	Run(ctx context.Context, cmd Command) (Output, error)
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command Command
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// waitDelay bounds how long Run waits for output pipes after the context
// kills a command whose children still hold them.
const waitDelay = time.Second

// Exec is the Runner backed by os/exec.
type Exec struct{}

var _ Runner = Exec{}

func (Exec) Start(ctx context.Context, cmd Command) error {
	log := ctxlog.FromContext(ctx)
	log.Debug("starting detached process", "command", cmd.String(), "dir", cmd.Dir)

	c := detachedCommand(cmd)
	if err := c.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", cmd.Name, err)
	}
	log.Debug("process started", "command", cmd.Name, "pid", c.Process.Pid)
	return c.Process.Release()
}

// detachedCommand builds cmd in its own process group so signals sent to the
// launcher's group (Ctrl-C) do not reach it. It is not tied to a context: the
// child must outlive the launcher.
func detachedCommand(cmd Command) *exec.Cmd {
	c := exec.Command(cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = nil
	c.Stdout = nil
	c.Stderr = os.Stderr
	detach(c)
	return c
}

func (Exec) Run(ctx context.Context, cmd Command) (Output, error) {
	log := ctxlog.FromContext(ctx)
	log.Debug("running process", "command", cmd.String(), "dir", cmd.Dir)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("%s: %w", cmd, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.Debug("process failed", "command", cmd.Name, "exit_code", exitErr.ExitCode())
		return out, &ExitError{Command: cmd, Code: exitErr.ExitCode(), Stderr: out.Stderr}
	}
	return out, fmt.Errorf("running %s: %w", cmd.Name, err)
}
