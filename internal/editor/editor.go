// Package editor starts the code editor on a LaunchConfig.
package editor

import (
	"context"
	"fmt"

	"github.com/devstart/devstart/internal/options"
	"github.com/devstart/devstart/internal/process"
)

// DefaultExecutable is the editor looked up on PATH when none is configured.
const DefaultExecutable = "code"

// Launcher opens the editor in a new window.
type Launcher struct {
	Runner     process.Runner
	Executable string
}

// Command returns the editor invocation for cfg.
func (l *Launcher) Command(cfg options.LaunchConfig) process.Command {
	exe := l.Executable
	if exe == "" {
		exe = DefaultExecutable
	}
	return process.Command{
		Name: exe,
		Args: []string{"--new-window", "--profile", cfg.Profile.String(), cfg.TargetDirectory},
		Dir:  cfg.TargetDirectory,
	}
}

// Launch starts the editor and returns once the process has been spawned.
// It never waits for the editor to exit.
func (l *Launcher) Launch(ctx context.Context, cfg options.LaunchConfig) error {
	cmd := l.Command(cfg)
	if err := l.Runner.Start(ctx, cmd); err != nil {
		return fmt.Errorf("launching %s: %w", cmd.Name, err)
	}
	return nil
}
