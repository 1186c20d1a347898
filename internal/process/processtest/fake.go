// Package processtest provides a scripted process.Runner for tests.
package processtest

import (
	"context"

	"github.com/devstart/devstart/internal/process"
)

// Fake records every command and answers Run calls through Handler.
type Fake struct {
	Started []process.Command
	Ran     []process.Command

	// StartErr is returned by every Start call.
	StartErr error
	// Handler answers Run. Nil means every command succeeds with no output.
	Handler func(process.Command) (process.Output, error)
}

var _ process.Runner = (*Fake)(nil)

func (f *Fake) Start(_ context.Context, cmd process.Command) error {
	f.Started = append(f.Started, cmd)
	return f.StartErr
}

func (f *Fake) Run(_ context.Context, cmd process.Command) (process.Output, error) {
	f.Ran = append(f.Ran, cmd)
	if f.Handler == nil {
		return process.Output{}, nil
	}
	return f.Handler(cmd)
}

// Subcommands returns the first argument of every command run, in order.
func (f *Fake) Subcommands() []string {
	subs := make([]string, 0, len(f.Ran))
	for _, c := range f.Ran {
		if len(c.Args) == 0 {
			subs = append(subs, "")
			continue
		}
		subs = append(subs, c.Args[0])
	}
	return subs
}

// Fail returns an ExitError for cmd with the given code.
func Fail(cmd process.Command, code int, stderr string) error {
	return &process.ExitError{Command: cmd, Code: code, Stderr: stderr}
}
