package options

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Command is the program name used in usage text.
const Command = "devstart"

// Long flag names.
const (
	FlagProfile      = "profile"
	FlagCwd          = "cwd"
	FlagGit          = "git"
	FlagVSExtensions = "vs-extensions"
	FlagVerbose      = "verbose"
	FlagVersion      = "version"
	FlagHelp         = "help"
)

// NewFlagSet declares every recognized flag. Parse uses it for lookup only;
// values are applied by Parse itself.
func NewFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(Command, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.StringP(FlagProfile, "p", ProfileBlank.String(), "editor profile to open ("+profileList()+")")
	fs.StringP(FlagCwd, "c", "", "directory to open (default: current directory)")
	fs.BoolP(FlagGit, "g", false, "initialize a git repository, or show status and pull if one exists")
	fs.StringP(FlagVSExtensions, "e", "", "install editor extensions (not implemented yet)")
	fs.BoolP(FlagVerbose, "v", false, "log every external command")
	fs.Bool(FlagVersion, false, "print version and exit")
	fs.BoolP(FlagHelp, "h", false, "show this help and exit")
	return fs
}

// WriteUsage prints the help text listing every flag.
func WriteUsage(w io.Writer) error {
	_, err := fmt.Fprintf(w, `Open the editor in a directory with a profile, optionally bootstrapping git.

Usage:
  %s [flags]

Flags:
%s
Environment:
  DEVSTART_EDITOR        editor executable (default "code")
  DEVSTART_GIT           git executable (default "git")
  DEVSTART_GIT_TIMEOUT   timeout for each git command (default "2m")
`, Command, NewFlagSet().FlagUsages())
	return err
}
