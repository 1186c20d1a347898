package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/devstart/devstart/internal/editor"
	"github.com/devstart/devstart/internal/vcs"
)

// Environment variables read by LoadSettings.
const (
	EnvEditor     = "DEVSTART_EDITOR"
	EnvGit        = "DEVSTART_GIT"
	EnvGitTimeout = "DEVSTART_GIT_TIMEOUT"
)

// Settings are the executables and limits taken from the environment.
type Settings struct {
	Editor     string
	Git        string
	GitTimeout time.Duration
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Editor:     editor.DefaultExecutable,
		Git:        vcs.DefaultExecutable,
		GitTimeout: vcs.DefaultTimeout,
	}
}

// LoadSettings reads Settings through getenv. Invalid values keep their
// defaults and are reported as warnings.
func LoadSettings(getenv func(string) string) (Settings, []string) {
	s := DefaultSettings()
	var warnings []string

	if v := strings.TrimSpace(getenv(EnvEditor)); v != "" {
		s.Editor = v
	}
	if v := strings.TrimSpace(getenv(EnvGit)); v != "" {
		s.Git = v
	}
	if v := strings.TrimSpace(getenv(EnvGitTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		switch {
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("ignoring %s=%q: %v", EnvGitTimeout, v, err))
		case d <= 0:
			warnings = append(warnings, fmt.Sprintf("ignoring %s=%q: must be positive", EnvGitTimeout, v))
		default:
			s.GitTimeout = d
		}
	}
	return s, warnings
}
