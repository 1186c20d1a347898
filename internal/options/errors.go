package options

import (
	"errors"
	"fmt"
)

// ErrVersion is returned by Parse when --version was requested.
var ErrVersion = errors.New("version requested")

// UnimplementedError reports a recognized flag whose feature does not exist yet.
type UnimplementedError struct {
	Feature string
	Flag    string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("%s (%s) is not implemented yet", e.Feature, e.Flag)
}

// EnvironmentError reports that the working directory could not be
// determined and no --cwd override replaced it.
type EnvironmentError struct {
	Err error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("resolving working directory: %v (pass --cwd to choose one)", e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// WarningKind classifies a recoverable problem found while parsing.
type WarningKind string

const (
	WarnUnknownFlag      WarningKind = "unknown-flag"
	WarnMissingValue     WarningKind = "missing-value"
	WarnInvalidValue     WarningKind = "invalid-value"
	WarnInvalidProfile   WarningKind = "invalid-profile"
	WarnInvalidDirectory WarningKind = "invalid-directory"
)

// Warning is a recoverable problem. Parsing continued with a substituted value.
type Warning struct {
	Kind    WarningKind
	Token   string
	Message string
}

func (w Warning) String() string {
	return w.Message
}
