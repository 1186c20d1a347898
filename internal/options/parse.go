package options

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Result is the outcome of a successful (or partially successful) Parse.
type Result struct {
	Config   LaunchConfig
	Warnings []Warning
}

type parser struct {
	fs          *pflag.FlagSet
	fallback    string
	fallbackErr error

	cfg      LaunchConfig
	dirSet   bool
	warnings []Warning
}

// Parse builds a LaunchConfig from args, which must not include the program
// name. fallback is the process working directory; fallbackErr is the error
// from looking it up, if any.
//
// Recoverable problems are collected as warnings and parsing continues. Parse
// stops early with pflag.ErrHelp for --help, ErrVersion for --version, and
// *UnimplementedError for --vs-extensions. If the working directory is
// unknown and no usable --cwd was given, it returns *EnvironmentError. The
// warnings gathered so far are returned in every case.
func Parse(args []string, fallback string, fallbackErr error) (Result, error) {
	p := &parser{
		fs:          NewFlagSet(),
		fallback:    fallback,
		fallbackErr: fallbackErr,
	}
	if fallbackErr == nil {
		p.cfg.TargetDirectory = filepath.Clean(fallback)
	}

	for i := 0; i < len(args); i++ {
		tok := args[i]
		f, value, inline := p.lookup(tok)
		if f == nil {
			p.warn(WarnUnknownFlag, tok, fmt.Sprintf("ignoring unknown argument %q", tok))
			continue
		}

		if f.Value.Type() == "bool" {
			enabled := true
			if inline {
				b, err := strconv.ParseBool(value)
				if err != nil {
					p.warn(WarnInvalidValue, tok, fmt.Sprintf("ignoring %s: %q is not a boolean", tok, value))
					continue
				}
				enabled = b
			}
			if err := p.applyBool(f.Name, enabled); err != nil {
				return p.result(), err
			}
			continue
		}

		if !inline {
			if i+1 >= len(args) {
				if f.Name == FlagVSExtensions {
					return p.result(), &UnimplementedError{Feature: "extension installation", Flag: "--" + f.Name}
				}
				p.warn(WarnMissingValue, tok, fmt.Sprintf("ignoring %s: missing value", tok))
				continue
			}
			i++
			value = args[i]
		}
		if err := p.applyValue(f.Name, tok, value); err != nil {
			return p.result(), err
		}
	}

	if !p.dirSet && p.fallbackErr != nil {
		return p.result(), &EnvironmentError{Err: p.fallbackErr}
	}
	return p.result(), nil
}

// lookup resolves tok to a declared flag. Long flags may carry an inline
// value as --name=value.
func (p *parser) lookup(tok string) (*pflag.Flag, string, bool) {
	switch {
	case strings.HasPrefix(tok, "--") && len(tok) > 2:
		name, value, inline := strings.Cut(tok[2:], "=")
		return p.fs.Lookup(name), value, inline
	case strings.HasPrefix(tok, "-") && len(tok) == 2 && tok[1] != '-':
		return p.fs.ShorthandLookup(tok[1:]), "", false
	}
	return nil, "", false
}

func (p *parser) applyBool(name string, enabled bool) error {
	switch name {
	case FlagGit:
		p.cfg.EnableVersionControl = enabled
	case FlagVerbose:
		p.cfg.Verbose = enabled
	case FlagHelp:
		if enabled {
			return pflag.ErrHelp
		}
	case FlagVersion:
		if enabled {
			return ErrVersion
		}
	}
	return nil
}

func (p *parser) applyValue(name, tok, value string) error {
	switch name {
	case FlagProfile:
		profile, ok := ParseProfile(value)
		if !ok {
			p.warn(WarnInvalidProfile, value, fmt.Sprintf("unknown profile %q (expected one of %s), using %s", value, profileList(), ProfileBlank))
		}
		p.cfg.Profile = profile
	case FlagCwd:
		dir, err := p.resolveDir(value)
		if err != nil {
			p.warn(WarnInvalidDirectory, value, fmt.Sprintf("ignoring %s %q: %v", tok, value, err))
			return nil
		}
		p.cfg.TargetDirectory = dir
		p.dirSet = true
	case FlagVSExtensions:
		return &UnimplementedError{Feature: "extension installation", Flag: "--" + name}
	}
	return nil
}

func (p *parser) resolveDir(value string) (string, error) {
	if value == "" {
		return "", errors.New("empty path")
	}
	path := value
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding ~: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if !filepath.IsAbs(path) {
		if p.fallbackErr != nil {
			return "", fmt.Errorf("relative path with unknown working directory: %w", p.fallbackErr)
		}
		path = filepath.Join(p.fallback, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errors.New("no such directory")
		}
		return "", err
	}
	if !info.IsDir() {
		return "", errors.New("not a directory")
	}
	return path, nil
}

func (p *parser) warn(kind WarningKind, token, msg string) {
	p.warnings = append(p.warnings, Warning{Kind: kind, Token: token, Message: msg})
}

func (p *parser) result() Result {
	return Result{Config: p.cfg, Warnings: p.warnings}
}
