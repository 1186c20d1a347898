package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devstart/devstart/internal/process"
	"github.com/devstart/devstart/internal/process/processtest"
	"github.com/gopasspw/gitconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	app    *App
	fake   *processtest.Fake
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	env    map[string]string
}

func newHarness() *harness {
	h := &harness{
		fake:   &processtest.Fake{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		env:    map[string]string{},
	}
	h.app = &App{
		Runner:  h.fake,
		Stdout:  h.stdout,
		Stderr:  h.stderr,
		Getenv:  func(k string) string { return h.env[k] },
		Version: "1.2.3",
		LoadGitConfig: func(gitDir string) *gitconfig.Configs {
			cfg := gitconfig.New()
			cfg.Name = "devstart-test-no-such-app"
			cfg.NoWrites = true
			cfg.SystemConfig = ""
			cfg.GlobalConfig = ""
			cfg.EnvPrefix = "DEVSTART_TEST_UNSET_GIT_CONFIG"
			return cfg.LoadAll(gitDir)
		},
	}
	return h
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

func TestRunDefaultLaunch(t *testing.T) {
	t.Parallel()

	h := newHarness()
	cwd := t.TempDir()

	err := h.app.Run(context.Background(), nil, cwd, nil)
	require.NoError(t, err)

	require.Len(t, h.fake.Started, 1)
	assert.Equal(t, "code", h.fake.Started[0].Name)
	assert.Equal(t, []string{"--new-window", "--profile", "Blank", cwd}, h.fake.Started[0].Args)
	assert.Empty(t, h.fake.Ran, "no git without --git")
	assert.Contains(t, h.stdout.String(), "Opening "+cwd)
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	h := newHarness()
	err := h.app.Run(context.Background(), []string{"--help"}, t.TempDir(), nil)
	assert.Equal(t, ExitSuccess, exitCode(t, err))

	for _, flag := range []string{"--profile", "--cwd", "--git", "--vs-extensions", "--help"} {
		assert.Contains(t, h.stdout.String(), flag)
	}
	assert.Empty(t, h.fake.Started)
	assert.Empty(t, h.fake.Ran)
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	h := newHarness()
	err := h.app.Run(context.Background(), []string{"--version"}, t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, "devstart 1.2.3\n", h.stdout.String())
	assert.Empty(t, h.fake.Started)
}

func TestRunExtensionsUnimplemented(t *testing.T) {
	t.Parallel()

	h := newHarness()
	err := h.app.Run(context.Background(), []string{"--vs-extensions", "rust-analyzer"}, t.TempDir(), nil)

	assert.Equal(t, ExitUsage, exitCode(t, err))
	assert.Contains(t, err.Error(), "not implemented")
	assert.Empty(t, h.fake.Started)
	assert.Empty(t, h.fake.Ran)
}

func TestRunWorkingDirectoryUnavailable(t *testing.T) {
	t.Parallel()

	h := newHarness()
	err := h.app.Run(context.Background(), nil, "", errors.New("getcwd: deleted"))

	assert.Equal(t, ExitEnvironment, exitCode(t, err))
	assert.Contains(t, err.Error(), "--cwd")
	assert.Empty(t, h.fake.Started)
}

func TestRunEditorLaunchFailure(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.fake.StartErr = errors.New(`exec: "code": executable file not found in $PATH`)

	err := h.app.Run(context.Background(), []string{"--git"}, t.TempDir(), nil)
	assert.Equal(t, ExitFailure, exitCode(t, err))
	assert.Contains(t, err.Error(), "launching code")
	assert.Empty(t, h.fake.Ran, "git must not run after the editor failed")
}

func TestRunWarnsAndContinues(t *testing.T) {
	t.Parallel()

	h := newHarness()
	cwd := t.TempDir()
	err := h.app.Run(context.Background(), []string{"--bogus", "-p", "Haskell", "--cwd", filepath.Join(cwd, "missing")}, cwd, nil)
	require.NoError(t, err)

	stderr := h.stderr.String()
	assert.Contains(t, stderr, `"--bogus"`)
	assert.Contains(t, stderr, "Haskell")
	assert.Contains(t, stderr, "missing")

	require.Len(t, h.fake.Started, 1)
	assert.Equal(t, []string{"--new-window", "--profile", "Blank", cwd}, h.fake.Started[0].Args)
}

func TestRunGitInitializes(t *testing.T) {
	t.Parallel()

	h := newHarness()
	cwd := t.TempDir()
	err := h.app.Run(context.Background(), []string{"-g", "-p", "rust"}, cwd, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Rust"}, h.fake.Started[0].Args[2:3])
	assert.Equal(t, []string{"--version", "init"}, h.fake.Subcommands())
	assert.Contains(t, h.stdout.String(), "Initialized git repository")
	assert.Contains(t, h.stdout.String(), "git remote add origin")
}

func TestRunGitPullFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	h := newHarness()
	cwd := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(cwd, ".git"), 0o755))
	h.fake.Handler = func(cmd process.Command) (process.Output, error) {
		if cmd.Args[0] == "pull" {
			return process.Output{}, processtest.Fail(cmd, 1, "fatal: no remote")
		}
		return process.Output{Stdout: "## main\n"}, nil
	}

	err := h.app.Run(context.Background(), []string{"--git"}, cwd, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"--version", "status", "pull"}, h.fake.Subcommands())
	assert.Contains(t, h.stderr.String(), "git bootstrap failed")
	assert.Contains(t, h.stderr.String(), "no remote")
	assert.Contains(t, h.stdout.String(), "Status:")
	assert.Contains(t, h.stdout.String(), "## main")
	assert.NotContains(t, h.stderr.String(), "git pull: git pull")
}

func TestRunGitSynchronizes(t *testing.T) {
	t.Parallel()

	h := newHarness()
	cwd := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(cwd, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cwd, ".git", "config"), []byte("[remote \"origin\"]\n\turl = git@example.com:me/app.git\n"), 0o644))
	h.fake.Handler = func(cmd process.Command) (process.Output, error) {
		if cmd.Args[0] == "pull" {
			return process.Output{Stdout: "Already up to date.\n"}, nil
		}
		return process.Output{}, nil
	}

	require.NoError(t, h.app.Run(context.Background(), []string{"--git"}, cwd, nil))
	assert.Contains(t, h.stdout.String(), "Pulled from origin (git@example.com:me/app.git)")
	assert.Contains(t, h.stdout.String(), "Already up to date.")
}

func TestRunGitUnavailable(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.fake.Handler = func(cmd process.Command) (process.Output, error) {
		return process.Output{}, errors.New("executable file not found")
	}

	err := h.app.Run(context.Background(), []string{"--git"}, t.TempDir(), nil)
	require.NoError(t, err)
	assert.Contains(t, h.stderr.String(), "skipping git bootstrap")
	assert.Len(t, h.fake.Ran, 1)
}

func TestRunEnvironmentSettings(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.env[EnvEditor] = "codium"
	h.env[EnvGit] = "/usr/local/bin/git"
	h.env[EnvGitTimeout] = "soon"

	require.NoError(t, h.app.Run(context.Background(), []string{"--git"}, t.TempDir(), nil))
	assert.Equal(t, "codium", h.fake.Started[0].Name)
	for _, c := range h.fake.Ran {
		assert.Equal(t, "/usr/local/bin/git", c.Name)
	}
	assert.Contains(t, h.stderr.String(), EnvGitTimeout)
}

func TestRunVerboseLogsCommands(t *testing.T) {
	t.Parallel()

	h := newHarness()
	require.NoError(t, h.app.Run(context.Background(), []string{"--verbose", "--git"}, t.TempDir(), nil))
	assert.Contains(t, h.stderr.String(), "resolved launch config")
	assert.Contains(t, h.stderr.String(), "action=initialized")

	quiet := newHarness()
	require.NoError(t, quiet.app.Run(context.Background(), nil, t.TempDir(), nil))
	assert.NotContains(t, quiet.stderr.String(), "resolved launch config")
}

func TestLoadSettings(t *testing.T) {
	t.Parallel()

	s, warnings := LoadSettings(func(string) string { return "" })
	assert.Equal(t, DefaultSettings(), s)
	assert.Empty(t, warnings)

	env := map[string]string{EnvGitTimeout: "30s"}
	s, warnings = LoadSettings(func(k string) string { return env[k] })
	assert.Equal(t, 30*time.Second, s.GitTimeout)
	assert.Empty(t, warnings)

	env[EnvGitTimeout] = "-1s"
	s, warnings = LoadSettings(func(k string) string { return env[k] })
	assert.Equal(t, DefaultSettings().GitTimeout, s.GitTimeout)
	assert.Len(t, warnings, 1)
}
