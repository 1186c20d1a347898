package vcs

import (
	"path/filepath"

	"github.com/gopasspw/gitconfig"
)

// Remote is a configured remote of a repository.
type Remote struct {
	Name string
	URL  string
}

// ConfigLoader loads the git configuration visible from a metadata directory.
type ConfigLoader func(gitDir string) *gitconfig.Configs

// LoadGitConfig reads system, global, local and environment git configuration
// without ever writing any of it.
func LoadGitConfig(gitDir string) *gitconfig.Configs {
	cfg := gitconfig.New()
	cfg.NoWrites = true
	return cfg.LoadAll(gitDir)
}

func (c *Client) config(dir string) *gitconfig.Configs {
	load := c.LoadConfig
	if load == nil {
		load = LoadGitConfig
	}
	return load(filepath.Join(dir, MetadataDir))
}

// remote returns the remote a plain pull would most likely use: origin when
// configured, otherwise the first remote by name.
func remote(cfg *gitconfig.Configs) (Remote, bool) {
	names := cfg.ListSubsections("remote")
	if len(names) == 0 {
		return Remote{}, false
	}
	name := names[0]
	for _, n := range names {
		if n == "origin" {
			name = n
			break
		}
	}
	return Remote{Name: name, URL: cfg.Get("remote." + name + ".url")}, true
}

// hasIdentity reports whether commits can be authored without further setup.
func hasIdentity(cfg *gitconfig.Configs) bool {
	return cfg.Get("user.name") != "" && cfg.Get("user.email") != ""
}
