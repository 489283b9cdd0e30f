// Package identity looks up the operator's version-control identity, which
// seeds the defaults of the identity prompts. Lookups are best effort: any
// failure yields empty values rather than an error.
package identity

import (
	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5/config"
)

// Identity is the subset of git configuration used for prompt defaults.
type Identity struct {
	Name   string
	Email  string
	GitHub string
}

// Loader returns the git configuration to read.
type Loader func() (*config.Config, error)

// GlobalLoader reads the user's global git configuration (~/.gitconfig and
// the XDG equivalent).
func GlobalLoader() (*config.Config, error) {
	return config.LoadConfig(config.GlobalScope)
}

// Lookup reads the identity through load. A nil loader, a load error, or a
// missing key all produce empty strings.
func Lookup(load Loader) Identity {
	if load == nil {
		return Identity{}
	}
	cfg, err := load()
	if err != nil || cfg == nil {
		log.Debug("git identity unavailable", "err", err)
		return Identity{}
	}
	return FromConfig(cfg)
}

// FromConfig extracts user.name, user.email, and github.user.
func FromConfig(cfg *config.Config) Identity {
	id := Identity{
		Name:  cfg.User.Name,
		Email: cfg.User.Email,
	}
	if cfg.Raw != nil && cfg.Raw.HasSection("github") {
		id.GitHub = cfg.Raw.Section("github").Option("user")
	}
	return id
}
