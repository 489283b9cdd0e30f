// Package branding holds the names archgen uses for itself. They are read
// from the embedded branding.yaml, and any field the file leaves empty keeps
// its built-in value.
package branding

import (
	_ "embed"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

// Names identifies the CLI to operators and to GitHub.
type Names struct {
	Command     string `yaml:"cli_name"`
	Title       string `yaml:"display_name"`
	Summary     string `yaml:"description"`
	SettingsDir string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	Module      string `yaml:"go_module"`
	ReleaseRepo string `yaml:"github_repo"`
}

var builtin = Names{
	Command:     "archgen",
	Title:       "Archgen",
	Summary:     "Scaffold a Jekyll site wired with Archetype and Style-Docs",
	SettingsDir: ".archgen",
	EnvPrefix:   "ARCHGEN",
	Module:      "github.com/archetype-labs/archgen",
	ReleaseRepo: "archetype-labs/archgen",
}

var current = sync.OnceValue(func() Names { return parse(rawBranding) })

// parse overlays data on the built-in names. Unreadable data yields the
// built-in names unchanged.
func parse(data []byte) Names {
	var n Names
	if err := yaml.Unmarshal(data, &n); err != nil {
		return builtin
	}
	for _, f := range []struct{ dst *string; def string }{
		{&n.Command, builtin.Command},
		{&n.Title, builtin.Title},
		{&n.Summary, builtin.Summary},
		{&n.SettingsDir, builtin.SettingsDir},
		{&n.EnvPrefix, builtin.EnvPrefix},
		{&n.Module, builtin.Module},
		{&n.ReleaseRepo, builtin.ReleaseRepo},
	} {
		if *f.dst == "" {
			*f.dst = f.def
		}
	}
	return n
}

// CLIName is the root command name.
func CLIName() string { return current().Command }

func DisplayName() string { return current().Title }

func Description() string { return current().Summary }

// HomeDir is the settings directory name under $HOME.
func HomeDir() string { return current().SettingsDir }

func EnvPrefix() string { return current().EnvPrefix }

// GitHubRepo is the "owner/repo" that publishes archgen releases.
func GitHubRepo() string { return current().ReleaseRepo }

// UserAgent is sent with archive downloads.
func UserAgent() string { return current().Command + "-fetch" }
