package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/archetype-labs/archgen/internal/config"
	"github.com/archetype-labs/archgen/internal/conflict"
	"github.com/archetype-labs/archgen/internal/engine"
	"github.com/archetype-labs/archgen/internal/identity"
	"github.com/archetype-labs/archgen/internal/plan"
	"github.com/archetype-labs/archgen/internal/prompt"
	"github.com/archetype-labs/archgen/internal/remote"
	"github.com/archetype-labs/archgen/internal/sink"
	"github.com/archetype-labs/archgen/internal/toolchain"
	"github.com/fatih/color"
	"github.com/spf13/afero"
)

// generator holds the collaborators of one generation run.
type generator struct {
	appName     string
	fs          afero.Fs
	driver      prompt.Driver
	identity    identity.Identity
	provider    remote.Provider
	scaffolder  engine.Scaffolder
	installer   engine.Installer
	policy      conflict.Policy
	skipInstall bool
	out         io.Writer
	check       func() error
	now         func() time.Time
}

// newGenerator wires the production collaborators for a run in dir.
func newGenerator(dir string, skipInstall bool, out io.Writer) (*generator, error) {
	policy, err := conflict.ParsePolicy(config.Get(config.KeyConflict))
	if err != nil {
		return nil, fmt.Errorf("reading %s setting: %w", config.KeyConflict, err)
	}

	runner := &toolchain.ExecRunner{}
	return &generator{
		appName:     filepath.Base(dir),
		fs:          afero.NewBasePathFs(afero.NewOsFs(), dir),
		driver:      prompt.NewSurveyDriver(out),
		identity:    identity.Lookup(identity.GlobalLoader),
		provider:    remote.NewGitHub(config.Get(config.KeyRemoteBaseURL), config.Get(config.KeyCacheDir), config.Get(config.KeyGitHubToken)),
		scaffolder:  &toolchain.Jekyll{Runner: runner, Dir: dir},
		installer:   &toolchain.NPM{Runner: runner, Dir: dir},
		policy:      policy,
		skipInstall: skipInstall,
		out:         out,
		check:       func() error { return toolchain.Check(toolchain.Required...) },
		now:         time.Now,
	}, nil
}

// run checks the toolchain, collects answers, builds the plan and executes
// it. Nothing is written before every question has been answered.
func (g *generator) run(ctx context.Context) error {
	if err := g.check(); err != nil {
		return err
	}

	fmt.Fprintln(g.out, color.New(color.FgYellow, color.Bold).Sprint(
		"This generator will scaffold and wire a Jekyll site with Archetype."))

	a, err := prompt.NewSequencer(g.driver, g.appName, g.identity).Run(ctx)
	if err != nil {
		return fmt.Errorf("collecting answers: %w", err)
	}

	p := plan.Build(a, g.now())

	s := sink.New(g.fs,
		sink.WithResolver(conflict.New(g.policy, g.driver, g.out)),
		sink.WithOutput(g.out),
	)
	e := engine.New(s, g.provider, a.Vars(),
		engine.WithScaffolder(g.scaffolder),
		engine.WithInstaller(g.installer),
		engine.WithSkipInstall(g.skipInstall),
	)

	res, err := e.Execute(ctx, p)
	if res != nil {
		res.PrintSummary(g.out)
	}
	if err != nil {
		return fmt.Errorf("generating %s: %w", g.appName, err)
	}

	if g.skipInstall {
		fmt.Fprintln(g.out, "\nSkipped dependency install. Run `npm install && bower install` when ready.")
	}
	return nil
}
