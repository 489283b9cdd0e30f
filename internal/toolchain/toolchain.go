// Package toolchain wraps the external programs a generated site depends on:
// Bundler and Jekyll for the site scaffold, npm and Bower for front-end
// dependencies.
package toolchain

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Required must be on PATH before generation starts.
var Required = []string{"ruby", "bundle"}

// Optional tools are only needed by the dependency install finalizer.
var Optional = []string{"npm", "bower", "git"}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// MissingDependencyError lists required tools that are not installed.
type MissingDependencyError struct {
	Names []string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing required tools: %s; make sure Ruby and the Bundler gem are installed, then run again",
		strings.Join(e.Names, ", "))
}

// Check returns a *MissingDependencyError naming every tool in names that is
// not on PATH.
func Check(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, err := lookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingDependencyError{Names: missing}
	}
	return nil
}

// Status is the lookup result for one tool.
type Status struct {
	Name  string
	Path  string
	Found bool
}

// Report looks up each tool in names.
func Report(names ...string) []Status {
	out := make([]Status, 0, len(names))
	for _, name := range names {
		p, err := lookPath(name)
		out = append(out, Status{Name: name, Path: p, Found: err == nil})
	}
	return out
}

// Runner executes a program in a working directory.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs programs with os/exec, streaming their output.
type ExecRunner struct {
	// Stdout and Stderr default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	bin, err := lookPath(name)
	if err != nil {
		return &MissingDependencyError{Names: []string{name}}
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	log.Debug("running", "cmd", name, "args", args, "dir", dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// Jekyll creates the transient site scaffold.
type Jekyll struct {
	Runner Runner
	// Dir is the project directory.
	Dir string
}

// Scaffold installs the bundle declared by the project's Gemfile, then runs
// `jekyll new` into dest, relative to the project directory.
func (j *Jekyll) Scaffold(ctx context.Context, dest string) error {
	if err := j.Runner.Run(ctx, j.Dir, "bundle", "install"); err != nil {
		return fmt.Errorf("installing ruby gems: %w", err)
	}
	if err := j.Runner.Run(ctx, j.Dir, "bundle", "exec", "jekyll", "new", dest); err != nil {
		return fmt.Errorf("creating jekyll scaffold: %w", err)
	}
	return nil
}

// NPM installs front-end dependencies.
type NPM struct {
	Runner Runner
	Dir    string
}

// Install runs npm install followed by bower install.
func (n *NPM) Install(ctx context.Context) error {
	if err := n.Runner.Run(ctx, n.Dir, "npm", "install"); err != nil {
		return fmt.Errorf("installing npm packages: %w", err)
	}
	if err := n.Runner.Run(ctx, n.Dir, "bower", "install"); err != nil {
		return fmt.Errorf("installing bower packages: %w", err)
	}
	return nil
}
