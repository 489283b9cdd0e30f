// Package conflict decides what happens when generation would write over a
// file that already exists with different content.
package conflict

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/archetype-labs/archgen/internal/prompt"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Action is the outcome of a conflict.
type Action int

const (
	Overwrite Action = iota
	Skip
)

func (a Action) String() string {
	if a == Skip {
		return "skip"
	}
	return "overwrite"
}

// Policy selects how conflicts are resolved.
type Policy string

const (
	PolicyPrompt    Policy = "prompt"
	PolicyOverwrite Policy = "overwrite"
	PolicySkip      Policy = "skip"
)

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyPrompt, PolicyOverwrite, PolicySkip:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown conflict policy %q: want prompt, overwrite, or skip", s)
}

// Resolver is the conflict-resolution hook.
type Resolver interface {
	Resolve(ctx context.Context, path string, existing, incoming []byte) (Action, error)
}

// Error reports a failure of the resolver itself, such as an aborted prompt.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("resolving conflict on %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fixed always returns the same action.
type Fixed Action

func (f Fixed) Resolve(context.Context, string, []byte, []byte) (Action, error) {
	return Action(f), nil
}

// New returns the resolver for policy. The prompt policy asks through d and
// writes diffs to out.
func New(policy Policy, d prompt.Driver, out io.Writer) Resolver {
	switch policy {
	case PolicyOverwrite:
		return Fixed(Overwrite)
	case PolicySkip:
		return Fixed(Skip)
	}
	return &Prompt{Driver: d, Out: out}
}

// Prompt options, in display order.
const (
	optOverwrite    = "Overwrite"
	optSkip         = "Skip"
	optOverwriteAll = "Overwrite this and all others"
	optDiff         = "Show the differences"
)

var promptOptions = []string{optOverwrite, optSkip, optOverwriteAll, optDiff}

// Prompt asks the operator about each conflict. Choosing "overwrite all"
// answers every later conflict without asking.
type Prompt struct {
	Driver prompt.Driver
	Out    io.Writer

	mu    sync.Mutex
	force bool
}

func (p *Prompt) Resolve(ctx context.Context, path string, existing, incoming []byte) (Action, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.force {
		return Overwrite, nil
	}

	for {
		i, err := p.Driver.Select(ctx, prompt.SelectConfig{
			Message: fmt.Sprintf("Overwrite %s?", path),
			Options: promptOptions,
		})
		if err != nil {
			return Skip, &Error{Path: path, Err: err}
		}

		switch promptOptions[i] {
		case optOverwrite:
			return Overwrite, nil
		case optSkip:
			return Skip, nil
		case optOverwriteAll:
			p.force = true
			return Overwrite, nil
		case optDiff:
			if p.Out != nil {
				fmt.Fprint(p.Out, Diff(path, existing, incoming))
			}
		}
	}
}

// Diff returns a unified diff from existing to incoming.
func Diff(path string, existing, incoming []byte) string {
	a, b := string(existing), string(incoming)
	edits := myers.ComputeEdits(span.URIFromPath(path), a, b)
	return fmt.Sprint(gotextdiff.ToUnified(path+" (existing)", path+" (new)", a, edits))
}
