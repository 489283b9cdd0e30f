package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/archetype-labs/archgen/internal/plan"
	"github.com/archetype-labs/archgen/internal/remote"
	"github.com/archetype-labs/archgen/internal/sink"
	"github.com/archetype-labs/archgen/internal/templates"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// ErrUnresolvedRemote is returned when a remote step runs before its ref was
// fetched. Plans from plan.Build never do this.
var ErrUnresolvedRemote = errors.New("remote step before its fetch")

// Scaffolder populates the transient site scaffold directory.
type Scaffolder interface {
	Scaffold(ctx context.Context, dir string) error
}

// Installer installs the generated project's dependencies.
type Installer interface {
	Install(ctx context.Context) error
}

// StepError reports the step that stopped execution.
type StepError struct {
	Index int
	Step  plan.Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s %s): %v", e.Index+1, e.Step.Kind, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Engine runs plans.
type Engine struct {
	sink        *sink.Sink
	provider    remote.Provider
	vars        map[string]any
	templates   afero.Fs
	scaffolder  Scaffolder
	installer   Installer
	skipInstall bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTemplates replaces the embedded template set.
func WithTemplates(fsys afero.Fs) Option {
	return func(e *Engine) { e.templates = fsys }
}

// WithScaffolder sets the collaborator for Scaffold steps.
func WithScaffolder(s Scaffolder) Option {
	return func(e *Engine) { e.scaffolder = s }
}

// WithInstaller sets the dependency installer run after the last step.
func WithInstaller(i Installer) Option {
	return func(e *Engine) { e.installer = i }
}

// WithSkipInstall disables the dependency install finalizer.
func WithSkipInstall(skip bool) Option {
	return func(e *Engine) { e.skipInstall = skip }
}

// New returns an Engine writing through s, fetching through p and rendering
// templates with vars.
func New(s *sink.Sink, p remote.Provider, vars map[string]any, opts ...Option) *Engine {
	e := &Engine{
		sink:      s,
		provider:  p,
		vars:      vars,
		templates: templates.FS(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs every step of p in order, then the finalizers. On failure the
// returned Result holds the steps that completed.
func (e *Engine) Execute(ctx context.Context, p *plan.Plan) (*Result, error) {
	res := &Result{}
	handles := make(map[remote.Ref]*remote.Handle)
	scaffold := afero.NewReadOnlyFs(afero.NewBasePathFs(e.sink.FS(), p.ScaffoldDir))

	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		log.Debug("step", "index", i+1, "kind", step.Kind.String(), "dest", step.Dest, "condition", step.Condition)

		sr, err := e.run(ctx, step, handles, scaffold)
		if err != nil {
			return res, &StepError{Index: i, Step: step, Err: err}
		}
		sr.Index = i
		sr.Step = step
		res.Steps = append(res.Steps, sr)
	}

	if err := e.sink.Remove(p.ScaffoldDir); err != nil {
		return res, fmt.Errorf("removing scaffold: %w", err)
	}
	res.ScaffoldRemoved = true

	if e.skipInstall || e.installer == nil {
		log.Debug("skipping dependency install")
		return res, nil
	}
	e.sink.Note("install", "npm, bower")
	if err := e.installer.Install(ctx); err != nil {
		return res, fmt.Errorf("installing dependencies: %w", err)
	}
	res.Installed = true
	return res, nil
}

func (e *Engine) run(ctx context.Context, step plan.Step, handles map[remote.Ref]*remote.Handle, scaffold afero.Fs) (StepResult, error) {
	var h *remote.Handle
	if step.Kind.UsesHandle() {
		h = handles[step.Remote]
		if h == nil {
			return StepResult{}, fmt.Errorf("%s: %w", step.Remote, ErrUnresolvedRemote)
		}
	}

	var (
		status sink.Status
		err    error
	)
	switch step.Kind {
	case plan.MakeDir:
		status, err = e.sink.MakeDir(step.Dest)

	case plan.RenderTemplate:
		src, serr := e.source(step.Source, scaffold)
		if serr != nil {
			return StepResult{}, serr
		}
		status, err = e.sink.Render(ctx, src, step.Source.Path, step.Dest, e.vars)

	case plan.CopyFile:
		src, serr := e.source(step.Source, scaffold)
		if serr != nil {
			return StepResult{}, serr
		}
		status, err = e.sink.Copy(ctx, src, step.Source.Path, step.Dest)

	case plan.WriteLiteral:
		status, err = e.sink.Write(ctx, step.Dest, []byte(step.Content))

	case plan.Scaffold:
		if e.scaffolder == nil {
			return StepResult{}, errors.New("no site scaffolder configured")
		}
		// A run that failed earlier leaves its scaffold behind, and
		// `jekyll new` refuses a non-empty target.
		if err := e.sink.Remove(step.Dest); err != nil {
			return StepResult{}, fmt.Errorf("clearing stale scaffold: %w", err)
		}
		e.sink.Note("scaffold", step.Dest)
		if err := e.scaffolder.Scaffold(ctx, step.Dest); err != nil {
			return StepResult{}, err
		}
		return StepResult{Outcome: OK}, nil

	case plan.FetchRemote:
		fetched, err := e.provider.Fetch(ctx, step.Remote)
		if err != nil {
			var fe *remote.FetchError
			if !errors.As(err, &fe) {
				err = &remote.FetchError{Ref: step.Remote, Err: err}
			}
			return StepResult{}, err
		}
		if fetched.Cached {
			e.sink.Note("fetch", step.Remote.String()+" (cached)")
		} else {
			e.sink.Note("fetch", step.Remote.String())
		}
		handles[step.Remote] = fetched
		return StepResult{Outcome: Fetched}, nil

	case plan.RemoteCopy:
		status, err = h.Copy(ctx, e.sink, step.Source.Path, step.Dest)

	case plan.RemoteTemplate:
		status, err = h.RenderTemplate(ctx, e.sink, step.Source.Path, step.Dest, e.vars)

	case plan.RemoteDirectory:
		n, err := h.Directory(ctx, e.sink, step.Source.Path, step.Dest)
		if err != nil {
			return StepResult{}, err
		}
		return StepResult{Outcome: OK, Files: n}, nil

	default:
		return StepResult{}, fmt.Errorf("unknown step kind %s", step.Kind)
	}

	if err != nil {
		return StepResult{}, err
	}
	return StepResult{Outcome: outcomeFor(status)}, nil
}

func (e *Engine) source(src plan.Source, scaffold afero.Fs) (afero.Fs, error) {
	switch src.Origin {
	case plan.OriginTemplate:
		return e.templates, nil
	case plan.OriginScaffold:
		return scaffold, nil
	default:
		return nil, fmt.Errorf("unknown source origin %q", src.Origin)
	}
}
