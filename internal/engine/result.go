package engine

import (
	"fmt"
	"io"

	"github.com/archetype-labs/archgen/internal/plan"
	"github.com/archetype-labs/archgen/internal/sink"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Outcome is what happened to one step.
type Outcome string

const (
	Created     Outcome = "created"
	Identical   Outcome = "identical"
	Skipped     Outcome = "skipped"
	Overwritten Outcome = "overwritten"
	Fetched     Outcome = "fetched"
	OK          Outcome = "ok"
)

var outcomeOrder = []Outcome{Created, Overwritten, Identical, Skipped, Fetched, OK}

func outcomeFor(status sink.Status) Outcome {
	switch status {
	case sink.StatusCreate:
		return Created
	case sink.StatusIdentical:
		return Identical
	case sink.StatusSkip:
		return Skipped
	case sink.StatusForce:
		return Overwritten
	default:
		return OK
	}
}

// StepResult records one executed step. Files counts the files written by a
// remote directory step.
type StepResult struct {
	Index   int
	Step    plan.Step
	Outcome Outcome
	Files   int
}

// Result records every step that ran and which finalizers completed.
type Result struct {
	Steps           []StepResult
	ScaffoldRemoved bool
	Installed       bool
}

// Count returns the number of steps with outcome o.
func (r *Result) Count(o Outcome) int {
	n := 0
	for _, s := range r.Steps {
		if s.Outcome == o {
			n++
		}
	}
	return n
}

// PrintSummary writes a one-line tally of step outcomes.
func (r *Result) PrintSummary(w io.Writer) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "\n%d steps:", len(r.Steps))
	for _, o := range outcomeOrder {
		if n := r.Count(o); n > 0 {
			p.Fprintf(w, " %d %s", n, o)
		}
	}
	fmt.Fprintln(w)
}
