package plan

import (
	"fmt"

	"github.com/archetype-labs/archgen/internal/remote"
)

// Kind identifies what a step does.
type Kind int

const (
	MakeDir Kind = iota
	RenderTemplate
	CopyFile
	WriteLiteral
	Scaffold
	FetchRemote
	RemoteCopy
	RemoteDirectory
	RemoteTemplate
)

var kindNames = [...]string{
	MakeDir:         "mkdir",
	RenderTemplate:  "template",
	CopyFile:        "copy",
	WriteLiteral:    "write",
	Scaffold:        "scaffold",
	FetchRemote:     "fetch",
	RemoteCopy:      "remote-copy",
	RemoteDirectory: "remote-dir",
	RemoteTemplate:  "remote-template",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// UsesHandle reports whether the step reads from a fetched remote.
func (k Kind) UsesHandle() bool {
	return k == RemoteCopy || k == RemoteDirectory || k == RemoteTemplate
}

// Origin names where a local source file lives.
type Origin string

const (
	// OriginTemplate is the embedded template set.
	OriginTemplate Origin = "template"
	// OriginScaffold is the transient site-generator output.
	OriginScaffold Origin = "scaffold"
)

// Source locates the input of a step.
type Source struct {
	Origin Origin
	Path   string
}

// Step is one unit of work. Fields that do not apply to the step's Kind are
// left zero.
type Step struct {
	Kind      Kind
	Source    Source
	Dest      string
	Content   string
	Remote    remote.Ref
	Condition string
}

func (s Step) String() string {
	switch s.Kind {
	case MakeDir, Scaffold:
		return s.Dest
	case WriteLiteral:
		return fmt.Sprintf("%s (%d bytes)", s.Dest, len(s.Content))
	case FetchRemote:
		return s.Remote.String()
	case RemoteCopy, RemoteDirectory, RemoteTemplate:
		return fmt.Sprintf("%s:%s -> %s", s.Remote.Repo, s.Source.Path, s.Dest)
	default:
		if s.Source.Origin == OriginScaffold {
			return fmt.Sprintf("%s:%s -> %s", s.Source.Origin, s.Source.Path, s.Dest)
		}
		return fmt.Sprintf("%s -> %s", s.Source.Path, s.Dest)
	}
}

// Plan is the ordered step list for one run.
type Plan struct {
	Date        string
	ScaffoldDir string
	Steps       []Step
}

// Fetches returns the refs fetched by the plan, in order.
func (p *Plan) Fetches() []remote.Ref {
	var refs []remote.Ref
	for _, s := range p.Steps {
		if s.Kind == FetchRemote {
			refs = append(refs, s.Remote)
		}
	}
	return refs
}

// Count returns how many steps of kind k the plan has.
func (p *Plan) Count(k Kind) int {
	n := 0
	for _, s := range p.Steps {
		if s.Kind == k {
			n++
		}
	}
	return n
}
