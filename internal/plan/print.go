package plan

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var kindNouns = map[Kind][2]string{
	MakeDir:         {"directory", "directories"},
	RenderTemplate:  {"template", "templates"},
	CopyFile:        {"copy", "copies"},
	WriteLiteral:    {"write", "writes"},
	Scaffold:        {"scaffold", "scaffolds"},
	FetchRemote:     {"fetch", "fetches"},
	RemoteCopy:      {"remote copy", "remote copies"},
	RemoteDirectory: {"remote directory", "remote directories"},
	RemoteTemplate:  {"remote template", "remote templates"},
}

// Print writes a numbered step listing followed by per-kind counts.
func Print(w io.Writer, p *Plan) {
	fmt.Fprintf(w, "Plan for %s (scaffold in %s)\n\n", p.Date, p.ScaffoldDir)

	width := len(fmt.Sprint(len(p.Steps)))
	for i, s := range p.Steps {
		line := fmt.Sprintf("  %*d  %-15s %s", width, i+1, s.Kind, s)
		if s.Condition != "" {
			line += fmt.Sprintf("  [%s]", s.Condition)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	var parts []string
	for k := MakeDir; k <= RemoteTemplate; k++ {
		n := p.Count(k)
		if n == 0 {
			continue
		}
		noun := kindNouns[k][0]
		if n != 1 {
			noun = kindNouns[k][1]
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, noun))
	}

	printer := message.NewPrinter(language.English)
	printer.Fprintf(w, "  Steps: %s (%d total)\n", strings.Join(parts, ", "), len(p.Steps))
	if refs := p.Fetches(); len(refs) > 0 {
		names := make([]string, len(refs))
		for i, r := range refs {
			names[i] = r.String()
		}
		fmt.Fprintf(w, "  Remotes: %s\n", strings.Join(names, ", "))
	}
}
