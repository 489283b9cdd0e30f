package plan

import (
	"strings"
	"testing"
	"time"

	"github.com/archetype-labs/archgen/internal/answers"
	"github.com/archetype-labs/archgen/internal/remote"
	"github.com/google/go-cmp/cmp"
)

var runDate = time.Date(2024, time.March, 7, 23, 59, 0, 0, time.UTC)

func defaultAnswers() *answers.Answers {
	return &answers.Answers{
		AppName:     "blog",
		Author:      "Ada",
		Email:       "ada@example.com",
		GitHub:      "ada",
		Twitter:     "ada",
		CSSDir:      "css",
		JSDir:       "js",
		ImgDir:      "images",
		FontsDir:    "fonts",
		CSSPreDir:   "sass",
		Template:    answers.TemplateDefault,
		Permalink:   "date",
		Markdown:    "redcarpet",
		PageCount:   answers.PageCount{Unbounded: true},
		Description: "a blog",
	}
}

func h5bpAnswers(js, icons, docs, analytics bool) *answers.Answers {
	a := defaultAnswers()
	a.Template = answers.TemplateH5BP
	a.H5BPJS = js
	a.H5BPIcons = icons
	a.H5BPDocs = docs
	a.H5BPAnalytics = analytics
	return a
}

func find(p *Plan, kind Kind, dest string) []Step {
	var out []Step
	for _, s := range p.Steps {
		if s.Kind == kind && s.Dest == dest {
			out = append(out, s)
		}
	}
	return out
}

func dests(p *Plan, kind Kind) []string {
	var out []string
	for _, s := range p.Steps {
		if s.Kind == kind {
			out = append(out, s.Dest)
		}
	}
	return out
}

func TestBuildDate(t *testing.T) {
	p := Build(defaultAnswers(), runDate)
	if p.Date != "2024-03-07" {
		t.Errorf("Date = %q, want 2024-03-07", p.Date)
	}
	if p.ScaffoldDir != ".jekyll" {
		t.Errorf("ScaffoldDir = %q", p.ScaffoldDir)
	}
	if len(find(p, CopyFile, "app/_posts/2024-03-07-welcome-to-jekyll.md")) != 1 {
		t.Error("welcome post is not dated with the run date")
	}
	if len(find(p, RenderTemplate, "app/_posts/2024-03-07-yo-jekyllrb.md")) != 1 {
		t.Error("yo-jekyllrb post is not dated with the run date")
	}
}

func TestBuildDefaultTemplate(t *testing.T) {
	p := Build(defaultAnswers(), runDate)

	for _, ref := range p.Fetches() {
		if ref == H5BP {
			t.Fatal("default template fetches html5-boilerplate")
		}
	}
	if diff := cmp.Diff([]remote.Ref{Archetype, StyleDocs}, p.Fetches()); diff != "" {
		t.Errorf("Fetches() mismatch (-want +got):\n%s", diff)
	}

	writes := find(p, WriteLiteral, "app/js/main.js")
	if len(writes) != 1 || writes[0].Content != "" {
		t.Fatalf("main.js writes = %+v, want exactly one empty write", writes)
	}
	if p.Count(WriteLiteral) != 1 {
		t.Errorf("WriteLiteral count = %d, want 1", p.Count(WriteLiteral))
	}

	idx := find(p, CopyFile, "app/index.html")
	if len(idx) != 1 || idx[0].Source != (Source{Origin: OriginScaffold, Path: "index.html"}) {
		t.Errorf("index.html step = %+v", idx)
	}
	if idx[0].Condition != CondTemplateDefault {
		t.Errorf("index.html condition = %q", idx[0].Condition)
	}
}

func TestBuildLeadingSteps(t *testing.T) {
	p := Build(defaultAnswers(), runDate)
	want := []Step{
		{Kind: RenderTemplate, Source: Source{OriginTemplate, "Gemfile"}, Dest: "Gemfile"},
		{Kind: RenderTemplate, Source: Source{OriginTemplate, "gitignore"}, Dest: ".gitignore"},
		{Kind: CopyFile, Source: Source{OriginTemplate, "gitattributes"}, Dest: ".gitattributes"},
		{Kind: RenderTemplate, Source: Source{OriginTemplate, "Gruntfile.js"}, Dest: "Gruntfile.js"},
		{Kind: RenderTemplate, Source: Source{OriginTemplate, "_package.json"}, Dest: "package.json"},
		{Kind: CopyFile, Source: Source{OriginTemplate, "bowerrc"}, Dest: ".bowerrc"},
		{Kind: RenderTemplate, Source: Source{OriginTemplate, "_bower.json"}, Dest: "bower.json"},
		{Kind: CopyFile, Source: Source{OriginTemplate, "jshintrc"}, Dest: ".jshintrc"},
		{Kind: RenderTemplate, Source: Source{OriginTemplate, "csslintrc"}, Dest: ".csslintrc"},
		{Kind: CopyFile, Source: Source{OriginTemplate, "editorconfig"}, Dest: ".editorconfig"},
		{Kind: Scaffold, Dest: ".jekyll"},
	}
	if diff := cmp.Diff(want, p.Steps[:len(want)]); diff != "" {
		t.Errorf("leading steps mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDirectories(t *testing.T) {
	a := defaultAnswers()
	a.CSSDir = "assets/css"
	a.CSSPreDir = "assets/scss"
	p := Build(a, runDate)

	want := []string{
		"app/_layouts", "app/_posts", "app/_includes", "app/_plugins",
		"app/assets/css", "app/assets/scss", "app/js", "app/images", "app/fonts",
	}
	if diff := cmp.Diff(want, dests(p, MakeDir)); diff != "" {
		t.Errorf("MakeDir steps mismatch (-want +got):\n%s", diff)
	}
	if len(find(p, RemoteTemplate, "app/assets/scss/screen.scss")) != 1 {
		t.Error("screen.scss does not follow the preprocessor directory")
	}
}

func TestBuildH5BPNoOptions(t *testing.T) {
	p := Build(h5bpAnswers(false, false, false, false), runDate)

	var h5bpSteps []string
	for _, s := range p.Steps {
		if s.Kind.UsesHandle() && s.Remote == H5BP {
			h5bpSteps = append(h5bpSteps, s.Source.Path)
		}
	}
	want := []string{".htaccess", "404.html", "crossdomain.xml", "LICENSE.md", "robots.txt"}
	if diff := cmp.Diff(want, h5bpSteps); diff != "" {
		t.Errorf("h5bp remote steps mismatch (-want +got):\n%s", diff)
	}

	writes := find(p, WriteLiteral, "app/js/main.js")
	if len(writes) != 1 {
		t.Fatalf("main.js writes = %d, want 1", len(writes))
	}
	if writes[0].Condition != CondTemplateH5BP+" && "+CondNoH5BPJS {
		t.Errorf("main.js condition = %q", writes[0].Condition)
	}
	if len(find(p, CopyFile, "app/_includes/googleanalytics.html")) != 0 {
		t.Error("analytics include copied without the analytics option")
	}
}

func TestBuildH5BPAllOptions(t *testing.T) {
	p := Build(h5bpAnswers(true, true, true, true), runDate)

	if p.Count(WriteLiteral) != 0 {
		t.Errorf("WriteLiteral count = %d, want 0 when h5bp javascript is used", p.Count(WriteLiteral))
	}
	for _, dest := range []string{
		"app/js/main.js",
		"app/js/plugins.js",
		"app/apple-touch-icon-precomposed.png",
		"app/favicon.ico",
		"app/_h5bp-docs/CHANGELOG.md",
		"app/_h5bp-docs/README.md",
	} {
		if len(find(p, RemoteCopy, dest)) != 1 {
			t.Errorf("missing remote copy to %s", dest)
		}
	}
	if len(find(p, RemoteDirectory, "app/_h5bp-docs/code-docs")) != 1 {
		t.Error("missing h5bp doc directory")
	}
	ga := find(p, CopyFile, "app/_includes/googleanalytics.html")
	if len(ga) != 1 || ga[0].Condition != CondTemplateH5BP+" && "+CondH5BPAnalytics {
		t.Errorf("analytics include = %+v", ga)
	}
}

func TestBuildRemoteStepsFollowTheirFetch(t *testing.T) {
	for name, a := range map[string]*answers.Answers{
		"default": defaultAnswers(),
		"h5bp":    h5bpAnswers(true, true, true, true),
	} {
		t.Run(name, func(t *testing.T) {
			fetched := map[remote.Ref]bool{}
			for i, s := range Build(a, runDate).Steps {
				if s.Kind == FetchRemote {
					fetched[s.Remote] = true
				}
				if s.Kind.UsesHandle() && !fetched[s.Remote] {
					t.Errorf("step %d (%s) uses %s before it is fetched", i, s, s.Remote)
				}
			}
		})
	}
}

func TestBuildPygments(t *testing.T) {
	a := defaultAnswers()
	a.Pygments = true
	p := Build(a, runDate)

	steps := find(p, CopyFile, "app/css/syntax.css")
	if len(steps) != 1 {
		t.Fatalf("syntax.css steps = %d, want 1", len(steps))
	}
	if steps[0].Source != (Source{Origin: OriginScaffold, Path: "css/syntax.css"}) || steps[0].Condition != CondPygments {
		t.Errorf("syntax.css step = %+v", steps[0])
	}

	if len(find(Build(defaultAnswers(), runDate), CopyFile, "app/css/syntax.css")) != 0 {
		t.Error("syntax.css copied without pygments")
	}
}

func TestBuildStyleDocs(t *testing.T) {
	a := defaultAnswers()
	a.CSSPreDir = "scss"
	a.JSDir = "scripts"
	p := Build(a, runDate)

	var pages int
	for _, s := range p.Steps {
		if s.Remote == StyleDocs && s.Kind == RemoteCopy && strings.HasPrefix(s.Source.Path, "templates/") {
			pages++
		}
	}
	if pages != 10 {
		t.Errorf("style-docs pages = %d, want 10", pages)
	}
	for _, dest := range []string{"app/scss/style-docs.scss", "app/scripts/screenshots.js", "app/scripts/annotation.js"} {
		if len(find(p, RemoteTemplate, dest)) != 1 {
			t.Errorf("missing remote template to %s", dest)
		}
	}
	if len(find(p, RemoteCopy, "app/_includes/markdown/about.md")) != 1 {
		t.Error("README is not copied to about.md")
	}
}

// Style-Docs assets follow the operator's directories, not a fixed
// app/sass and app/js.
func TestBuildStyleDocsAssetDestinations(t *testing.T) {
	a := defaultAnswers()
	a.CSSPreDir = "styles/src"
	a.JSDir = "scripts"
	p := Build(a, runDate)

	var got []string
	for _, s := range p.Steps {
		if s.Remote != StyleDocs {
			continue
		}
		if strings.HasPrefix(s.Source.Path, "sass/") || strings.HasPrefix(s.Source.Path, "js/") {
			got = append(got, s.Kind.String()+" "+s.Source.Path+" -> "+s.Dest)
		}
	}
	want := []string{
		"remote-template sass/style-docs.scss -> app/styles/src/style-docs.scss",
		"remote-dir sass/style-docs -> app/styles/src/style-docs",
		"remote-template js/annotation.js -> app/scripts/annotation.js",
		"remote-template js/performance.js -> app/scripts/performance.js",
		"remote-template js/screenshots.js -> app/scripts/screenshots.js",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("style-docs asset steps mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDeterministic(t *testing.T) {
	for _, a := range []*answers.Answers{defaultAnswers(), h5bpAnswers(true, false, true, false)} {
		first := Build(a, runDate)
		second := Build(a, runDate.Add(-time.Hour))
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Build() is not deterministic (-first +second):\n%s", diff)
		}
	}
}
