package plan

import (
	"path"
	"strings"
	"time"

	"github.com/archetype-labs/archgen/internal/answers"
	"github.com/archetype-labs/archgen/internal/remote"
)

// DateLayout formats the run date used in post file names.
const DateLayout = "2006-01-02"

// ScaffoldDir is where the site generator writes its transient scaffold.
const ScaffoldDir = ".jekyll"

// Remote revisions pulled into every generated site.
var (
	H5BP      = remote.MustParseRef("h5bp/html5-boilerplate@23f5e084e559177b434f702ff6be1d83e66374d3")
	Archetype = remote.MustParseRef("kwaledesign/Archetype@master")
	StyleDocs = remote.MustParseRef("kwaledesign/Style-Docs@1.0.2")
)

// Condition labels attached to gated steps.
const (
	CondTemplateDefault = "templateType=default"
	CondTemplateH5BP    = "templateType=h5bp"
	CondH5BPAnalytics   = "h5bpAnalytics"
	CondH5BPJS          = "h5bpJs"
	CondNoH5BPJS        = "!h5bpJs"
	CondH5BPIcons       = "h5bpIco"
	CondH5BPDocs        = "h5bpDocs"
	CondPygments        = "pygments"
)

var styleDocsPages = []string{
	"brandguidelines.html",
	"cuti.html",
	"grid.html",
	"performance.html",
	"prototype.html",
	"specification.html",
	"structured-content.html",
	"styletile.html",
	"content-reference-wireframe.html",
	"about.html",
}

var archetypeSassDirs = []string{"base", "objects", "components", "layout", "temp"}

// Build returns the plan for a. now is read only for its calendar date.
func Build(a *answers.Answers, now time.Time) *Plan {
	date := now.Format(DateLayout)
	b := &builder{}

	app := func(elem ...string) string {
		return path.Join(append([]string{"app"}, elem...)...)
	}

	b.render("Gemfile", "Gemfile")

	b.render("gitignore", ".gitignore")
	b.copy("gitattributes", ".gitattributes")

	b.render("Gruntfile.js", "Gruntfile.js")
	b.render("_package.json", "package.json")

	b.copy("bowerrc", ".bowerrc")
	b.render("_bower.json", "bower.json")

	b.copy("jshintrc", ".jshintrc")
	b.render("csslintrc", ".csslintrc")
	b.copy("editorconfig", ".editorconfig")

	b.add(Step{Kind: Scaffold, Dest: ScaffoldDir})

	for _, dir := range []string{
		app("_layouts"),
		app("_posts"),
		app("_includes"),
		app("_plugins"),
		app(a.CSSDir),
		app(a.CSSPreDir),
		app(a.JSDir),
		app(a.ImgDir),
		app(a.FontsDir),
	} {
		b.add(Step{Kind: MakeDir, Dest: dir})
	}

	b.copy("_config.build.yml", "_config.build.yml")
	b.render("_config.yml", "_config.yml")

	b.copyScaffold(path.Join("_posts", date+"-welcome-to-jekyll.markdown"), app("_posts", date+"-welcome-to-jekyll.md"))
	b.render("app/_posts/yo-jekyllrb.md", app("_posts", date+"-yo-jekyllrb.md"))

	mainJS := app(a.JSDir, "main.js")

	switch a.Template {
	case answers.TemplateDefault:
		b.when(CondTemplateDefault, func() {
			b.copyScaffold("index.html", app("index.html"))
			b.copyScaffold("_layouts/post.html", app("_layouts", "post.html"))
			b.render("conditional/template-default/_layouts/default.html", app("_layouts", "default.html"))
			b.write(mainJS, "")
		})

	case answers.TemplateH5BP:
		b.when(CondTemplateH5BP, func() {
			const dir = "conditional/template-h5bp"
			b.copy(dir+"/index.html", app("index.html"))
			b.copy(dir+"/_layouts/post.html", app("_layouts", "post.html"))
			b.render(dir+"/humans.txt", app("humans.txt"))
			b.render(dir+"/_includes/scripts.html", app("_includes", "scripts.html"))
			b.render(dir+"/_layouts/default.html", app("_layouts", "default.html"))

			if a.H5BPAnalytics {
				b.when(CondH5BPAnalytics, func() {
					b.copy(dir+"/_includes/googleanalytics.html", app("_includes", "googleanalytics.html"))
				})
			}

			b.fetch(H5BP)
			for _, f := range []struct{ src, dst string }{
				{".htaccess", app(".htaccess")},
				{"404.html", app("404.html")},
				{"crossdomain.xml", app("crossdomain.xml")},
				{"LICENSE.md", app("_h5bp-docs", "LICENSE.md")},
				{"robots.txt", app("robots.txt")},
			} {
				b.remoteCopy(H5BP, f.src, f.dst)
			}

			if a.H5BPJS {
				b.when(CondH5BPJS, func() {
					b.remoteCopy(H5BP, "js/main.js", mainJS)
					b.remoteCopy(H5BP, "js/plugins.js", app(a.JSDir, "plugins.js"))
				})
			} else {
				b.when(CondNoH5BPJS, func() {
					b.write(mainJS, "")
				})
			}

			if a.H5BPIcons {
				b.when(CondH5BPIcons, func() {
					b.remoteCopy(H5BP, "apple-touch-icon-144x144-precomposed.png", app("apple-touch-icon-precomposed.png"))
					b.remoteCopy(H5BP, "favicon.ico", app("favicon.ico"))
				})
			}

			if a.H5BPDocs {
				b.when(CondH5BPDocs, func() {
					b.remoteDir(H5BP, "doc", app("_h5bp-docs", "code-docs"))
					for _, f := range []string{"CHANGELOG.md", "CONTRIBUTING.md", "README.md"} {
						b.remoteCopy(H5BP, f, app("_h5bp-docs", f))
					}
				})
			}
		})
	}

	if a.Pygments {
		b.when(CondPygments, func() {
			b.copyScaffold("css/syntax.css", app(a.CSSDir, "syntax.css"))
		})
	}

	b.fetch(Archetype)
	b.render("_config.rb", app("config.rb"))
	b.remoteTemplate(Archetype, "sass/screen.scss", app(a.CSSPreDir, "screen.scss"))
	for _, d := range archetypeSassDirs {
		b.remoteDir(Archetype, "sass/"+d, app(a.CSSPreDir, d))
	}
	b.remoteDir(Archetype, "docs", app("docs"))

	b.fetch(StyleDocs)
	for _, page := range styleDocsPages {
		b.remoteCopy(StyleDocs, "templates/"+page, app(page))
	}
	b.remoteDir(StyleDocs, "_includes/markup", app("_includes", "markup"))
	b.remoteDir(StyleDocs, "_includes/markdown", app("_includes", "markdown"))
	b.remoteCopy(StyleDocs, "README.md", app("_includes", "markdown", "about.md"))
	b.remoteTemplate(StyleDocs, "sass/style-docs.scss", app(a.CSSPreDir, "style-docs.scss"))
	b.remoteDir(StyleDocs, "sass/style-docs", app(a.CSSPreDir, "style-docs"))
	for _, js := range []string{"annotation.js", "performance.js", "screenshots.js"} {
		b.remoteTemplate(StyleDocs, "js/"+js, app(a.JSDir, js))
	}

	return &Plan{Date: date, ScaffoldDir: ScaffoldDir, Steps: b.steps}
}

// builder accumulates steps, stamping each with the active condition.
type builder struct {
	steps []Step
	conds []string
}

func (b *builder) when(cond string, fn func()) {
	b.conds = append(b.conds, cond)
	fn()
	b.conds = b.conds[:len(b.conds)-1]
}

func (b *builder) add(s Step) {
	s.Condition = strings.Join(b.conds, " && ")
	b.steps = append(b.steps, s)
}

func (b *builder) render(src, dst string) {
	b.add(Step{Kind: RenderTemplate, Source: Source{Origin: OriginTemplate, Path: src}, Dest: dst})
}

func (b *builder) copy(src, dst string) {
	b.add(Step{Kind: CopyFile, Source: Source{Origin: OriginTemplate, Path: src}, Dest: dst})
}

func (b *builder) copyScaffold(src, dst string) {
	b.add(Step{Kind: CopyFile, Source: Source{Origin: OriginScaffold, Path: src}, Dest: dst})
}

func (b *builder) write(dst, content string) {
	b.add(Step{Kind: WriteLiteral, Dest: dst, Content: content})
}

func (b *builder) fetch(ref remote.Ref) {
	b.add(Step{Kind: FetchRemote, Remote: ref})
}

func (b *builder) remoteCopy(ref remote.Ref, src, dst string) {
	b.add(Step{Kind: RemoteCopy, Remote: ref, Source: Source{Path: src}, Dest: dst})
}

func (b *builder) remoteDir(ref remote.Ref, src, dst string) {
	b.add(Step{Kind: RemoteDirectory, Remote: ref, Source: Source{Path: src}, Dest: dst})
}

func (b *builder) remoteTemplate(ref remote.Ref, src, dst string) {
	b.add(Step{Kind: RemoteTemplate, Remote: ref, Source: Source{Path: src}, Dest: dst})
}
