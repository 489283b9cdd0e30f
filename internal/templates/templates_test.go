package templates

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/archetype-labs/archgen/internal/answers"
	"github.com/archetype-labs/archgen/internal/sink"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

func sampleAnswers(tmpl answers.TemplateType, pages answers.PageCount) *answers.Answers {
	return &answers.Answers{
		AppName:       "blog",
		Author:        "Ada Lovelace",
		Email:         "ada@example.com",
		GitHub:        "ada",
		Twitter:       "ada",
		CSSDir:        "css",
		JSDir:         "js",
		ImgDir:        "images",
		FontsDir:      "fonts",
		CSSPreDir:     "sass",
		Template:      tmpl,
		H5BPJS:        tmpl == answers.TemplateH5BP,
		H5BPIcons:     tmpl == answers.TemplateH5BP,
		H5BPDocs:      tmpl == answers.TemplateH5BP,
		H5BPAnalytics: tmpl == answers.TemplateH5BP,
		Description:   `A "quoted" description`,
		Permalink:     "pretty",
		Markdown:      "kramdown",
		Pygments:      true,
		PageCount:     pages,
	}
}

func TestPaths(t *testing.T) {
	paths, err := Paths()
	if err != nil {
		t.Fatalf("Paths() error = %v", err)
	}
	want := []string{
		"Gemfile",
		"Gruntfile.js",
		"_bower.json",
		"_config.build.yml",
		"_config.rb",
		"_config.yml",
		"_package.json",
		"app/_posts/yo-jekyllrb.md",
		"conditional/template-default/_layouts/default.html",
		"conditional/template-h5bp/humans.txt",
	}
	have := make(map[string]bool, len(paths))
	for _, p := range paths {
		have[p] = true
	}
	for _, w := range want {
		if !have[w] {
			t.Errorf("template set is missing %s", w)
		}
	}

	fsys := FS()
	for _, p := range paths {
		if ok, err := afero.Exists(fsys, p); !ok || err != nil {
			t.Errorf("FS() cannot open %s: %v", p, err)
		}
	}
}

func TestEveryTemplateRenders(t *testing.T) {
	paths, err := Paths()
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]*answers.Answers{
		"default": sampleAnswers(answers.TemplateDefault, answers.PageCount{Unbounded: true}),
		"h5bp":    sampleAnswers(answers.TemplateH5BP, answers.PageCount{N: 5}),
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			vars := a.Vars()
			for _, p := range paths {
				data, err := afero.ReadFile(FS(), p)
				if err != nil {
					t.Fatal(err)
				}
				if _, err := sink.Render(p, data, vars); err != nil {
					t.Errorf("rendering %s: %v", p, err)
				}
			}
		})
	}
}

func render(t *testing.T, path string, a *answers.Answers) string {
	t.Helper()
	data, err := afero.ReadFile(FS(), path)
	if err != nil {
		t.Fatal(err)
	}
	out, err := sink.Render(path, data, a.Vars())
	if err != nil {
		t.Fatalf("rendering %s: %v", path, err)
	}
	return string(out)
}

func TestPackageJSONIsValid(t *testing.T) {
	out := render(t, "_package.json", sampleAnswers(answers.TemplateDefault, answers.PageCount{Unbounded: true}))
	var pkg struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(out), &pkg); err != nil {
		t.Fatalf("package.json is not valid JSON: %v\n%s", err, out)
	}
	if pkg.Name != "blog" || pkg.Description != `A "quoted" description` {
		t.Errorf("package.json = %+v", pkg)
	}
}

func TestConfigYAML(t *testing.T) {
	tests := []struct {
		name         string
		pages        answers.PageCount
		wantPaginate int
	}{
		{"unbounded", answers.PageCount{Unbounded: true}, 0},
		{"limited", answers.PageCount{N: 5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, "_config.yml", sampleAnswers(answers.TemplateDefault, tt.pages))
			var cfg struct {
				Name        string `yaml:"name"`
				Description string `yaml:"description"`
				Permalink   string `yaml:"permalink"`
				Markdown    string `yaml:"markdown"`
				Pygments    bool   `yaml:"pygments"`
				Paginate    int    `yaml:"paginate"`
			}
			if err := yaml.Unmarshal([]byte(out), &cfg); err != nil {
				t.Fatalf("_config.yml is not valid YAML: %v\n%s", err, out)
			}
			if cfg.Name != "blog" || cfg.Permalink != "pretty" || cfg.Markdown != "kramdown" || !cfg.Pygments {
				t.Errorf("config = %+v", cfg)
			}
			if cfg.Description != `A "quoted" description` {
				t.Errorf("description = %q", cfg.Description)
			}
			if cfg.Paginate != tt.wantPaginate {
				t.Errorf("paginate = %d, want %d", cfg.Paginate, tt.wantPaginate)
			}
		})
	}
}

func TestLiquidMarkupSurvives(t *testing.T) {
	out := render(t, "conditional/template-default/_layouts/default.html",
		sampleAnswers(answers.TemplateDefault, answers.PageCount{Unbounded: true}))
	for _, want := range []string{"{{ content }}", "{{ page.title }}", "/css/syntax.css"} {
		if !strings.Contains(out, want) {
			t.Errorf("default layout is missing %q", want)
		}
	}
}
