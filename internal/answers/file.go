package answers

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/answers.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// FileError reports schema violations in an answers file.
type FileError struct {
	Path   string
	Issues []string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, strings.Join(e.Issues, "; "))
}

type answersFile struct {
	AppName     string `yaml:"appname"`
	Author      string `yaml:"author"`
	Email       string `yaml:"email"`
	GitHub      string `yaml:"github"`
	Twitter     string `yaml:"twitter"`
	Directories struct {
		CSS          string `yaml:"css"`
		JS           string `yaml:"js"`
		Images       string `yaml:"images"`
		Fonts        string `yaml:"fonts"`
		Preprocessor string `yaml:"preprocessor"`
	} `yaml:"directories"`
	Template string `yaml:"template"`
	H5BP     struct {
		JavaScript bool `yaml:"javascript"`
		Icons      bool `yaml:"icons"`
		Docs       bool `yaml:"docs"`
		Analytics  bool `yaml:"analytics"`
	} `yaml:"h5bp"`
	Site struct {
		Description string `yaml:"description"`
		Permalink   string `yaml:"permalink"`
		Markdown    string `yaml:"markdown"`
		Pygments    bool   `yaml:"pygments"`
		PageCount   any    `yaml:"pageCount"`
	} `yaml:"site"`
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("answers.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("answers.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// LoadFile reads a YAML answers file. fallbackAppName is used when the file
// does not name the project. Omitted directories take their prompt defaults.
func LoadFile(path, fallbackAppName string) (*Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file: %w", err)
	}
	return Parse(path, data, fallbackAppName)
}

// Parse validates and decodes answers file content. name labels errors.
func Parse(name string, data []byte, fallbackAppName string) (*Answers, error) {
	if err := validate(name, data); err != nil {
		return nil, err
	}

	var f answersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	b := NewBuilder()
	appName := f.AppName
	if appName == "" {
		appName = fallbackAppName
	}

	pageCount := "all"
	if f.Site.PageCount != nil {
		pageCount = fmt.Sprint(f.Site.PageCount)
	}
	permalink := orDefault(f.Site.Permalink, Permalinks[0])
	markdown := orDefault(f.Site.Markdown, MarkdownLibraries[0])

	steps := []func() error{
		func() error { return b.SetAppName(appName) },
		func() error { return b.SetAuthor(f.Author) },
		func() error { return b.SetEmail(f.Email) },
		func() error { return b.SetGitHub(f.GitHub) },
		func() error { return b.SetTwitter(f.Twitter) },
		func() error { return b.SetCSSDir(orDefault(f.Directories.CSS, DefaultCSSDir)) },
		func() error { return b.SetJSDir(orDefault(f.Directories.JS, DefaultJSDir)) },
		func() error { return b.SetImgDir(orDefault(f.Directories.Images, DefaultImgDir)) },
		func() error { return b.SetFontsDir(orDefault(f.Directories.Fonts, DefaultFontsDir)) },
		func() error { return b.SetCSSPreDir(orDefault(f.Directories.Preprocessor, DefaultCSSPreDir)) },
		func() error { return b.SetTemplate(TemplateType(f.Template)) },
		func() error { return b.SetH5BPJS(f.H5BP.JavaScript) },
		func() error { return b.SetH5BPIcons(f.H5BP.Icons) },
		func() error { return b.SetH5BPDocs(f.H5BP.Docs) },
		func() error { return b.SetH5BPAnalytics(f.H5BP.Analytics) },
		func() error { return b.SetDescription(f.Site.Description) },
		func() error { return b.SetPermalink(permalink) },
		func() error { return b.SetMarkdown(markdown) },
		func() error { return b.SetPygments(f.Site.Pygments) },
		func() error { return b.SetPageCount(pageCount) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	a, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return a, nil
}

func validate(name string, data []byte) error {
	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("converting %s to JSON: %w", name, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("preparing %s for validation: %w", name, err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []string
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		issues = []string{ve.Error()}
	}
	return &FileError{Path: name, Issues: issues}
}

// collectIssues walks the error tree and keeps leaf-level messages.
func collectIssues(ve *jsonschema.ValidationError, issues *[]string) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}

	kwPath := ve.ErrorKind.KeywordPath()
	if len(kwPath) > 0 {
		switch kwPath[len(kwPath)-1] {
		case "oneOf", "allOf", "$ref":
			return
		}
	}

	loc := "/" + strings.Join(ve.InstanceLocation, "/")
	*issues = append(*issues, loc+": "+ve.ErrorKind.LocalizedString(printer))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
