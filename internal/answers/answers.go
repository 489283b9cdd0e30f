package answers

import (
	"fmt"
	"strconv"
	"strings"
)

// TemplateType selects the base page template set.
type TemplateType string

const (
	TemplateDefault TemplateType = "default"
	TemplateH5BP    TemplateType = "h5bp"
)

// Human-readable labels offered by the template prompt, in display order.
const (
	LabelDefault = "Default Jekyll"
	LabelH5BP    = "HTML5 ★ Boilerplate"
)

// TemplateLabels returns the template choices in display order.
func TemplateLabels() []string {
	return []string{LabelDefault, LabelH5BP}
}

// Permalinks lists the accepted post permalink styles.
var Permalinks = []string{"date", "pretty", "none"}

// MarkdownLibraries lists the accepted markdown renderers.
var MarkdownLibraries = []string{"redcarpet", "maruku", "rdiscount", "kramdown"}

// PageCount is the number of posts shown on the home page.
// Unbounded means every post is shown and N is ignored.
type PageCount struct {
	N         int
	Unbounded bool
}

// String returns "all" for an unbounded count and the decimal value otherwise.
func (p PageCount) String() string {
	if p.Unbounded {
		return "all"
	}
	return strconv.Itoa(p.N)
}

// Answers is the complete Configuration Model. It is produced by
// Builder.Build and must not be modified afterwards.
type Answers struct {
	AppName string

	Author  string
	Email   string
	GitHub  string
	Twitter string

	CSSDir    string
	JSDir     string
	ImgDir    string
	FontsDir  string
	CSSPreDir string

	Template TemplateType

	H5BPJS        bool
	H5BPIcons     bool
	H5BPDocs      bool
	H5BPAnalytics bool

	Description string
	Permalink   string
	Markdown    string
	Pygments    bool
	PageCount   PageCount
}

// Vars returns the template variables exposed to rendered files, keyed by the
// names template authors use (e.g. "cssDir", "author").
func (a *Answers) Vars() map[string]any {
	var pageLimit any = false
	if !a.PageCount.Unbounded {
		pageLimit = a.PageCount.N
	}
	return map[string]any{
		"appname":       a.AppName,
		"author":        a.Author,
		"email":         a.Email,
		"github":        a.GitHub,
		"twitter":       a.Twitter,
		"cssDir":        a.CSSDir,
		"jsDir":         a.JSDir,
		"imgDir":        a.ImgDir,
		"fontsDir":      a.FontsDir,
		"cssPreDir":     a.CSSPreDir,
		"templateType":  string(a.Template),
		"h5bpJs":        a.H5BPJS,
		"h5bpIco":       a.H5BPIcons,
		"h5bpDocs":      a.H5BPDocs,
		"h5bpAnalytics": a.H5BPAnalytics,
		"description":   a.Description,
		"permalink":     a.Permalink,
		"markdown":      a.Markdown,
		"pygments":      a.Pygments,
		"pageLimit":     pageLimit,
	}
}

// NormalizeDir strips every leading and trailing "/" from a directory answer.
func NormalizeDir(s string) string {
	return strings.Trim(strings.TrimSpace(s), "/")
}

// ParsePageCount accepts a non-negative decimal integer or "all" (any case).
func ParsePageCount(s string) (PageCount, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return PageCount{Unbounded: true}, nil
	}
	if s == "" {
		return PageCount{}, &ValidationError{Field: FieldPageCount, Input: s, Reason: "must be a number or 'all'"}
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return PageCount{}, &ValidationError{Field: FieldPageCount, Input: s, Reason: "must be a number or 'all'"}
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return PageCount{}, &ValidationError{Field: FieldPageCount, Input: s, Reason: "number out of range"}
	}
	return PageCount{N: n}, nil
}

// TemplateFromLabel maps a prompt label to its TemplateType.
func TemplateFromLabel(label string) (TemplateType, error) {
	switch label {
	case LabelDefault:
		return TemplateDefault, nil
	case LabelH5BP:
		return TemplateH5BP, nil
	}
	return "", &ValidationError{Field: FieldTemplate, Input: label, Reason: "unknown template"}
}

// ParseTemplate accepts a TemplateType identifier ("default" or "h5bp").
func ParseTemplate(s string) (TemplateType, error) {
	switch TemplateType(s) {
	case TemplateDefault, TemplateH5BP:
		return TemplateType(s), nil
	}
	return "", &ValidationError{Field: FieldTemplate, Input: s, Reason: "must be one of default, h5bp"}
}

// ParsePermalink validates a permalink style.
func ParsePermalink(s string) (string, error) {
	return oneOf(FieldPermalink, s, Permalinks)
}

// ParseMarkdown validates a markdown library name.
func ParseMarkdown(s string) (string, error) {
	return oneOf(FieldMarkdown, s, MarkdownLibraries)
}

func oneOf(field Field, s string, allowed []string) (string, error) {
	for _, v := range allowed {
		if s == v {
			return s, nil
		}
	}
	return "", &ValidationError{
		Field:  field,
		Input:  s,
		Reason: fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")),
	}
}
