package answers

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Field names a Configuration Model field.
type Field string

const (
	FieldAppName       Field = "appname"
	FieldAuthor        Field = "author"
	FieldEmail         Field = "email"
	FieldGitHub        Field = "github"
	FieldTwitter       Field = "twitter"
	FieldCSSDir        Field = "cssDir"
	FieldJSDir         Field = "jsDir"
	FieldImgDir        Field = "imgDir"
	FieldFontsDir      Field = "fontsDir"
	FieldCSSPreDir     Field = "cssPreDir"
	FieldTemplate      Field = "template"
	FieldH5BPJS        Field = "h5bpJs"
	FieldH5BPIcons     Field = "h5bpIco"
	FieldH5BPDocs      Field = "h5bpDocs"
	FieldH5BPAnalytics Field = "h5bpAnalytics"
	FieldDescription   Field = "description"
	FieldPermalink     Field = "permalink"
	FieldMarkdown      Field = "markdown"
	FieldPygments      Field = "pygments"
	FieldPageCount     Field = "pageCount"
)

// allFields is the order in which missing fields are reported.
var allFields = []Field{
	FieldAppName,
	FieldAuthor, FieldEmail, FieldGitHub, FieldTwitter,
	FieldCSSDir, FieldJSDir, FieldImgDir, FieldFontsDir, FieldCSSPreDir,
	FieldTemplate,
	FieldH5BPJS, FieldH5BPIcons, FieldH5BPDocs, FieldH5BPAnalytics,
	FieldDescription, FieldPermalink, FieldMarkdown, FieldPygments, FieldPageCount,
}

// Builder collects answers one field at a time. Each setter validates its
// input first; a rejected value leaves the field unset so it can be retried.
type Builder struct {
	a   Answers
	set map[Field]bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{set: make(map[Field]bool, len(allFields))}
}

func (b *Builder) mark(f Field) error {
	if b.set[f] {
		return fmt.Errorf("%s: %w", f, ErrAlreadySet)
	}
	b.set[f] = true
	return nil
}

// IsSet reports whether f has been assigned.
func (b *Builder) IsSet(f Field) bool { return b.set[f] }

// SetAppName records the project name.
func (b *Builder) SetAppName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return &ValidationError{Field: FieldAppName, Input: s, Reason: "must not be empty"}
	}
	if err := b.mark(FieldAppName); err != nil {
		return err
	}
	b.a.AppName = s
	return nil
}

// SetAuthor records the author name.
func (b *Builder) SetAuthor(s string) error {
	if err := b.mark(FieldAuthor); err != nil {
		return err
	}
	b.a.Author = strings.TrimSpace(s)
	return nil
}

// SetEmail records the author email.
func (b *Builder) SetEmail(s string) error {
	s = strings.TrimSpace(s)
	if s != "" && !strings.Contains(s, "@") {
		return &ValidationError{Field: FieldEmail, Input: s, Reason: "must be an email address"}
	}
	if err := b.mark(FieldEmail); err != nil {
		return err
	}
	b.a.Email = s
	return nil
}

// SetGitHub records the GitHub username.
func (b *Builder) SetGitHub(s string) error {
	if err := b.mark(FieldGitHub); err != nil {
		return err
	}
	b.a.GitHub = strings.TrimSpace(s)
	return nil
}

// GitHub returns the GitHub username recorded so far.
func (b *Builder) GitHub() string { return b.a.GitHub }

// SetTwitter records the Twitter handle without its leading "@".
func (b *Builder) SetTwitter(s string) error {
	if err := b.mark(FieldTwitter); err != nil {
		return err
	}
	b.a.Twitter = strings.TrimPrefix(strings.TrimSpace(s), "@")
	return nil
}

func (b *Builder) setDir(f Field, dst *string, s string) error {
	dir := NormalizeDir(s)
	if dir == "" {
		return &ValidationError{Field: f, Input: s, Reason: "must not be empty"}
	}
	// Directories are joined under app/ and must stay there.
	dir = path.Clean(dir)
	if dir == "." || dir == ".." || strings.HasPrefix(dir, "../") || !filepath.IsLocal(dir) {
		return &ValidationError{Field: f, Input: s, Reason: "must be a relative path inside app/"}
	}
	if err := b.mark(f); err != nil {
		return err
	}
	*dst = dir
	return nil
}

// SetCSSDir records the CSS directory.
func (b *Builder) SetCSSDir(s string) error { return b.setDir(FieldCSSDir, &b.a.CSSDir, s) }

// SetJSDir records the JavaScript directory.
func (b *Builder) SetJSDir(s string) error { return b.setDir(FieldJSDir, &b.a.JSDir, s) }

// SetImgDir records the image directory.
func (b *Builder) SetImgDir(s string) error { return b.setDir(FieldImgDir, &b.a.ImgDir, s) }

// SetFontsDir records the webfont directory.
func (b *Builder) SetFontsDir(s string) error { return b.setDir(FieldFontsDir, &b.a.FontsDir, s) }

// SetCSSPreDir records the CSS preprocessor source directory.
func (b *Builder) SetCSSPreDir(s string) error { return b.setDir(FieldCSSPreDir, &b.a.CSSPreDir, s) }

// SetTemplate records the template selection.
func (b *Builder) SetTemplate(t TemplateType) error {
	if _, err := ParseTemplate(string(t)); err != nil {
		return err
	}
	if err := b.mark(FieldTemplate); err != nil {
		return err
	}
	b.a.Template = t
	return nil
}

// SetTemplateLabel records the template selection from its prompt label.
func (b *Builder) SetTemplateLabel(label string) error {
	t, err := TemplateFromLabel(label)
	if err != nil {
		return err
	}
	return b.SetTemplate(t)
}

// Template returns the template selection and whether it has been set.
func (b *Builder) Template() (TemplateType, bool) {
	return b.a.Template, b.set[FieldTemplate]
}

func (b *Builder) setFlag(f Field, dst *bool, v bool) error {
	if err := b.mark(f); err != nil {
		return err
	}
	*dst = v
	return nil
}

// SetH5BPJS records whether boilerplate JavaScript is included.
func (b *Builder) SetH5BPJS(v bool) error { return b.setFlag(FieldH5BPJS, &b.a.H5BPJS, v) }

// SetH5BPIcons records whether favicon and touch icons are included.
func (b *Builder) SetH5BPIcons(v bool) error { return b.setFlag(FieldH5BPIcons, &b.a.H5BPIcons, v) }

// SetH5BPDocs records whether boilerplate documentation is included.
func (b *Builder) SetH5BPDocs(v bool) error { return b.setFlag(FieldH5BPDocs, &b.a.H5BPDocs, v) }

// SetH5BPAnalytics records whether the analytics include is added.
func (b *Builder) SetH5BPAnalytics(v bool) error {
	return b.setFlag(FieldH5BPAnalytics, &b.a.H5BPAnalytics, v)
}

// SkipH5BP sets all four boilerplate options to false.
func (b *Builder) SkipH5BP() error {
	for _, set := range []func(bool) error{b.SetH5BPJS, b.SetH5BPIcons, b.SetH5BPDocs, b.SetH5BPAnalytics} {
		if err := set(false); err != nil {
			return err
		}
	}
	return nil
}

// SetDescription records the site description.
func (b *Builder) SetDescription(s string) error {
	if err := b.mark(FieldDescription); err != nil {
		return err
	}
	b.a.Description = strings.TrimSpace(s)
	return nil
}

// SetPermalink records the post permalink style.
func (b *Builder) SetPermalink(s string) error {
	v, err := ParsePermalink(s)
	if err != nil {
		return err
	}
	if err := b.mark(FieldPermalink); err != nil {
		return err
	}
	b.a.Permalink = v
	return nil
}

// SetMarkdown records the markdown library.
func (b *Builder) SetMarkdown(s string) error {
	v, err := ParseMarkdown(s)
	if err != nil {
		return err
	}
	if err := b.mark(FieldMarkdown); err != nil {
		return err
	}
	b.a.Markdown = v
	return nil
}

// SetPygments records whether syntax highlighting styles are installed.
func (b *Builder) SetPygments(v bool) error { return b.setFlag(FieldPygments, &b.a.Pygments, v) }

// SetPageCount parses and records the home page post count.
func (b *Builder) SetPageCount(s string) error {
	pc, err := ParsePageCount(s)
	if err != nil {
		return err
	}
	if err := b.mark(FieldPageCount); err != nil {
		return err
	}
	b.a.PageCount = pc
	return nil
}

// Build returns the finished Answers. It fails if any field is unset or if
// boilerplate options were enabled without the boilerplate template.
func (b *Builder) Build() (*Answers, error) {
	var missing []Field
	for _, f := range allFields {
		if !b.set[f] {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteError{Missing: missing}
	}

	if b.a.Template != TemplateH5BP && (b.a.H5BPJS || b.a.H5BPIcons || b.a.H5BPDocs || b.a.H5BPAnalytics) {
		return nil, fmt.Errorf("h5bp options are only valid with the %q template", TemplateH5BP)
	}

	out := b.a
	return &out, nil
}
