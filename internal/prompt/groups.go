package prompt

import (
	"context"

	"github.com/archetype-labs/archgen/internal/answers"
	"github.com/archetype-labs/archgen/internal/identity"
)

// Group names, in the order StandardGroups returns them.
const (
	GroupIdentity  = "identity"
	GroupStructure = "structure"
	GroupTemplate  = "template"
	GroupH5BP      = "h5bp"
	GroupJekyll    = "jekyll"
)

// StandardGroups returns the site generator's question groups.
func StandardGroups(id identity.Identity) []Group {
	return []Group{
		{
			Name:   GroupIdentity,
			Banner: "Tell us a little about yourself.",
			Ask: func(ctx context.Context, d Driver, b *answers.Builder) error {
				return askIdentity(ctx, d, b, id)
			},
		},
		{
			Name:   GroupStructure,
			Banner: "Set up some directories. Nested directories are fine.",
			Ask:    askStructure,
		},
		{
			Name:   GroupTemplate,
			Banner: "Choose a template.",
			Ask: func(ctx context.Context, d Driver, b *answers.Builder) error {
				return askSelect(ctx, d, "Site template", answers.TemplateLabels(), b.SetTemplateLabel)
			},
		},
		{
			Name: GroupH5BP,
			When: func(b *answers.Builder) bool {
				t, ok := b.Template()
				return ok && t == answers.TemplateH5BP
			},
			Skip: (*answers.Builder).SkipH5BP,
			Ask:  askH5BP,
		},
		{
			Name:   GroupJekyll,
			Banner: "And finally, configure Jekyll. You can change all of these options in _config.yml.",
			Ask:    askJekyll,
		},
	}
}

func askIdentity(ctx context.Context, d Driver, b *answers.Builder, id identity.Identity) error {
	if err := askInput(ctx, d, InputConfig{Message: "Name", Default: id.Name}, b.SetAuthor); err != nil {
		return err
	}
	if err := askInput(ctx, d, InputConfig{Message: "Email", Default: id.Email}, b.SetEmail); err != nil {
		return err
	}
	if err := askInput(ctx, d, InputConfig{Message: "GitHub username", Default: id.GitHub}, b.SetGitHub); err != nil {
		return err
	}

	twitterDefault := ""
	if gh := b.GitHub(); gh != "" {
		twitterDefault = "@" + gh
	}
	return askInput(ctx, d, InputConfig{Message: "Twitter username", Default: twitterDefault}, b.SetTwitter)
}

func askStructure(ctx context.Context, d Driver, b *answers.Builder) error {
	dirs := []struct {
		msg string
		def string
		set func(string) error
	}{
		{"CSS directory", answers.DefaultCSSDir, b.SetCSSDir},
		{"Javascript directory", answers.DefaultJSDir, b.SetJSDir},
		{"Image directory", answers.DefaultImgDir, b.SetImgDir},
		{"Webfont directory", answers.DefaultFontsDir, b.SetFontsDir},
		{"CSS preprocessor directory", answers.DefaultCSSPreDir, b.SetCSSPreDir},
	}
	for _, dir := range dirs {
		if err := askInput(ctx, d, InputConfig{Message: dir.msg, Default: dir.def}, dir.set); err != nil {
			return err
		}
	}
	return nil
}

func askH5BP(ctx context.Context, d Driver, b *answers.Builder) error {
	confirms := []struct {
		msg string
		set func(bool) error
	}{
		{"Add H5★BP javascript files?", b.SetH5BPJS},
		{"Add H5★BP favorite and touch icons?", b.SetH5BPIcons},
		{"Add H5★BP documentation?", b.SetH5BPDocs},
		{"Include Google Analytics?", b.SetH5BPAnalytics},
	}
	for _, c := range confirms {
		if err := askConfirm(ctx, d, c.msg, c.set); err != nil {
			return err
		}
	}
	return nil
}

func askJekyll(ctx context.Context, d Driver, b *answers.Builder) error {
	if err := askInput(ctx, d, InputConfig{Message: "Site description"}, b.SetDescription); err != nil {
		return err
	}
	if err := askSelect(ctx, d, "Post permalink style", answers.Permalinks, b.SetPermalink); err != nil {
		return err
	}
	if err := askSelect(ctx, d, "Markdown library", answers.MarkdownLibraries, b.SetMarkdown); err != nil {
		return err
	}
	if err := askConfirm(ctx, d, "Use the Pygments code highlighting library?", b.SetPygments); err != nil {
		return err
	}
	return askInput(ctx, d, InputConfig{
		Message: "Number of posts to show on the home page",
		Default: "all",
		Validator: func(s string) error {
			_, err := answers.ParsePageCount(s)
			return err
		},
	}, b.SetPageCount)
}
