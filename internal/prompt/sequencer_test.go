package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/archetype-labs/archgen/internal/answers"
	"github.com/archetype-labs/archgen/internal/identity"
	"github.com/google/go-cmp/cmp"
)

var testIdentity = identity.Identity{Name: "Ada", Email: "ada@example.com", GitHub: "ada"}

// defaultScript answers every default-template question, accepting defaults
// wherever an empty string is given.
func defaultScript() []any {
	return []any{
		"", "", "", "", // identity: accept git defaults
		"/styles/", "", "", "", "", // structure
		answers.LabelDefault,
		"My site", "pretty", "kramdown", true, "12",
	}
}

func TestRunDefaultTemplate(t *testing.T) {
	script := NewScript(defaultScript()...)
	seq := NewSequencer(script, "blog", testIdentity)

	got, err := seq.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := &answers.Answers{
		AppName:     "blog",
		Author:      "Ada",
		Email:       "ada@example.com",
		GitHub:      "ada",
		Twitter:     "ada",
		CSSDir:      "styles",
		JSDir:       "js",
		ImgDir:      "images",
		FontsDir:    "fonts",
		CSSPreDir:   "sass",
		Template:    answers.TemplateDefault,
		Description: "My site",
		Permalink:   "pretty",
		Markdown:    "kramdown",
		Pygments:    true,
		PageCount:   answers.PageCount{N: 12},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
	if script.Remaining() != 0 {
		t.Errorf("%d script answers unread", script.Remaining())
	}
}

func TestRunSkipsH5BPGroupForDefault(t *testing.T) {
	script := NewScript(defaultScript()...)
	if _, err := NewSequencer(script, "blog", testIdentity).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, msg := range script.Asked {
		if strings.Contains(msg, "H5★BP") || strings.Contains(msg, "Analytics") {
			t.Errorf("h5bp question %q asked for default template", msg)
		}
	}
}

func TestRunH5BPTemplate(t *testing.T) {
	script := NewScript(
		"Grace", "grace@example.com", "grace", "@hopper",
		"", "", "", "", "",
		answers.LabelH5BP,
		true, false, true, false,
		"", "date", "redcarpet", false, "all",
	)

	got, err := NewSequencer(script, "site", identity.Identity{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Template != answers.TemplateH5BP {
		t.Errorf("Template = %q", got.Template)
	}
	if !got.H5BPJS || got.H5BPIcons || !got.H5BPDocs || got.H5BPAnalytics {
		t.Errorf("h5bp flags = js:%v ico:%v docs:%v ga:%v", got.H5BPJS, got.H5BPIcons, got.H5BPDocs, got.H5BPAnalytics)
	}
	if got.Twitter != "hopper" {
		t.Errorf("Twitter = %q, want leading @ stripped", got.Twitter)
	}
	if !got.PageCount.Unbounded {
		t.Error("expected unbounded page count")
	}
}

func TestRunRepromptsInvalidPageCount(t *testing.T) {
	answersIn := defaultScript()
	// Replace the final "12" with an invalid answer followed by a valid one.
	answersIn = append(answersIn[:len(answersIn)-1], "abc", "12")

	var out bytes.Buffer
	script := NewScript(answersIn...)
	script.Out = &out

	got, err := NewSequencer(script, "blog", testIdentity).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.PageCount.N != 12 {
		t.Errorf("PageCount = %+v, want 12", got.PageCount)
	}

	count := 0
	for _, msg := range script.Asked {
		if msg == "Number of posts to show on the home page" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("page count asked %d times, want 2", count)
	}
	if !strings.Contains(out.String(), "must be a number or 'all'") {
		t.Errorf("validation message not shown, output:\n%s", out.String())
	}
}

func TestRunRepromptsDirectoryOutsideApp(t *testing.T) {
	answersIn := defaultScript()
	answersIn = append(append(append([]any{}, answersIn[:4]...), "../../etc", "css/../../x"), answersIn[4:]...)

	var out bytes.Buffer
	script := NewScript(answersIn...)
	script.Out = &out

	got, err := NewSequencer(script, "blog", testIdentity).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.CSSDir != "styles" {
		t.Errorf("CSSDir = %q, want styles", got.CSSDir)
	}

	count := 0
	for _, msg := range script.Asked {
		if msg == "CSS directory" {
			count++
		}
	}
	if count != 3 {
		t.Errorf("CSS directory asked %d times, want 3", count)
	}
	if !strings.Contains(out.String(), "inside app/") {
		t.Errorf("validation message not shown, output:\n%s", out.String())
	}
}

func TestRunEmptyIdentityDefaults(t *testing.T) {
	script := NewScript(
		"", "", "", "",
		"", "", "", "", "",
		answers.LabelDefault,
		"", "date", "redcarpet", false, "",
	)
	got, err := NewSequencer(script, "blog", identity.Identity{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Author != "" || got.Email != "" || got.GitHub != "" || got.Twitter != "" {
		t.Errorf("identity = %+v, want empty", got)
	}
}

func TestRunAbortStopsBeforeLaterGroups(t *testing.T) {
	// Script ends in the middle of the structure group.
	script := NewScript("", "", "", "", "css")

	_, err := NewSequencer(script, "blog", testIdentity).Run(context.Background())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("Run() error = %v, want ErrAborted", err)
	}
	for _, msg := range script.Asked {
		if msg == "Site template" {
			t.Error("template group ran after abort")
		}
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSequencer(NewScript(defaultScript()...), "blog", testIdentity).Run(ctx)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("Run() error = %v, want ErrAborted", err)
	}
}

func TestStandardGroupOrder(t *testing.T) {
	var names []string
	for _, g := range NewSequencer(NewScript(), "blog", identity.Identity{}).Groups() {
		names = append(names, g.Name)
	}
	want := []string{GroupIdentity, GroupStructure, GroupTemplate, GroupH5BP, GroupJekyll}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("group order mismatch (-want +got):\n%s", diff)
	}
}

func TestScriptSelectByIndexAndLabel(t *testing.T) {
	s := NewScript(1, "pretty", "nope")
	cfg := SelectConfig{Message: "m", Options: answers.Permalinks}
	ctx := context.Background()

	if i, err := s.Select(ctx, cfg); err != nil || i != 1 {
		t.Errorf("Select(index) = %d, %v", i, err)
	}
	if i, err := s.Select(ctx, cfg); err != nil || i != 1 {
		t.Errorf("Select(label) = %d, %v", i, err)
	}
	if _, err := s.Select(ctx, cfg); err == nil {
		t.Error("expected error for unknown label")
	}
	if _, err := s.Select(ctx, cfg); !errors.Is(err, ErrAborted) {
		t.Errorf("exhausted Select = %v, want ErrAborted", err)
	}
}
