package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/archetype-labs/archgen/internal/branding"
)

// DefaultAPIBase is the GitHub REST endpoint.
const DefaultAPIBase = "https://api.github.com"

// Release is the subset of a GitHub release the checker reads.
type Release struct {
	TagName   string    `json:"tag_name"`
	HTMLURL   string    `json:"html_url"`
	Published time.Time `json:"published_at"`
}

// Checker looks up the latest release of the CLI.
type Checker struct {
	current    string
	apiBase    string
	token      string
	httpClient *http.Client
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(ch *Checker) { ch.httpClient = c }
}

// WithAPIBase points the checker at another GitHub API host.
func WithAPIBase(base string) Option {
	return func(ch *Checker) { ch.apiBase = strings.TrimRight(base, "/") }
}

// WithToken authenticates requests for a higher rate limit.
func WithToken(token string) Option {
	return func(ch *Checker) { ch.token = token }
}

// New returns a Checker for the running version.
func New(currentVersion string, opts ...Option) *Checker {
	ch := &Checker{
		current:    currentVersion,
		apiBase:    DefaultAPIBase,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(ch)
	}
	return ch
}

// Latest fetches the newest published release.
func (ch *Checker) Latest(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", ch.apiBase, branding.GitHubRepo())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", branding.CLIName()+"-updater")
	if ch.token != "" {
		req.Header.Set("Authorization", "token "+ch.token)
	}

	resp, err := ch.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching latest release: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("no releases published for %s", branding.GitHubRepo())
	case http.StatusForbidden:
		return nil, fmt.Errorf("GitHub API rate limit exceeded; set github_token for higher limits")
	default:
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("parsing release JSON: %w", err)
	}
	return &rel, nil
}

// Check fetches the latest release and records the result in the notice
// file under configDir.
func (ch *Checker) Check(ctx context.Context, configDir string, now time.Time) (*Notice, error) {
	rel, err := ch.Latest(ctx)
	if err != nil {
		return nil, err
	}
	newer, err := IsUpdateAvailable(ch.current, rel.TagName)
	if err != nil {
		return nil, err
	}
	n := &Notice{
		Latest:    rel.TagName,
		Current:   ch.current,
		CheckedAt: now,
		Newer:     newer,
		URL:       rel.HTMLURL,
	}
	if err := SaveNotice(configDir, n); err != nil {
		return n, err
	}
	return n, nil
}
