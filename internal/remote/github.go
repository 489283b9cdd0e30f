package remote

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/archetype-labs/archgen/internal/branding"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-getter"
	"github.com/spf13/afero"
)

const (
	// DefaultBaseURL is where archives are downloaded from unless a mirror
	// is configured.
	DefaultBaseURL = "https://github.com"

	// DefaultMaxAge bounds how long a branch revision is served from cache.
	DefaultMaxAge = 24 * time.Hour

	markerSuffix = ".fetched"
)

// GitHub downloads revision archives and keeps them in a local cache laid
// out as <CacheDir>/<owner>/<repo>/<revision>.
type GitHub struct {
	BaseURL  string
	CacheDir string
	Token    string
	MaxAge   time.Duration

	now      func() time.Time
	download func(ctx context.Context, src, dst string) error
}

// NewGitHub returns a provider reading from baseURL (DefaultBaseURL when
// empty) and caching under cacheDir.
func NewGitHub(baseURL, cacheDir, token string) *GitHub {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	g := &GitHub{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		CacheDir: cacheDir,
		Token:    token,
		MaxAge:   DefaultMaxAge,
		now:      time.Now,
	}
	g.download = g.getterDownload
	return g
}

// ArchiveURL returns the tarball URL for ref.
func (g *GitHub) ArchiveURL(ref Ref) string {
	return fmt.Sprintf("%s/%s/%s/archive/%s.tar.gz", g.BaseURL, ref.Owner, ref.Repo, ref.Revision)
}

// CachePath returns where ref is unpacked.
func (g *GitHub) CachePath(ref Ref) string {
	return filepath.Join(g.CacheDir, ref.Owner, ref.Repo, ref.Revision)
}

// Fetch implements Provider. Pinned revisions are downloaded once. Branch
// revisions are downloaded again once their cache entry is older than
// MaxAge.
func (g *GitHub) Fetch(ctx context.Context, ref Ref) (*Handle, error) {
	if err := ref.Validate(); err != nil {
		return nil, &FetchError{Ref: ref, Err: err}
	}
	dir := g.CachePath(ref)
	url := g.ArchiveURL(ref)

	if g.fresh(ref, dir) {
		log.Debug("using cached revision", "ref", ref.String(), "dir", dir)
		h := g.handle(ref, dir)
		h.Cached = true
		return h, nil
	}

	log.Info("downloading", "ref", ref.String(), "url", url)
	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return nil, &FetchError{Ref: ref, URL: url, Err: err}
	}
	tmp := fmt.Sprintf("%s.partial-%d", dir, g.now().UnixNano())
	defer os.RemoveAll(tmp)

	// The archive has a single top-level "<repo>-<revision>" directory;
	// the glob subdirectory unwraps it.
	if err := g.download(ctx, url+"//*", tmp); err != nil {
		return nil, &FetchError{Ref: ref, URL: url, Err: err}
	}

	if err := os.RemoveAll(dir); err != nil {
		return nil, &FetchError{Ref: ref, URL: url, Err: err}
	}
	if err := os.Rename(tmp, dir); err != nil {
		return nil, &FetchError{Ref: ref, URL: url, Err: err}
	}
	g.writeMarker(dir)

	return g.handle(ref, dir), nil
}

func (g *GitHub) handle(ref Ref, dir string) *Handle {
	return NewHandle(ref, afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// fresh reports whether a complete cache entry exists and may be reused.
func (g *GitHub) fresh(ref Ref, dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	fetched := g.readMarker(dir)
	if fetched.IsZero() {
		return false
	}
	if ref.Pinned() {
		return true
	}
	return g.now().Sub(fetched) <= g.MaxAge
}

// writeMarker records when dir was fetched. Failure only costs a refetch.
func (g *GitHub) writeMarker(dir string) {
	ts := strconv.FormatInt(g.now().Unix(), 10)
	if err := os.WriteFile(dir+markerSuffix, []byte(ts), 0644); err != nil {
		log.Warn("could not write cache marker", "dir", dir, "error", err)
	}
}

func (g *GitHub) readMarker(dir string) time.Time {
	data, err := os.ReadFile(dir + markerSuffix)
	if err != nil {
		return time.Time{}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

func (g *GitHub) getterDownload(ctx context.Context, src, dst string) error {
	header := http.Header{}
	header.Set("User-Agent", branding.UserAgent())
	if g.Token != "" {
		header.Set("Authorization", "token "+g.Token)
	}
	httpGetter := &getter.HttpGetter{Header: header}

	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Mode: getter.ClientModeDir,
		Getters: map[string]getter.Getter{
			"http":  httpGetter,
			"https": httpGetter,
		},
	}
	return client.Get()
}
