//go:build integration

package integration_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, so ~/.archgen resolves inside the sandbox
	CacheDir   string // remote download cache
	ProjectDir string // where the site is generated
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them. The environment is restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		CacheDir:   t.TempDir(),
		ProjectDir: filepath.Join(t.TempDir(), "blog"),
	}
	t.Setenv("HOME", env.HomeDir)

	if err := os.MkdirAll(env.ProjectDir, 0755); err != nil {
		t.Fatalf("creating project dir: %v", err)
	}
	return env
}

// tarball builds a gzipped tar whose entries sit under a single top-level
// directory, the way GitHub lays out revision archives.
func tarball(t *testing.T, topDir string, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	dirs := map[string]bool{}
	addDir := func(name string) {
		if dirs[name] {
			return
		}
		dirs[name] = true
		if err := tw.WriteHeader(&tar.Header{Name: name + "/", Typeflag: tar.TypeDir, Mode: 0755}); err != nil {
			t.Fatalf("writing dir header: %v", err)
		}
	}
	addDir(topDir)

	for name, content := range files {
		parts := strings.Split(name, "/")
		for i := 1; i < len(parts); i++ {
			addDir(topDir + "/" + strings.Join(parts[:i], "/"))
		}
		hdr := &tar.Header{
			Name:     topDir + "/" + name,
			Typeflag: tar.TypeReg,
			Mode:     0644,
			Size:     int64(len(content)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("writing header for %s: %v", name, err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// archiveServer serves archives keyed by URL path and counts GET requests.
type archiveServer struct {
	*httptest.Server

	mu       sync.Mutex
	archives map[string][]byte
	gets     map[string]int
}

func newArchiveServer(t *testing.T, archives map[string][]byte) *archiveServer {
	t.Helper()
	s := &archiveServer{archives: archives, gets: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		data, ok := s.archives[r.URL.Path]
		if r.Method == http.MethodGet {
			s.gets[r.URL.Path]++
		}
		s.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/x-gzip")
		w.Write(data)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *archiveServer) getCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets[path]
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected file to exist: %s", path)
		return
	}
	if info.IsDir() {
		t.Errorf("expected file but found directory: %s", path)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected %s not to exist", path)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("%s does not contain %q:\n%s", path, substr, data)
	}
}
