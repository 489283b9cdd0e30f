package remote

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	segmentPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	commitPattern  = regexp.MustCompile(`^[0-9a-f]{40}$`)
)

// Ref names one revision of a repository.
type Ref struct {
	Owner    string
	Repo     string
	Revision string
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%s@%s", r.Owner, r.Repo, r.Revision)
}

// Pinned reports whether the revision is immutable: a full commit SHA or a
// semantic-version tag. Branch names are not pinned.
func (r Ref) Pinned() bool {
	if commitPattern.MatchString(r.Revision) {
		return true
	}
	_, err := semver.NewVersion(strings.TrimPrefix(r.Revision, "v"))
	return err == nil
}

// Validate checks that every part of the ref is a single safe path segment.
func (r Ref) Validate() error {
	for name, v := range map[string]string{"owner": r.Owner, "repository": r.Repo, "revision": r.Revision} {
		if !segmentPattern.MatchString(v) || v == "." || v == ".." {
			return fmt.Errorf("invalid %s %q in %s", name, v, r)
		}
	}
	return nil
}

// ParseRef parses "owner/repo@revision".
func ParseRef(s string) (Ref, error) {
	repo, rev, ok := strings.Cut(s, "@")
	if !ok {
		return Ref{}, fmt.Errorf("invalid ref %q: expected owner/repo@revision", s)
	}
	owner, name, ok := strings.Cut(repo, "/")
	if !ok {
		return Ref{}, fmt.Errorf("invalid ref %q: expected owner/repo@revision", s)
	}
	ref := Ref{Owner: owner, Repo: name, Revision: rev}
	if err := ref.Validate(); err != nil {
		return Ref{}, err
	}
	return ref, nil
}

// MustParseRef is like ParseRef but panics if s is malformed. It is for
// package-level refs.
func MustParseRef(s string) Ref {
	ref, err := ParseRef(s)
	if err != nil {
		panic(err)
	}
	return ref
}
