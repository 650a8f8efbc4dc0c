package scaffold

import (
	"strings"

	"github.com/arthur-debert/aidd/pkg/errors"
)

// SourceKind tags the resolution strategy for a scaffold identifier
type SourceKind string

const (
	// SourceNamed is a template under the scaffolds root
	SourceNamed SourceKind = "named"
	// SourceFileURI is a local file:// path, used in place with no copy
	SourceFileURI SourceKind = "file-uri"
	// SourceHTTPURI is a direct https:// tarball URL
	SourceHTTPURI SourceKind = "http-uri"
	// SourceBareRepo is https://github.com/<owner>/<repo>, resolved to its
	// latest release tarball
	SourceBareRepo SourceKind = "bare-repo"
)

// Source is the classified form of a raw scaffold identifier, derived once
// per invocation and never mutated afterwards.
type Source struct {
	Kind  SourceKind
	Value string

	// Owner and Repo are set only for SourceBareRepo
	Owner string
	Repo  string
}

func (s Source) String() string {
	return s.Value
}

const githubPrefix = "https://github.com/"

// Classify categorizes a scaffold identifier. Plain http:// is a hard
// validation error, never silently upgraded to https.
func Classify(raw string) (Source, error) {
	switch {
	case strings.HasPrefix(raw, "http://"):
		return Source{}, errors.Newf(errors.ErrSchemeRejected,
			"insecure scaffold source %q: only https:// sources are allowed", raw).
			WithDetail("source", raw)

	case strings.HasPrefix(raw, "https://"):
		if owner, repo, ok := splitBareRepo(raw); ok {
			return Source{Kind: SourceBareRepo, Value: raw, Owner: owner, Repo: repo}, nil
		}
		return Source{Kind: SourceHTTPURI, Value: raw}, nil

	case strings.HasPrefix(raw, "file://"):
		return Source{Kind: SourceFileURI, Value: raw}, nil

	default:
		return Source{Kind: SourceNamed, Value: raw}, nil
	}
}

// splitBareRepo reports whether raw is a bare github.com repository
// reference, i.e. exactly owner/repo after the host with no further path.
func splitBareRepo(raw string) (owner, repo string, ok bool) {
	rest, found := strings.CutPrefix(raw, githubPrefix)
	if !found {
		return "", "", false
	}
	rest = strings.TrimSuffix(rest, "/")

	segments := strings.Split(rest, "/")
	if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
		return "", "", false
	}
	return segments[0], segments[1], true
}
