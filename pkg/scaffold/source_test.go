package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/aidd/pkg/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantKind  SourceKind
		wantOwner string
		wantRepo  string
	}{
		{
			name:     "plain name",
			raw:      "next-shadcn",
			wantKind: SourceNamed,
		},
		{
			name:     "file uri",
			raw:      "file:///home/me/scaffolds/blog",
			wantKind: SourceFileURI,
		},
		{
			name:      "bare github repo",
			raw:       "https://github.com/acme/scaffold-api",
			wantKind:  SourceBareRepo,
			wantOwner: "acme",
			wantRepo:  "scaffold-api",
		},
		{
			name:      "bare repo with trailing slash",
			raw:       "https://github.com/acme/scaffold-api/",
			wantKind:  SourceBareRepo,
			wantOwner: "acme",
			wantRepo:  "scaffold-api",
		},
		{
			name:     "github url with deeper path is a plain https uri",
			raw:      "https://github.com/acme/scaffold-api/releases/download/v1/x.tgz",
			wantKind: SourceHTTPURI,
		},
		{
			name:     "github url with single segment is a plain https uri",
			raw:      "https://github.com/acme",
			wantKind: SourceHTTPURI,
		},
		{
			name:     "non-github https url",
			raw:      "https://example.com/scaffold.tgz",
			wantKind: SourceHTTPURI,
		},
		{
			name:     "name that merely mentions github",
			raw:      "github-starter",
			wantKind: SourceNamed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := Classify(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, source.Kind)
			assert.Equal(t, tt.raw, source.Value)
			assert.Equal(t, tt.wantOwner, source.Owner)
			assert.Equal(t, tt.wantRepo, source.Repo)
		})
	}
}

func TestClassifyRejectsInsecureScheme(t *testing.T) {
	_, err := Classify("http://example.com/scaffold.tgz")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSchemeRejected))
	assert.Contains(t, err.Error(), "http://example.com/scaffold.tgz")
	assert.Contains(t, err.Error(), "https://")
}
