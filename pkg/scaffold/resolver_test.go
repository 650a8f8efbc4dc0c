package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/aidd/pkg/errors"
	"github.com/arthur-debert/aidd/pkg/testutil"
)

type confirmStub struct {
	answer  bool
	err     error
	prompts []string
}

func (c *confirmStub) Confirm(prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	return c.answer, c.err
}

// downloadStub writes files (relative path -> content) into dest
type downloadStub struct {
	files map[string]string
	err   error
	urls  []string
}

func (d *downloadStub) Download(ctx context.Context, url, dest string) error {
	d.urls = append(d.urls, url)
	if d.err != nil {
		return d.err
	}
	for rel, content := range d.files {
		path := filepath.Join(dest, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

type releaseStub struct {
	url   string
	err   error
	calls int
}

func (r *releaseStub) ResolveLatestRelease(ctx context.Context, owner, repo string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return r.url, nil
}

func newTestResolver(root string) (*Resolver, *confirmStub, *downloadStub, *releaseStub) {
	confirm := &confirmStub{answer: true}
	dl := &downloadStub{files: map[string]string{
		"SCAFFOLD-MANIFEST.yml": testutil.DefaultManifest,
		"README.md":             "# downloaded scaffold\n",
	}}
	releases := &releaseStub{url: "https://codeload.github.com/acme/repo/legacy.tar.gz/v1"}

	return &Resolver{
		Settings:    testutil.TestSettings(),
		PackageRoot: root,
		Confirmer:   confirm,
		Downloader:  dl,
		Releases:    releases,
	}, confirm, dl, releases
}

func TestResolveNamed(t *testing.T) {
	root := t.TempDir()
	testutil.CreateScaffold(t, root, "scaffold-example", testutil.ScaffoldSpec{
		WithExtension: true,
		Readme:        "# hello\n",
	})

	r, _, _, _ := newTestResolver(root)
	var logged []string
	r.Log = func(msg string) { logged = append(logged, msg) }

	paths, err := r.Resolve(context.Background(), "scaffold-example", t.TempDir())
	require.NoError(t, err)

	assert.False(t, paths.Downloaded)
	assert.Equal(t, filepath.Join(root, "scaffolds", "scaffold-example", "SCAFFOLD-MANIFEST.yml"), paths.ManifestPath)
	assert.Equal(t, filepath.Join(root, "scaffolds", "scaffold-example", "bin", "extension.js"), paths.ExtensionJSPath)
	assert.Equal(t, filepath.Join(root, "scaffolds", "scaffold-example", "README.md"), paths.ReadmePath)

	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "# hello")
}

func TestResolveInsecureFailsBeforePrompt(t *testing.T) {
	r, confirm, dl, _ := newTestResolver(t.TempDir())

	_, err := r.Resolve(context.Background(), "http://example.com/scaffold.tgz", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSchemeRejected))
	assert.Empty(t, confirm.prompts, "no confirmation prompt may be shown for an insecure source")
	assert.Empty(t, dl.urls)
}

func TestResolveRemoteDeclined(t *testing.T) {
	r, confirm, dl, _ := newTestResolver(t.TempDir())
	confirm.answer = false

	_, err := r.Resolve(context.Background(), "https://example.com/scaffold.tgz", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsCancelled(err), "refusal must surface as cancellation, not failure")
	assert.Empty(t, dl.urls, "downloader must not run after a refusal")
}

func TestResolveRemoteHTTPURI(t *testing.T) {
	folder := t.TempDir()
	r, confirm, dl, releases := newTestResolver(t.TempDir())

	paths, err := r.Resolve(context.Background(), "https://example.com/scaffold.tgz", folder)
	require.NoError(t, err)

	assert.True(t, paths.Downloaded)
	workDir := filepath.Join(folder, ".aidd", "scaffold")
	assert.Equal(t, filepath.Join(workDir, "SCAFFOLD-MANIFEST.yml"), paths.ManifestPath)
	assert.Equal(t, []string{"https://example.com/scaffold.tgz"}, dl.urls)
	assert.Equal(t, 0, releases.calls, "a direct https uri needs no release lookup")

	// The prompt embeds the literal source string.
	require.Len(t, confirm.prompts, 1)
	assert.Contains(t, confirm.prompts[0], "https://example.com/scaffold.tgz")

	// Extracted files stay on disk after resolution returns.
	_, err = os.Stat(paths.ManifestPath)
	require.NoError(t, err)
	_, err = os.Stat(paths.ReadmePath)
	require.NoError(t, err)
}

func TestResolveBareRepo(t *testing.T) {
	folder := t.TempDir()
	r, _, dl, releases := newTestResolver(t.TempDir())

	paths, err := r.Resolve(context.Background(), "https://github.com/acme/repo", folder)
	require.NoError(t, err)

	assert.True(t, paths.Downloaded)
	assert.Equal(t, 1, releases.calls)
	assert.Equal(t, []string{releases.url}, dl.urls, "download must use the resolved tarball URL")
}

func TestResolveBareRepoReleaseFailure(t *testing.T) {
	r, _, dl, releases := newTestResolver(t.TempDir())
	releases.err = errors.New(errors.ErrRateLimited, "rate limited")

	_, err := r.Resolve(context.Background(), "https://github.com/acme/repo", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRateLimited))
	assert.Empty(t, dl.urls)
}

func TestResolveClearsPreviousDownload(t *testing.T) {
	folder := t.TempDir()
	workDir := filepath.Join(folder, ".aidd", "scaffold")
	require.NoError(t, os.MkdirAll(workDir, 0755))
	stale := filepath.Join(workDir, "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	r, _, _, _ := newTestResolver(t.TempDir())
	_, err := r.Resolve(context.Background(), "https://example.com/scaffold.tgz", folder)
	require.NoError(t, err)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "previous download contents must be cleared")
}

func TestResolveFileURI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SCAFFOLD-MANIFEST.yml"),
		[]byte(testutil.DefaultManifest), 0644))

	r, confirm, _, _ := newTestResolver(t.TempDir())

	paths, err := r.Resolve(context.Background(), "file://"+dir, t.TempDir())
	require.NoError(t, err)

	assert.False(t, paths.Downloaded)
	assert.Equal(t, filepath.Join(dir, "SCAFFOLD-MANIFEST.yml"), paths.ManifestPath)
	assert.Empty(t, confirm.prompts, "local sources need no trust gate")
}

func TestResolveMissingManifest(t *testing.T) {
	root := t.TempDir()
	testutil.CreateScaffold(t, root, "empty-scaffold", testutil.ScaffoldSpec{NoManifest: true})

	r, _, _, _ := newTestResolver(root)

	_, err := r.Resolve(context.Background(), "empty-scaffold", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestMissing))
	assert.Contains(t, err.Error(), "SCAFFOLD-MANIFEST.yml")
	assert.Contains(t, err.Error(), "empty-scaffold")
}

func TestResolveTraversalTouchesNothing(t *testing.T) {
	root := t.TempDir()
	folder := t.TempDir()
	r, _, dl, _ := newTestResolver(root)

	_, err := r.Resolve(context.Background(), "../../etc", folder)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathTraversal))
	assert.Empty(t, dl.urls)

	entries, err := os.ReadDir(folder)
	require.NoError(t, err)
	assert.Empty(t, entries, "a rejected name must not touch the target folder")
}

func TestEffectiveTypePrecedence(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"explicit", "from-env", "from-config", "next-shadcn"} {
		testutil.CreateScaffold(t, root, name, testutil.ScaffoldSpec{})
	}

	r, _, _, _ := newTestResolver(root)
	r.Settings.TypeOverride = "from-env"
	r.ConfigType = func() string { return "from-config" }

	resolveTo := func(typ string) string {
		t.Helper()
		paths, err := r.Resolve(context.Background(), typ, t.TempDir())
		require.NoError(t, err)
		return filepath.Base(filepath.Dir(paths.ManifestPath))
	}

	assert.Equal(t, "explicit", resolveTo("explicit"))
	assert.Equal(t, "from-env", resolveTo(""))

	r.Settings.TypeOverride = ""
	assert.Equal(t, "from-config", resolveTo(""))

	r.ConfigType = func() string { return "" }
	assert.Equal(t, "next-shadcn", resolveTo(""))
}
