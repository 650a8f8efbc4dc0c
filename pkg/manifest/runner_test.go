package manifest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/aidd/pkg/errors"
)

func TestRunnerExecutesInOrder(t *testing.T) {
	folder := t.TempDir()
	m := &Manifest{Steps: []Step{
		{Name: "first", Run: "echo one >> order.txt"},
		{Name: "second", Run: "echo two >> order.txt"},
	}}

	r := &Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	require.NoError(t, r.Run(context.Background(), m, folder))

	data, err := os.ReadFile(filepath.Join(folder, "order.txt"))
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestRunnerRunsInTargetFolder(t *testing.T) {
	folder := t.TempDir()
	m := &Manifest{Steps: []Step{
		{Name: "mark", Run: "touch marker"},
	}}

	r := &Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	require.NoError(t, r.Run(context.Background(), m, folder))

	_, err := os.Stat(filepath.Join(folder, "marker"))
	require.NoError(t, err, "steps must execute with the target folder as working directory")
}

func TestRunnerExtensionStep(t *testing.T) {
	// A stub node ahead on PATH records how it was invoked, so the test
	// does not depend on a real node installation.
	binDir := t.TempDir()
	stub := "#!/bin/sh\necho \"$1 $2\" > invoked.txt\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "node"), []byte(stub), 0755))
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	folder := t.TempDir()
	m := &Manifest{Steps: []Step{
		{Name: "apply template", Extension: "applyTemplate"},
	}}

	r := &Runner{
		ExtensionJSPath: "/scaffold/bin/extension.js",
		Stdout:          &bytes.Buffer{},
		Stderr:          &bytes.Buffer{},
	}
	require.NoError(t, r.Run(context.Background(), m, folder))

	data, err := os.ReadFile(filepath.Join(folder, "invoked.txt"))
	require.NoError(t, err, "extension steps run in the target folder")
	assert.Equal(t, "/scaffold/bin/extension.js applyTemplate\n", string(data))
}

func TestRunnerFailFast(t *testing.T) {
	folder := t.TempDir()
	m := &Manifest{Steps: []Step{
		{Name: "boom", Run: "exit 3"},
		{Name: "never", Run: "touch should-not-exist"},
	}}

	r := &Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), m, folder)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStepExecute))
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), folder, "partial population is surfaced to the user")

	_, statErr := os.Stat(filepath.Join(folder, "should-not-exist"))
	assert.True(t, os.IsNotExist(statErr), "steps after a fatal failure must not run")
}

func TestRunnerContinueOnError(t *testing.T) {
	folder := t.TempDir()
	m := &Manifest{Steps: []Step{
		{Name: "soft failure", Run: "exit 1", ContinueOnError: true},
		{Name: "still runs", Run: "touch survived"},
	}}

	r := &Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	require.NoError(t, r.Run(context.Background(), m, folder))

	_, err := os.Stat(filepath.Join(folder, "survived"))
	require.NoError(t, err)
}

func TestRunnerEmptyStep(t *testing.T) {
	m := &Manifest{Steps: []Step{{Name: "empty"}}}

	r := &Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), m, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither a command nor an extension")
}

func TestRunnerNoSteps(t *testing.T) {
	r := &Runner{}
	require.NoError(t, r.Run(context.Background(), &Manifest{}, t.TempDir()))
}
