package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Check(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "queries"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "queries", "ok.sql"), []byte("SELECT {id}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "queries", "bad.sql"), []byte("SELECT {id"), 0o644))

	var out, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"check", "--dir", dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 template(s) failed")
	assert.Equal(t, "queries/bad.sql:1:8: unpaired delimiter: '{'\n", out.String())
	assert.Contains(t, stderr.String(), "checked templates")
}

func TestRootCommand_InspectQuery(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"inspect", "--dir", t.TempDir(), "--format", "yaml", "--query", "SELECT {ids+}"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ident: ids")
	assert.Regexp(t, `quantifier: "?\+"?`, out.String())
}
