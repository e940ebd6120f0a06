package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "chainhealth version ")
	assert.Contains(t, out.String(), "commit:")
	assert.Contains(t, out.String(), "built:")
}

func TestBuildInfoOverrides(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() { version, commit, date = origVersion, origCommit, origDate })

	version, commit, date = "v1.2.3", "abc1234", "2026-01-02"
	assert.Equal(t, "v1.2.3", getVersion())
	assert.Equal(t, "abc1234", getCommit())
	assert.Equal(t, "2026-01-02", getDate())
}
