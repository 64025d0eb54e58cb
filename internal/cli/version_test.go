package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionText(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version", "--output", "text"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, Version, buf.String())
}

func TestVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version", "--output", "json"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), `"version": "dev"`)
	assert.Contains(t, buf.String(), `"platform"`)
}
