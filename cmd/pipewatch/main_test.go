package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pipewatch/internal/cli"
	"github.com/rshade/pipewatch/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.Full())
		require.NotNil(t, root)
		assert.Equal(t, "pipewatch", root.Use)
		assert.Equal(t, version.Full(), root.Version)
	})
}

func TestRun_Version(t *testing.T) {
	t.Setenv("PIPEWATCH_HOME", t.TempDir())
	t.Setenv("PIPEWATCH_LOG_LEVEL", "error")

	root := cli.NewRootCmd(version.Full())
	root.SetArgs([]string{"--version"})
	require.NoError(t, root.Execute())
}
