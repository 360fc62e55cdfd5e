package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"port", "watch"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewLayoutCommand(t *testing.T) {
	cmd := NewLayoutCommand()

	assert.Equal(t, "layout", cmd.Use)
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"schema", "strategy", "direction", "expand"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewPathsCommand(t *testing.T) {
	cmd := NewPathsCommand()

	assert.Equal(t, "paths <node> <node> [node...]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("max-depth"))
	assert.NotNil(t, cmd.Args, "paths requires at least two node arguments")
}

func TestNewLineageCommand(t *testing.T) {
	cmd := NewLineageCommand()

	assert.Equal(t, "lineage <node>", cmd.Use)
	for _, flag := range []string{"schema", "upstream", "downstream"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewCyclesCommand(t *testing.T) {
	cmd := NewCyclesCommand()

	assert.Equal(t, "cycles", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewStatsCommand(t *testing.T) {
	cmd := NewStatsCommand()

	assert.Equal(t, "stats", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("hubs"))
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "datavisual v1.2.3")
}
