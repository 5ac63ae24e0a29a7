//go:build unit

package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandPresence(t *testing.T) {
	cmd := newRootCommand()
	paths := [][]string{
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "version"},
		{"stock", "show"},
		{"stock", "set"},
		{"dead-letters", "list"},
		{"dead-letters", "requeue"},
		{"dlq", "list"},
		{"expire", "sweep"},
		{"token"},
	}

	for _, path := range paths {
		t.Run(path[len(path)-1], func(t *testing.T) {
			sub, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], sub.Name())
		})
	}
}

func TestFlags(t *testing.T) {
	cmd := newRootCommand()

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	down, _, err := cmd.Find([]string{"migrate", "down"})
	require.NoError(t, err)
	assert.Equal(t, "1", down.Flags().Lookup("steps").DefValue)

	list, _, err := cmd.Find([]string{"dead-letters", "list"})
	require.NoError(t, err)
	assert.Equal(t, "50", list.Flags().Lookup("limit").DefValue)
}

func TestInvalidInvocations(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"--format", "yaml", "stock", "show"}},
		{name: "stock id not a uuid", args: []string{"stock", "set", "widget", "3"}},
		{name: "negative stock", args: []string{"stock", "set", "0195c3a0-0000-7000-8000-000000000001", "--", "-1"}},
		{name: "requeue id not a uuid", args: []string{"dead-letters", "requeue", "abc"}},
		{name: "zero list limit", args: []string{"dead-letters", "list", "--limit", "0"}},
		{name: "token subject not a uuid", args: []string{"token", "--subject", "ada"}},
		{name: "unknown flag", args: []string{"expire", "sweep", "--dry-run"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newRootCommand()
			cmd.SetArgs(tc.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			err := cmd.Execute()
			require.Error(t, err)
			assert.Equal(t, exitCommandError, exitCode(err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitFailure, exitCode(errors.New("boom")))
	assert.Equal(t, exitCommandError, exitCode(usageError{errors.New("bad flag")}))
}
