package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDBCmd_Flags(t *testing.T) {
	cmd := newCreateDBCmd()

	name, err := cmd.Flags().GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "geogate", name)

	adminURL, err := cmd.Flags().GetString("admin-url")
	require.NoError(t, err)
	assert.Contains(t, adminURL, "/postgres?sslmode=disable")
}

func TestCreateDBCmd_RejectsInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "positional args", args: []string{"extra"}},
		{name: "empty name", args: []string{"--name", ""}},
		{name: "unknown flag", args: []string{"--database", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newCreateDBCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			assert.Error(t, cmd.Execute())
		})
	}
}
