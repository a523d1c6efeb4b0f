package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", filepath.Join(t.TempDir(), "ems.db"))
}

func run(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestMigrate_SQLite(t *testing.T) {
	useSQLite(t)

	cmd := migrateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, run(t, cmd))
	assert.Contains(t, out.String(), "up to date (sqlite)")
}

func TestCreateUser(t *testing.T) {
	useSQLite(t)

	cmd := createUserCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := run(t, cmd,
		"--username", "root",
		"--email", "root@example.com",
		"--password", "secret1",
		"--role", "manager",
	)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `Created user "root"`)
	assert.Contains(t, out.String(), "role=manager")

	again := createUserCmd()
	again.SetOut(&bytes.Buffer{})
	again.SetErr(&bytes.Buffer{})
	err = run(t, again,
		"--username", "root",
		"--email", "other@example.com",
		"--password", "secret1",
	)
	assert.Error(t, err)
}

func TestCreateUser_RejectsInvalidInput(t *testing.T) {
	useSQLite(t)

	tests := []struct {
		name string
		args []string
	}{
		{"short password", []string{"--username", "bob", "--email", "bob@example.com", "--password", "123"}},
		{"bad email", []string{"--username", "bob", "--email", "bob", "--password", "secret1"}},
		{"unknown role", []string{"--username", "bob", "--email", "bob@example.com", "--password", "secret1", "--role", "owner"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := createUserCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			assert.Error(t, run(t, cmd, tt.args...))
		})
	}
}
