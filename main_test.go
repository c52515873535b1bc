package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	const greeter = `{"commands": [{"name": "api", "path": "{dir}", "subcommands": [{"name": "greet", "command": "echo", "argument": "hello"}]}]}`

	cases := []struct {
		name    string
		config  string
		args    []string
		sh      bool
		wantErr string
		check   func(t *testing.T, s *Store, dir, out string)
	}{
		{
			name: "add with options after arguments",
			args: []string{"add", "api", "{dir}", "-d", "API server"},
			check: func(t *testing.T, s *Store, dir, out string) {
				assert.Equal(t, []CustomCommand{{Name: "api", Path: dir, Description: "API server"}}, s.Config().Commands)
				assert.Equal(t, "✔ New config saved to commands\n", out)
			},
		},
		{
			name: "add with options first",
			args: []string{"a", "--description", "API server", "api", "{dir}"},
			check: func(t *testing.T, s *Store, dir, out string) {
				assert.Equal(t, []CustomCommand{{Name: "api", Path: dir, Description: "API server"}}, s.Config().Commands)
			},
		},
		{
			name:   "edit",
			config: projects,
			args:   []string{"edit", "project1", "-p", "{dir}", "-d", "moved"},
			check: func(t *testing.T, s *Store, dir, out string) {
				cmd, _ := s.Config().Command("project1")
				assert.Equal(t, dir, cmd.Path)
				assert.Equal(t, "moved", cmd.Description)
				assert.Equal(t, []string{"start", "stop"}, cmd.SubCommandNames())
			},
		},
		{
			name:   "delete without confirmation",
			config: projects,
			args:   []string{"delete", "project2", "--yes"},
			check: func(t *testing.T, s *Store, dir, out string) {
				assert.Equal(t, []string{"project1"}, s.Config().CommandNames())
				assert.Equal(t, "✔ Command project2 deleted from commands\n", out)
			},
		},
		{
			name:   "delete with short option first",
			config: projects,
			args:   []string{"d", "-y", "project1"},
			check: func(t *testing.T, s *Store, dir, out string) {
				assert.Equal(t, []string{"project2"}, s.Config().CommandNames())
			},
		},
		{
			name:   "list",
			config: projects,
			args:   nil,
			check: func(t *testing.T, s *Store, dir, out string) {
				assert.Equal(t, "➜ project1 | Commands: start, stop\n➜ project2 | Commands: \n", out)
			},
		},
		{
			name:   "project addsub",
			config: projects,
			args:   []string{"project2", "addsub", "start", "-c", "echo", "-o", "-n", "-a", "hello", "-d", "say hi"},
			check: func(t *testing.T, s *Store, dir, out string) {
				cmd, _ := s.Config().Command("project2")
				sub, found := cmd.SubCommand("start")
				require.True(t, found)
				assert.Equal(t, CustomSubCommand{
					Name:        "start",
					Description: "say hi",
					Argument:    "hello",
					Options:     []string{"-n"},
					Command:     "echo",
				}, sub)
				assert.Equal(t, "✔ New subcommand start successfully saved for command project2\n", out)
			},
		},
		{
			name:   "project deletesub alias",
			config: projects,
			args:   []string{"project1", "ds", "start"},
			check: func(t *testing.T, s *Store, dir, out string) {
				cmd, _ := s.Config().Command("project1")
				assert.Equal(t, []string{"stop"}, cmd.SubCommandNames())
				assert.Equal(t, []string{"project1", "project2"}, s.Config().CommandNames())
			},
		},
		{
			name:   "project subcommand with extra arguments",
			config: greeter,
			args:   []string{"api", "greet", "again"},
			sh:     true,
			check: func(t *testing.T, s *Store, dir, out string) {
				assert.Equal(t, "Running command: echo hello again\nhello again\n", out)
			},
		},
		{
			name:    "unknown command",
			config:  projects,
			args:    []string{"nope"},
			wantErr: "Command nope not found",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.sh && runtime.GOOS == "windows" {
				t.Skip("uses sh")
			}

			dir := t.TempDir()
			expand := func(s string) string {
				return strings.ReplaceAll(s, "{dir}", dir)
			}

			path := filepath.Join(t.TempDir(), configFileName)
			if c.config != "" {
				require.NoError(t, os.WriteFile(path, []byte(expand(c.config)), 0o644))
			}
			t.Setenv("WEASEL_CONFIG", path)

			prev := prompter
			prompter = &scriptedPrompter{}
			t.Cleanup(func() { prompter = prev })

			buf := captureOutput(t)

			var args []string
			for _, a := range c.args {
				args = append(args, expand(a))
			}

			err := run(context.Background(), args)
			if c.wantErr != "" {
				assert.EqualError(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)

			c.check(t, NewStore(path), dir, buf.String())
		})
	}
}

func TestHoistFlags(t *testing.T) {
	cases := []struct {
		args []string
		want []string
	}{
		{
			[]string{"add", "api", "/srv", "-d", "API server"},
			[]string{"add", "-d", "API server", "api", "/srv"},
		},
		{
			[]string{"delete", "api", "-y"},
			[]string{"delete", "-y", "api"},
		},
		{
			[]string{"addsub", "start", "-o", "-n", "--description=hi", "-c", "echo"},
			[]string{"addsub", "-o", "-n", "--description=hi", "-c", "echo", "start"},
		},
		{
			[]string{"--help"},
			[]string{"--help"},
		},
		{
			[]string{"add", "-", "-d"},
			[]string{"add", "-d", "-"},
		},
		{
			nil,
			[]string{},
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, hoistFlags(c.args, "-y", "--yes", "-h", "--help"), strings.Join(c.args, " "))
	}

	args := []string{"add", "api"}
	hoisted := hoistFlags(args)
	hoisted[0] = "edit"
	assert.Equal(t, "add", args[0])
}
