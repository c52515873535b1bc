package main

import (
	"errors"
	"slices"
	"strings"
)

// CustomCommand is a project: a working directory with named subcommands.
type CustomCommand struct {
	Name        string             `json:"name"`
	Path        string             `json:"path"`
	Description string             `json:"description,omitempty"`
	SubCommands []CustomSubCommand `json:"subcommands,omitempty"`
}

// CustomSubCommand is a shell command run in its project's path.
type CustomSubCommand struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Argument    string   `json:"argument,omitempty"`
	Options     []string `json:"options,omitempty"`
	Command     string   `json:"command"`
}

// Names handled by weasel itself. A stored command or subcommand with one of
// these names could never be reached.
var (
	reservedNames    = []string{"add", "a", "edit", "e", "delete", "d", "list", "ls", "l", "help"}
	reservedSubNames = []string{"addsub", "as", "deletesub", "ds", "help"}
)

// CommandIndex returns the index of the command named name, or -1.
func (c Config) CommandIndex(name string) int {
	return slices.IndexFunc(c.Commands, func(cmd CustomCommand) bool {
		return cmd.Name == name
	})
}

func (c Config) Command(name string) (CustomCommand, bool) {
	i := c.CommandIndex(name)
	if i < 0 {
		return CustomCommand{}, false
	}
	return c.Commands[i], true
}

func (c Config) CommandNames() []string {
	names := make([]string, 0, len(c.Commands))
	for _, cmd := range c.Commands {
		names = append(names, cmd.Name)
	}
	return names
}

func (c CustomCommand) SubCommandIndex(name string) int {
	return slices.IndexFunc(c.SubCommands, func(sub CustomSubCommand) bool {
		return sub.Name == name
	})
}

func (c CustomCommand) SubCommand(name string) (CustomSubCommand, bool) {
	i := c.SubCommandIndex(name)
	if i < 0 {
		return CustomSubCommand{}, false
	}
	return c.SubCommands[i], true
}

func (c CustomCommand) SubCommandNames() []string {
	names := make([]string, 0, len(c.SubCommands))
	for _, sub := range c.SubCommands {
		names = append(names, sub.Name)
	}
	return names
}

// SetSubCommand replaces the subcommand named like sub, or appends sub.
func (c *CustomCommand) SetSubCommand(sub CustomSubCommand) {
	if i := c.SubCommandIndex(sub.Name); i >= 0 {
		c.SubCommands[i] = sub
		return
	}
	c.SubCommands = append(c.SubCommands, sub)
}

// RemoveSubCommand removes the subcommand named name.
func (c *CustomCommand) RemoveSubCommand(name string) error {
	i := c.SubCommandIndex(name)
	if i < 0 {
		return errors.New("not found")
	}

	c.SubCommands = slices.Delete(c.SubCommands, i, i+1)
	if len(c.SubCommands) == 0 {
		c.SubCommands = nil
	}
	return nil
}

// CommandLine builds the shell line: command, options, argument, then extra
// arguments given on the weasel command line.
func (s CustomSubCommand) CommandLine(extra []string) string {
	parts := []string{s.Command}
	parts = append(parts, s.Options...)
	if s.Argument != "" {
		parts = append(parts, s.Argument)
	}
	parts = append(parts, extra...)

	return strings.Join(parts, " ")
}
