package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

var errDeletionCancelled = errors.New("Command deletion cancelled")

type addCmd struct {
	Description string `cli:"description,d" help:"command description"`
}

func (c addCmd) Run(args []string) error {
	return report(addCommand(openStore(), prompter, argAt(args, 0), argAt(args, 1), c.Description))
}

type editCmd struct {
	Description string `cli:"description,d" help:"new command description"`
	Path        string `cli:"path,p" help:"new command path"`
}

func (c editCmd) Run(args []string) error {
	return report(editCommand(openStore(), prompter, argAt(args, 0), c.Path, c.Description))
}

type deleteCmd struct {
	Yes bool `cli:"yes,y" help:"do not ask for confirmation"`
}

func (c deleteCmd) Run(args []string) error {
	msg, err := deleteCommand(openStore(), prompter, argAt(args, 0), c.Yes)
	if errors.Is(err, errDeletionCancelled) {
		showMessage(Message{Message: err.Error()}, MessageOptions{})
		return nil
	}
	return report(msg, err)
}

type listCmd struct{}

func (c listCmd) Run(args []string) error {
	return listCommands(openStore().Config())
}

// addCommand stores a new project command. Missing values are prompted for.
func addCommand(s *Store, p Prompter, name, path, description string) (string, error) {
	config := s.Config()

	validate := func(value string) error {
		return validateCommandName(config, value)
	}

	var err error
	if name != "" {
		err = validate(name)
	} else {
		name, err = p.Input(InputPrompt{
			Title:    "Enter the command name",
			Required: true,
			Validate: validate,
		})
	}
	if err != nil {
		return "", err
	}

	if path == "" {
		path, err = p.Input(InputPrompt{
			Title:    "Enter the path",
			Default:  "/",
			Required: true,
		})
		if err != nil {
			return "", err
		}
	}

	if description == "" {
		description, err = p.Input(InputPrompt{
			Title: "Enter the command description. Leave empty for no description:",
		})
		if err != nil {
			return "", err
		}
	}

	cmd := CustomCommand{
		Name:        name,
		Path:        absPath(path),
		Description: description,
	}
	return s.Save("commands", []CustomCommand{cmd}, "name")
}

// editCommand changes the path and description of a stored command.
// Its subcommands are kept.
func editCommand(s *Store, p Prompter, name, path, description string) (string, error) {
	config := s.Config()
	if len(config.Commands) == 0 {
		return "", errors.New("No commands found")
	}

	var err error
	if name == "" {
		name, err = p.Select("Enter command name which you want to edit:", config.CommandNames())
		if err != nil {
			return "", err
		}
	}

	cmd, found := config.Command(name)
	if !found {
		return "", fmt.Errorf("Command %s not found", name)
	}

	if path == "" {
		path, err = p.Input(InputPrompt{
			Title:    "Enter the path:",
			Default:  cmd.Path,
			Required: true,
		})
		if err != nil {
			return "", err
		}
	}

	if description == "" {
		description, err = p.Input(InputPrompt{
			Title:   "Enter the command description. Leave empty for no description:",
			Default: cmd.Description,
		})
		if err != nil {
			return "", err
		}
	}

	cmd.Path = absPath(path)
	cmd.Description = description
	return s.Save("commands", []CustomCommand{cmd}, "name")
}

// deleteCommand removes a stored command and all its subcommands.
func deleteCommand(s *Store, p Prompter, name string, yes bool) (string, error) {
	config := s.Config()
	if len(config.Commands) == 0 {
		return "", errors.New("No commands found")
	}

	var err error
	if name == "" {
		name, err = p.Select("Enter command name which you want to delete:", config.CommandNames())
		if err != nil {
			return "", err
		}
	}

	index := config.CommandIndex(name)
	if index < 0 {
		return "", fmt.Errorf("Command %s not found", name)
	}

	if !yes {
		warning := color.RedString("%s WARNING", messageIcons.Warning)
		ok, err := p.Confirm(fmt.Sprintf("%s\nAre you sure you want to delete command %s? This action cannot be undone", warning, name))
		if err != nil {
			return "", err
		}
		if !ok {
			return "", errDeletionCancelled
		}
	}

	return s.DeleteAt("commands", index, "name")
}

// listCommands prints every stored command with its subcommand names.
func listCommands(config Config) error {
	if len(config.Commands) == 0 {
		return errors.New("No commands found")
	}

	for _, cmd := range config.Commands {
		iconLog(
			color.GreenString(messageIcons.Arrow),
			cmd.Name,
			"|",
			color.BlueString("Commands:"),
			strings.Join(cmd.SubCommandNames(), ", "),
		)
	}
	return nil
}

func validateCommandName(config Config, name string) error {
	if strings.Contains(name, " ") {
		return errors.New("Command name cannot contain spaces")
	}
	if _, found := config.Command(name); found || in(name, reservedNames...) {
		return fmt.Errorf("Command name %s already exists. Please choose a different name.", name)
	}
	return nil
}

// absPath resolves path against the working directory so a command does not
// depend on where weasel is started from.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// report prints success, or hands err to main.
func report(success string, err error) error {
	if err != nil {
		return err
	}
	showMessage(Message{Success: success}, MessageOptions{})
	return nil
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
