package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shu-go/clise"
	"github.com/shu-go/gli/v2"
)

type projectCmd struct {
	AddSub    addSubCmd    `cli:"addsub,as" help:"add new subcommand"`
	DeleteSub deleteSubCmd `cli:"deletesub,ds" help:"delete subcommand"`
}

type addSubCmd struct {
	Project     string `cli:"project" help:"command the subcommand belongs to"`
	Description string `cli:"description,d" help:"subcommand description"`
	Argument    string `cli:"argument,a" help:"subcommand argument"`
	Options     string `cli:"options,o" help:"subcommand options, separated by spaces"`
	Command     string `cli:"command,c" help:"command to run, commas become spaces"`
}

func (c addSubCmd) Run(args []string) error {
	s := openStore()
	project, err := projectNamed(s, c.Project)
	if err != nil {
		return err
	}
	return report(addSubCommand(s, prompter, project, argAt(args, 0), c.Description, c.Argument, c.Options, c.Command))
}

type deleteSubCmd struct {
	Project string `cli:"project" help:"command the subcommand belongs to"`
}

func (c deleteSubCmd) Run(args []string) error {
	s := openStore()
	project, err := projectNamed(s, c.Project)
	if err != nil {
		return err
	}
	return report(deleteSubCommand(s, prompter, project, argAt(args, 0)))
}

func projectNamed(s *Store, name string) (CustomCommand, error) {
	project, found := s.Config().Command(name)
	if !found {
		return CustomCommand{}, fmt.Errorf("Command %s not found", name)
	}
	return project, nil
}

// runProject handles `weasel <project> ...`. args[0] is the project name.
func runProject(ctx context.Context, project CustomCommand, args []string) error {
	rest := args[1:]

	if len(rest) == 0 {
		name, err := selectSubCommand(prompter, project)
		if err != nil {
			return err
		}
		return runSubCommand(ctx, project, name, nil)
	}

	if in(rest[0], reservedSubNames...) || strings.HasPrefix(rest[0], "-") {
		return runProjectApp(project, rest)
	}

	return runSubCommand(ctx, project, rest[0], rest[1:])
}

// runProjectApp parses the management subcommands of project.
func runProjectApp(project CustomCommand, args []string) error {
	app := gli.NewWith(&projectCmd{})
	app.Name = appName + " " + project.Name
	app.Desc = project.Description
	app.Version = Version

	var usage strings.Builder
	usage.WriteString("# run a subcommand in " + project.Path + "\n")
	for _, sub := range project.SubCommands {
		fmt.Fprintf(&usage, "  %s %s %s\t%s\n", appName, project.Name, sub.Name, sub.Description)
	}
	app.Usage = usage.String()

	app.DoubleHyphen = false
	app.SuppressErrorOutput = true

	args = hoistFlags(args, "-h", "--help")
	if len(args) > 0 && in(args[0], "addsub", "as", "deletesub", "ds") {
		args = slices.Insert(args, 1, "--project", project.Name)
	}
	return app.Run(args)
}

// addSubCommand stores a new subcommand for project. Missing values are
// prompted for.
func addSubCommand(s *Store, p Prompter, project CustomCommand, name, description, argument, options, command string) (string, error) {
	validateName := func(value string) error {
		if strings.Contains(value, " ") {
			return errors.New("Command name cannot contain spaces")
		}
		if _, found := project.SubCommand(value); found || in(value, reservedSubNames...) {
			return fmt.Errorf("Command name %s already exists. Please choose a different name.", value)
		}
		return nil
	}

	var err error
	if name != "" {
		err = validateName(name)
	} else {
		name, err = p.Input(InputPrompt{
			Title:    "Enter the subcommand name",
			Required: true,
			Validate: validateName,
		})
	}
	if err != nil {
		return "", err
	}

	if command != "" {
		command = strings.ReplaceAll(command, ",", " ")
	} else {
		command, err = p.Input(InputPrompt{
			Title:    "Enter the command for example sh, pnpm or bash etc.:",
			Required: true,
			Validate: func(value string) error {
				if strings.Contains(value, " ") {
					return errors.New("Command cannot contain spaces")
				}
				if in(value, reservedNames...) {
					return fmt.Errorf("Command name %s already exists. Please choose a different name.", value)
				}
				return nil
			},
		})
		if err != nil {
			return "", err
		}
	}

	if options == "" {
		options, err = p.Input(InputPrompt{Title: "Enter the command options. Leave empty for no options"})
		if err != nil {
			return "", err
		}
	}

	if argument == "" {
		argument, err = p.Input(InputPrompt{Title: "Enter argument for the command, Leave empty for no argument"})
		if err != nil {
			return "", err
		}
	}

	if description == "" {
		description, err = p.Input(InputPrompt{Title: "Enter the command description. Leave empty for no description:"})
		if err != nil {
			return "", err
		}
	}

	sub := CustomSubCommand{
		Name:        name,
		Description: description,
		Argument:    argument,
		Options:     splitOptions(options),
		Command:     command,
	}
	if _, err := s.SaveSubCommand(project.Name, sub); err != nil {
		return "", err
	}

	return fmt.Sprintf("New subcommand %s successfully saved for command %s", name, project.Name), nil
}

// deleteSubCommand removes a subcommand from project.
func deleteSubCommand(s *Store, p Prompter, project CustomCommand, name string) (string, error) {
	if len(project.SubCommands) == 0 {
		return "", errors.New("No commands found")
	}

	var err error
	if name == "" {
		name, err = p.Select("Enter the command name", project.SubCommandNames())
		if err != nil {
			return "", err
		}
	}

	config := s.Config()
	i := config.CommandIndex(project.Name)
	if i < 0 {
		return "", fmt.Errorf("Project %s not found", project.Name)
	}

	err = config.Commands[i].RemoveSubCommand(name)
	if err != nil {
		return "", fmt.Errorf("Command %s not found", name)
	}

	if _, err := s.Save("commands", config.Commands, "name"); err != nil {
		return "", err
	}

	return fmt.Sprintf("Command %s removed from project %s", name, project.Name), nil
}

func selectSubCommand(p Prompter, project CustomCommand) (string, error) {
	if len(project.SubCommands) == 0 {
		return "", errors.New("No commands found")
	}
	return p.Select("Select a command to start", project.SubCommandNames())
}

// runSubCommand runs the named subcommand in the project's path.
func runSubCommand(ctx context.Context, project CustomCommand, name string, extra []string) error {
	sub, found := project.SubCommand(name)
	if !found {
		return fmt.Errorf("Command %s not found", name)
	}

	return startProcess(ctx, sub.CommandLine(extra), project.Path)
}

func splitOptions(options string) []string {
	tokens := strings.Split(options, " ")
	clise.Filter(&tokens, func(i int) bool {
		return strings.TrimSpace(tokens[i]) != ""
	})
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
