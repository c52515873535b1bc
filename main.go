package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/shu-go/findcfg"
	"github.com/shu-go/gli/v2"
)

// Version is app version
var Version string

const (
	appName        = "weasel"
	configDirName  = ".weasel"
	configFileName = "config.json"
)

type globalCmd struct {
	Add    addCmd    `cli:"add,a" help:"add new command"`
	Edit   editCmd   `cli:"edit,e" help:"edit command"`
	Delete deleteCmd `cli:"delete,d" help:"delete command"`
	List   listCmd   `cli:"list,ls,l" help:"list commands and their subcommands"`
}

func (c globalCmd) Run(args []string) error {
	if len(args) == 0 {
		return listCommands(openStore().Config())
	}
	return fmt.Errorf("Command %s not found", args[0])
}

// configPath returns $WEASEL_CONFIG, an existing weasel.json (or .yaml)
// beside the executable or in the user config dir, or ~/.weasel/config.json.
func configPath() string {
	if path := os.Getenv("WEASEL_CONFIG"); path != "" {
		return path
	}

	finder := findcfg.New(
		findcfg.Name(appName),
		findcfg.JSON(),
		findcfg.YAML(),
		findcfg.ExecutableDir(),
		findcfg.UserConfigDir(appName),
	)
	if found := finder.Find(); found != nil {
		return found.Path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(configDirName, configFileName)
	}
	return filepath.Join(home, configDirName, configFileName)
}

func openStore() *Store {
	return NewStore(configPath())
}

// run dispatches to a stored project when the first argument names one, and
// to the built-in commands otherwise. args does not include the program name.
func run(ctx context.Context, args []string) error {
	config := openStore().Config()

	if len(args) > 0 && !in(args[0], reservedNames...) && args[0] != "version" && !strings.HasPrefix(args[0], "-") {
		project, found := config.Command(args[0])
		if !found {
			return fmt.Errorf("Command %s not found", args[0])
		}
		return runProject(ctx, project, args)
	}

	app := gli.NewWith(&globalCmd{})
	app.Name = appName
	app.Desc = "Weasel CLI was created for managing custom commands for your projects."
	app.Version = Version
	app.Usage = usage(config)
	app.DoubleHyphen = false
	app.SuppressErrorOutput = true
	return app.Run(hoistFlags(args, "-y", "--yes", "-h", "--help"))
}

// hoistFlags moves the options given after positional arguments in front of
// them, keeping the leading subcommand name first. The parser stops reading
// options at the first positional argument. Each option not listed in
// boolFlags and not written as --name=value takes the following word as its
// value. The result never aliases args.
func hoistFlags(args []string, boolFlags ...string) []string {
	hoisted := make([]string, 0, len(args))
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		hoisted = append(hoisted, args[0])
		args = args[1:]
	}

	var positionals []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(a) < 2 || !strings.HasPrefix(a, "-") {
			positionals = append(positionals, a)
			continue
		}

		hoisted = append(hoisted, a)
		if !strings.Contains(a, "=") && !slices.Contains(boolFlags, a) && i+1 < len(args) {
			i++
			hoisted = append(hoisted, args[i])
		}
	}

	return append(hoisted, positionals...)
}

func usage(config Config) string {
	u := `# add a command for a project directory
  {appname} add api ~/src/api -d "API server"
# add a subcommand to it
  {appname} api addsub start --command npm --argument start
# run the subcommand in ~/src/api
  {appname} api start
# pick a subcommand interactively
  {appname} api
# remove a subcommand, then the command
  {appname} api deletesub start
  {appname} delete api

----

config:
    $WEASEL_CONFIG, or {appname}.json / {appname}.yaml beside the executable
    or in the user config directory, or ~/{configdir}/{configfile}
`
	u = strings.ReplaceAll(u, "{appname}", appName)
	u = strings.ReplaceAll(u, "{configdir}", configDirName)
	u = strings.ReplaceAll(u, "{configfile}", configFileName)

	if len(config.Commands) > 0 {
		var b strings.Builder
		b.WriteString(u)
		b.WriteString("\nstored commands:\n")
		for _, cmd := range config.Commands {
			fmt.Fprintf(&b, "  %s\t%s\n", cmd.Name, cmd.Description)
		}
		u = b.String()
	}

	return u
}

func in(s string, choices ...string) bool {
	return slices.ContainsFunc(choices, func(c string) bool {
		return strings.EqualFold(s, c)
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		var exitErr exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		showMessage(Message{Error: err.Error()}, MessageOptions{Exit: true})
	}
}
