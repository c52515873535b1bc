package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var messageIcons = struct {
	Success, Error, Info, Warning, Debug, Arrow string
}{
	Success: "✔",
	Error:   "✖",
	Info:    "ℹ",
	Warning: "⚠",
	Debug:   "➤",
	Arrow:   "➜",
}

const breakLine = "\n──────────────────────────────────────────────\n"

// output receives every console message; exit ends the process.
// Both are replaced in tests.
var (
	output io.Writer = color.Output
	exit             = os.Exit
)

// Message is the result of an operation as shown to the user.
// Empty fields are not printed.
type Message struct {
	Error     string
	Success   string
	Info      string
	Warning   string
	Debug     string
	Message   string
	BreakLine bool
}

type MessageOptions struct {
	Exit     bool
	ExitCode int // 1 when zero
}

func successLog(a ...any) {
	iconLog(color.GreenString(messageIcons.Success), a...)
}

func errorLog(a ...any) {
	iconLog(color.RedString(messageIcons.Error), a...)
}

func infoLog(a ...any) {
	iconLog(color.BlueString(messageIcons.Info), a...)
}

func warningLog(a ...any) {
	iconLog(color.YellowString(messageIcons.Warning), a...)
}

func debugLog(a ...any) {
	iconLog(color.HiBlackString(messageIcons.Debug), a...)
}

func messageLog(a ...any) {
	fmt.Fprintln(output, a...)
}

func iconLog(icon string, a ...any) {
	fmt.Fprintln(output, append([]any{icon}, a...)...)
}

func breakLineLog() {
	fmt.Fprintln(output, color.HiBlackString(breakLine))
}

// showMessage prints the populated fields of m.
// With opts.Exit set, an error ends the process right after it is printed.
func showMessage(m Message, opts MessageOptions) {
	if m.Error != "" {
		errorLog(m.Error)
		if opts.Exit {
			code := opts.ExitCode
			if code == 0 {
				code = 1
			}
			exit(code)
			return
		}
	}
	if m.Success != "" {
		successLog(m.Success)
	}
	if m.Info != "" {
		infoLog(m.Info)
	}
	if m.Warning != "" {
		warningLog(m.Warning)
	}
	if m.Debug != "" {
		debugLog(m.Debug)
	}
	if m.Message != "" {
		messageLog(m.Message)
	}
	if m.BreakLine {
		breakLineLog()
	}
}
