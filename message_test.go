package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// captureOutput redirects console messages into a buffer, without colours.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prevOutput, prevNoColor := output, color.NoColor
	output = &buf
	color.NoColor = true
	t.Cleanup(func() {
		output = prevOutput
		color.NoColor = prevNoColor
	})

	return &buf
}

func TestLogs(t *testing.T) {
	cases := []struct {
		log  func(...any)
		msg  string
		want string
	}{
		{successLog, "Success!", "✔ Success!\n"},
		{errorLog, "Error!", "✖ Error!\n"},
		{infoLog, "Info!", "ℹ Info!\n"},
		{warningLog, "Warning!", "⚠ Warning!\n"},
		{debugLog, "Debug!", "➤ Debug!\n"},
		{messageLog, "Message!", "Message!\n"},
	}

	for _, c := range cases {
		buf := captureOutput(t)
		c.log(c.msg)
		assert.Equal(t, c.want, buf.String())
	}
}

func TestIconLog(t *testing.T) {
	buf := captureOutput(t)

	iconLog("🍺", "Icon!", "|", "more")
	assert.Equal(t, "🍺 Icon! | more\n", buf.String())
}

func TestBreakLineLog(t *testing.T) {
	buf := captureOutput(t)

	breakLineLog()
	assert.Equal(t, breakLine+"\n", buf.String())
}

func TestShowMessage(t *testing.T) {
	var exitCodes []int
	prevExit := exit
	exit = func(code int) { exitCodes = append(exitCodes, code) }
	t.Cleanup(func() { exit = prevExit })

	t.Run("error exits", func(t *testing.T) {
		exitCodes = nil
		buf := captureOutput(t)

		showMessage(Message{Error: "Error!", Success: "not shown"}, MessageOptions{Exit: true, ExitCode: 2})
		assert.Equal(t, "✖ Error!\n", buf.String())
		assert.Equal(t, []int{2}, exitCodes)
	})

	t.Run("default exit code", func(t *testing.T) {
		exitCodes = nil
		captureOutput(t)

		showMessage(Message{Error: "Error!"}, MessageOptions{Exit: true})
		assert.Equal(t, []int{1}, exitCodes)
	})

	t.Run("all fields in order", func(t *testing.T) {
		exitCodes = nil
		buf := captureOutput(t)

		showMessage(Message{
			Error:     "Error!",
			Success:   "Success!",
			Info:      "Info!",
			Warning:   "Warning!",
			Debug:     "Debug!",
			Message:   "Message!",
			BreakLine: true,
		}, MessageOptions{})

		assert.Equal(t, "✖ Error!\n✔ Success!\nℹ Info!\n⚠ Warning!\n➤ Debug!\nMessage!\n"+breakLine+"\n", buf.String())
		assert.Empty(t, exitCodes)
	})

	t.Run("empty", func(t *testing.T) {
		buf := captureOutput(t)

		showMessage(Message{}, MessageOptions{Exit: true})
		assert.Empty(t, buf.String())
	})
}
