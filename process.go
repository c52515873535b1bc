package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// exitCodeError carries a child's exit code up to main.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var errOutput io.Writer = os.Stderr

func shellCommand(ctx context.Context, line string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", line)
	}
	return exec.CommandContext(ctx, "sh", "-c", line)
}

// startProcess runs line through the shell in dir and prints its stdout line
// by line. A failed read of the output ends with exit code 1 once the child
// has exited; otherwise a non-zero exit of the child is returned as its code.
func startProcess(ctx context.Context, line, dir string) error {
	messageLog("Running command: " + line)

	cmd := shellCommand(ctx, line)
	cmd.Dir = filepath.Clean(dir)
	cmd.Env = os.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stderr = errOutput

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdoutPipe: %w", err)
	}

	err = cmd.Start()
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	if err := streamLines(stdout); err != nil {
		errorLog(err)
		// keep the pipe drained so the child is not blocked on a full pipe
		_, _ = io.Copy(io.Discard, stdout)
		_ = cmd.Wait()
		return exitCodeError{code: 1}
	}

	err = cmd.Wait()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code <= 0 {
				// killed by a signal
				code = 1
			}
			return exitCodeError{code: code}
		}
		return fmt.Errorf("wait: %w", err)
	}

	return nil
}

// streamLines prints every line read from r. Lines have no length limit.
func streamLines(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			messageLog(strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
