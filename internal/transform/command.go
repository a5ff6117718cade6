package transform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"unicode"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/jacoelho/jt/internal/spec"
	"github.com/jacoelho/jt/internal/value"
)

// runCommand resolves a COMMAND input: the source line is split with
// shell quoting rules, the input's args are appended, and the child
// receives the JSON-serialized context on stdin unless disabled. A
// non-zero exit status is a hard failure. Stdout is parsed as JSON
// when possible, otherwise used as a string with trailing whitespace
// trimmed; command output is never re-evaluated as a template.
func (t *Transformer) runCommand(input *spec.Input, command string, ctx any) (any, error) {
	argv, err := shellwords.Parse(command)
	if err != nil || len(argv) == 0 {
		return nil, fmt.Errorf("failed to parse command for input '%s'", input.Name)
	}
	argv = append(argv, input.Args...)

	if err := t.limiter.Wait(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to run command for input '%s': %w", input.Name, err)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), "JT_RUN_ID="+t.runID)
	cmd.Stderr = t.stderr
	stdinBytes := 0
	if input.Stdin {
		payload, err := value.EncodeCompact(ctx)
		if err != nil {
			return nil, fmt.Errorf("couldn't write to command stdin for input '%s'", input.Name)
		}
		cmd.Stdin = bytes.NewReader(payload)
		stdinBytes = len(payload)
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	t.logger.Debug("running command", "input", input.Name, "argv", strings.Join(argv, " "), "stdin_bytes", stdinBytes)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to execute command for input '%s': %w", input.Name, exitErr)
		}
		return nil, fmt.Errorf("failed to run command for input '%s': %w", input.Name, err)
	}
	t.logger.Debug("command completed", "input", input.Name, "stdout_bytes", stdout.Len())

	if parsed, err := value.ParseJSON(stdout.Bytes()); err == nil {
		return parsed, nil
	}
	return strings.TrimRightFunc(stdout.String(), unicode.IsSpace), nil
}
