package bindgen

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/rsbind/errors"
)

// CommandFormatter pipes source through an external command (stdin to stdout)
type CommandFormatter struct {
	Args    []string
	Timeout time.Duration
}

// NewCommandFormatter splits a shell-quoted command line such as
// "rustfmt --edition 2021"
func NewCommandFormatter(command string, timeout time.Duration) (*CommandFormatter, error) {
	args, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid format command %q", command)
	}
	if len(args) == 0 {
		return nil, errors.New("format command is empty")
	}
	return &CommandFormatter{Args: args, Timeout: timeout}, nil
}

// String returns the command line, re-quoted
func (f *CommandFormatter) String() string {
	return shellquote.Join(f.Args...)
}

// Format runs the command. Failures are marked ErrFormat.
func (f *CommandFormatter) Format(ctx context.Context, fileName string, src []byte) ([]byte, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, f.Args[0], f.Args[1:]...)
	cmd.Stdin = bytes.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		wrapped := errors.Mark(
			errors.Wrapf(err, "%s failed on %s", f.Args[0], fileName),
			errors.ErrFormat,
		)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			wrapped = errors.WithDetail(wrapped, msg)
		}
		if errors.Is(err, exec.ErrNotFound) {
			wrapped = errors.WithHint(wrapped, "install the formatter or set format.enabled = false")
		}
		return nil, wrapped
	}
	return stdout.Bytes(), nil
}
