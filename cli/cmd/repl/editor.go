package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/tagl/markup"
)

const defaultEditor = "vi"

// ErrEditDeclined is returned when the user declines to fix a template that
// does not parse.
var ErrEditDeclined = errors.New("edit declined")

// editCommand implements [tea.ExecCommand]. It opens the user's $EDITOR on a
// scratch template, checks that the result parses, and offers to re-edit
// when it does not. The accepted text is left in source.
type editCommand struct {
	ctx    context.Context
	source string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. Clearing the file cancels the
// edit and leaves source empty. Declining to re-edit returns
// [ErrEditDeclined].
func (c *editCommand) Run() error {
	f, err := os.CreateTemp("", "tagl-repl-*.html")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(c.source); err != nil {
		f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	for {
		if err := runEditor(c.ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		c.source = strings.TrimSpace(string(data))
		if c.source == "" {
			return nil
		}

		_, err = markup.ParseString(c.source)
		if err == nil {
			return nil
		}

		fmt.Fprintf(c.stderr, "\nParse error: %s\n", err)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor launches $EDITOR (or vi) on path and waits for it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
