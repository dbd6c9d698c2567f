// Package locator finds the Cargo.toml of the current project by asking cargo.
package locator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ralt/cargo-arch/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultCommand is the command that prints the project root as JSON
var DefaultCommand = []string{"cargo", "locate-project"}

// Locator runs a project-locator command
type Locator struct {
	command string
	args    []string
}

// New creates a locator running command with args
func New(command string, args ...string) *Locator {
	return &Locator{command: command, args: args}
}

// NewDefault creates a locator running `cargo locate-project`
func NewDefault() *Locator {
	return New(DefaultCommand[0], DefaultCommand[1:]...)
}

// Locate returns the manifest path reported by the locator command
func (l *Locator) Locate(ctx context.Context) (string, error) {
	name := l.commandLine()
	logrus.Debugf("Running %s", name)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, l.command, l.args...)
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		err = fmt.Errorf("failed to call `%s`: %w", name, err)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return "", &models.CargoArchError{Type: models.ErrExternalProcess, Err: err}
	}

	root, err := parseOutput(output)
	if err != nil {
		return "", &models.CargoArchError{
			Type: models.ErrExternalProcess,
			Err:  fmt.Errorf("failed to parse `%s` output: %w", name, err),
		}
	}

	logrus.Debugf("Located manifest at %s", root)
	return root, nil
}

func (l *Locator) commandLine() string {
	return strings.Join(append([]string{l.command}, l.args...), " ")
}

// parseOutput extracts the "root" string from the locator's JSON output
func parseOutput(output []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(output, &fields); err != nil {
		return "", err
	}

	raw, ok := fields["root"]
	if !ok {
		return "", fmt.Errorf("no root field")
	}

	var root string
	if err := json.Unmarshal(raw, &root); err != nil {
		return "", fmt.Errorf("root is not a string: %w", err)
	}
	if root == "" {
		return "", fmt.Errorf("root is empty")
	}

	return root, nil
}
