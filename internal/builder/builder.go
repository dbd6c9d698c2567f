// Package builder runs the external package build command.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/ralt/cargo-arch/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultCommand is the build command used when none is configured
const DefaultCommand = "makepkg"

// Builder runs a build command inside a PKGBUILD directory
type Builder struct {
	command string
	args    []string

	Stdout io.Writer
	Stderr io.Writer
}

// New creates a builder running command with args
func New(command string, args ...string) *Builder {
	if command == "" {
		command = DefaultCommand
	}
	return &Builder{
		command: command,
		args:    args,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Run executes the build command with dir as working directory and waits
// for it to finish
func (b *Builder) Run(ctx context.Context, dir string) error {
	logrus.Infof("Running %s in %s", b.command, dir)

	cmd := exec.CommandContext(ctx, b.command, b.args...)
	cmd.Dir = dir
	cmd.Stdout = b.Stdout
	cmd.Stderr = b.Stderr

	if err := cmd.Start(); err != nil {
		return &models.CargoArchError{
			Type: models.ErrExternalProcess,
			Err:  fmt.Errorf("failed to execute `%s`: %w", b.command, err),
		}
	}

	err := cmd.Wait()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return &models.CargoArchError{
			Type: models.ErrExternalProcess,
			Err:  fmt.Errorf("failed to wait on %s process: %w", b.command, err),
		}
	}

	// ExitCode is -1 when the process was terminated by a signal
	if code := exitErr.ExitCode(); code >= 0 {
		return &models.CargoArchError{
			Type: models.ErrExternalProcess,
			Err:  fmt.Errorf("%s failed with exit code %d", b.command, code),
		}
	}
	return &models.CargoArchError{
		Type: models.ErrExternalProcess,
		Err:  fmt.Errorf("%s failed", b.command),
	}
}
