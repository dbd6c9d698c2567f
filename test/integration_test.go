package test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const manifest = `[package]
name = "hello"
version = "0.3.1"
description = "Says hello"
authors = ["Jane Doe <jane@example.com>"]
license = "MIT/Apache-2.0"
readme = "README.md"
homepage = "https://hello.example.com"

[package.metadata.archlinux_pkgbuild]
maintainers = ["Packager <pkg@example.com>"]
pkgrel = 2
`

const expectedPKGBUILD = `# Maintainer: Packager <pkg@example.com>
pkgname=hello
pkgver=0.3.1
pkgrel=2
pkgdesc="Says hello"
url="https://hello.example.com"`

// TestIntegration builds the cargo-arch binary and runs it the way cargo does
func TestIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	projectRoot, err := getProjectRoot()
	if err != nil {
		t.Fatalf("Failed to find project root: %v", err)
	}

	binDir := t.TempDir()
	t.Log("Building cargo-arch binary...")
	if err := buildCargoArch(projectRoot, binDir); err != nil {
		t.Fatalf("Failed to build cargo-arch: %v", err)
	}

	t.Run("ManifestPath", func(t *testing.T) {
		testManifestPath(t, binDir)
	})

	t.Run("LocateProject", func(t *testing.T) {
		testLocateProject(t, binDir)
	})

	t.Run("InPlace", func(t *testing.T) {
		testInPlace(t, binDir)
	})

	t.Run("InvalidManifest", func(t *testing.T) {
		testInvalidManifest(t, binDir)
	})
}

func testManifestPath(t *testing.T, binDir string) {
	projectDir := writeProject(t, manifest)

	cmd := exec.Command(filepath.Join(binDir, "cargo-arch"), "arch",
		"--manifest-path", filepath.Join(projectDir, "Cargo.toml"),
		"--no-build",
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("cargo-arch failed: %v\nOutput: %s", err, output)
	}

	checkPKGBUILD(t, filepath.Join(projectDir, "target", "0.3.1-2", "PKGBUILD"))
}

func testLocateProject(t *testing.T, binDir string) {
	projectDir := writeProject(t, manifest)

	// A fake cargo that answers `cargo locate-project`
	fakeCargo := fmt.Sprintf("#!/bin/sh\necho '{\"root\":\"%s\"}'\n", filepath.Join(projectDir, "Cargo.toml"))
	if err := os.WriteFile(filepath.Join(binDir, "cargo"), []byte(fakeCargo), 0755); err != nil {
		t.Fatalf("Failed to write fake cargo: %v", err)
	}

	cmd := exec.Command(filepath.Join(binDir, "cargo-arch"), "arch", "--no-build")
	cmd.Env = append(os.Environ(), "PATH="+binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("cargo-arch failed: %v\nOutput: %s", err, output)
	}

	checkPKGBUILD(t, filepath.Join(projectDir, "target", "0.3.1-2", "PKGBUILD"))
}

func testInPlace(t *testing.T, binDir string) {
	projectDir := writeProject(t, manifest)
	workDir := t.TempDir()

	cmd := exec.Command(filepath.Join(binDir, "cargo-arch"),
		"--manifest-path", filepath.Join(projectDir, "Cargo.toml"),
		"--in-place", "--no-build",
	)
	cmd.Dir = workDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("cargo-arch failed: %v\nOutput: %s", err, output)
	}

	checkPKGBUILD(t, filepath.Join(workDir, "PKGBUILD"))
	if _, err := os.Stat(filepath.Join(projectDir, "target")); !os.IsNotExist(err) {
		t.Errorf("target directory should not be created with --in-place")
	}
}

func testInvalidManifest(t *testing.T, binDir string) {
	projectDir := writeProject(t, strings.Replace(manifest, "license = \"MIT/Apache-2.0\"\n", "", 1))

	cmd := exec.Command(filepath.Join(binDir, "cargo-arch"),
		"--manifest-path", filepath.Join(projectDir, "Cargo.toml"),
		"--no-build",
	)
	output, err := cmd.CombinedOutput()
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("Expected exit code 1, got %v\nOutput: %s", err, output)
	}
	if !strings.Contains(string(output), "package.license") {
		t.Errorf("Error output does not name the missing field: %s", output)
	}
}

func writeProject(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write Cargo.toml: %v", err)
	}
	return dir
}

func checkPKGBUILD(t *testing.T, path string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("PKGBUILD not found: %v", err)
	}
	if string(data) != expectedPKGBUILD {
		t.Errorf("Unexpected PKGBUILD:\n%s\nwant:\n%s", data, expectedPKGBUILD)
	}
}

func getProjectRoot() (string, error) {
	// Try to find go.mod
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (go.mod)")
}

func buildCargoArch(projectRoot, binDir string) error {
	cmd := exec.Command("go", "build", "-o", filepath.Join(binDir, "cargo-arch"), "./cmd/cargo-arch")
	cmd.Dir = projectRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
