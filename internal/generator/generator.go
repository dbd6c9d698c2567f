package generator

import (
	"context"

	"github.com/ralt/cargo-arch/internal/manifest"
	"github.com/ralt/cargo-arch/internal/models"
	"github.com/ralt/cargo-arch/internal/scanner"
)

// Config is a fully resolved, render-ready package recipe
type Config interface {
	// Render returns the recipe text
	Render() string

	// Filename returns the name of the recipe file, e.g. PKGBUILD
	Filename() string

	// Name returns the name of the package the recipe builds
	Name() string

	// VersionString returns the packaged release, used to name the build directory
	VersionString() string
}

// Generator interface for package recipe generators
type Generator interface {
	// Resolve builds the recipe configuration from a parsed manifest
	Resolve(pkg *manifest.Package) Config

	// Generate writes the recipe and returns the directory it was written to
	Generate(ctx context.Context, opts *models.BuildOptions, cfg Config) (string, error)

	// MatchArtifact reports whether the file at path is named like a
	// package built from this exact recipe release
	MatchArtifact(cfg Config, path string) bool

	// ValidatePackages checks that built packages match the recipe
	ValidatePackages(cfg Config, packages []models.Package) error

	// GetSupportedType returns the package type this generator produces
	GetSupportedType() scanner.PackageType
}
