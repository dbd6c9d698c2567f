package pacman

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ralt/cargo-arch/internal/generator"
	"github.com/ralt/cargo-arch/internal/manifest"
	"github.com/ralt/cargo-arch/internal/models"
	"github.com/ralt/cargo-arch/internal/scanner"
	"github.com/ralt/cargo-arch/internal/utils"
	"github.com/sirupsen/logrus"
)

// Generator implements the generator.Generator interface for PKGBUILDs
type Generator struct{}

// NewGenerator creates a new PKGBUILD generator
func NewGenerator() generator.Generator {
	return &Generator{}
}

// Resolve builds a PKGBUILDConfig from the manifest
func (g *Generator) Resolve(pkg *manifest.Package) generator.Config {
	return FromManifest(pkg)
}

// Generate writes the PKGBUILD and returns the directory holding it
func (g *Generator) Generate(ctx context.Context, opts *models.BuildOptions, cfg generator.Config) (string, error) {
	dir, err := g.pkgbuildDir(opts, cfg)
	if err != nil {
		return "", err
	}

	// Create the dir
	if err := utils.EnsureDir(dir); err != nil {
		return "", &models.CargoArchError{
			Type: models.ErrIO,
			Err:  fmt.Errorf("could not create pkgbuild dir %s: %w", dir, err),
		}
	}

	path := filepath.Join(dir, cfg.Filename())
	logrus.Infof("Writing %s", path)

	if err := utils.WriteFile(path, []byte(cfg.Render()), 0644); err != nil {
		return "", &models.CargoArchError{
			Type: models.ErrIO,
			Err:  fmt.Errorf("could not write %s file: %w", cfg.Filename(), err),
		}
	}

	return dir, nil
}

// pkgbuildDir returns either the working directory or
// <manifest dir>/target/<pkgver>-<pkgrel>
func (g *Generator) pkgbuildDir(opts *models.BuildOptions, cfg generator.Config) (string, error) {
	if opts.InPlace {
		if opts.WorkDir != "" {
			return opts.WorkDir, nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return "", &models.CargoArchError{Type: models.ErrIO, Err: err}
		}
		return wd, nil
	}

	if opts.ManifestPath == "" {
		return "", &models.CargoArchError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("manifest path is required to compute the target directory"),
		}
	}

	rootDir := filepath.Dir(opts.ManifestPath)
	return filepath.Join(rootDir, "target", cfg.VersionString()), nil
}

// ValidatePackages checks that the built packages belong to the PKGBUILD
func (g *Generator) ValidatePackages(cfg generator.Config, packages []models.Package) error {
	matched := 0
	for _, pkg := range packages {
		if pkg.Name != cfg.Name() {
			logrus.Debugf("Ignoring unrelated package %s (%s)", pkg.Filename, pkg.Name)
			continue
		}
		if stripEpoch(pkg.Version) != cfg.VersionString() {
			return &models.CargoArchError{
				Type:    models.ErrVerify,
				Package: filepath.Base(pkg.Filename),
				Err:     fmt.Errorf("package version %s does not match %s", pkg.Version, cfg.VersionString()),
			}
		}
		matched++
	}

	if matched == 0 {
		return &models.CargoArchError{
			Type: models.ErrVerify,
			Err:  fmt.Errorf("no built package named %s found", cfg.Name()),
		}
	}
	return nil
}

// MatchArtifact reports whether path is named
// <pkgname>-[<epoch>:]<pkgver>-<pkgrel>-<arch>.pkg.tar[.<ext>]
func (g *Generator) MatchArtifact(cfg generator.Config, path string) bool {
	stem, _, ok := strings.Cut(filepath.Base(path), ".pkg.tar")
	if !ok {
		return false
	}

	rest, ok := strings.CutPrefix(stem, cfg.Name()+"-")
	if !ok {
		return false
	}

	arch, ok := strings.CutPrefix(stripEpoch(rest), cfg.VersionString()+"-")
	return ok && arch != "" && !strings.Contains(arch, "-")
}

// stripEpoch removes a leading "<epoch>:" from a pacman version
func stripEpoch(version string) string {
	epoch, rest, ok := strings.Cut(version, ":")
	if !ok || epoch == "" || strings.Trim(epoch, "0123456789") != "" {
		return version
	}
	return rest
}

// GetSupportedType returns the package type produced by this generator
func (g *Generator) GetSupportedType() scanner.PackageType {
	return scanner.TypePacman
}
