package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ralt/cargo-arch/internal/builder"
	"github.com/ralt/cargo-arch/internal/generator"
	"github.com/ralt/cargo-arch/internal/generator/pacman"
	"github.com/ralt/cargo-arch/internal/locator"
	"github.com/ralt/cargo-arch/internal/manifest"
	"github.com/ralt/cargo-arch/internal/models"
	"github.com/ralt/cargo-arch/internal/scanner"
	"github.com/ralt/cargo-arch/internal/signer"
	"github.com/ralt/cargo-arch/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewBuildCmd creates the command that writes the PKGBUILD and builds it
func NewBuildCmd() *cobra.Command {
	var opts models.BuildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the PKGBUILD and run makepkg",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOptions(&opts); err != nil {
				return err
			}

			logrus.Debugf("Options: %+v", opts)

			return runBuild(cmd.Context(), &opts)
		},
	}

	// Input/Output flags
	cmd.Flags().StringVar(&opts.ManifestPath, "manifest-path", "", "Path to Cargo.toml (located with `cargo locate-project` if empty)")
	cmd.Flags().BoolVar(&opts.InPlace, "in-place", false, "Write the PKGBUILD to the current directory")

	// Build flags
	cmd.Flags().BoolVar(&opts.NoBuild, "no-build", false, "Only write the PKGBUILD, do not run makepkg")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "Check the built packages in the PKGBUILD directory against the PKGBUILD")
	cmd.Flags().StringVar(&opts.Makepkg, "makepkg", builder.DefaultCommand, "Build command to run in the PKGBUILD directory")
	cmd.Flags().StringArrayVar(&opts.MakepkgArgs, "makepkg-arg", nil, "Extra argument for the build command (repeatable)")

	// Signing flags
	cmd.Flags().StringVarP(&opts.GPGKeyPath, "gpg-key", "k", "", "Path to GPG private key used to sign built packages")
	cmd.Flags().StringVarP(&opts.GPGPassphrase, "gpg-passphrase", "p", "", "GPG key passphrase")

	return cmd
}

func validateOptions(opts *models.BuildOptions) error {
	if opts.GPGPassphrase != "" && opts.GPGKeyPath == "" {
		return &models.CargoArchError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("gpg-passphrase requires gpg-key"),
		}
	}

	if opts.NoBuild && opts.GPGKeyPath != "" {
		return &models.CargoArchError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("gpg-key has nothing to sign with no-build"),
		}
	}

	if opts.NoBuild && opts.Verify {
		return &models.CargoArchError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("verify has nothing to check with no-build"),
		}
	}

	if opts.Makepkg == "" {
		opts.Makepkg = builder.DefaultCommand
	}

	if opts.InPlace && opts.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return &models.CargoArchError{Type: models.ErrIO, Err: err}
		}
		opts.WorkDir = wd
	}

	return nil
}

// loadConfig locates and parses the manifest, then resolves the recipe.
// opts.ManifestPath is filled in when it had to be located.
func loadConfig(ctx context.Context, gen generator.Generator, opts *models.BuildOptions) (generator.Config, error) {
	if opts.ManifestPath == "" {
		path, err := locator.NewDefault().Locate(ctx)
		if err != nil {
			return nil, err
		}
		opts.ManifestPath = path
	}

	logrus.Infof("Reading %s", opts.ManifestPath)
	pkg, err := manifest.Read(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	return gen.Resolve(pkg), nil
}

func runBuild(ctx context.Context, opts *models.BuildOptions) error {
	// Load the signer first so a bad key fails before the build
	var gpgSigner signer.Signer
	if opts.GPGKeyPath != "" {
		s, err := signer.NewGPGSigner(opts.GPGKeyPath, opts.GPGPassphrase)
		if err != nil {
			return &models.CargoArchError{
				Type: models.ErrSigning,
				Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
			}
		}
		gpgSigner = s
		logrus.Infof("GPG signer initialized with key %s", s.KeyID())
	}

	gen := pacman.NewGenerator()

	cfg, err := loadConfig(ctx, gen, opts)
	if err != nil {
		return err
	}

	dir, err := gen.Generate(ctx, opts, cfg)
	if err != nil {
		return err
	}

	if opts.NoBuild {
		logrus.Infof("%s written to %s", cfg.Filename(), dir)
		return nil
	}

	if err := builder.New(opts.Makepkg, opts.MakepkgArgs...).Run(ctx, dir); err != nil {
		return err
	}

	if !opts.Verify && gpgSigner == nil {
		logrus.Info("Build completed successfully!")
		return nil
	}

	packages, err := collectPackages(ctx, gen, cfg, dir)
	if err != nil {
		return err
	}

	if opts.Verify {
		if err := gen.ValidatePackages(cfg, packages); err != nil {
			return err
		}
		for _, pkg := range packages {
			logrus.Infof("Built %s (%d bytes, sha256 %s)", filepath.Base(pkg.Filename), pkg.Size, pkg.SHA256Sum)
		}
	}

	if gpgSigner != nil {
		if len(packages) == 0 {
			logrus.Warnf("No %s-%s package found in %s, nothing to sign", cfg.Name(), cfg.VersionString(), dir)
		}
		if err := signPackages(gpgSigner, packages); err != nil {
			return err
		}
	}

	logrus.Info("Build completed successfully!")
	return nil
}

// collectPackages reads the metadata of the packages in dir built from cfg.
// Artifacts of other packages or releases are left alone.
func collectPackages(ctx context.Context, gen generator.Generator, cfg generator.Config, dir string) ([]models.Package, error) {
	scanned, err := scanner.NewFileSystemScanner().Scan(ctx, dir)
	if err != nil {
		return nil, &models.CargoArchError{Type: models.ErrIO, Err: err}
	}

	var packages []models.Package
	for _, s := range scanned {
		if !gen.MatchArtifact(cfg, s.Path) {
			logrus.Debugf("Skipping %s", filepath.Base(s.Path))
			continue
		}

		pkg, err := pacman.ParsePackage(s.Path)
		if err != nil {
			return nil, &models.CargoArchError{
				Type:    models.ErrVerify,
				Package: filepath.Base(s.Path),
				Err:     err,
			}
		}
		packages = append(packages, *pkg)
	}

	return packages, nil
}

// signPackages writes <package>.sig next to each package
func signPackages(s signer.Signer, packages []models.Package) error {
	for _, pkg := range packages {
		data, err := utils.ReadFile(pkg.Filename)
		if err != nil {
			return &models.CargoArchError{Type: models.ErrIO, Package: pkg.Filename, Err: err}
		}

		sig, err := s.SignDetached(data)
		if err != nil {
			return &models.CargoArchError{Type: models.ErrSigning, Package: pkg.Filename, Err: err}
		}

		sigPath := pkg.Filename + ".sig"
		if err := utils.WriteFile(sigPath, sig, 0644); err != nil {
			return &models.CargoArchError{
				Type: models.ErrIO,
				Err:  fmt.Errorf("failed to write package signature: %w", err),
			}
		}
		logrus.Infof("Signed %s", filepath.Base(pkg.Filename))
	}
	return nil
}
