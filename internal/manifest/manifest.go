// Package manifest decodes the parts of a Cargo.toml that cargo-arch needs.
package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ralt/cargo-arch/internal/models"
)

// Manifest is the top level of Cargo.toml
type Manifest struct {
	Package Package `toml:"package"`
}

// Package holds the data in the [package] section
type Package struct {
	Name          string    `toml:"name"`
	Version       string    `toml:"version"`
	Description   string    `toml:"description"`
	Authors       []string  `toml:"authors"`
	License       string    `toml:"license"` // Multiple licenses are separated by `/`
	Readme        string    `toml:"readme"`
	Homepage      *string   `toml:"homepage"`
	Documentation *string   `toml:"documentation"`
	Repository    *string   `toml:"repository"`
	Keywords      []string  `toml:"keywords"`
	Metadata      *Metadata `toml:"metadata"`
}

// Metadata holds the data in the [package.metadata] section
type Metadata struct {
	ArchlinuxPKGBUILD *PKGBUILDOverride `toml:"archlinux_pkgbuild"`
}

// PKGBUILDOverride is the [package.metadata.archlinux_pkgbuild] section,
// which the user can provide for PKGBUILD specific overrides
type PKGBUILDOverride struct {
	// The maintainers of the package
	Maintainers []string `toml:"maintainers"`
	// The name of the package.
	PkgName *string `toml:"pkgname"`
	// The version of the software as released from the author.
	PkgVer *string `toml:"pkgver"`
	// The release number specific to the Arch Linux release.
	PkgRel *uint32 `toml:"pkgrel"`
	// A brief description of the package and its functionality.
	PkgDesc *string `toml:"pkgdesc"`
	// A URL associated with the software being packaged, typically the project's web site.
	URL *string `toml:"url"`
}

// requiredKeys are the [package] keys that must be present
var requiredKeys = []string{"name", "version", "description", "authors", "license", "readme"}

// Parse decodes manifest text
func Parse(text string) (*Package, error) {
	var m Manifest
	md, err := toml.Decode(text, &m)
	if err != nil {
		return nil, &models.CargoArchError{
			Type: models.ErrManifestParse,
			Err:  fmt.Errorf("could not decode Cargo manifest: %w", err),
		}
	}

	for _, key := range requiredKeys {
		if !md.IsDefined("package", key) {
			return nil, &models.CargoArchError{
				Type: models.ErrManifestParse,
				Err:  fmt.Errorf("missing required field package.%s", key),
			}
		}
	}

	return &m.Package, nil
}

// Read reads and decodes the manifest at path
func Read(path string) (*Package, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.CargoArchError{
			Type: models.ErrIO,
			Err:  fmt.Errorf("failed to read Cargo.toml at path %s: %w", path, err),
		}
	}

	pkg, err := Parse(string(contents))
	if err != nil {
		if archErr, ok := err.(*models.CargoArchError); ok {
			archErr.Package = path
		}
		return nil, err
	}
	return pkg, nil
}

// Override returns the PKGBUILD override block, with every field absent
// when the manifest has none
func (p *Package) Override() PKGBUILDOverride {
	if p.Metadata == nil || p.Metadata.ArchlinuxPKGBUILD == nil {
		return PKGBUILDOverride{}
	}
	return *p.Metadata.ArchlinuxPKGBUILD
}
