package pacman

import (
	"fmt"
	"strings"

	"github.com/ralt/cargo-arch/internal/manifest"
)

// defaultPkgRel is used when the manifest does not override pkgrel
const defaultPkgRel uint32 = 1

// PKGBUILDConfig is the resolved PKGBUILD content.
// See `man PKGBUILD` and https://wiki.archlinux.org/index.php/PKGBUILD
type PKGBUILDConfig struct {
	// The maintainers of the package
	Maintainers []string `yaml:"maintainers"`
	// The name of the package.
	PkgName string `yaml:"pkgname"`
	// The version of the software as released from the author.
	PkgVer string `yaml:"pkgver"`
	// The release number specific to the Arch Linux release.
	PkgRel uint32 `yaml:"pkgrel"`
	// A brief description of the package and its functionality.
	PkgDesc string `yaml:"pkgdesc"`
	// A URL associated with the software being packaged, typically the project's web site.
	URL string `yaml:"url"`
}

// FromManifest translates a Cargo manifest into a PKGBUILDConfig. Values from
// [package.metadata.archlinux_pkgbuild] win over [package] values, which win
// over defaults.
func FromManifest(pkg *manifest.Package) *PKGBUILDConfig {
	override := pkg.Override()

	maintainers := pkg.Authors
	if override.Maintainers != nil {
		maintainers = override.Maintainers
	}

	pkgrel := defaultPkgRel
	if override.PkgRel != nil {
		pkgrel = *override.PkgRel
	}

	return &PKGBUILDConfig{
		Maintainers: maintainers,
		PkgName:     firstOf(override.PkgName, &pkg.Name),
		PkgVer:      firstOf(override.PkgVer, &pkg.Version),
		PkgRel:      pkgrel,
		PkgDesc:     firstOf(override.PkgDesc, &pkg.Description),
		URL:         firstOf(override.URL, pkg.Homepage, pkg.Repository),
	}
}

// firstOf returns the first non-nil value, or an empty string
func firstOf(values ...*string) string {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return ""
}

// Render returns the PKGBUILD text. Values are written verbatim; nothing is
// quoted or escaped beyond the surrounding double quotes.
func (c *PKGBUILDConfig) Render() string {
	var buf strings.Builder

	for _, maintainer := range c.Maintainers {
		fmt.Fprintf(&buf, "# Maintainer: %s\n", maintainer)
	}

	fmt.Fprintf(&buf, "pkgname=%s\n", c.PkgName)
	fmt.Fprintf(&buf, "pkgver=%s\n", c.PkgVer)
	fmt.Fprintf(&buf, "pkgrel=%d\n", c.PkgRel)
	fmt.Fprintf(&buf, "pkgdesc=\"%s\"\n", c.PkgDesc)
	fmt.Fprintf(&buf, "url=\"%s\"", c.URL)

	return buf.String()
}

// Filename returns the recipe file name
func (c *PKGBUILDConfig) Filename() string {
	return "PKGBUILD"
}

// Name returns pkgname
func (c *PKGBUILDConfig) Name() string {
	return c.PkgName
}

// VersionString returns <pkgver>-<pkgrel>
func (c *PKGBUILDConfig) VersionString() string {
	return fmt.Sprintf("%s-%d", c.PkgVer, c.PkgRel)
}
