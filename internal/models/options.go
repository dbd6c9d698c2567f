package models

// BuildOptions contains configuration for a single packaging run
type BuildOptions struct {
	// Input
	ManifestPath string // Path to Cargo.toml; located via cargo when empty

	// Output
	InPlace bool   // Write PKGBUILD to WorkDir instead of target/<pkgver>-<pkgrel>
	WorkDir string // Defaults to the process working directory

	// Build
	NoBuild     bool
	Verify      bool     // Check built packages against the PKGBUILD
	Makepkg     string   // Build command, "makepkg" by default
	MakepkgArgs []string // Extra arguments passed to the build command

	// Signing
	GPGKeyPath    string
	GPGPassphrase string
}
