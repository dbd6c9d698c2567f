package scanner

import "context"

// PackageType represents the type of package
type PackageType int

const (
	TypeUnknown PackageType = iota
	TypePacman
)

// String returns the string representation of PackageType
func (pt PackageType) String() string {
	switch pt {
	case TypePacman:
		return "pacman"
	default:
		return "unknown"
	}
}

// ScannedPackage represents a package file found during scanning
type ScannedPackage struct {
	Path string
	Type PackageType
	Size int64
}

// Scanner interface for finding built packages
type Scanner interface {
	// Scan lists the packages directly inside a directory
	Scan(ctx context.Context, dir string) ([]ScannedPackage, error)

	// DetectType determines the package type of a file
	DetectType(path string) (PackageType, error)
}
