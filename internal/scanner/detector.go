package scanner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// Magic bytes for package detection
var (
	// Gzip magic bytes (.pkg.tar.gz)
	gzipMagic = []byte{0x1F, 0x8B}

	// Zstandard magic bytes (.pkg.tar.zst)
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

	// XZ magic bytes (.pkg.tar.xz)
	xzMagic = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
)

// DetectPackageType determines the package type based on magic bytes and file extension
func DetectPackageType(path string) (PackageType, error) {
	basename := filepath.Base(path)

	// Detached signatures sit next to packages
	if strings.HasSuffix(basename, ".sig") {
		return TypeUnknown, nil
	}
	if !strings.Contains(basename, ".pkg.tar") {
		return TypeUnknown, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return TypeUnknown, err
	}
	defer f.Close()

	// Read first 512 bytes for magic byte detection
	header := make([]byte, 512)
	n, err := f.Read(header)
	if err != nil && n == 0 {
		return TypeUnknown, err
	}
	header = header[:n]

	switch {
	case strings.HasSuffix(basename, ".pkg.tar.zst") && bytes.HasPrefix(header, zstdMagic):
		return TypePacman, nil
	case strings.HasSuffix(basename, ".pkg.tar.xz") && bytes.HasPrefix(header, xzMagic):
		return TypePacman, nil
	case strings.HasSuffix(basename, ".pkg.tar.gz") && bytes.HasPrefix(header, gzipMagic):
		return TypePacman, nil
	case strings.HasSuffix(basename, ".pkg.tar"):
		return TypePacman, nil
	}

	return TypeUnknown, nil
}
