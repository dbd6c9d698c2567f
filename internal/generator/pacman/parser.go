package pacman

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ralt/cargo-arch/internal/models"
	"github.com/ralt/cargo-arch/internal/utils"
	"github.com/ulikunitz/xz"
)

// decompressors maps a package file suffix to the reader unpacking its tarball
var decompressors = []struct {
	suffix string
	open   func(io.Reader) (io.ReadCloser, error)
}{
	{".pkg.tar.zst", func(r io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	}},
	{".pkg.tar.xz", func(r io.Reader) (io.ReadCloser, error) {
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xr), nil
	}},
	{".pkg.tar.gz", func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	}},
	{".pkg.tar", func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	}},
}

// ParsePackage reads the .PKGINFO and checksums of a built pacman package
func ParsePackage(path string) (*models.Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sums, err := utils.Sum(f)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum %s: %w", filepath.Base(path), err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	pkginfo, err := readPKGINFO(path, f)
	if err != nil {
		return nil, fmt.Errorf("failed to extract .PKGINFO: %w", err)
	}

	pkg, err := parsePKGINFO(pkginfo)
	if err != nil {
		return nil, fmt.Errorf("failed to parse .PKGINFO: %w", err)
	}

	pkg.Filename = path
	pkg.Size = sums.Size
	pkg.MD5Sum = sums.MD5
	pkg.SHA256Sum = sums.SHA256
	return pkg, nil
}

// readPKGINFO unpacks r according to the suffix of path and returns the
// .PKGINFO entry
func readPKGINFO(path string, r io.Reader) ([]byte, error) {
	for _, d := range decompressors {
		if !strings.HasSuffix(path, d.suffix) {
			continue
		}

		rc, err := d.open(r)
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		tr := tar.NewReader(rc)
		for {
			hdr, err := tr.Next()
			switch {
			case err == io.EOF:
				return nil, fmt.Errorf(".PKGINFO not found in package")
			case err != nil:
				return nil, err
			case hdr.Name == ".PKGINFO":
				return io.ReadAll(tr)
			}
		}
	}

	return nil, fmt.Errorf("unsupported package format: %s", filepath.Base(path))
}

// parsePKGINFO reads the "key = value" lines written by makepkg. Unknown
// keys land in Metadata, the last value winning.
func parsePKGINFO(data []byte) (*models.Package, error) {
	pkg := &models.Package{Metadata: map[string]string{}}

	single := map[string]*string{
		"pkgname":  &pkg.Name,
		"pkgver":   &pkg.Version,
		"pkgdesc":  &pkg.Description,
		"url":      &pkg.URL,
		"arch":     &pkg.Architecture,
		"packager": &pkg.Packager,
	}
	multi := map[string]*[]string{
		"license": &pkg.Licenses,
		"depend":  &pkg.Dependencies,
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		if field, ok := single[key]; ok {
			*field = value
		} else if list, ok := multi[key]; ok {
			*list = append(*list, value)
		} else {
			pkg.Metadata[key] = value
		}
	}

	if pkg.Name == "" || pkg.Version == "" {
		return nil, fmt.Errorf(".PKGINFO is missing pkgname or pkgver")
	}
	return pkg, nil
}
