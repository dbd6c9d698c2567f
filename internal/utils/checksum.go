package utils

import (
	"crypto/md5"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// Checksum holds the size and digests pacman records for a package file
type Checksum struct {
	MD5    string
	SHA256 string
	Size   int64
}

// SumFile hashes the file at path
func SumFile(path string) (*Checksum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Sum(f)
}

// Sum hashes everything read from r
func Sum(r io.Reader) (*Checksum, error) {
	md5sum, sha256sum := md5.New(), sha256.New()

	n, err := io.Copy(io.MultiWriter(md5sum, sha256sum), r)
	if err != nil {
		return nil, err
	}

	return &Checksum{
		MD5:    fmt.Sprintf("%x", md5sum.Sum(nil)),
		SHA256: fmt.Sprintf("%x", sha256sum.Sum(nil)),
		Size:   n,
	}, nil
}
