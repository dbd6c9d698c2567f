package models

// Package represents a built pacman package and the metadata read from its .PKGINFO
type Package struct {
	// Core metadata
	Name         string
	Version      string
	Architecture string
	Description  string
	Packager     string
	URL          string
	Licenses     []string
	Dependencies []string

	// File information
	Filename  string
	Size      int64
	MD5Sum    string
	SHA256Sum string

	// Remaining .PKGINFO keys
	Metadata map[string]string
}
