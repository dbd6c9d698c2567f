package signer

// Signer interface for signing built packages
type Signer interface {
	// SignDetached creates a binary detached signature, the format pacman
	// expects in <package>.sig
	SignDetached(data []byte) ([]byte, error)

	// KeyID identifies the signing key in logs
	KeyID() string
}
