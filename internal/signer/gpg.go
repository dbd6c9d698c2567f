package signer

import (
	"bytes"
	"crypto"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// GPGSigner signs with the first key of an OpenPGP private key file
type GPGSigner struct {
	entity *openpgp.Entity
}

// NewGPGSigner loads an armored or binary private key, decrypting it with
// passphrase when it is protected
func NewGPGSigner(keyPath, passphrase string) (*GPGSigner, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("key path is empty")
	}

	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	keyring, err := readKeyring(data)
	if err != nil {
		return nil, err
	}

	entity := keyring[0]
	if entity.PrivateKey == nil {
		return nil, fmt.Errorf("key file does not contain a private key")
	}
	if err := unlock(entity, passphrase); err != nil {
		return nil, err
	}

	return &GPGSigner{entity: entity}, nil
}

func readKeyring(data []byte) (openpgp.EntityList, error) {
	read := openpgp.ReadKeyRing
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("-----BEGIN")) {
		read = openpgp.ReadArmoredKeyRing
	}

	keyring, err := read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}
	if len(keyring) == 0 {
		return nil, fmt.Errorf("no keys found in key file")
	}
	return keyring, nil
}

// unlock decrypts the primary key and every encrypted private subkey
func unlock(entity *openpgp.Entity, passphrase string) error {
	keys := []*packet.PrivateKey{entity.PrivateKey}
	for _, sub := range entity.Subkeys {
		if sub.PrivateKey != nil {
			keys = append(keys, sub.PrivateKey)
		}
	}

	for _, key := range keys {
		if !key.Encrypted {
			continue
		}
		if passphrase == "" {
			return fmt.Errorf("private key %s is encrypted and no passphrase was given", key.KeyIdString())
		}
		if err := key.Decrypt([]byte(passphrase)); err != nil {
			return fmt.Errorf("failed to decrypt private key %s: %w", key.KeyIdString(), err)
		}
	}
	return nil
}

// SignDetached returns a binary detached signature of data
func (s *GPGSigner) SignDetached(data []byte) ([]byte, error) {
	var sig bytes.Buffer

	cfg := &packet.Config{DefaultHash: crypto.SHA512}
	if err := openpgp.DetachSign(&sig, s.entity, bytes.NewReader(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to create detached signature: %w", err)
	}
	return sig.Bytes(), nil
}

// KeyID returns the long ID of the primary key
func (s *GPGSigner) KeyID() string {
	return s.entity.PrimaryKey.KeyIdString()
}
