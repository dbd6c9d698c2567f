package signer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
)

// writeTestKey generates a throwaway key and stores its armored private half
func writeTestKey(t *testing.T) (string, *openpgp.Entity) {
	t.Helper()

	entity, err := openpgp.NewEntity("Packager", "test", "packager@example.com", nil)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PrivateKeyType, nil)
	if err != nil {
		t.Fatalf("Failed to create armor writer: %v", err)
	}
	if err := entity.SerializePrivate(w, nil); err != nil {
		t.Fatalf("Failed to serialize key: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close armor writer: %v", err)
	}

	path := filepath.Join(t.TempDir(), "key.asc")
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatalf("Failed to write key: %v", err)
	}
	return path, entity
}

func TestSignDetachedVerifies(t *testing.T) {
	keyPath, entity := writeTestKey(t)
	s, err := NewGPGSigner(keyPath, "")
	if err != nil {
		t.Fatalf("NewGPGSigner failed: %v", err)
	}

	data := []byte("package contents")
	sig, err := s.SignDetached(data)
	if err != nil {
		t.Fatalf("SignDetached failed: %v", err)
	}
	if len(sig) == 0 {
		t.Fatal("Signature is empty")
	}

	if s.KeyID() != entity.PrimaryKey.KeyIdString() {
		t.Errorf("KeyID = %s, want %s", s.KeyID(), entity.PrimaryKey.KeyIdString())
	}
	keyring := openpgp.EntityList{entity}

	if _, err := openpgp.CheckDetachedSignature(keyring, bytes.NewReader(data), bytes.NewReader(sig), nil); err != nil {
		t.Errorf("Signature does not verify: %v", err)
	}

	if _, err := openpgp.CheckDetachedSignature(keyring, bytes.NewReader([]byte("tampered")), bytes.NewReader(sig), nil); err == nil {
		t.Error("Signature verified for tampered data")
	}
}

func TestNewGPGSignerBinaryKey(t *testing.T) {
	entity, err := openpgp.NewEntity("Packager", "", "packager@example.com", nil)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	var buf bytes.Buffer
	if err := entity.SerializePrivate(&buf, nil); err != nil {
		t.Fatalf("Failed to serialize key: %v", err)
	}
	path := filepath.Join(t.TempDir(), "key.gpg")
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatalf("Failed to write key: %v", err)
	}

	s, err := NewGPGSigner(path, "")
	if err != nil {
		t.Fatalf("Binary key should load: %v", err)
	}
	if s.KeyID() != entity.PrimaryKey.KeyIdString() {
		t.Errorf("KeyID = %s", s.KeyID())
	}
}

func TestNewGPGSignerErrors(t *testing.T) {
	if _, err := NewGPGSigner("", ""); err == nil {
		t.Error("Empty key path should fail")
	}

	if _, err := NewGPGSigner(filepath.Join(t.TempDir(), "missing.asc"), ""); err == nil {
		t.Error("Missing key file should fail")
	}

	garbage := filepath.Join(t.TempDir(), "garbage.asc")
	os.WriteFile(garbage, []byte("not a key"), 0600)
	if _, err := NewGPGSigner(garbage, ""); err == nil {
		t.Error("Garbage key file should fail")
	}
}
