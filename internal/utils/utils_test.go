package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSumFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(path, []byte("hello\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	sums, err := SumFile(path)
	if err != nil {
		t.Fatalf("SumFile failed: %v", err)
	}

	if sums.Size != 6 {
		t.Errorf("Size = %d, want 6", sums.Size)
	}
	if sums.MD5 != "b1946ac92492d2347c6235b4d2611184" {
		t.Errorf("MD5 = %s", sums.MD5)
	}
	if sums.SHA256 != "5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03" {
		t.Errorf("SHA256 = %s", sums.SHA256)
	}
}

func TestSumFileMissing(t *testing.T) {
	if _, err := SumFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Missing file should fail")
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target", "1.0-1", "PKGBUILD")

	if err := WriteFile(path, []byte("pkgname=x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "pkgname=x" {
		t.Errorf("content = %q", data)
	}
}
