// Package metadata computes checksums of exported files.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrHashMismatch indicates a file whose content no longer matches its checksum.
var ErrHashMismatch = errors.New("hash mismatch")

// Metadata describes one exported file.
type Metadata struct {
	Path       string
	Hash       string
	Size       int
	LastModify time.Time
}

// CalculateHash computes the hex-encoded SHA-256 hash of content.
func CalculateHash(content []byte) string {
	hash := sha256.Sum256(content)

	return hex.EncodeToString(hash[:])
}

// FileHash computes the SHA-256 hash of the file at path.
func FileHash(path string) (string, error) {
	meta, err := Describe(path)
	if err != nil {
		return "", err
	}

	return meta.Hash, nil
}

// Describe reads the file at path and returns its checksum and size.
func Describe(path string) (*Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &Metadata{
		Path:       path,
		Hash:       CalculateHash(content),
		Size:       len(content),
		LastModify: info.ModTime().UTC(),
	}, nil
}

// Verify checks that the file at path still hashes to expected.
func Verify(path, expected string) error {
	calculated, err := FileHash(path)
	if err != nil {
		return err
	}

	if calculated != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, expected, calculated)
	}

	return nil
}
