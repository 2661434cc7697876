package model

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"time"
)

// ScanFile is one entry in a record's scan folder.
type ScanFile struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Dir      bool      `json:"dir,omitempty"`
	Hash     string    `json:"hash,omitempty"` // SHA-256, only when requested
}

// CalculateFileHash computes SHA-256 hash of a file.
// Returns the hex-encoded hash string.
func CalculateFileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
