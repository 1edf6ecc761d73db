// internal/nvs/filestore.go
package nvs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
)

// ErrCorrupt means the stored record failed its size or checksum check.
// Callers treat it exactly like an absent record: restore defaults.
var ErrCorrupt = errors.New("nvs: record corrupt")

// FileStore persists one fixed-size record in a file, framed with a CRC32
// trailer. It implements hal.Store for hosts without real NVS hardware.
type FileStore struct {
	path string
	size int
}

func NewFileStore(path string, size int) *FileStore {
	return &FileStore{path: path, size: size}
}

// Read fills p from the stored record. len(p) must equal the configured
// record size. Any framing mismatch is reported as ErrCorrupt.
func (f *FileStore) Read(p []byte) error {
	if len(p) != f.size {
		return fmt.Errorf("nvs: read buffer %d bytes, record is %d", len(p), f.size)
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("nvs: %w", err)
	}
	if len(raw) != f.size+4 {
		return ErrCorrupt
	}

	payload := raw[:f.size]
	want := binary.LittleEndian.Uint32(raw[f.size:])
	if crc32.ChecksumIEEE(payload) != want {
		return ErrCorrupt
	}

	copy(p, payload)
	return nil
}

// Write stores p with its CRC trailer. The write is atomic (temp file +
// rename) and synchronous.
func (f *FileStore) Write(p []byte) error {
	if len(p) != f.size {
		return fmt.Errorf("nvs: write buffer %d bytes, record is %d", len(p), f.size)
	}

	raw := make([]byte, f.size+4)
	copy(raw, p)
	binary.LittleEndian.PutUint32(raw[f.size:], crc32.ChecksumIEEE(p))

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".nvs-*")
	if err != nil {
		return fmt.Errorf("nvs: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("nvs: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("nvs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("nvs: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("nvs: %w", err)
	}
	return nil
}
