// Package manifest records what a fixture run produced, so downstream test
// suites can check artifacts without regenerating inputs.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// CurrentVersion is the manifest format version written by this package.
const CurrentVersion = 1

// Manifest contains metadata about a fixture run.
type Manifest struct {
	Version     int       `json:"version"`
	Codec       string    `json:"codec"`
	Extension   string    `json:"extension"`
	BlockSize   int       `json:"block_size,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Entries     []Entry   `json:"entries"`
}

// Entry describes one artifact.
type Entry struct {
	Name           string `json:"name"`
	Location       string `json:"location"`
	InputSize      int    `json:"input_size"`
	CompressedSize int    `json:"compressed_size"`
	InputSHA256    string `json:"input_sha256"`
	ArtifactSHA256 string `json:"artifact_sha256"`
}

// NewEntry builds an entry from the raw input and compressed artifact.
func NewEntry(name, location string, input, compressed []byte) Entry {
	return Entry{
		Name:           name,
		Location:       location,
		InputSize:      len(input),
		CompressedSize: len(compressed),
		InputSHA256:    Checksum(input),
		ArtifactSHA256: Checksum(compressed),
	}
}

// Checksum returns the hex-encoded SHA-256 of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Lookup returns the entry with the given name.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Write writes the manifest to path as indented JSON.
func Write(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Read reads a manifest from path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported manifest version %d", m.Version)
	}
	return &m, nil
}
