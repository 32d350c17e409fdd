package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

var ErrUnknownFormat = errors.New("unknown artifact format")

// Artifact is the persisted record of one demo run.
type Artifact struct {
	Demo    string         `json:"demo" msgpack:"demo"`
	Qubits  int            `json:"qubits" msgpack:"qubits"`
	Shots   int            `json:"shots" msgpack:"shots"`
	Circuit string         `json:"circuit" msgpack:"circuit"`
	Counts  map[string]int `json:"counts" msgpack:"counts"`
	Best    string         `json:"best,omitempty" msgpack:"best,omitempty"`
	Extra   map[string]any `json:"extra,omitempty" msgpack:"extra,omitempty"`
}

// ValidFormat checks format before any work is done that would need to be saved.
func ValidFormat(format string) error {
	switch strings.ToLower(format) {
	case "json", "msgpack":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

/*
WriteArtifact stores a in dir as <name>.<format>, where format is json or
msgpack, and returns the path written.
*/
func WriteArtifact(dir, name, format string, a *Artifact) (string, error) {
	var (
		data []byte
		err  error
	)

	format = strings.ToLower(format)
	switch format {
	case "json":
		data, err = json.MarshalIndent(a, "", "  ")
	case "msgpack":
		data, err = msgpack.Marshal(a)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return "", fmt.Errorf("encode artifact: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	path := filepath.Join(dir, name+"."+format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}

// ReadArtifact loads an artifact, choosing the decoder from the file extension.
func ReadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	a := &Artifact{}
	switch ext := strings.TrimPrefix(filepath.Ext(path), "."); ext {
	case "json":
		err = json.Unmarshal(data, a)
	case "msgpack":
		err = msgpack.Unmarshal(data, a)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return a, nil
}
