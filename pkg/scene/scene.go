// Package scene loads, clones and writes binary glTF documents.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/qmuntal/gltf"

	// Registers the emissive strength payload so decoded documents carry a
	// typed value.
	_ "github.com/taigrr/lumen/pkg/ext/emissivestrength"
)

// DecodeError reports bytes that could not be decoded as glTF.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode gltf: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// WriteError reports a document that could not be encoded or persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e.Path == "" {
		return "encode gltf: " + e.Err.Error()
	}
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Decode parses GLB (or glTF JSON) bytes into a document. External
// resources are not resolved.
func Decode(data []byte) (*gltf.Document, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Err: errors.New("empty input")}
	}

	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return doc, nil
}

// Open reads and decodes a file from disk.
func Open(path string) (*gltf.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return Decode(data)
}

// Encode serializes doc as a binary glTF container.
func Encode(doc *gltf.Document) ([]byte, error) {
	if doc == nil {
		return nil, &WriteError{Err: errors.New("nil document")}
	}

	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, &WriteError{Err: err}
	}
	return buf.Bytes(), nil
}

// Write encodes doc and writes it to path, replacing any existing file.
// It returns the number of bytes written.
func Write(doc *gltf.Document, path string) (int, error) {
	data, err := Encode(doc)
	if err != nil {
		var we *WriteError
		if errors.As(err, &we) {
			we.Path = path
		}
		return 0, err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}
	return len(data), nil
}
