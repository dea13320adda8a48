package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/hexmap/pkg/errors"
)

// ReadJSON decodes a JSON layout document from r and validates it.
//
// Unknown fields are ignored. ReadJSON returns INVALID_FORMAT when the
// input is not a JSON object, when application_coordinates is missing, or
// when [Document.Validate] rejects the result. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// ReadYAML decodes a YAML layout document from r and validates it.
func ReadYAML(r io.Reader) (Document, error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// UnmarshalJSON decodes a JSON layout document from data.
func UnmarshalJSON(data []byte) (Document, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ImportJSON reads the JSON layout document at path.
func ImportJSON(path string) (Document, error) {
	return importFile(path, ReadJSON)
}

// ImportYAML reads the YAML layout document at path.
func ImportYAML(path string) (Document, error) {
	return importFile(path, ReadYAML)
}

// Import reads the layout document at path, choosing the decoder by file
// extension: .yaml and .yml are YAML, everything else JSON.
func Import(path string) (Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ImportYAML(path)
	default:
		return ImportJSON(path)
	}
}

func importFile(path string, read func(io.Reader) (Document, error)) (Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return read(f)
}
