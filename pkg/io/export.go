package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/hexmap/pkg/errors"
)

// WriteJSON encodes d as indented JSON and writes it to w.
// The output can be read back with [ReadJSON].
func WriteJSON(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailure, err, "encode json")
	}
	return nil
}

// WriteYAML encodes d as YAML and writes it to w.
func WriteYAML(d Document, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailure, err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailure, err, "encode yaml")
	}
	return nil
}

// MarshalJSON returns the JSON encoding of d.
func MarshalJSON(d Document) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailure, err, "encode json")
	}
	return append(data, '\n'), nil
}

// MarshalYAML returns the YAML encoding of d.
func MarshalYAML(d Document) ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailure, err, "encode yaml")
	}
	return data, nil
}

// ExportJSON writes d to a JSON file at path.
func ExportJSON(d Document, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(d, w) })
}

// ExportYAML writes d to a YAML file at path.
func ExportYAML(d Document, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteYAML(d, w) })
}

// WriteFile writes data to path atomically.
func WriteFile(path string, data []byte) error {
	return writeFile(path, func(w io.Writer) error {
		if _, err := w.Write(data); err != nil {
			return errors.Wrap(errors.ErrCodeExportFailure, err, "write %s", path)
		}
		return nil
	})
}

// writeFile streams encode into a temporary sibling of path and renames it
// over path once the encoder and the file have both succeeded.
func writeFile(path string, encode func(io.Writer) error) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailure, err, "create %s", path)
	}

	if err := encode(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeExportFailure, err, "close %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeExportFailure, err, "rename %s", path)
	}
	return nil
}
