package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-chart/pkg/errors"
	"gopkg.in/yaml.v3"
)

// readInput decodes a JSON or YAML file into out, chosen by extension.
// "-" reads JSON from stdin.
func readInput(path string, out any) error {
	if path == "-" {
		if err := json.NewDecoder(os.Stdin).Decode(out); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to decode stdin", err)
		}

		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidParameter, err, "failed to read %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	default:
		err = json.Unmarshal(data, out)
	}

	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidRequest, err, "failed to decode %s", path)
	}

	return nil
}

// writeOutput writes data to path, or to the command writer when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)

		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(errors.ErrCodeUnknown, err, "failed to create directory for %s", path)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(errors.ErrCodeUnknown, err, "failed to write %s", path)
	}

	return nil
}
