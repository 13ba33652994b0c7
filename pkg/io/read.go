package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/trackgraph/pkg/errors"
	"github.com/matzehuels/trackgraph/pkg/timetable"
)

// maxDocumentSize bounds how much Read consumes from r.
const maxDocumentSize = 16 << 20

// Read decodes a timetable document from r and validates it.
// Read does not close r.
func Read(r io.Reader, format Format) (*timetable.Timetable, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read timetable")
	}
	if len(data) > maxDocumentSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "timetable larger than %d bytes", maxDocumentSize)
	}

	var doc document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &doc)
		if err == nil {
			if undec := md.Undecoded(); len(undec) > 0 {
				err = errors.New(errors.ErrCodeInvalidFormat, "unknown key %s", undec[0])
			}
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported timetable format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", format)
	}

	tt, err := doc.timetable()
	if err != nil {
		return nil, err
	}
	if err := tt.Validate(); err != nil {
		return nil, err
	}
	return tt, nil
}

// ReadFile reads the timetable at path, deriving the format from its
// extension.
func ReadFile(path string) (*timetable.Timetable, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	tt, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	if tt.Name == "" {
		tt.Name = baseName(path)
	}
	return tt, nil
}
