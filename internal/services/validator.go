package services

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/vvka-141/prepdir/internal/document"
	"github.com/vvka-141/prepdir/internal/files/filesystem"
	"github.com/vvka-141/prepdir/internal/logging"
	"github.com/vvka-141/prepdir/internal/uuidscrub"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// Validator checks and loads prepped documents.
type Validator struct {
	fs     filesystem.FileSystemProvider
	logger prepdir.Logger
}

// NewValidator creates a validator; a nil provider means the OS filesystem.
func NewValidator(fsProvider filesystem.FileSystemProvider, logger prepdir.Logger) *Validator {
	if fsProvider == nil {
		fsProvider = filesystem.NewOSFileSystem()
	}
	return &Validator{fs: fsProvider, logger: logging.OrNull(logger)}
}

// Validate checks document text. It never fails; problems are reported in the result.
func (v *Validator) Validate(text string) *prepdir.ValidationResult {
	res := document.Validate(text)
	for _, w := range res.Warnings {
		v.logger.Verbose("%s", w)
	}
	return res
}

// ValidateFile reads path and validates its content.
func (v *Validator) ValidateFile(path string) (*prepdir.ValidationResult, error) {
	data, err := v.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return v.Validate(string(data)), nil
}

// Load parses the document at path and attaches the mapping sidecar when one exists.
func (v *Validator) Load(path string, opts document.ParseOptions) (*document.Document, error) {
	data, err := v.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := document.Parse(string(data), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, w := range doc.Warnings {
		v.logger.Warn("%s: %s", path, w)
	}

	m, err := v.LoadMapping(MappingPath(path))
	if err != nil {
		return nil, err
	}
	doc.Mapping = m
	return doc, nil
}

// LoadMapping reads a mapping sidecar. A missing file yields nil without error.
func (v *Validator) LoadMapping(path string) (*uuidscrub.Mapping, error) {
	data, err := v.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	m, err := uuidscrub.ReadMapping(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid mapping %s: %w", path, err)
	}
	v.logger.Verbose("Loaded %d placeholder(s) from %s", m.Len(), path)
	return m, nil
}
