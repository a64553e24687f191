package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from the file extension. Anything that is
// not .yaml or .yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Origin records where a loaded document came from.
type Origin string

const (
	OriginFile    Origin = "file"
	OriginCreated Origin = "created"
	OriginDefault Origin = "default"
)

// LoadResult is the outcome of Load. Config is never nil.
type LoadResult struct {
	Config   *Config
	Path     string
	Origin   Origin
	Warnings []string

	// Err is set when the file existed but could not be used (*ReadError) or
	// when writing a fresh default document failed (*WriteError). Config then
	// holds the defaults.
	Err error
}

// Load reads the document at path. It never fails: a missing file is created
// with the defaults, and an unreadable or malformed one is replaced in memory
// by the defaults with the cause reported in Err. The file on disk is left
// untouched in that case so the user can repair it.
func Load(path string) *LoadResult {
	res := &LoadResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Config = DefaultConfig()
		if errors.Is(err, fs.ErrNotExist) {
			res.Origin = OriginCreated
			if err := Save(res.Config, path); err != nil {
				res.Origin = OriginDefault
				res.Err = err
			}
			return res
		}
		res.Origin = OriginDefault
		res.Err = &ReadError{Path: path, Err: err}
		return res
	}

	cfg, warnings, err := Parse(data, FormatForPath(path))
	if err != nil {
		res.Config = DefaultConfig()
		res.Origin = OriginDefault
		res.Err = &ReadError{Path: path, Err: err}
		return res
	}
	res.Config = cfg
	res.Origin = OriginFile
	res.Warnings = warnings
	return res
}

// Parse decodes a document and applies defaults. Only malformed input is an
// error; out-of-range values are corrected and reported as warnings.
func Parse(data []byte, format Format) (*Config, []string, error) {
	var raw RawConfig
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case FormatJSON, "":
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, nil, fmt.Errorf("failed to parse json: empty document")
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, nil, fmt.Errorf("failed to parse json: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported config format %q", format)
	}

	cfg, warnings := BuildEffectiveConfig(raw)
	return cfg, warnings, nil
}

// Encode serializes cfg in the given format. JSON uses a four-space indent and
// a trailing newline.
func Encode(cfg *Config, format Format) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	switch format {
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatJSON, "":
		data, err := json.MarshalIndent(cfg, "", "    ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}

// Save writes the whole document to path, creating parent directories as
// needed. Any failure is returned as a *WriteError.
func Save(cfg *Config, path string) error {
	data, err := Encode(cfg, FormatForPath(path))
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
