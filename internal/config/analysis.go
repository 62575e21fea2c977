package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
)

// JSON keys of the analysis configuration object.
const (
	keyTargetVariable = "target_variable"
	keyDataPath       = "data_path"
)

// Analysis store errors.
var (
	// ErrAnalysisConfigNotFound indicates the analysis configuration file does not exist.
	ErrAnalysisConfigNotFound = errors.New("analysis configuration file not found")

	// ErrAnalysisConfigCorrupted indicates the file exists but is not a JSON object.
	ErrAnalysisConfigCorrupted = errors.New("analysis configuration file is not a valid JSON object")
)

// AnalysisConfig is the JSON object the notebook reads its inputs from.
// Keys other than target_variable and data_path are kept verbatim, and keys
// are written back in the order they were read.
type AnalysisConfig struct {
	TargetVariable string
	DataPath       string

	extra map[string]json.RawMessage
	order []string
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AnalysisConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("analysis configuration must be a JSON object")
	}

	a.TargetVariable, a.DataPath = "", ""
	if v, ok := raw[keyTargetVariable]; ok {
		if err := json.Unmarshal(v, &a.TargetVariable); err != nil {
			return fmt.Errorf("%s: %w", keyTargetVariable, err)
		}
		delete(raw, keyTargetVariable)
	}
	if v, ok := raw[keyDataPath]; ok {
		if err := json.Unmarshal(v, &a.DataPath); err != nil {
			return fmt.Errorf("%s: %w", keyDataPath, err)
		}
		delete(raw, keyDataPath)
	}
	a.extra = raw

	order, err := objectKeys(data)
	if err != nil {
		return err
	}
	a.order = order
	return nil
}

// objectKeys returns the top-level keys of a JSON object in document order.
// A repeated key keeps its first position.
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// MarshalJSON implements json.Marshaler. Keys read from the file keep their
// position; known keys that were absent are appended.
func (a AnalysisConfig) MarshalJSON() ([]byte, error) {
	keys := append([]string(nil), a.order...)
	for _, k := range []string{keyTargetVariable, keyDataPath} {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(a.extra)) {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		value, err := a.value(k)
		if err != nil {
			return nil, err
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a AnalysisConfig) value(key string) ([]byte, error) {
	switch key {
	case keyTargetVariable:
		return json.Marshal(a.TargetVariable)
	case keyDataPath:
		return json.Marshal(a.DataPath)
	default:
		return a.extra[key], nil
	}
}

// Extra returns the value of a key the program does not interpret.
func (a AnalysisConfig) Extra(key string) (json.RawMessage, bool) {
	v, ok := a.extra[key]
	return v, ok
}

// AnalysisStore reads and writes the analysis configuration file. Every
// operation reads or writes the whole object; there are no partial updates.
type AnalysisStore struct {
	path         string
	dataPathBase string
}

// NewAnalysisStore creates a store for the file at path. data_path values are
// stored relative to dataPathBase.
func NewAnalysisStore(path, dataPathBase string) *AnalysisStore {
	return &AnalysisStore{path: path, dataPathBase: dataPathBase}
}

// AnalysisStore returns the store configured for this workspace.
func (c *Config) AnalysisStore() *AnalysisStore {
	return NewAnalysisStore(
		c.Path(c.Workspace.AnalysisConfig),
		c.Path(c.Workspace.DataPathBase),
	)
}

// Path returns the file the store operates on.
func (s *AnalysisStore) Path() string {
	return s.path
}

// Exists reports whether the file is present.
func (s *AnalysisStore) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load reads the whole file.
func (s *AnalysisStore) Load() (*AnalysisConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrAnalysisConfigNotFound, s.path)
		}
		return nil, fmt.Errorf("reading analysis configuration: %w", err)
	}

	var cfg AnalysisConfig
	if unmarshalErr := json.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisConfigCorrupted, unmarshalErr)
	}
	return &cfg, nil
}

// Save writes the whole file atomically via a temp file.
func (s *AnalysisStore) Save(cfg *AnalysisConfig) error {
	if cfg == nil {
		return errors.New("analysis configuration cannot be nil")
	}

	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling analysis configuration: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(s.path), 0o750); mkdirErr != nil {
		return fmt.Errorf("creating analysis configuration directory: %w", mkdirErr)
	}

	tmpPath := s.path + ".tmp"
	//nolint:gosec // the notebook reads this file too.
	if writeErr := os.WriteFile(tmpPath, data, 0o644); writeErr != nil {
		return fmt.Errorf("writing analysis configuration temp file: %w", writeErr)
	}

	if renameErr := os.Rename(tmpPath, s.path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming analysis configuration temp file: %w", renameErr)
	}

	return nil
}

// Update loads the file, applies fn and writes the result. Nothing is written
// when loading or fn fails.
func (s *AnalysisStore) Update(fn func(*AnalysisConfig) error) (*AnalysisConfig, error) {
	cfg, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err = fn(cfg); err != nil {
		return nil, err
	}
	if err = s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RelDataPath converts a dataset path into the form stored in data_path:
// relative to the data path base directory, with forward slashes.
func (s *AnalysisStore) RelDataPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving dataset path: %w", err)
	}
	base, err := filepath.Abs(s.dataPathBase)
	if err != nil {
		return "", fmt.Errorf("resolving data path base: %w", err)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", fmt.Errorf("relativizing dataset path: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

// SetDataPath points data_path at the dataset file at path.
func (s *AnalysisStore) SetDataPath(path string) (*AnalysisConfig, error) {
	rel, err := s.RelDataPath(path)
	if err != nil {
		return nil, err
	}
	return s.Update(func(cfg *AnalysisConfig) error {
		cfg.DataPath = rel
		return nil
	})
}

// SetTargetVariable replaces target_variable.
func (s *AnalysisStore) SetTargetVariable(value string) (*AnalysisConfig, error) {
	return s.Update(func(cfg *AnalysisConfig) error {
		cfg.TargetVariable = value
		return nil
	})
}

// Apply writes an edit from the configuration form: target_variable is
// always replaced, data_path only when datasetPath is not empty.
func (s *AnalysisStore) Apply(target, datasetPath string) (*AnalysisConfig, error) {
	var rel string
	if datasetPath != "" {
		var err error
		if rel, err = s.RelDataPath(datasetPath); err != nil {
			return nil, err
		}
	}
	return s.Update(func(cfg *AnalysisConfig) error {
		cfg.TargetVariable = target
		if rel != "" {
			cfg.DataPath = rel
		}
		return nil
	})
}

// ResolveDataPath returns the file a data_path value points at.
func (s *AnalysisStore) ResolveDataPath(dataPath string) string {
	if dataPath == "" {
		return ""
	}
	p := filepath.FromSlash(dataPath)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.dataPathBase, p)
}
