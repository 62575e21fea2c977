// Package config loads churnlab's application settings (churnlab.yaml) and
// manages the analysis configuration store (a JSON object shared with the
// notebook).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the settings file looked up in the workspace root.
const DefaultFileName = "churnlab.yaml"

// Defaults mirror the layout of the analysis project.
const (
	DefaultNotebook           = "Notebooks/exploracion_inicial_de_data.ipynb"
	DefaultReportsDir         = "Reports"
	DefaultAnalysisConfig     = "Configuracion/config.json"
	DefaultDataDir            = "Data"
	DefaultDatasetDestination = "Data/telco_customer_churn.csv"
	DefaultDataPathBase       = "Code"
	DefaultCacheDir           = ".churnlab/cache"
	DefaultDatasetHandle      = "blastchar/telco-customer-churn"
	DefaultDatasetBaseURL     = "https://www.kaggle.com/api/v1"
	DefaultNotebookCommand    = "jupyter"
	DefaultNotebookTimeout    = 30 * time.Minute
	DefaultPageSize           = 20
	MaxPageSize               = 1000
	DefaultThumbnailSize      = 600
)

// DefaultVisualCategories lists the plot folders written by the notebook.
func DefaultVisualCategories() []string {
	return []string{
		"Visuals/exploracion_inicial",
		"Visuals/preprocesamiento_y_modelado",
		"Visuals/models_ajustados",
		"Visuals/shap",
	}
}

// Validation errors.
var (
	ErrInvalidPageSize   = fmt.Errorf("pager.page_size must be between 1 and %d", MaxPageSize)
	ErrNoCategories      = errors.New("workspace.visuals must list at least one folder")
	ErrInvalidThumbnail  = errors.New("thumbnail bounds must be positive")
	ErrEmptyNotebookPath = errors.New("workspace.notebook cannot be empty")
	ErrConfigExists      = errors.New("configuration file already exists, use --force to overwrite")
)

var validate = validator.New() //nolint:gochecknoglobals // Caches struct metadata across calls.

// fieldErrors maps struct fields to the error reported when their tag fails.
var fieldErrors = map[string]error{ //nolint:gochecknoglobals // Lookup table.
	"Config.Workspace.Notebook":  ErrEmptyNotebookPath,
	"Config.Workspace.Visuals":   ErrNoCategories,
	"Config.Pager.PageSize":      ErrInvalidPageSize,
	"Config.Thumbnail.MaxWidth":  ErrInvalidThumbnail,
	"Config.Thumbnail.MaxHeight": ErrInvalidThumbnail,
}

// WorkspaceConfig holds paths relative to the workspace root.
type WorkspaceConfig struct {
	Notebook           string   `yaml:"notebook" validate:"required"`
	Visuals            []string `yaml:"visuals" validate:"min=1"`
	ReportsDir         string   `yaml:"reports_dir"`
	AnalysisConfig     string   `yaml:"analysis_config"`
	DataDir            string   `yaml:"data_dir"`
	DatasetDestination string   `yaml:"dataset_destination"`
	DataPathBase       string   `yaml:"data_path_base"`
	CacheDir           string   `yaml:"cache_dir"`
}

// PagerConfig controls the report pager.
type PagerConfig struct {
	PageSize int `yaml:"page_size" validate:"min=1,max=1000"`
}

// ThumbnailConfig bounds displayed images.
type ThumbnailConfig struct {
	MaxWidth  int `yaml:"max_width" validate:"gt=0"`
	MaxHeight int `yaml:"max_height" validate:"gt=0"`
}

// NotebookConfig controls notebook execution.
type NotebookConfig struct {
	Command string        `yaml:"command"`
	Timeout time.Duration `yaml:"timeout"`
}

// DatasetConfig controls dataset acquisition.
type DatasetConfig struct {
	Handle  string `yaml:"handle"`
	BaseURL string `yaml:"base_url"`
}

// Config is the application settings document.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Pager     PagerConfig     `yaml:"pager"`
	Thumbnail ThumbnailConfig `yaml:"thumbnail"`
	Notebook  NotebookConfig  `yaml:"notebook"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Logging   LoggingConfig   `yaml:"logging"`

	root       string
	configPath string
}

// New returns a Config with defaults, rooted at root.
func New(root string) *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Notebook:           DefaultNotebook,
			Visuals:            DefaultVisualCategories(),
			ReportsDir:         DefaultReportsDir,
			AnalysisConfig:     DefaultAnalysisConfig,
			DataDir:            DefaultDataDir,
			DatasetDestination: DefaultDatasetDestination,
			DataPathBase:       DefaultDataPathBase,
			CacheDir:           DefaultCacheDir,
		},
		Pager:      PagerConfig{PageSize: DefaultPageSize},
		Thumbnail:  ThumbnailConfig{MaxWidth: DefaultThumbnailSize, MaxHeight: DefaultThumbnailSize},
		Notebook:   NotebookConfig{Command: DefaultNotebookCommand, Timeout: DefaultNotebookTimeout},
		Dataset:    DatasetConfig{Handle: DefaultDatasetHandle, BaseURL: DefaultDatasetBaseURL},
		Logging:    LoggingConfig{Level: "info", Format: "console"},
		root:       root,
		configPath: filepath.Join(root, DefaultFileName),
	}
}

// Load returns defaults rooted at root, overlaid with the settings file at
// path. An empty path means root/churnlab.yaml; a missing file is not an
// error.
func Load(root, path string) (*Config, error) {
	cfg := New(root)
	if path != "" {
		cfg.configPath = path
	}

	if _, err := os.Stat(cfg.configPath); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot access config path %s: %w", cfg.configPath, err)
	}

	if err := MergeYAML(cfg, cfg.configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Root returns the workspace root.
func (c *Config) Root() string {
	return c.root
}

// ConfigPath returns where the settings file is read from and saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath overrides the settings file location.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Path resolves a workspace-relative path. Absolute paths are returned as-is.
func (c *Config) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.root, rel)
}

// Validate checks semantic constraints. The first violated field decides
// the returned error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validating configuration: %w", err)
	}
	fe := fieldErrs[0]
	sentinel, ok := fieldErrors[fe.StructNamespace()]
	if !ok {
		return fmt.Errorf("%s failed %q", fe.Namespace(), fe.Tag())
	}
	if errors.Is(sentinel, ErrInvalidPageSize) {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.Pager.PageSize)
	}
	return sentinel
}

// Save writes the settings file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling configuration: %w", err)
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(c.configPath), 0o750); mkdirErr != nil {
		return fmt.Errorf("creating config directory: %w", mkdirErr)
	}
	//nolint:gosec // settings are meant to be shared with the project.
	if writeErr := os.WriteFile(c.configPath, data, 0o644); writeErr != nil {
		return fmt.Errorf("writing configuration: %w", writeErr)
	}
	return nil
}

// Init writes a default settings file to root/churnlab.yaml. It refuses to
// overwrite an existing file unless force is set.
func Init(root string, force bool) (*Config, error) {
	return InitAt(root, "", force)
}

// InitAt is Init for the settings file at path. An empty path means
// root/churnlab.yaml.
func InitAt(root, path string, force bool) (*Config, error) {
	cfg := New(root)
	if path != "" {
		cfg.configPath = path
	}
	if !force {
		_, err := os.Stat(cfg.configPath)
		if err == nil {
			return nil, ErrConfigExists
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot access config path %s: %w", cfg.configPath, err)
		}
	}
	if err := cfg.Save(); err != nil {
		return nil, err
	}
	return cfg, nil
}
