package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/kelseyhightower/envconfig"
)

// Environment variables that override the settings file.
const (
	EnvWorkdir   = "CHURNLAB_WORKDIR"
	EnvLogLevel  = "CHURNLAB_LOG_LEVEL"
	EnvLogFormat = "CHURNLAB_LOG_FORMAT"
	EnvPageSize  = "CHURNLAB_PAGE_SIZE"
)

var (
	globalConfig   *Config      //nolint:gochecknoglobals // Set once per invocation by the CLI.
	globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects globalConfig.
)

// SetGlobalConfig installs cfg as the configuration for this invocation.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the configuration for this invocation, falling back
// to defaults rooted at the working directory when none was installed.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	root, err := ResolveWorkdir("")
	if err != nil {
		root = "."
	}
	cfg = New(root)
	ApplyEnvOverrides(cfg)
	SetGlobalConfig(cfg)
	return cfg
}

// ResetGlobalConfigForTest clears the installed configuration.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// ResolveWorkdir picks the workspace root. It checks (in order):
//  1. flagValue (--workdir)
//  2. CHURNLAB_WORKDIR
//  3. the current directory
//
// The returned path is absolute.
func ResolveWorkdir(flagValue string) (string, error) {
	dir := flagValue
	if dir == "" {
		dir = os.Getenv(EnvWorkdir)
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Abs(dir)
}

// envPrefix is the prefix of every override variable.
const envPrefix = "CHURNLAB"

// envOverrides lists the settings that can be overridden from the
// environment. Values stay strings so a malformed number is skipped instead
// of failing the command.
type envOverrides struct {
	LogLevel  string `envconfig:"LOG_LEVEL"`
	LogFormat string `envconfig:"LOG_FORMAT"`
	PageSize  string `envconfig:"PAGE_SIZE"`
}

// ApplyEnvOverrides applies CHURNLAB_* environment variables onto cfg.
// Unparseable values are ignored.
func ApplyEnvOverrides(cfg *Config) {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Logging.Format = env.LogFormat
	}
	if env.PageSize != "" {
		if size, err := strconv.Atoi(env.PageSize); err == nil {
			cfg.Pager.PageSize = size
		}
	}
}

// EnsureLogDir ensures the directory for the configured log file exists.
func EnsureLogDir(cfg *Config) error {
	if cfg.Logging.File == "" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(cfg.Path(cfg.Logging.File)), 0o700)
}
