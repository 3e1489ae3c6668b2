// Package environment loads runner configuration from an optional TOML
// file, a .env file and RUNNER_* environment variables, in that order
// of increasing precedence.
package environment

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/programme-lv/runner/internal/xdg"
)

const configFileName = "runner.toml"

// ToolchainConfig overrides the compiler and interpreter binaries the
// runner invokes. Empty fields keep the built-in defaults.
type ToolchainConfig struct {
	Python string `toml:"python"`
	CC     string `toml:"cc"`
	CXX    string `toml:"cxx"`
	Java   string `toml:"java"`
	Javac  string `toml:"javac"`
	Jar    string `toml:"jar"`
	Rustc  string `toml:"rustc"`
}

type Config struct {
	CommandPath   string          `toml:"command_path"`
	LogLevel      string          `toml:"log_level"`
	WorkDir       string          `toml:"work_dir"`
	BaselineArgv  []string        `toml:"baseline_argv"`
	BaselineRuns  int             `toml:"baseline_runs"`
	EnforceRlimit bool            `toml:"enforce_rlimit"`
	Toolchain     ToolchainConfig `toml:"toolchain"`
}

func Defaults() Config {
	return Config{
		CommandPath:  "command",
		LogLevel:     "info",
		WorkDir:      ".",
		BaselineArgv: []string{"true"},
		BaselineRuns: 3,
	}
}

// Load builds the effective configuration. When explicitPath is empty
// the config file is searched for in the working directory and the XDG
// config directories; a missing file is not an error.
func Load(explicitPath string) (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	path := explicitPath
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func findConfigFile() string {
	dirs := append([]string{"."}, xdg.ConfigDirs("runner")...)
	for _, dir := range dirs {
		path := filepath.Join(dir, configFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RUNNER_COMMAND_PATH"); v != "" {
		cfg.CommandPath = v
	}
	if v := os.Getenv("RUNNER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("RUNNER_WORK_DIR"); v != "" {
		cfg.WorkDir = v
	}
	if v := os.Getenv("RUNNER_BASELINE_RUNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BaselineRuns = n
		}
	}
	if v := os.Getenv("RUNNER_ENFORCE_RLIMIT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EnforceRlimit = b
		}
	}
	if v := os.Getenv("RUNNER_PYTHON"); v != "" {
		cfg.Toolchain.Python = v
	}
	if v := os.Getenv("RUNNER_CC"); v != "" {
		cfg.Toolchain.CC = v
	}
	if v := os.Getenv("RUNNER_CXX"); v != "" {
		cfg.Toolchain.CXX = v
	}
	if v := os.Getenv("RUNNER_JAVA"); v != "" {
		cfg.Toolchain.Java = v
	}
	if v := os.Getenv("RUNNER_JAVAC"); v != "" {
		cfg.Toolchain.Javac = v
	}
	if v := os.Getenv("RUNNER_JAR"); v != "" {
		cfg.Toolchain.Jar = v
	}
	if v := os.Getenv("RUNNER_RUSTC"); v != "" {
		cfg.Toolchain.Rustc = v
	}
}
