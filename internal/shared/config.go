package shared

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./norms.db"
	} `yaml:"database"`

	Scan struct {
		Root        string `yaml:"root"`          // default scan path
		MaxCommits  int    `yaml:"max_commits"`   // history cap
		MaxFileSize int64  `yaml:"max_file_size"` // content capture cap, bytes
		RequireGit  *bool  `yaml:"require_git"`   // missing .git is fatal (default true)
	} `yaml:"scan"`

	Rules struct {
		Disabled      []string `yaml:"disabled"`
		SubjectMaxLen int      `yaml:"subject_max_len"` // commit subject limit
		BodyWrapLimit int      `yaml:"body_wrap_limit"` // commit body wrap width
		Packs         []string `yaml:"packs"`           // YAML rule pack paths
	} `yaml:"rules"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Server struct {
		Addr           string   `yaml:"addr"`
		SessionMinutes int      `yaml:"session_minutes"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func (c Config) RequireGit() bool {
	if c.Scan.RequireGit == nil {
		return true
	}
	return *c.Scan.RequireGit
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./norms.db"
	c.Scan.Root = "."
	c.Scan.MaxCommits = 100
	c.Rules.SubjectMaxLen = 50
	c.Rules.BodyWrapLimit = 72
	c.Reporting.OutDir = "./reports"
	c.Server.Addr = ":8787"
	c.Server.SessionMinutes = 720
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

// LoadConfig reads an optional YAML config and applies env overrides. An
// explicitly named file that cannot be read or parsed is an error; only an
// empty path falls back to defaults silently.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("NORMS_ROOT"); v != "" {
		c.Scan.Root = v
	}
	if v := os.Getenv("NORMS_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("NORMS_MAX_COMMITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Scan.MaxCommits = n
		}
	}
	if v := os.Getenv("NORMS_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("NORMS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("NORMS_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	return c, nil
}
