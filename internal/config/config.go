package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 5000
	defaultEnv        = "development"

	defaultDBDriver   = "sqlite"
	defaultSQLitePath = "data/hypothesis.db"

	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel    = "gemini-2.5-flash"

	defaultDataDir = "public/data"
)

// AppConfig holds runtime startup configuration loaded from YAML,
// with environment variables taking precedence for secrets.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	Database       DatabaseConfig `yaml:"database"`
	Gemini         GeminiConfig   `yaml:"gemini"`
	GitHub         GitHubConfig   `yaml:"github"`
	DataDir        string         `yaml:"data_dir"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite" | "mysql"
	Path   string `yaml:"path"`   // sqlite file path
	DSN    string `yaml:"dsn"`    // mysql DSN
}

type GeminiConfig struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

type GitHubConfig struct {
	Token string `yaml:"token"`
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
}

// Load reads the YAML config file, fills defaults, and applies
// environment overrides. A missing file is not an error; defaults
// plus environment variables are used instead.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		}
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	normalize(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.Database.Driver != "sqlite" && cfg.Database.Driver != "mysql" {
		return nil, fmt.Errorf("invalid database.driver %q, expected sqlite or mysql", cfg.Database.Driver)
	}
	if cfg.Database.Driver == "mysql" && cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required for the mysql driver")
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Driver: defaultDBDriver,
			Path:   defaultSQLitePath,
		},
		Gemini: GeminiConfig{
			Endpoint: defaultGeminiEndpoint,
			Model:    defaultGeminiModel,
		},
		DataDir: defaultDataDir,
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); v != "" {
		cfg.GitHub.Token = v
	}
	if v := strings.TrimSpace(os.Getenv("GITHUB_REPOSITORY_OWNER")); v != "" {
		cfg.GitHub.Owner = v
	}
	if v := strings.TrimSpace(os.Getenv("GITHUB_REPOSITORY_NAME")); v != "" {
		cfg.GitHub.Repo = v
	}
}

func normalize(cfg *AppConfig) {
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = defaultDBDriver
	}
	if strings.TrimSpace(cfg.Database.Path) == "" {
		cfg.Database.Path = defaultSQLitePath
	}
	cfg.Gemini.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Gemini.Endpoint), "/")
	if cfg.Gemini.Endpoint == "" {
		cfg.Gemini.Endpoint = defaultGeminiEndpoint
	}
	if strings.TrimSpace(cfg.Gemini.Model) == "" {
		cfg.Gemini.Model = defaultGeminiModel
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = defaultDataDir
	}

	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.AllowedOrigins = origins
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}
