// Package config resolves server settings from defaults, an optional YAML
// file, an optional .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/igorls/fontawesome-mcp/src/auth"
	"github.com/igorls/fontawesome-mcp/src/catalog"
)

// Environment variable names. The first name of each group wins over the
// aliases after it.
var (
	TokenVars     = []string{"FA_TOKEN", "FONTAWESOME_API_TOKEN"}
	FrameworkVars = []string{"FRAMEWORK", "FA_FRAMEWORK"}
	APIURLVars    = []string{"FA_API_URL"}
	TokenURLVars  = []string{"FA_TOKEN_URL"}
	LogLevelVars  = []string{"FA_LOG_LEVEL"}
)

// DefaultEnvFile is read when present.
const DefaultEnvFile = ".env"

// VariableNotFound is returned when none of the names of a variable is set.
type VariableNotFound struct {
	Names []string
}

func (e *VariableNotFound) Error() string {
	return fmt.Sprintf(
		"variable %s not found, add it to the environment or to a .env file",
		strings.Join(e.Names, " or "),
	)
}

// Variables is a source of named settings.
type Variables interface {
	// Load returns all variables of this source.
	Load() (map[string]string, error)
	// Get returns one variable or *VariableNotFound.
	Get(key string) (string, error)
}

// DotEnv reads variables from a .env file. A missing file holds no variables.
type DotEnv struct {
	Path string
}

func (d DotEnv) Load() (map[string]string, error) {
	vars, err := godotenv.Read(d.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	return vars, err
}

func (d DotEnv) Get(key string) (string, error) {
	vars, err := d.Load()
	if err != nil {
		return "", err
	}
	if v := vars[key]; v != "" {
		return v, nil
	}
	return "", &VariableNotFound{Names: []string{key}}
}

// Environ reads the process environment. Empty values count as unset.
type Environ struct{}

func (Environ) Load() (map[string]string, error) {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && v != "" {
			vars[k] = v
		}
	}
	return vars, nil
}

func (Environ) Get(key string) (string, error) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v, nil
	}
	return "", &VariableNotFound{Names: []string{key}}
}

// Config holds every setting of the server.
type Config struct {
	APIToken  string `yaml:"api_token"`
	Framework string `yaml:"framework"`
	APIURL    string `yaml:"api_url"`
	TokenURL  string `yaml:"token_url"`
	LogLevel  string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Framework: "vanilla",
		APIURL:    catalog.DefaultEndpoint,
		TokenURL:  auth.DefaultTokenURL,
		LogLevel:  "info",
	}
}

// Options selects the files Load reads.
type Options struct {
	// ConfigFile is an optional YAML file. When set it must exist.
	ConfigFile string
	// EnvFile is an optional .env file; DefaultEnvFile when empty.
	EnvFile string
}

// Load resolves the configuration: defaults, then the YAML file, then the
// .env file, then the environment.
func Load(opts Options) (Config, error) {
	cfg := Default()
	if opts.ConfigFile != "" {
		if err := cfg.mergeFile(opts.ConfigFile); err != nil {
			return cfg, err
		}
	}
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := cfg.mergeVariables(DotEnv{Path: envFile}, Environ{}); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fromFile Config
	if err := yaml.Unmarshal(raw, &fromFile); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	c.Override(fromFile)
	return nil
}

// mergeVariables overlays sources into one set of variables, later sources
// winning per name, then resolves each alias group once. The first name of a
// group wins whichever source set it.
func (c *Config) mergeVariables(sources ...Variables) error {
	all := make(merged)
	for _, src := range sources {
		vars, err := src.Load()
		if err != nil {
			return err
		}
		for k, v := range vars {
			if v != "" {
				all[k] = v
			}
		}
	}

	fields := []struct {
		names []string
		dst   *string
	}{
		{TokenVars, &c.APIToken},
		{FrameworkVars, &c.Framework},
		{APIURLVars, &c.APIURL},
		{TokenURLVars, &c.TokenURL},
		{LogLevelVars, &c.LogLevel},
	}
	for _, f := range fields {
		v, err := Lookup(all, f.names...)
		if err != nil {
			continue
		}
		*f.dst = v
	}
	return nil
}

// merged is the union of several sources.
type merged map[string]string

func (m merged) Load() (map[string]string, error) { return m, nil }

func (m merged) Get(key string) (string, error) {
	if v := m[key]; v != "" {
		return v, nil
	}
	return "", &VariableNotFound{Names: []string{key}}
}

// Lookup returns the value of the first of names set in src.
func Lookup(src Variables, names ...string) (string, error) {
	for _, name := range names {
		v, err := src.Get(name)
		if err == nil {
			return v, nil
		}
		var nf *VariableNotFound
		if !errors.As(err, &nf) {
			return "", err
		}
	}
	return "", &VariableNotFound{Names: names}
}

// Override copies every non-empty field of o into c.
func (c *Config) Override(o Config) {
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&c.APIToken, o.APIToken)
	set(&c.Framework, o.Framework)
	set(&c.APIURL, o.APIURL)
	set(&c.TokenURL, o.TokenURL)
	set(&c.LogLevel, o.LogLevel)
}

// RequireToken fails with *VariableNotFound when no API token is configured.
func (c Config) RequireToken() error {
	if strings.TrimSpace(c.APIToken) == "" {
		return &VariableNotFound{Names: TokenVars}
	}
	return nil
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
