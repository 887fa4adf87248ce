package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/prepdir/internal/files/filesystem"
	"github.com/vvka-141/prepdir/internal/filelock"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

//go:embed config.yaml
var bundled embed.FS

// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	// AppName names the per-user config directories.
	AppName = "prepdir"

	// ConfigFileName is the file looked up in every config directory.
	ConfigFileName = "config.yaml"

	// LocalConfigPath is the project config, relative to the working directory.
	LocalConfigPath = ".prepdir/config.yaml"

	// SourceBundled is reported by Load when no config file was found.
	SourceBundled = "bundled"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PREPDIR_"

	// EnvSkipConfigFiles disables the local and home config files when "true".
	EnvSkipConfigFiles = "PREPDIR_SKIP_CONFIG_FILES"
)

type ExcludeConfig struct {
	Directories []string `yaml:"DIRECTORIES"`
	Files       []string `yaml:"FILES"`
}

// Config holds every setting prepdir reads from YAML. Keys keep their
// upper-case spelling so existing config files remain valid.
type Config struct {
	Exclude               ExcludeConfig `yaml:"EXCLUDE"`
	DefaultExtensions     []string      `yaml:"DEFAULT_EXTENSIONS"`
	DefaultOutputFile     string        `yaml:"DEFAULT_OUTPUT_FILE"`
	ScrubHyphenatedUUIDs  bool          `yaml:"SCRUB_HYPHENATED_UUIDS"`
	ScrubHyphenlessUUIDs  bool          `yaml:"SCRUB_HYPHENLESS_UUIDS"`
	ReplacementUUID       string        `yaml:"REPLACEMENT_UUID"`
	UseUniquePlaceholders bool          `yaml:"USE_UNIQUE_PLACEHOLDERS"`
	IgnoreExclusions      bool          `yaml:"IGNORE_EXCLUSIONS"`
	IncludePrepdirFiles   bool          `yaml:"INCLUDE_PREPDIR_FILES"`
	Verbose               bool          `yaml:"VERBOSE"`
}

// LoadOptions controls where Load looks. Zero values fall back to the
// process working directory, the user's home directory and os.Getenv.
type LoadOptions struct {
	// CustomPath is an explicit config file; when set no other file is consulted.
	CustomPath string

	WorkDir string
	HomeDir string

	// ConfigHome is the XDG config directory; defaults to xdg.ConfigHome.
	ConfigHome string

	// Getenv reads environment overrides.
	Getenv func(string) string

	// SkipDotEnv disables reading WorkDir/.env.
	SkipDotEnv bool
}

// Bundled returns the raw default config compiled into the binary.
func Bundled() ([]byte, error) {
	efs := filesystem.NewEmbedFileSystem(bundled, ".")
	return efs.ReadFile(ConfigFileName)
}

// Defaults decodes the bundled config.
func Defaults() (*Config, error) {
	data, err := Bundled()
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("bundled config: %w", err)
	}
	return &cfg, nil
}

// Load resolves the effective configuration and reports which file it came from
// (SourceBundled when none). The chosen file is decoded over the bundled
// defaults, then PREPDIR_* environment variables (and .env entries) override it.
func Load(opts LoadOptions) (*Config, string, error) {
	opts = opts.withDefaults()

	cfg, err := Defaults()
	if err != nil {
		return nil, "", err
	}

	env, err := opts.envLookup()
	if err != nil {
		return nil, "", err
	}

	source := SourceBundled
	path, err := opts.resolve(env)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, "", err
		}
		source = path
	}

	if err := ApplyEnv(cfg, env); err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, source, nil
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.WorkDir == "" {
		if wd, err := os.Getwd(); err == nil {
			o.WorkDir = wd
		}
	}
	if o.HomeDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			o.HomeDir = home
		}
	}
	if o.ConfigHome == "" {
		o.ConfigHome = xdg.ConfigHome
	}
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}
	return o
}

// envLookup layers the process environment over WorkDir/.env.
// A missing .env is fine; an unreadable or malformed one is an error.
func (o LoadOptions) envLookup() (func(string) string, error) {
	var dotenv map[string]string
	if !o.SkipDotEnv && o.WorkDir != "" {
		path := filepath.Join(o.WorkDir, ".env")
		values, err := godotenv.Read(path)
		switch {
		case err == nil:
			dotenv = values
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to read %s: %v: %w", path, err, prepdir.ErrInvalidConfig)
		}
	}
	return func(key string) string {
		if v := o.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}, nil
}

// Candidates lists the config files Load would try, highest precedence first.
func (o LoadOptions) Candidates() []string {
	var paths []string
	if o.WorkDir != "" {
		paths = append(paths, filepath.Join(o.WorkDir, filepath.FromSlash(LocalConfigPath)))
	}
	if o.HomeDir != "" {
		paths = append(paths, filepath.Join(o.HomeDir, "."+AppName, ConfigFileName))
	}
	if o.ConfigHome != "" {
		paths = append(paths, filepath.Join(o.ConfigHome, AppName, ConfigFileName))
	}
	return paths
}

func (o LoadOptions) resolve(env func(string) string) (string, error) {
	if o.CustomPath != "" {
		if _, err := os.Stat(o.CustomPath); err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("%s: %w", o.CustomPath, ErrConfigNotFound)
			}
			return "", err
		}
		return o.CustomPath, nil
	}

	if skip, _ := strconv.ParseBool(env(EnvSkipConfigFiles)); skip {
		return "", nil
	}

	for _, candidate := range o.Candidates() {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("invalid config %s: %v: %w", path, err, prepdir.ErrInvalidConfig)
	}
	return nil
}

// ApplyEnv overrides cfg with PREPDIR_<KEY> variables. Lists are comma separated.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"DEFAULT_OUTPUT_FILE", &cfg.DefaultOutputFile},
		{"REPLACEMENT_UUID", &cfg.ReplacementUUID},
	}
	for _, s := range strs {
		if v := getenv(EnvPrefix + s.key); v != "" {
			*s.dst = v
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"SCRUB_HYPHENATED_UUIDS", &cfg.ScrubHyphenatedUUIDs},
		{"SCRUB_HYPHENLESS_UUIDS", &cfg.ScrubHyphenlessUUIDs},
		{"USE_UNIQUE_PLACEHOLDERS", &cfg.UseUniquePlaceholders},
		{"IGNORE_EXCLUSIONS", &cfg.IgnoreExclusions},
		{"INCLUDE_PREPDIR_FILES", &cfg.IncludePrepdirFiles},
		{"VERBOSE", &cfg.Verbose},
	}
	for _, b := range bools {
		v := getenv(EnvPrefix + b.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s=%q is not a boolean: %w", EnvPrefix, b.key, v, prepdir.ErrInvalidConfig)
		}
		*b.dst = parsed
	}

	if v := getenv(EnvPrefix + "DEFAULT_EXTENSIONS"); v != "" {
		cfg.DefaultExtensions = splitList(v)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate rejects settings prepdir cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DefaultOutputFile) == "" {
		errs = append(errs, fmt.Errorf("DEFAULT_OUTPUT_FILE is required: %w", prepdir.ErrInvalidConfig))
	}
	if c.ReplacementUUID != "" && !prepdir.IsHyphenatedUUID(c.ReplacementUUID) {
		errs = append(errs, fmt.Errorf("REPLACEMENT_UUID %q is not a valid UUID: %w", c.ReplacementUUID, prepdir.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// Init writes the bundled config to path. An existing file is only replaced with force.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists (use --force to overwrite): %w", path, prepdir.ErrInvalidInput)
		}
	}
	data, err := Bundled()
	if err != nil {
		return err
	}
	return filelock.AtomicWrite(path, data)
}
