package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem is the file access the loader needs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem reads the real filesystem.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads path into the process environment without overriding
// variables that are already set.
func (OSFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Options configures Load.
type Options struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	EnvPrefix  string
	Keys       []string
}

// Option configures Load.
type Option func(*Options)

// WithFileSystem replaces the filesystem.
func WithFileSystem(fs FileSystem) Option {
	return func(o *Options) { o.FileSystem = fs }
}

// WithConfigFile sets the YAML file. It must exist.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile sets the .env file. It must exist.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// WithEnvPrefix requires environment variables to start with prefix + "_".
func WithEnvPrefix(prefix string) Option {
	return func(o *Options) { o.EnvPrefix = prefix }
}

// WithKeys makes keys overridable from the environment even when the
// config file does not mention them.
func WithKeys(keys ...string) Option {
	return func(o *Options) { o.Keys = append(o.Keys, keys...) }
}

// Load reads configuration for name into cfg. Without explicit files it
// looks for cmd/<name>/config.yml, config/config.yml and config.yml, and
// for .env next to them. Missing searched-for files are not an error.
func Load(name string, cfg any, opts ...Option) error {
	o := Options{FileSystem: OSFileSystem{}}
	for _, opt := range opts {
		opt(&o)
	}

	configFile, err := resolve(o.FileSystem, o.ConfigFile, configCandidates(name))
	if err != nil {
		return err
	}
	envFile, err := resolve(o.FileSystem, o.EnvFile, envCandidates(name))
	if err != nil {
		return err
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}
	if envFile != "" {
		if err := o.FileSystem.LoadEnv(envFile); err != nil {
			return fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	if o.EnvPrefix != "" {
		v.SetEnvPrefix(o.EnvPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range append(v.AllKeys(), o.Keys...) {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: decode for %s: %w", name, err)
	}
	return nil
}

// resolve returns explicit when set, failing if it is missing, or the
// first existing candidate.
func resolve(fs FileSystem, explicit string, candidates []string) (string, error) {
	if explicit != "" {
		if !fs.Exists(explicit) {
			return "", fmt.Errorf("config: %s does not exist", explicit)
		}
		return explicit, nil
	}
	for _, p := range candidates {
		if fs.Exists(p) {
			return p, nil
		}
	}
	return "", nil
}

func configCandidates(name string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/config.yml", name),
		fmt.Sprintf("../cmd/%s/config.yml", name),
		"./config/config.yml",
		"./config.yml",
	}
}

func envCandidates(name string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/.env", name),
		fmt.Sprintf(".env.%s", name),
		".env",
	}
}
