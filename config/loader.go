package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/linqkit/errors"
	"github.com/kbukum/linqkit/logger"
)

const (
	// FileName is the settings file searched for by Resolver.
	FileName = "linqkit.yml"
	// EnvConfigFile names an env variable holding an explicit settings path.
	EnvConfigFile = "LINQKIT_CONFIG"
)

// envPrefixes maps recognised env variable prefixes to the settings section
// they populate. Variables without one of these prefixes are ignored.
var envPrefixes = []struct{ prefix, section string }{
	{"LINQKIT_", ""},
	{"LOG_", "logger_"},
}

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	Getenv(key string) string
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

func (rfs *RealFileSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// Resolver finds the settings and env files for an application.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns explicit paths if provided, otherwise searches for them.
func (r *Resolver) ResolveFiles(appName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.FileSystem.Getenv(EnvConfigFile)
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.findFirst(searchPaths(appName, FileName))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.findFirst(searchPaths(appName, ".env."+appName))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.findFirst(searchPaths(appName, ".env"))
	}

	return resolved
}

func (r *Resolver) findFirst(paths []string) string {
	for _, path := range paths {
		if r.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// searchPaths lists candidate locations for fileName, most specific first.
func searchPaths(appName, fileName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/%s", appName, fileName),
		fmt.Sprintf("../cmd/%s/%s", appName, fileName),
		fmt.Sprintf("./config/%s", fileName),
		fmt.Sprintf("../config/%s", fileName),
		fmt.Sprintf("./%s", fileName),
		fmt.Sprintf("../%s", fileName),
	}
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// LoadConfig loads settings for appName into cfg. A missing file is not an
// error; a file that exists but cannot be parsed, or values that cannot be
// decoded into cfg, yield INVALID_CONFIG.
func LoadConfig(appName string, cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(appName, lc)

	return loadFromResolvedFiles(appName, cfg, files, lc.FileSystem)
}

func loadFromResolvedFiles(appName string, cfg interface{}, files ResolvedFiles, fs FileSystem) error {
	log := logger.Get("config")
	v := viper.New()

	if files.ConfigFile != "" && fs.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.InvalidConfig(fmt.Sprintf("reading %s", files.ConfigFile)).WithCause(err)
		}
		log.Debug("config file loaded", logger.Fields("file", files.ConfigFile))
	}

	// .env values only fill variables the process does not already set.
	if files.EnvFile != "" && fs.Exists(files.EnvFile) {
		if err := fs.LoadEnv(files.EnvFile); err != nil {
			log.Warn("failed to load .env file", logger.ErrorFields("load_env", err))
		}
	}
	bindEnvVars(v, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return errors.InvalidConfig(fmt.Sprintf("decoding settings for %s", appName)).WithCause(err)
	}
	return nil
}

// bindEnvVars sets every prefixed variable in environ on v under each
// nesting its name could denote.
func bindEnvVars(v *viper.Viper, environ []string) {
	for _, env := range environ {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		name, ok := settingsKey(key)
		if !ok {
			continue
		}
		for _, variant := range generateEnvKeyVariants(name) {
			v.Set(variant, value)
		}
	}
}

// settingsKey strips a recognised prefix from an env variable name.
func settingsKey(envKey string) (string, bool) {
	for _, p := range envPrefixes {
		if rest, ok := strings.CutPrefix(envKey, p.prefix); ok && rest != "" {
			return p.section + rest, true
		}
	}
	return "", false
}

// generateEnvKeyVariants creates all possible key variants for environment variable binding.
// Examples:
//
//	ENUMERABLE_ISOLATION -> [enumerable_isolation, enumerable.isolation]
//	ENUMERABLE_LOG_OPERATIONS -> [..., enumerable.log_operations, ...]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// every split point between a dotted section path and a snake_case leaf
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	return removeDuplicates(variants)
}

func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
