package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/teranos/rsbind/errors"
)

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper

	// explicitFile is the --config path, merged above every discovered file
	explicitFile string

	// loadedFiles lists config files merged into the current instance, lowest precedence first
	loadedFiles []string

	// keySources records which file last set each key
	keySources map[string]SourceInfo
)

// SetConfigFile sets an explicit config file (the --config flag) and clears the cache
func SetConfigFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	explicitFile = path
	globalConfig = nil
	viperInstance = nil
}

// Load reads the rsbind configuration using Viper
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() (*viper.Viper, error) {
	mu.Lock()
	defer mu.Unlock()
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path on top of the defaults,
// without consulting the environment or any other file
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config from %s", configPath)
	}
	return config, nil
}

// LoadedFiles returns the config files merged into the active configuration
func LoadedFiles() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(loadedFiles))
	copy(out, loadedFiles)
	return out
}

// Reset clears the cached configuration (useful for testing and watch reloads)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	loadedFiles = nil
	keySources = nil
}

// initViper initializes Viper with configuration sources and defaults.
// Callers hold mu.
func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	// .env is optional; values already in the environment win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to read .env")
	}

	v := viper.New()

	// RSBIND_OUTPUT_DIR -> output.dir
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := mergeConfigFiles(v); err != nil {
		return nil, err
	}

	viperInstance = v
	return v, nil
}

// candidatePaths returns the config files consulted, lowest precedence first
func candidatePaths() []string {
	var paths []string
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, UserConfigDir, UserConfigName))
	}
	if wd, err := os.Getwd(); err == nil {
		if project := findProjectConfigFrom(wd); project != "" {
			paths = append(paths, project)
		}
	}
	if explicitFile != "" {
		paths = append(paths, explicitFile)
	}
	return paths
}

// findProjectConfigFrom searches for rsbind.toml by walking up the directory tree.
// Returns the path to the first config file found, or empty string if none found.
func findProjectConfigFrom(dir string) string {
	for {
		path := filepath.Join(dir, ProjectConfigName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges configuration files in precedence order.
// Precedence (lowest to highest): defaults < user < project < --config < env vars
func mergeConfigFiles(v *viper.Viper) error {
	loadedFiles = nil
	keySources = make(map[string]SourceInfo)

	for _, configPath := range candidatePaths() {
		if _, err := os.Stat(configPath); err != nil {
			if configPath == explicitFile {
				return errors.WithHint(
					errors.Wrapf(err, "config file %s", configPath),
					"check the --config path",
				)
			}
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(configPath)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to parse config file %s", configPath)
		}

		settings := tempViper.AllSettings()
		if err := v.MergeConfigMap(settings); err != nil {
			return errors.Wrapf(err, "failed to merge config file %s", configPath)
		}

		source := sourceForPath(configPath)
		for _, key := range tempViper.AllKeys() {
			keySources[key] = SourceInfo{Source: source, Path: configPath}
		}
		loadedFiles = append(loadedFiles, configPath)
	}
	return nil
}

func sourceForPath(path string) ConfigSource {
	switch {
	case path == explicitFile:
		return SourceExplicit
	case filepath.Base(path) == ProjectConfigName:
		return SourceProject
	default:
		return SourceUser
	}
}
