package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = "itemstat"
	envPrefix  = "ITEMSTAT"
)

// FlagKeys maps configuration keys to the command-line flags that
// override them.
var FlagKeys = map[string]string{
	"follow_links":    "follow-links",
	"one_file_system": "one-file-system",
	"hidden":          "hidden",
	"exclude":         "exclude",
	"depth":           "depth",
	"workers":         "workers",
	"keep_going":      "keep-going",
	"output":          "output",
	"log.level":       "log-level",
	"log.format":      "log-format",
	"log.file.path":   "log-file",
}

// DefaultConfigPaths returns the directories searched for itemstat.yaml.
func DefaultConfigPaths() []string {
	paths := []string{"."}

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "itemstat"))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "itemstat"))
	}
	return paths
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("follow_links", false)
	v.SetDefault("one_file_system", false)
	v.SetDefault("hidden", true)
	v.SetDefault("exclude", []string{})
	v.SetDefault("depth", 0)
	v.SetDefault("workers", 0)
	v.SetDefault("keep_going", false)
	v.SetDefault("output", "plain")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file.path", "")
	v.SetDefault("log.file.max_size_mb", 10)
	v.SetDefault("log.file.max_age_days", 0)
	v.SetDefault("log.file.max_backups", 3)
	v.SetDefault("log.file.compress", false)
}

// Load builds the configuration. A non-empty path must point to a
// readable file; otherwise itemstat.yaml is looked up in the default
// locations and its absence is not an error. Flags changed on the command
// line win over the environment, which wins over the file.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("%w: binding flag %s: %v", ErrInvalid, name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		for _, p := range DefaultConfigPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
