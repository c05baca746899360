package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved configuration of one run. Values come from, in
// increasing precedence: flag defaults, the config file, LC_* environment
// variables and flags set on the command line.
type Config struct {
	Path      string `mapstructure:"path"`
	Display   bool   `mapstructure:"display"`
	Hidden    bool   `mapstructure:"hidden"`
	Gitignore bool   `mapstructure:"gitignore"`
	NoBytes   bool   `mapstructure:"no-bytes"`
	Threads   int    `mapstructure:"threads"`

	Tokens        bool   `mapstructure:"tokens"`
	Tokenizer     string `mapstructure:"tokenizer"`
	Model         string `mapstructure:"model"`
	TokenizerFile string `mapstructure:"tokenizer-file"`

	Languages   bool   `mapstructure:"languages"`
	Clipboard   bool   `mapstructure:"clipboard"`
	Interactive bool   `mapstructure:"interactive"`
	Format      string `mapstructure:"format"`
	NoColor     bool   `mapstructure:"no-color"`
	LogLevel    string `mapstructure:"log-level"`
}

// loadConfig layers the config file and environment under flags. cfgFile
// overrides the default search of $HOME/.config/lc and the working directory.
// It returns the path of the config file used, if any.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet, cfgFile string) (Config, string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "lc"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	v.SetEnvPrefix("LC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return Config{}, "", fmt.Errorf("error binding flags: %w", err)
	}

	used := ""
	if err := v.ReadInConfig(); err != nil {
		// Only a searched-for file may be absent; an explicit --config must exist.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("error decoding config: %w", err)
	}
	if cfg.Threads < 0 {
		return Config{}, "", fmt.Errorf("threads must not be negative, got %d", cfg.Threads)
	}
	return cfg, used, nil
}
