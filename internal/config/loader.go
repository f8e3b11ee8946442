package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName 是不带扩展名的配置文件名。
const configName = ".linecount"

// configType 是配置文件格式。
const configType = "yaml"

// envPrefix 是环境变量前缀，例如 LINECOUNT_RECURSIVE=true。
const envPrefix = "LINECOUNT"

// LoadConfig 从配置文件、环境变量和默认值加载配置。
// configPath 非空时只读取该文件；否则依次在当前目录和 $HOME 中查找。
// 找不到配置文件不是错误，此时使用默认值。
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	if readErr := viperCfg.ReadInConfig(); readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config
	if err := viperCfg.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("recursive", false)
	viperCfg.SetDefault("include_files", []string{})
	viperCfg.SetDefault("exclude_files", []string{})
	viperCfg.SetDefault("exclude_dirs", []string{})
	viperCfg.SetDefault("max_file_size", DefaultMaxFileSize)
	viperCfg.SetDefault("skip_vendored", false)
	viperCfg.SetDefault("format", DefaultFormat)
	viperCfg.SetDefault("output", "")
	viperCfg.SetDefault("log_level", DefaultLogLevel)
	viperCfg.SetDefault("no_color", false)
}
