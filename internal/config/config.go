// Package config 负责加载和校验 linecount 的配置。
// 配置来源优先级：命令行参数 > 环境变量 > 配置文件 > 默认值。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
)

// 配置校验错误。
var (
	ErrInvalidFormat      = errors.New("unsupported format, allowed values: table, json, yaml")
	ErrInvalidLogLevel    = errors.New("unsupported log level, allowed values: debug, info, warn, error")
	ErrInvalidMaxFileSize = errors.New("invalid max file size")
)

// 默认配置值。
const (
	DefaultFormat      = "table"
	DefaultLogLevel    = "warn"
	DefaultMaxFileSize = "0"
)

// 支持的输出格式。
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Config 保存一次统计所需的全部配置。
type Config struct {
	Recursive    bool     `mapstructure:"recursive"`
	IncludeFiles []string `mapstructure:"include_files"`
	ExcludeFiles []string `mapstructure:"exclude_files"`
	ExcludeDirs  []string `mapstructure:"exclude_dirs"`
	MaxFileSize  string   `mapstructure:"max_file_size"`
	SkipVendored bool     `mapstructure:"skip_vendored"`
	Format       string   `mapstructure:"format"`
	Output       string   `mapstructure:"output"`
	LogLevel     string   `mapstructure:"log_level"`
	NoColor      bool     `mapstructure:"no_color"`
}

// Validate 校验配置取值。
func (c *Config) Validate() error {
	switch c.NormalizedFormat() {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if _, err := c.MaxFileSizeBytes(); err != nil {
		return err
	}

	return nil
}

// NormalizedFormat 返回小写并去掉空白后的输出格式，空值视为 table。
func (c *Config) NormalizedFormat() string {
	format := strings.ToLower(strings.TrimSpace(c.Format))
	if format == "" {
		return DefaultFormat
	}
	return format
}

// SlogLevel 把配置中的日志级别转换为 slog.Level。
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
}

// MaxFileSizeBytes 解析 humanize 格式的大小（如 "512KB"、"1MiB"），0 表示不限制。
func (c *Config) MaxFileSizeBytes() (int64, error) {
	trimmed := strings.TrimSpace(c.MaxFileSize)
	if trimmed == "" || trimmed == "0" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidMaxFileSize, c.MaxFileSize, err)
	}
	return int64(size), nil
}
