package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"linecount/internal/config"
	"linecount/internal/model"
	"linecount/internal/report"
	"linecount/internal/scanner"
)

// currentDirectoryAlias 是 shell 未展开时传入的 *，视为当前目录。
const currentDirectoryAlias = "*"

// countOptions 存放统计命令的命令行参数。
// 只有显式设置过的参数才会覆盖配置文件中的值。
type countOptions struct {
	configPath   string
	recursive    bool
	includeFiles []string
	excludeFiles []string
	excludeDirs  []string
	maxFileSize  string
	skipVendored bool
	format       string
	output       string
	verbose      bool
	noColor      bool
}

// userError 是直接展示给用户的错误，保留底层错误供 errors.Is 判断。
type userError struct {
	message string
	err     error
}

func (e *userError) Error() string {
	return e.message
}

func (e *userError) Unwrap() error {
	return e.err
}

// bindFlags 注册统计相关参数。
func (o *countOptions) bindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.configPath, "config", "", "配置文件路径，默认查找 ./.linecount.yaml 与 ~/.linecount.yaml")
	flags.BoolVarP(&o.recursive, "recursive", "r", false, "递归统计子目录")
	flags.StringSliceVarP(&o.includeFiles, "includefiles", "i", nil, "只统计文件名包含这些子串的文件，逗号分隔，例如 .go,.py")
	flags.StringSliceVarP(&o.excludeFiles, "excludefiles", "e", nil, "排除文件名包含这些子串的文件，逗号分隔，例如 .txt,.md")
	flags.StringSliceVarP(&o.excludeDirs, "excludedirs", "d", nil, "排除相对路径包含这些子串的目录，逗号分隔，例如 .git,images")
	flags.StringVar(&o.maxFileSize, "max-file-size", config.DefaultMaxFileSize, "跳过超过该大小的文件，例如 512KB、1MiB，0 表示不限制")
	flags.BoolVar(&o.skipVendored, "skip-vendored", false, "跳过 vendor、node_modules 等第三方代码")
	flags.StringVar(&o.format, "format", config.DefaultFormat, "输出格式: table、json 或 yaml")
	flags.StringVar(&o.output, "output", "", "json/yaml 导出文件路径，为空时只输出到终端")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "输出调试日志（包括被跳过的文件）")
	flags.BoolVar(&o.noColor, "no-color", false, "禁用彩色输出")
}

// resolve 合并配置文件与命令行参数，命令行参数优先。
func (o *countOptions) resolve(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("recursive") {
		cfg.Recursive = o.recursive
	}
	if flags.Changed("includefiles") {
		cfg.IncludeFiles = o.includeFiles
	}
	if flags.Changed("excludefiles") {
		cfg.ExcludeFiles = o.excludeFiles
	}
	if flags.Changed("excludedirs") {
		cfg.ExcludeDirs = o.excludeDirs
	}
	if flags.Changed("max-file-size") {
		cfg.MaxFileSize = o.maxFileSize
	}
	if flags.Changed("skip-vendored") {
		cfg.SkipVendored = o.skipVendored
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("no-color") {
		cfg.NoColor = o.noColor
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Output) != "" && cfg.NormalizedFormat() == config.FormatTable {
		return nil, errors.New("--output requires --format json or yaml")
	}
	return cfg, nil
}

// runCount 执行一次统计并输出结果。
func runCount(cmd *cobra.Command, args []string, options *countOptions) error {
	cfg, err := options.resolve(cmd.Flags())
	if err != nil {
		return err
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	maxFileSize, _ := cfg.MaxFileSizeBytes()
	filter := scanner.Filter{
		IncludeFiles: cfg.IncludeFiles,
		ExcludeFiles: cfg.ExcludeFiles,
		ExcludeDirs:  cfg.ExcludeDirs,
		MaxFileSize:  maxFileSize,
		SkipVendored: cfg.SkipVendored,
	}

	target := targetPath(args)
	logger.Debug("counting", "path", target, "recursive", cfg.Recursive, "format", cfg.NormalizedFormat())

	service := scanner.NewService(scanner.WithLogger(logger))
	result, err := service.CountPath(cmd.Context(), target, cfg.Recursive, filter)
	if err != nil {
		return describeCountError(target, err)
	}

	return render(cmd, cfg, result)
}

// render 按配置输出结果，json/yaml 在设置 output 时同时导出文件。
func render(cmd *cobra.Command, cfg *config.Config, result model.Result) error {
	writer := cmd.OutOrStdout()
	format := cfg.NormalizedFormat()

	switch format {
	case config.FormatTable:
		return report.PrintTable(writer, result)
	case config.FormatJSON:
		if err := report.PrintJSON(writer, result); err != nil {
			return err
		}
	case config.FormatYAML:
		if err := report.PrintYAML(writer, result); err != nil {
			return err
		}
	default:
		return config.ErrInvalidFormat
	}

	outputPath := strings.TrimSpace(cfg.Output)
	if outputPath == "" {
		return nil
	}
	if err := report.WriteFile(outputPath, format, result); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s exported to %s\n", strings.ToUpper(format), outputPath)
	return nil
}

// targetPath 返回要统计的路径，省略或为 * 时使用当前目录。
func targetPath(args []string) string {
	if len(args) == 0 {
		return "."
	}

	target := strings.TrimSpace(args[0])
	if target == "" || target == currentDirectoryAlias {
		return "."
	}
	return target
}

// describeCountError 把扫描器错误转换为面向用户的提示。
func describeCountError(target string, err error) error {
	switch {
	case errors.Is(err, scanner.ErrPathNotFound):
		return &userError{message: fmt.Sprintf("the path %s does not exist", target), err: err}
	case errors.Is(err, scanner.ErrPermission):
		return &userError{message: fmt.Sprintf("you do not have permission to read %s", target), err: err}
	case errors.Is(err, scanner.ErrDecode):
		return &userError{message: fmt.Sprintf("could not decode %s: is it a plain text file?", target), err: err}
	default:
		return err
	}
}
