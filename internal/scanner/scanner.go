// Package scanner 提供目录遍历与结果聚合能力。
// 该层负责文件读取、过滤、容错和汇总，单行分类交给 classify 包。
package scanner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"linecount/internal/classify"
	"linecount/internal/model"
)

// utf8BOM 是部分编辑器写在文件开头的字节序标记。
const utf8BOM = "\ufeff"

// Service 是统计服务对象。
// 扫描过程是单线程同步的：一个文件读完并关闭后才处理下一个。
type Service struct {
	logger *slog.Logger
}

// Option 用于定制 Service。
type Option func(*Service)

// WithLogger 设置扫描日志输出，nil 会被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService 创建统计服务。
func NewService(options ...Option) *Service {
	service := &Service{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// CountPath 统计文件或目录，是命令层使用的统一入口。
// 路径不存在时返回 ErrPathNotFound；单文件的错误直接返回给调用方。
func (s *Service) CountPath(ctx context.Context, targetPath string, recursive bool, filter Filter) (model.Result, error) {
	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return model.Result{}, errors.New("path is empty")
	}

	info, err := os.Stat(trimmedPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Result{}, fmt.Errorf("%s: %w", trimmedPath, ErrPathNotFound)
		}
		return model.Result{}, fmt.Errorf("stat path: %w", err)
	}

	if !info.IsDir() {
		stats, countErr := s.CountFile(trimmedPath)
		if countErr != nil {
			return model.Result{}, countErr
		}

		result := model.NewResult(trimmedPath, model.TargetFile)
		result.Files = append(result.Files, stats)
		result.Total = stats
		return result, nil
	}

	if recursive {
		return s.CountDirectoryRecursive(ctx, trimmedPath, filter)
	}
	return s.CountDirectory(ctx, trimmedPath, filter)
}

// CountFile 统计单个文件。
// 文件句柄在所有返回路径上都会被关闭；无法解码时返回 ErrDecode，
// 无权限时返回 ErrPermission。
func (s *Service) CountFile(path string) (model.LineStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.LineStats{}, classifyOpenError(path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	stats, err := countLines(file)
	if err != nil {
		return model.LineStats{}, fmt.Errorf("count %s: %w", path, err)
	}

	stats.Path = path
	return stats, nil
}

// CountDirectory 非递归统计目录下的直接文件。
// 子目录与指向目录的符号链接被忽略，结果按文件名字典序排列。
func (s *Service) CountDirectory(ctx context.Context, root string, filter Filter) (model.Result, error) {
	if err := requireDirectory(root); err != nil {
		return model.Result{}, err
	}

	filter = filter.Normalize()
	result := model.NewResult(root, model.TargetDirectory)

	// os.ReadDir 返回按文件名排序的条目。
	entries, err := os.ReadDir(root)
	if err != nil {
		return result, fmt.Errorf("read directory: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		path := filepath.Join(root, entry.Name())
		s.visitFile(&result, path, entry, filter)
	}

	return result, nil
}

// CountDirectoryRecursive 递归统计整个目录树。
// 相对路径命中 ExcludeDirs 的子目录不会被深入；无法读取的子目录会被跳过。
func (s *Service) CountDirectoryRecursive(ctx context.Context, root string, filter Filter) (model.Result, error) {
	if err := requireDirectory(root); err != nil {
		return model.Result{}, err
	}

	filter = filter.Normalize()
	result := model.NewResult(root, model.TargetDirectory)
	result.Recursive = true

	// filepath.WalkDir 按字典序遍历，结果顺序在不同平台上一致。
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if path == root {
				return walkErr
			}
			s.logger.Debug("skipping unreadable entry", "path", path, "error", walkErr)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if !filter.AcceptDir(relativeSlashPath(root, path)) {
				s.logger.Debug("skipping excluded directory", "path", path)
				return fs.SkipDir
			}
			return nil
		}

		s.visitFile(&result, path, entry, filter)
		return nil
	})
	if walkErr != nil {
		return result, walkErr
	}

	return result, nil
}

// visitFile 对单个目录条目执行过滤和统计，并把结果折叠进 result。
// 单文件失败只会记录到 Skipped，不会中断遍历。
func (s *Service) visitFile(result *model.Result, path string, entry fs.DirEntry, filter Filter) {
	info, ok := regularFileInfo(path, entry)
	if !ok {
		return
	}

	if !filter.AcceptFile(entry.Name(), relativeSlashPath(result.Root, path), info.Size()) {
		s.logger.Debug("skipping filtered file", "path", path, "size", humanize.IBytes(uint64(info.Size())))
		return
	}

	stats, err := s.CountFile(path)
	if err != nil {
		s.logger.Debug("skipping file", "path", path, "reason", Reason(err), "error", err)
		result.Skipped = append(result.Skipped, model.SkippedFile{
			Path:   path,
			Reason: Reason(err),
		})
		return
	}

	result.Files = append(result.Files, stats)
	result.Total = result.Total.Add(stats)
}

// regularFileInfo 返回条目指向的普通文件信息。
// 符号链接会被解析：指向文件时参与统计，指向目录或已失效时忽略。
func regularFileInfo(path string, entry fs.DirEntry) (fs.FileInfo, bool) {
	if entry.IsDir() {
		return nil, false
	}

	var (
		info fs.FileInfo
		err  error
	)
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err = os.Stat(path)
	} else {
		info, err = entry.Info()
	}
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	return info, true
}

// requireDirectory 校验目录入口的参数。
func requireDirectory(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", root, ErrPathNotFound)
		}
		return fmt.Errorf("stat path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}
	return nil
}

// countLines 逐行读取并分类，返回不含 Path 的统计值。
// 最后一行即使没有换行符也会被统计。
func countLines(reader io.Reader) (model.LineStats, error) {
	var stats model.LineStats

	bufferedReader := bufio.NewReader(reader)
	state := classify.Normal
	first := true

	for {
		line, err := bufferedReader.ReadString('\n')
		// 没有残留字符的 EOF 说明读取完成。
		if errors.Is(err, io.EOF) && len(line) == 0 {
			break
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return stats, err
		}

		if !utf8.ValidString(line) {
			return stats, fmt.Errorf("line %d: %w", stats.Lines+1, ErrDecode)
		}
		if first {
			line = strings.TrimPrefix(line, utf8BOM)
			first = false
		}

		var category classify.Category
		category, state = classify.Classify(classify.NormalizeLine(line), state)

		stats.Lines++
		switch category {
		case classify.Source:
			stats.SourceLines++
		case classify.Comment:
			stats.CommentLines++
		case classify.Blank:
			stats.BlankLines++
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}

	return stats, nil
}
