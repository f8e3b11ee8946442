package scanner

import (
	"errors"
	"fmt"
	"io/fs"
)

// 扫描器对外暴露的错误类型，调用方通过 errors.Is 判断。
var (
	// ErrDecode 表示文件内容无法按 UTF-8 文本解码。
	ErrDecode = errors.New("file is not valid text")
	// ErrPermission 表示没有权限读取文件。
	ErrPermission = errors.New("permission denied")
	// ErrPathNotFound 表示给定路径不存在。
	ErrPathNotFound = errors.New("path does not exist")
	// ErrNotDirectory 表示目录统计入口收到的不是目录。
	ErrNotDirectory = errors.New("path is not a directory")
)

// classifyOpenError 把 os 层错误映射为扫描器错误，同时保留原始错误。
func classifyOpenError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("open %s: %w: %w", path, ErrPermission, err)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("open %s: %w: %w", path, ErrPathNotFound, err)
	default:
		return fmt.Errorf("open %s: %w", path, err)
	}
}

// Reason 返回错误对应的简短原因，用于 Result.Skipped。
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrPermission):
		return "permission"
	case errors.Is(err, ErrPathNotFound):
		return "not-found"
	default:
		return "io"
	}
}
