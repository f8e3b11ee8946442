package scanner

import (
	"path/filepath"
	"strings"

	"github.com/src-d/enry/v2"
)

// Filter 描述基于名称子串的文件与目录过滤规则。
//
// 规则说明：
// - ExcludeFiles：文件名包含任意子串即排除
// - IncludeFiles：非空时，文件名必须包含至少一个子串
// - ExcludeDirs：相对根目录的路径包含任意子串时不再深入
// - 排除优先于包含；空字符串模式会被忽略
type Filter struct {
	IncludeFiles []string
	ExcludeFiles []string
	ExcludeDirs  []string
	// MaxFileSize 为 0 表示不限制文件大小。
	MaxFileSize int64
	// SkipVendored 启用后跳过 vendor、node_modules 等第三方目录与文件。
	SkipVendored bool
}

// Normalize 返回去掉空白与空模式后的副本。
func (f Filter) Normalize() Filter {
	f.IncludeFiles = cleanPatterns(f.IncludeFiles)
	f.ExcludeFiles = cleanPatterns(f.ExcludeFiles)
	f.ExcludeDirs = cleanPatterns(f.ExcludeDirs)
	return f
}

// AcceptFile 判断文件是否参与统计。
// name 为文件名，relativePath 为相对根目录的 slash 路径，size 为文件字节数。
func (f Filter) AcceptFile(name string, relativePath string, size int64) bool {
	if containsAny(name, f.ExcludeFiles) {
		return false
	}
	if len(f.IncludeFiles) > 0 && !containsAny(name, f.IncludeFiles) {
		return false
	}
	if f.SkipVendored && enry.IsVendor(relativePath) {
		return false
	}
	if f.MaxFileSize > 0 && size > f.MaxFileSize {
		return false
	}
	return true
}

// AcceptDir 判断是否继续深入某个子目录。
// relativePath 为相对根目录的 slash 路径，根目录本身总是被接受。
func (f Filter) AcceptDir(relativePath string) bool {
	if relativePath == "." || relativePath == "" {
		return true
	}
	if containsAny(relativePath, f.ExcludeDirs) {
		return false
	}
	if f.SkipVendored && enry.IsVendor(relativePath+"/") {
		return false
	}
	return true
}

// containsAny 判断 value 是否包含任意一个子串。
func containsAny(value string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(value, pattern) {
			return true
		}
	}
	return false
}

// cleanPatterns 去掉模式两侧空白并丢弃空模式，空子串会匹配所有名称。
func cleanPatterns(patterns []string) []string {
	if len(patterns) == 0 {
		return nil
	}

	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		result = append(result, trimmed)
	}
	return result
}

// relativeSlashPath 返回 path 相对 root 的 slash 路径，失败时退回 path 本身。
func relativeSlashPath(root string, path string) string {
	relativePath, err := filepath.Rel(root, path)
	if err != nil {
		relativePath = path
	}
	return filepath.ToSlash(relativePath)
}
