// Package model 定义 linecount 的核心数据模型。
// 这些结构会被扫描器、输出层和命令层共同使用。
package model

import "math"

// AveragePath 是平均值行使用的路径标识。
const AveragePath = "AVERAGE"

// TotalPath 是总计行使用的路径标识。
const TotalPath = "TOTAL"

// LineStats 表示一个文件或一组文件的行级统计值。
//
// 注意：
// - 单文件内每一行只属于 SourceLines/CommentLines/BlankLines 之一
// - 聚合结果只累加成功处理的文件，失败文件不计入
// - 值类型，所有组合操作都返回新对象
type LineStats struct {
	Path         string `json:"path" yaml:"path"`
	Lines        int64  `json:"lines" yaml:"lines"`
	SourceLines  int64  `json:"sloc" yaml:"sloc"`
	CommentLines int64  `json:"comment" yaml:"comment"`
	BlankLines   int64  `json:"blank" yaml:"blank"`
}

// Add 返回两个统计值逐字段相加的结果，保留接收者的 Path。
func (s LineStats) Add(other LineStats) LineStats {
	return LineStats{
		Path:         s.Path,
		Lines:        s.Lines + other.Lines,
		SourceLines:  s.SourceLines + other.SourceLines,
		CommentLines: s.CommentLines + other.CommentLines,
		BlankLines:   s.BlankLines + other.BlankLines,
	}
}

// WithPath 返回替换 Path 后的副本。
func (s LineStats) WithPath(path string) LineStats {
	s.Path = path
	return s
}

// Average 返回按文件数求平均后的统计值。
// 取整规则为四舍六入五成双（math.RoundToEven），files 为 0 时各字段为 0。
func (s LineStats) Average(files int) LineStats {
	average := LineStats{Path: AveragePath}
	if files <= 0 {
		return average
	}

	divide := func(value int64) int64 {
		return int64(math.RoundToEven(float64(value) / float64(files)))
	}

	average.Lines = divide(s.Lines)
	average.SourceLines = divide(s.SourceLines)
	average.CommentLines = divide(s.CommentLines)
	average.BlankLines = divide(s.BlankLines)
	return average
}

// Balanced 判断 Lines 是否恰好等于三类行数之和。
func (s LineStats) Balanced() bool {
	return s.Lines == s.SourceLines+s.CommentLines+s.BlankLines
}
