// Package classify 提供基于词法启发式的单行分类能力。
// 该层只负责“给定一行和当前状态，得出分类与新状态”，不负责文件读取。
package classify

import (
	"strings"
)

const (
	blockOpen  = "/*"
	blockClose = "*/"
)

// lineMarkers 是判断“注释独占行”时检查的标记，顺序无关。
var lineMarkers = []string{"//", "#", blockOpen}

// NormalizeLine 用于去除每行末尾的换行符。
// 该函数适配 Windows 的 \r\n 与 Unix 的 \n。
func NormalizeLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line
}

// Classify 根据当前状态对一行做分类，并返回处理完该行后的状态。
//
// 判定顺序：
//  1. 本行出现块注释边界（开始或结束）时记为注释行，即使边界前后还有代码
//  2. 处于块注释内部时记为注释行
//  3. 只包含空白字符时记为空行
//  4. 第一个 //、#、/* 之前只有空白时记为注释行（此处不做引号屏蔽）
//  5. 其余情况记为代码行
func Classify(line string, state State) (Category, State) {
	view := line
	if state != InBlockComment {
		view = Unquote(line)
	}

	next, boundary := blockTransition(view, state)
	if boundary {
		return Comment, next
	}

	if next == InBlockComment {
		return Comment, next
	}

	if strings.TrimSpace(line) == "" {
		return Blank, next
	}

	if startsWithComment(line) {
		return Comment, next
	}

	return Source, next
}

// Unquote 返回去掉双引号字符串内容后的视图，仅用于定位注释标记。
// 紧跟在单个反斜杠之后的引号视为已转义，不切换引号状态。
func Unquote(line string) string {
	if !strings.Contains(line, `"`) {
		return line
	}

	var builder strings.Builder
	builder.Grow(len(line))

	inQuotes := false
	for idx := 0; idx < len(line); idx++ {
		current := line[idx]
		if current == '"' && (idx == 0 || line[idx-1] != '\\') {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			builder.WriteByte(current)
		}
	}

	return builder.String()
}

// blockTransition 判断本行是否出现块注释边界。
// 最后一个 */ 位于最后一个 /* 之后（或没有 /*）时块注释结束；
// 否则只要存在 /* 就进入块注释；两者都没有时状态不变。
func blockTransition(view string, state State) (State, bool) {
	lastClose := strings.LastIndex(view, blockClose)
	lastOpen := strings.LastIndex(view, blockOpen)

	if lastClose > lastOpen {
		return Normal, true
	}
	if lastOpen >= 0 {
		return InBlockComment, true
	}
	return state, false
}

// startsWithComment 判断行首（忽略缩进）是否紧接着注释标记。
// 这里故意使用原始行而不是去引号视图，字符串中的 // 可能导致误判。
func startsWithComment(line string) bool {
	for _, marker := range lineMarkers {
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}
		if strings.TrimSpace(line[:idx]) == "" {
			return true
		}
	}
	return false
}
