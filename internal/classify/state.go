package classify

// State 是跨行传递的最小状态机：普通状态或处于未闭合的块注释中。
// 每个文件开始时都是 Normal，不在文件之间共享。
type State uint8

const (
	// Normal 表示当前不在块注释内。
	Normal State = iota
	// InBlockComment 表示当前位于尚未闭合的 /* ... */ 中。
	InBlockComment
)

// String 返回状态名称，便于日志输出。
func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case InBlockComment:
		return "in-block-comment"
	default:
		return "unknown"
	}
}

// Category 表示一行的分类结果，三类互斥且穷尽。
type Category uint8

const (
	// Source 表示代码行（SLOC）。
	Source Category = iota
	// Comment 表示整行或部分为注释的行。
	Comment
	// Blank 表示只包含空白字符的行。
	Blank
)

// String 返回分类名称。
func (c Category) String() string {
	switch c {
	case Source:
		return "source"
	case Comment:
		return "comment"
	case Blank:
		return "blank"
	default:
		return "unknown"
	}
}
