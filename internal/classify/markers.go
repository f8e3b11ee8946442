package classify

// MarkerKind 区分行注释与块注释。
type MarkerKind string

const (
	// LineMarker 的作用范围到行尾为止。
	LineMarker MarkerKind = "line"
	// BlockMarker 由开始和结束标记界定，可以跨行，不支持嵌套。
	BlockMarker MarkerKind = "block"
)

// MarkerDescriptor 用于对外展示支持的注释标记。
type MarkerDescriptor struct {
	Kind  MarkerKind
	Open  string
	Close string
	Usage string
}

// Markers 返回分类器识别的全部注释标记。
func Markers() []MarkerDescriptor {
	return []MarkerDescriptor{
		{Kind: LineMarker, Open: "//", Usage: "C, C++, Go, Java, JavaScript, Rust"},
		{Kind: LineMarker, Open: "#", Usage: "Python, Ruby, shell, YAML"},
		{Kind: BlockMarker, Open: blockOpen, Close: blockClose, Usage: "C, C++, Go, Java, JavaScript, CSS"},
	}
}
