package model

// TargetKind 描述被统计路径的类型。
type TargetKind string

const (
	// TargetFile 表示用户直接指定了单个文件。
	TargetFile TargetKind = "file"
	// TargetDirectory 表示用户指定了目录。
	TargetDirectory TargetKind = "directory"
)

// SkippedFile 记录遍历过程中被跳过的文件。
// 设计为“错误不阻断全量统计”，跳过的文件既不出现在 Files 中，也不计入 Total。
type SkippedFile struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// Result 是一次统计的完整输出模型。
// 包含文件级明细、总计和被跳过的文件列表。
type Result struct {
	Root      string        `json:"root" yaml:"root"`
	Target    TargetKind    `json:"target" yaml:"target"`
	Recursive bool          `json:"recursive" yaml:"recursive"`
	Total     LineStats     `json:"total" yaml:"total"`
	Files     []LineStats   `json:"files" yaml:"files"`
	Skipped   []SkippedFile `json:"skipped" yaml:"skipped"`
}

// NewResult 创建一个空结果，Total.Path 固定为 root。
func NewResult(root string, target TargetKind) Result {
	return Result{
		Root:    root,
		Target:  target,
		Total:   LineStats{Path: root},
		Files:   make([]LineStats, 0),
		Skipped: make([]SkippedFile, 0),
	}
}

// Average 返回 Total 按成功统计文件数求得的平均值。
func (r Result) Average() LineStats {
	return r.Total.Average(len(r.Files))
}
