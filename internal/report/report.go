// Package report 提供 linecount 的输出能力。
// 当前实现支持 table 控制台格式、JSON 与 YAML 格式（含文件导出）。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"linecount/internal/model"
)

// 支持导出的格式。
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var tableHeader = table.Row{"FILEPATH", "LINES", "SLOC", "COMMENT", "BLANK"}

// PrintTable 使用表格展示统计结果。
// 单文件目标只输出该文件一行；目录目标在明细后追加 AVERAGE 与 TOTAL 两行。
func PrintTable(writer io.Writer, result model.Result) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	tbl.AppendHeader(tableHeader)
	for _, item := range result.Files {
		tbl.AppendRow(statsRow(item))
	}

	if result.Target != model.TargetFile {
		if len(result.Files) > 0 {
			tbl.AppendSeparator()
		}
		tbl.AppendRow(statsRow(result.Average()))
		tbl.AppendRow(statsRow(result.Total.WithPath(model.TotalPath)))
	}

	if _, err := fmt.Fprintln(writer, tbl.Render()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// statsRow 把一条统计值转换为表格行。
func statsRow(stats model.LineStats) table.Row {
	return table.Row{stats.Path, stats.Lines, stats.SourceLines, stats.CommentLines, stats.BlankLines}
}

// PrintJSON 把统计结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.Result) error {
	content, err := marshalJSON(result)
	if err != nil {
		return err
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// PrintYAML 把统计结果按 YAML 输出到任意 writer。
func PrintYAML(writer io.Writer, result model.Result) error {
	content, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return nil
}

// WriteFile 将结果按指定格式导出到 path。
// 如果目录不存在会自动创建。
func WriteFile(path string, format string, result model.Result) error {
	var (
		content []byte
		err     error
	)

	switch strings.ToLower(format) {
	case FormatJSON:
		content, err = marshalJSON(result)
	case FormatYAML:
		content, err = yaml.Marshal(result)
		if err != nil {
			err = fmt.Errorf("marshal yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return err
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}

func marshalJSON(result model.Result) ([]byte, error) {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return append(content, '\n'), nil
}
