package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"linecount/internal/classify"
)

// newMarkersCmd 创建 markers 子命令。
// 命令用于展示分类器识别的注释标记。
func newMarkersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markers",
		Short: "展示支持的注释标记",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl := table.NewWriter()
			tbl.SetStyle(table.StyleLight)
			tbl.AppendHeader(table.Row{"KIND", "OPEN", "CLOSE", "TYPICAL LANGUAGES"})

			for _, item := range classify.Markers() {
				closeMarker := item.Close
				if closeMarker == "" {
					closeMarker = "(end of line)"
				}
				tbl.AppendRow(table.Row{string(item.Kind), item.Open, closeMarker, item.Usage})
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
			return err
		},
	}
}
