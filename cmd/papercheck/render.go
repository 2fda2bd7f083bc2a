package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/baditaflorin/go_text_similarity/pkg/similarity"
)

type breakdownRow struct {
	name  string
	value string
}

func breakdownRows(sim *similarity.Similarity, original, comparison string) []breakdownRow {
	result := sim.Compare(original, comparison)
	return []breakdownRow{
		{"path", string(result.Path)},
		{"tokens (original)", fmt.Sprintf("%d", result.Tokens1)},
		{"tokens (comparison)", fmt.Sprintf("%d", result.Tokens2)},
		{"cosine", fmt.Sprintf("%.4f", sim.Cosine(original, comparison))},
		{"edit", fmt.Sprintf("%.4f", sim.Edit(original, comparison))},
		{"jaccard", fmt.Sprintf("%.4f", sim.Jaccard(original, comparison))},
		{"comprehensive", fmt.Sprintf("%.4f", sim.Comprehensive(original, comparison))},
		{"score", fmt.Sprintf("%.4f", result.Score)},
		{"suspected", fmt.Sprintf("%t", result.Passed)},
	}
}

// renderBreakdown renders a table on terminals and key=value lines otherwise.
func renderBreakdown(out io.Writer, sim *similarity.Similarity, original, comparison string) string {
	rows := breakdownRows(sim, original, comparison)
	if !isTerminal(out) {
		lines := make([]string, 0, len(rows))
		for _, r := range rows {
			lines = append(lines, r.name+"="+r.value)
		}
		return strings.Join(lines, "\n")
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Metric", "Value"})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.name, r.value})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})
	return tw.Render()
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
