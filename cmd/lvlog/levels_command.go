package main

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/philipp01105/lvlog/core"
)

func newLevelsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List registered levels and whether they pass the threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ctx.buildLogger(cmd)
			if err != nil {
				return err
			}
			defer l.Close()

			threshold := l.LevelVal()
			values := l.Levels().Values
			defs := make([]core.LevelDef, 0, len(values))
			for label, v := range values {
				defs = append(defs, core.LevelDef{Label: label, Value: v})
			}
			sort.Slice(defs, func(i, j int) bool { return defs[i].Value < defs[j].Value })

			rows := make([][]string, 0, len(defs))
			for _, d := range defs {
				rows = append(rows, []string{d.Label, d.Value.String(), levelStatus(d, threshold, l.IsLevelEnabled(d.Label))})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Label", "Value", "Status"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
			return nil
		},
	}
}

func levelStatus(d core.LevelDef, threshold core.Level, enabled bool) string {
	switch {
	case d.Value == threshold:
		return "threshold"
	case d.Value.IsSilent():
		return "-"
	case enabled:
		return "enabled"
	default:
		return "filtered"
	}
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
