package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sivaram/calc-admin/internal/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func printTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

func next(id *string) string {
	if id == nil {
		return "-"
	}
	return *id
}

func printNodes(w io.Writer, nodes []model.Node) {
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{n.ID, n.Name, n.NodeData, fmt.Sprint(len(n.FormularNodes)), n.UpdatedAt})
	}
	printTable(w, []string{"ID", "NAME", "DATA", "FORMULARS", "UPDATED"}, rows)
}

func printFormulars(w io.Writer, formulars []model.Formular) {
	rows := make([][]string, 0, len(formulars))
	for _, f := range formulars {
		rows = append(rows, []string{f.ID, f.Name, fmt.Sprint(len(f.Nodes)), fmt.Sprint(len(f.CalculationFormulars)), f.UpdatedAt})
	}
	printTable(w, []string{"ID", "NAME", "NODES", "CALCULATIONS", "UPDATED"}, rows)
}

func printCalculations(w io.Writer, calcs []model.Calculation) {
	rows := make([][]string, 0, len(calcs))
	for _, c := range calcs {
		rows = append(rows, []string{c.ID, c.Name, fmt.Sprint(len(c.Formulars)), c.UpdatedAt})
	}
	printTable(w, []string{"ID", "NAME", "FORMULARS", "UPDATED"}, rows)
}

func printFormularNodes(w io.Writer, fns []model.FormularNode) {
	rows := make([][]string, 0, len(fns))
	for i, fn := range fns {
		name := ""
		if fn.Node != nil {
			name = fn.Node.Name
		}
		rows = append(rows, []string{fmt.Sprint(i + 1), fn.ID, fn.NodeID, name, next(fn.NextID)})
	}
	printTable(w, []string{"#", "MEMBERSHIP", "NODE", "NAME", "NEXT"}, rows)
}

func printCalculationFormulars(w io.Writer, cfs []model.CalculationFormular) {
	rows := make([][]string, 0, len(cfs))
	for i, cf := range cfs {
		name := ""
		if cf.Formular != nil {
			name = cf.Formular.Name
		}
		rows = append(rows, []string{fmt.Sprint(i + 1), cf.ID, cf.FormularID, name, next(cf.NextID)})
	}
	printTable(w, []string{"#", "MEMBERSHIP", "FORMULAR", "NAME", "NEXT"}, rows)
}
