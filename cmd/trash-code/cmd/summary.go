package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	successStyle = color.New(color.FgGreen, color.Bold)
	errorStyle   = color.New(color.FgRed, color.Bold)
)

// fileReport describes one processed input.
type fileReport struct {
	Input         string
	Output        string
	OriginalLen   int
	ObfuscatedLen int
	Passes        []string
	Identifiers   int
}

func printReport(w io.Writer, r fileReport) {
	successStyle.Fprintln(w, "✅ Done!")
	fmt.Fprint(w, renderReportTable(r))
}

func renderReportTable(r fileReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Item", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	passes := "none"
	if len(r.Passes) > 0 {
		passes = strings.Join(r.Passes, ", ")
	}

	table.Append([]string{"Input file", r.Input})
	table.Append([]string{"Output file", r.Output})
	table.Append([]string{"Original length", fmt.Sprintf("%d characters", r.OriginalLen)})
	table.Append([]string{"Obfuscated length", fmt.Sprintf("%d characters", r.ObfuscatedLen)})
	table.Append([]string{"Renamed identifiers", fmt.Sprintf("%d", r.Identifiers)})
	table.Append([]string{"Passes", passes})

	table.Render()

	return tableBuffer.String()
}
