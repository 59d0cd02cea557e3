package controller

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	m "github.com/mouse-blink/blockscan/internal/model"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	return table
}

func renderSummary(w io.Writer, report m.RunReport, files []string) {
	table := newTable(w, []string{"Table", "Rows"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, row := range []struct {
		name string
		rows int
	}{
		{"commands", report.Rows.Commands},
		{"scripts", report.Rows.Scripts},
		{"procedures", report.Rows.Procedures},
		{"clones", report.Rows.Clones},
		{"wait_clones", report.Rows.WaitClones},
		{"failures", report.Rows.Failures},
	} {
		table.Append([]string{row.name, strconv.Itoa(row.rows)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Items %d (failed %d, unchanged %d)", report.Items, report.Failed, report.Unchanged),
		report.Duration.Round(time.Millisecond).String(),
	})
	table.Render()

	for _, file := range files {
		_, _ = fmt.Fprintf(w, "wrote %s\n", file)
	}

	for _, key := range report.FailedItems {
		_, _ = fmt.Fprintf(w, "failed %s\n", key)
	}
}

func renderValidation(w io.Writer, results []m.Validation) {
	table := newTable(w, []string{"Program", "Date", "Bytes", "Valid"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_CENTER})

	invalid := 0

	for _, r := range results {
		valid := "yes"
		if !r.Valid {
			valid = "no"
			invalid++
		}

		table.Append([]string{r.Item.ProgramID, m.FormatDate(r.Item.Date), strconv.Itoa(r.Size), valid})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Items %d", len(results)), "", "", fmt.Sprintf("Invalid %d", invalid)})
	table.Render()
}

func renderReports(w io.Writer, reports []m.RunReport) {
	table := newTable(w, []string{"Started", "Corpus", "Items", "Failed", "Commands", "Clones"})

	for _, r := range reports {
		table.Append([]string{
			r.StartedAt.UTC().Format(time.RFC3339),
			string(r.Corpus),
			strconv.Itoa(r.Items),
			strconv.Itoa(r.Failed),
			strconv.Itoa(r.Rows.Commands),
			strconv.Itoa(r.Rows.Clones + r.Rows.WaitClones),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Runs %d", len(reports)), "", "", "", "", ""})
	table.Render()
}
