package controller

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/blockscan/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// Wait returns immediately; plain output has nothing to wait for.
func (s *SimpleUI) Wait() {}

// DisplayCorpus prints the corpus size and worker count.
func (s *SimpleUI) DisplayCorpus(corpus m.Path, items int, workers int) {
	s.printf("Analyzing %d items from %s with %d worker(s)\n", items, corpus, workers)
}

// DisplayItem prints one line per corpus item.
func (s *SimpleUI) DisplayItem(result m.ItemResult) {
	switch result.Status {
	case m.ItemFailed:
		reason := ""
		if len(result.Failures) > 0 {
			reason = result.Failures[0].Reason
		}

		s.printf("%s failed: %s\n", result.Item.Key(), reason)
	case m.ItemUnchanged:
		s.printf("%s unchanged\n", result.Item.Key())
	default:
		s.printf("%s %d scripts, %d commands, %d clone groups\n",
			result.Item.Key(), len(result.Summaries), len(result.Commands), len(result.Clones)+len(result.WaitClones))
	}
}

// DisplaySummary prints per-table row counts.
func (s *SimpleUI) DisplaySummary(report m.RunReport, files []string) error {
	var buf bytes.Buffer

	renderSummary(&buf, report, files)
	s.printf("\n%s", buf.String())

	return nil
}

// DisplayValidation prints the validity of each corpus item.
func (s *SimpleUI) DisplayValidation(results []m.Validation) error {
	if len(results) == 0 {
		s.printf("No corpus items found\n")
		return nil
	}

	var buf bytes.Buffer

	renderValidation(&buf, results)
	s.printf("\n%s", buf.String())

	return nil
}

// DisplayReports prints stored run reports.
func (s *SimpleUI) DisplayReports(reports []m.RunReport) error {
	if len(reports) == 0 {
		s.printf("No reports found\n")
		return nil
	}

	var buf bytes.Buffer

	renderReports(&buf, reports)
	s.printf("\n%s", buf.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
