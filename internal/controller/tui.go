package controller

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/blockscan/internal/model"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	mu      sync.Mutex
	program *tea.Program
	started bool
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the progress program in analyze mode. Other modes render
// static output and need no program.
func (t *TUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options...)
	if cfg.mode != ModeAnalyze {
		return nil
	}

	return t.startWithModel(newProgressModel())
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	t.program = tea.NewProgram(model, tea.WithOutput(t.output), tea.WithInput(nil))
	t.done = make(chan struct{})
	t.started = true

	go func(p *tea.Program, done chan struct{}) {
		defer close(done)

		_, _ = p.Run()
	}(t.program, t.done)

	return nil
}

func (t *TUI) ensureStarted() {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()

	if !started {
		_ = t.startWithModel(newProgressModel())
	}
}

// send forwards msg to the running program; it is a no-op before Start.
func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	p := t.program
	t.mu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}

// Close stops the program and waits for it to exit.
func (t *TUI) Close() {
	t.send(finishedMsg{})
	t.Wait()
}

// Wait blocks until the program exits.
func (t *TUI) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done != nil {
		<-done
	}
}

// DisplayCorpus sets the progress total.
func (t *TUI) DisplayCorpus(corpus m.Path, items int, workers int) {
	t.ensureStarted()
	t.send(corpusMsg{corpus: string(corpus), items: items, workers: workers})
}

// DisplayItem advances the progress bar.
func (t *TUI) DisplayItem(result m.ItemResult) {
	t.send(itemMsg{
		key:      result.Item.Key(),
		status:   result.Status,
		commands: len(result.Commands),
		clones:   len(result.Clones) + len(result.WaitClones),
	})
}

// DisplaySummary hands the run report to the program, which renders it and exits.
func (t *TUI) DisplaySummary(report m.RunReport, files []string) error {
	t.send(summaryMsg{report: report, files: files})
	t.Wait()

	return nil
}

// DisplayValidation renders the validation table.
func (t *TUI) DisplayValidation(results []m.Validation) error {
	var buf bytes.Buffer

	renderValidation(&buf, results)
	_, _ = fmt.Fprintf(t.output, "%s\n%s", titleStyle.Render("Corpus validation"), buf.String())

	return nil
}

// DisplayReports renders stored run reports.
func (t *TUI) DisplayReports(reports []m.RunReport) error {
	if len(reports) == 0 {
		_, _ = fmt.Fprintln(t.output, "No reports found")
		return nil
	}

	var buf bytes.Buffer

	renderReports(&buf, reports)
	_, _ = fmt.Fprintf(t.output, "%s\n%s", titleStyle.Render("Run reports"), buf.String())

	return nil
}
