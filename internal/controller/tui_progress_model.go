package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/blockscan/internal/model"
)

const defaultWidth = 80

var (
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	itemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// progressModel shows corpus analysis progress and the final summary.
type progressModel struct {
	bar       progress.Model
	width     int
	corpus    string
	workers   int
	total     int
	done      int
	failed    int
	unchanged int
	commands  int
	clones    int
	current   string
	summary   *summaryMsg
}

func newProgressModel() progressModel {
	return progressModel{
		bar:   progress.New(progress.WithDefaultGradient()),
		width: defaultWidth,
	}
}

func (pm progressModel) Init() tea.Cmd {
	return nil
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.width = msg.Width
		pm.bar.Width = max(msg.Width-4, 10)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return pm, tea.Quit
		}
	case corpusMsg:
		pm.corpus = msg.corpus
		pm.total = msg.items
		pm.workers = msg.workers
	case itemMsg:
		pm.done++
		pm.current = msg.key
		pm.commands += msg.commands
		pm.clones += msg.clones

		switch msg.status {
		case m.ItemFailed:
			pm.failed++
		case m.ItemUnchanged:
			pm.unchanged++
		}
	case summaryMsg:
		pm.summary = &msg
		return pm, tea.Quit
	case finishedMsg:
		return pm, tea.Quit
	}

	return pm, nil
}

func (pm progressModel) percent() float64 {
	if pm.total == 0 {
		return 0
	}

	return float64(pm.done) / float64(pm.total)
}

func (pm progressModel) View() string {
	if pm.summary != nil {
		var buf bytes.Buffer

		renderSummary(&buf, pm.summary.report, pm.summary.files)

		return titleStyle.Render("Analysis complete") + "\n" + buf.String()
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render(truncateToWidth("Analyzing "+pm.corpus, pm.width)))
	sb.WriteString("\n")
	sb.WriteString(pm.bar.ViewAs(pm.percent()))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s/%d items  %s commands  %s clone groups  %s failed  %d unchanged  (%d workers)\n",
		countStyle.Render(fmt.Sprintf("%d", pm.done)),
		pm.total,
		countStyle.Render(fmt.Sprintf("%d", pm.commands)),
		countStyle.Render(fmt.Sprintf("%d", pm.clones)),
		failedStyle.Render(fmt.Sprintf("%d", pm.failed)),
		pm.unchanged,
		pm.workers,
	))

	if pm.current != "" {
		sb.WriteString(itemStyle.Render(truncateToWidth(pm.current, pm.width)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}
