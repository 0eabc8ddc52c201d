package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jonwraymond/futurecost/calc"
	"github.com/jonwraymond/futurecost/observe"
	"github.com/jonwraymond/futurecost/orchestrate"
	"github.com/jonwraymond/futurecost/present"
	"github.com/jonwraymond/futurecost/report"
	"github.com/jonwraymond/futurecost/resilience"
)

const chartFileName = "future-value-chart.svg"

// Input fields, in focus order.
const (
	fieldCost = iota
	fieldRate
	fieldYears
	fieldCount
)

// Adjustment steps and bounds per field.
const (
	costStep = 100000
	costMin  = 100000
	rateStep = 0.5
	rateMin  = 0.5
	rateMax  = 100
	yearStep = 1
	yearMin  = 1
	yearMax  = 100
)

var defaultRequest = calc.Request{Cost: 2500000, Rate: 6, Years: 10}

// stateMsg carries a coordinator publish into the event loop.
type stateMsg orchestrate.State

type model struct {
	coord    *orchestrate.Coordinator
	inputs   *orchestrate.Inputs
	debounce *resilience.Debouncer
	states   chan orchestrate.State

	req       calc.Request
	focus     int
	state     orchestrate.State
	spin      spinner.Model
	status    string
	reportDir string
	quitting  bool
}

func newModel(fetch observe.FetchFunc, logger observe.Logger, metrics observe.Metrics, reportDir string) (*model, error) {
	m := &model{
		states:    make(chan orchestrate.State, 1),
		req:       defaultRequest,
		reportDir: reportDir,
	}
	m.inputs = orchestrate.NewInputs(m.req)

	coord, err := orchestrate.New(orchestrate.Config{
		Fetcher: orchestrate.FetcherFunc(fetch),
		Inputs:  m.inputs,
		Notify:  m.notify,
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		return nil, err
	}
	m.coord = coord
	m.debounce = resilience.NewDebouncer(resilience.DefaultDebounceDelay, func() {
		coord.Request(context.Background())
	})

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = spinnerStyle
	return m, nil
}

// notify hands coordinator publishes to the event loop through a
// single-slot channel; a newer state displaces an unconsumed older one.
func (m *model) notify(st orchestrate.State) {
	for {
		select {
		case m.states <- st:
			return
		default:
			select {
			case <-m.states:
			default:
			}
		}
	}
}

func (m *model) close() {
	m.debounce.Stop()
	m.coord.Close()
}

func (m *model) waitForState() tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-m.states)
	}
}

// Init fires the first calculation immediately; only subsequent input
// changes go through the debouncer.
func (m *model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		m.waitForState(),
		func() tea.Msg {
			m.coord.Request(context.Background())
			return nil
		},
	)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateMsg:
		m.state = orchestrate.State(msg)
		return m, m.waitForState()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab", "down", "j":
		m.focus = (m.focus + 1) % fieldCount

	case "shift+tab", "up", "k":
		m.focus = (m.focus + fieldCount - 1) % fieldCount

	case "right", "l", "+", "=":
		m.adjust(1)

	case "left", "h", "-":
		m.adjust(-1)

	case "e":
		m.exportPDF()

	case "c":
		m.exportChart()
	}
	return m, nil
}

// adjust steps the focused field, pushes the new inputs into the shared
// holder, and arms the debouncer. The fetch itself fires only after the
// input settles.
func (m *model) adjust(dir float64) {
	switch m.focus {
	case fieldCost:
		m.req.Cost = math.Max(costMin, m.req.Cost+dir*costStep)
	case fieldRate:
		m.req.Rate = math.Min(rateMax, math.Max(rateMin, m.req.Rate+dir*rateStep))
	case fieldYears:
		years := m.req.Years + int(dir)*yearStep
		if years < yearMin {
			years = yearMin
		}
		if years > yearMax {
			years = yearMax
		}
		m.req.Years = years
	}
	m.status = ""
	m.inputs.Set(m.req)
	m.debounce.Trigger()
}

func (m *model) exportPDF() {
	if m.state.Result == nil {
		m.status = "Nothing to export yet."
		return
	}
	path, err := report.Save(m.reportDir, m.inputs.Snapshot(), m.state.Result)
	if err != nil {
		m.status = fmt.Sprintf("Export failed: %v", err)
		return
	}
	m.status = "Report saved to " + path
}

func (m *model) exportChart() {
	if m.state.Result == nil {
		m.status = "Nothing to export yet."
		return
	}
	path := filepath.Join(m.reportDir, chartFileName)
	svg := present.SVG(present.Share(m.state.Result))
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		m.status = fmt.Sprintf("Export failed: %v", err)
		return
	}
	m.status = "Chart saved to " + path
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Width(22)

	focusedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	resultStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	costBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	growthBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func (m *model) View() string {
	if m.quitting {
		return ""
	}

	d := present.Derive(m.inputs.Snapshot(), m.state)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Future Value Calculator"))
	b.WriteString("\n\n")

	b.WriteString(m.inputRow(fieldCost, "Current Cost", present.FormatINR(m.req.Cost)))
	b.WriteString(m.inputRow(fieldRate, "Inflation % per annum", present.FormatPercent(m.req.Rate)))
	b.WriteString(m.inputRow(fieldYears, "Number of Years", present.FormatYears(m.req.Years)))
	b.WriteString("\n")

	switch {
	case d.Loading:
		b.WriteString(m.spin.View())
		b.WriteString(" Calculating...\n")
	case d.ErrorMsg != "":
		b.WriteString(errorStyle.Render(d.ErrorMsg))
		b.WriteString("\n")
	case m.state.Result != nil:
		b.WriteString(labelStyle.Render("Future Value"))
		b.WriteString(resultStyle.Render(d.FutureValue))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Cost of Inflation"))
		b.WriteString(valueStyle.Render(d.InflationCost))
		b.WriteString("\n\n")
		b.WriteString(shareBar(d.SharePct))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/↑↓ field · ←→ adjust · e export pdf · c export chart · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *model) inputRow(field int, label, value string) string {
	marker := "  "
	style := labelStyle
	if m.focus == field {
		marker = focusedStyle.Render("> ")
		style = focusedStyle.Width(22)
	}
	return marker + style.Render(label) + valueStyle.Render(value) + "\n"
}

// shareBar renders the pie chart's split as a horizontal bar: the
// current cost's share against the growth due to inflation.
func shareBar(pct float64) string {
	const width = 40
	filled := int(math.Round(pct / 100 * width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := costBarStyle.Render(strings.Repeat("█", filled)) +
		growthBarStyle.Render(strings.Repeat("█", width-filled))
	return fmt.Sprintf("%s %s current cost share", bar, present.FormatPercent(math.Round(pct*10)/10))
}

var _ tea.Model = (*model)(nil)
