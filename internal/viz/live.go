package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/neurosim/internal/diagnose"
	"github.com/san-kum/neurosim/internal/neuron"
)

// TickMsg drives the live simulation clock.
type TickMsg time.Time

// Live is a bubbletea model that steps one unit per tick and shows the
// rolling voltage trace, spike raster, and running statistics. When the
// run completes it appends the diagnosis.
type Live struct {
	unit  *neuron.Neuron
	steps int
	fps   int

	t         int
	history   []float64
	spiked    []bool
	lastSpike int

	paused bool
	done   bool
	diag   diagnose.Diagnosis

	width int
}

// NewLive builds the live view for one unit.
func NewLive(unit *neuron.Neuron, steps, fps int) Live {
	if fps <= 0 {
		fps = 10
	}
	unit.Reset()
	return Live{unit: unit, steps: steps, fps: fps, lastSpike: -1, width: plotWidth}
}

func (m Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Live) Init() tea.Cmd { return m.tick() }

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			wasDone := m.done
			m.unit.Reset()
			m.t = 0
			m.history = nil
			m.spiked = nil
			m.lastSpike = -1
			m.done = false
			m.paused = false
			if wasDone {
				// The tick chain ended with the finished run; re-arm it.
				return m, m.tick()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case TickMsg:
		if !m.paused && !m.done {
			m.advance()
		}
		if m.done {
			return m, nil
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *Live) advance() {
	fired := m.unit.Step(m.t)

	sample := m.unit.Voltage()
	if fired {
		sample = m.unit.Params.SpikeVoltage
		m.lastSpike = m.t
	}
	m.history = append(m.history, sample)
	m.spiked = append(m.spiked, fired)
	m.t++

	if m.t >= m.steps {
		m.done = true
		rate := float64(m.unit.Spikes()) / float64(m.steps)
		m.diag = diagnose.Classify(m.unit.Name, m.unit.Params, rate)
	}
}

func (m Live) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("live: %s", m.unit.Name)))
	b.WriteString("\n")

	if len(m.history) > 0 {
		window := m.history
		raster := m.spiked
		if len(window) > plotWidth {
			window = window[len(window)-plotWidth:]
			raster = raster[len(raster)-plotWidth:]
		}
		b.WriteString(graphStyle.Render(TracePlot(window, "membrane voltage (mV)")))
		b.WriteString("\n")
		b.WriteString(SpikeRaster(raster))
		b.WriteString("\n\n")
	}

	b.WriteString(m.statsView())

	if m.done {
		b.WriteString("\n")
		b.WriteString(m.diagnosisView())
	}

	help := "space pause · r restart · q quit"
	if m.paused {
		help = "paused · " + help
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func (m Live) statsView() string {
	p := m.unit.Params

	rate := 0.0
	if m.t > 0 {
		rate = float64(m.unit.Spikes()) / float64(m.t)
	}

	rows := []string{
		row("step", fmt.Sprintf("%d / %d", m.t, m.steps)),
		row("voltage", fmt.Sprintf("%.1f mV", m.unit.Voltage())),
		row("spikes", fmt.Sprintf("%d", m.unit.Spikes())),
		row("firing rate", fmt.Sprintf("%.1f%%", rate*100)),
		row("threshold", fmt.Sprintf("%g mV", p.Threshold)),
		row("reset", fmt.Sprintf("%g mV", p.ResetVoltage)),
		row("stimulus", fmt.Sprintf("%g mV", p.Stimulus)),
	}

	if m.lastSpike == m.t-1 && m.t > 0 {
		rows = append(rows, spikeStyle.Render("SPIKE!"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (m Live) diagnosisView() string {
	sev := SeverityStyle(m.diag.Severity.String())
	rows := []string{
		row("problem", m.diag.Problem.String()),
		labelStyle.Render("severity") + sev.Render(m.diag.Severity.String()),
	}
	if m.diag.Explanation != "" {
		rows = append(rows, row("explanation", m.diag.Explanation))
	}
	if m.diag.Recommendation != "" {
		rows = append(rows, row("fix", m.diag.Recommendation))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
