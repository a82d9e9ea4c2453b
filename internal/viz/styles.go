package viz

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	spikeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	mildStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

// SeverityStyle returns the style used for a severity label.
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "Critical":
		return criticalStyle
	case "Mild":
		return mildStyle
	default:
		return normalStyle
	}
}
