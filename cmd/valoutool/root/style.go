package root

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	cWood  = lipgloss.Color("130") // brown
	cBeer  = lipgloss.Color("220") // gold
	cGood  = lipgloss.Color("42")
	cBad   = lipgloss.Color("196")
	cMuted = lipgloss.Color("244")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cWood)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cBeer)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
)

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}
