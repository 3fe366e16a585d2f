package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/schedule"
)

const (
	defaultCellWidth = 16
	periodWidth      = 4
	textColor        = "#1f1f1f"
	borderColor      = "#808080"
)

// GridRenderer draws a composed week for the terminal, one cell per slot
// filled with its tier colour.
type GridRenderer struct {
	CellWidth int
	header    lipgloss.Style
	cell      lipgloss.Style
	period    lipgloss.Style
}

// NewGridRenderer returns a renderer with the default cell width.
func NewGridRenderer() *GridRenderer {
	return NewGridRendererWidth(defaultCellWidth)
}

// NewGridRendererWidth returns a renderer whose day columns are width
// characters wide.
func NewGridRendererWidth(width int) *GridRenderer {
	if width < 6 {
		width = defaultCellWidth
	}
	base := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, true, false).
		BorderForeground(lipgloss.Color(borderColor))
	return &GridRenderer{
		CellWidth: width,
		header:    base.Bold(true).Width(width).Align(lipgloss.Center),
		cell:      base.Width(width).Foreground(lipgloss.Color(textColor)),
		period:    base.Bold(true).Width(periodWidth).Align(lipgloss.Center),
	}
}

// Render returns the grid as a table with a header row of weekdays.
func (r *GridRenderer) Render(grid *schedule.Grid) string {
	header := []string{r.period.Render("")}
	for _, day := range models.Weekdays {
		header = append(header, r.header.Render(day.String()))
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for i, row := range grid.Rows() {
		blocks := make([]string, 0, len(row)+1)
		blocks = append(blocks, r.period.Render(strconv.Itoa(i+1)))

		height := 1
		for _, cell := range row {
			if h := lipgloss.Height(r.cell.Render(cell.Text())); h > height {
				height = h
			}
		}
		blocks[0] = r.period.Height(height - 1).Render(strconv.Itoa(i + 1))
		for _, cell := range row {
			style := r.cell.Height(height - 1)
			if !cell.Empty() {
				style = style.Background(lipgloss.Color(cell.Tier.Color().Hex()))
			}
			blocks = append(blocks, style.Render(cell.Text()))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Legend lists every tier with its colour swatch.
func (r *GridRenderer) Legend() string {
	tiers := []schedule.Tier{
		schedule.TierClass, schedule.TierTutoring, schedule.TierDuty,
		schedule.TierPending, schedule.TierAccepted, schedule.TierCancelled, schedule.TierConflict,
	}
	items := make([]string, 0, len(tiers))
	for _, tier := range tiers {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(tier.Color().Hex())).Render("  ")
		items = append(items, swatch+" "+strings.ToLower(tier.String()))
	}
	return strings.Join(items, "  ")
}
