package connections

import (
	"fmt"
	"time"

	"github.com/bnema/pfconn/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type RenderOptions struct {
	Now time.Time
}

func renderList(connections []domain.Connection, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Connections"),
		s.header.UnsetPadding().Render(fmt.Sprintf("connections: %d", len(connections))),
	}

	if len(connections) == 0 {
		lines = append(lines, s.empty.Render("No connections stored. Run `pfconn provision` to create them."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([][]string, 0, len(connections))
	for _, conn := range connections {
		rows = append(rows, []string{
			conn.Name,
			string(conn.Type),
			endpoint(conn),
			fmt.Sprintf("%d", len(conn.Secrets)),
			formatUpdatedAt(conn.UpdatedAt, opts.Now),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers("NAME", "TYPE", "ENDPOINT", "SECRETS", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.header
			case col == 0:
				return s.name
			case col == 4:
				return s.faint
			default:
				return s.cell
			}
		})

	lines = append(lines, t.Render())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func endpoint(conn domain.Connection) string {
	if base := conn.APIBase(); base != "" {
		return base
	}
	if value := conn.Configs["endpoint"]; value != "" {
		return value
	}

	return "-"
}

func formatUpdatedAt(updatedAt, now time.Time) string {
	if updatedAt.IsZero() {
		return "-"
	}
	if now.IsZero() {
		return updatedAt.UTC().Format(time.RFC3339)
	}

	elapsed := now.Sub(updatedAt)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}
