package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/todos/internal/application"
	"github.com/bnema/todos/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 12

// View is either the overview of Lists or, when Detail is set, one list.
type View struct {
	Flash  domain.Flash
	Lists  []domain.List
	Detail *application.ListDetail
}

type RenderOptions struct {
	// BarWidth is the width of the completion bar; zero uses the default and a
	// negative value hides it.
	BarWidth int
}

func renderView(view View, opts RenderOptions, s styles) string {
	lines := flashLines(view.Flash, s)
	if view.Detail != nil {
		lines = append(lines, renderDetail(*view.Detail, opts, s)...)
	} else {
		lines = append(lines, renderLists(view.Lists, opts, s)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func flashLines(flash domain.Flash, s styles) []string {
	var lines []string
	if flash.Error != "" {
		lines = append(lines, s.failure.Render(flash.Error))
	}
	if flash.Success != "" {
		lines = append(lines, s.success.Render(flash.Success))
	}

	return lines
}

func renderLists(lists []domain.List, opts RenderOptions, s styles) []string {
	lines := []string{
		s.title.Render("Todo Lists"),
		s.header.Render(fmt.Sprintf("lists: %d", len(lists))),
	}

	if len(lists) == 0 {
		return append(lines, s.empty.Render("You have no lists yet."))
	}

	rows := make([]string, 0, len(lists))
	for _, list := range lists {
		rows = append(rows, listLine(list, opts, s))
	}

	return append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

func listLine(list domain.List, opts RenderOptions, s styles) string {
	nameStyle := s.list
	if list.IsComplete() {
		nameStyle = s.complete
	}

	parts := []string{
		marker(list.IsComplete()),
		" ",
		s.id.Render(fmt.Sprintf("%d", list.ID)),
		" ",
		nameStyle.Render(list.Name),
		" ",
		s.remaining.Render(list.RemainingSummary()),
	}
	if bar := renderProgressBar(completedPercent(list), barWidth(opts), s); bar != "" {
		parts = append(parts, " ", bar)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderDetail(detail application.ListDetail, opts RenderOptions, s styles) []string {
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.list.Render(detail.List.Name),
		" ",
		s.id.Render(fmt.Sprintf("(%d)", detail.List.ID)),
	)
	lines := []string{
		header,
		s.header.Render("remaining: " + detail.List.RemainingSummary()),
	}
	if bar := renderProgressBar(completedPercent(detail.List), barWidth(opts), s); bar != "" {
		lines = append(lines, bar)
	}

	if len(detail.Todos) == 0 {
		return append(lines, s.empty.Render("No todos yet."))
	}

	rows := make([]string, 0, len(detail.Todos))
	for _, todo := range detail.Todos {
		nameStyle := s.todo
		if todo.Completed {
			nameStyle = s.done
		}
		rows = append(rows, lipgloss.JoinHorizontal(
			lipgloss.Top,
			"  ",
			marker(todo.Completed),
			" ",
			s.id.Render(fmt.Sprintf("%d", todo.ID)),
			" ",
			nameStyle.Render(todo.Name),
		))
	}

	return append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

func marker(done bool) string {
	if done {
		return "[x]"
	}

	return "[ ]"
}

func barWidth(opts RenderOptions) int {
	if opts.BarWidth == 0 {
		return defaultBarWidth
	}

	return opts.BarWidth
}

func completedPercent(list domain.List) float64 {
	if len(list.Todos) == 0 {
		return 0
	}

	done := len(list.Todos) - list.RemainingCount()
	return 100 * float64(done) / float64(len(list.Todos))
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", width-filled))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
