package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/queries"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/services"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)

	levelStyles = map[task.PriorityLevel]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
)

// DisableColor strips all styling from output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	titleStyle = lipgloss.NewStyle()
	warnStyle = lipgloss.NewStyle()
	levelStyles = map[task.PriorityLevel]lipgloss.Style{}
}

const maxTitle = 40

// RankingTable renders ranked tasks, highest score first.
func RankingTable(w io.Writer, r services.Ranking) {
	if len(r.Tasks) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No tasks."))
		return
	}

	rankW, scoreW, levelW, titleW, dueW := 4, 7, 8, 7, 12
	for _, t := range r.Tasks {
		titleW = max(titleW, min(lipgloss.Width(t.Title)+2, maxTitle+2))
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %s",
		rankW, "#", scoreW, "SCORE", levelW, "LEVEL", titleW, "TITLE", dueW, "DUE", "WHY")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for i, t := range r.Tasks {
		due := dimStyle.Render("--")
		if t.DueDate != nil {
			due = t.DueDate.String()
		}
		explanation := t.Explanation
		if explanation == "" {
			explanation = dimStyle.Render("--")
		}
		row := fmt.Sprintf("%-*d %-*s %s %s %s %s",
			rankW, i+1,
			scoreW, services.FormatScore(t.PriorityScore),
			padRight(styledLevel(t.PriorityLevel), levelW),
			padRight(truncate(t.DisplayTitle(), maxTitle), titleW),
			padRight(due, dueW),
			explanation)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, dimStyle.Render("Strategy: "+r.StrategyUsed))
	if len(r.CircularDependencies) > 0 {
		parts := make([]string, 0, len(r.CircularDependencies))
		for _, idx := range r.CircularDependencies {
			parts = append(parts, strconv.Itoa(idx))
		}
		fmt.Fprintln(w, warnStyle.Render("Circular dependencies at task index "+strings.Join(parts, ", ")))
	}
}

// SuggestionList renders suggestions one block per task.
func SuggestionList(w io.Writer, suggestions []services.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, dimStyle.Render("Nothing to suggest."))
		return
	}
	for i, s := range suggestions {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%d. %s %s\n", s.Rank, titleStyle.Render(s.Task.DisplayTitle()), styledLevel(s.Task.PriorityLevel))
		fmt.Fprintf(w, "   %s\n", s.Reason)
	}
}

// StrategyTable renders the strategies and marks the default.
func StrategyTable(w io.Writer, dto queries.StrategiesDTO) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-12s %s", "STRATEGY", "DESCRIPTION")))
	for _, s := range dto.Strategies {
		name := string(s.Name)
		if s.Name == dto.Default {
			name += "*"
		}
		fmt.Fprintf(w, "%-12s %s\n", name, s.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, dimStyle.Render("* default"))
}

// ListTable renders saved task lists.
func ListTable(w io.Writer, lists []queries.TaskListSummaryDTO) {
	if len(lists) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No saved lists."))
		return
	}
	nameW := 6
	for _, l := range lists {
		nameW = max(nameW, len(l.Name)+2)
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %6s  %s", nameW, "NAME", "TASKS", "UPDATED")))
	for _, l := range lists {
		fmt.Fprintf(w, "%-*s %6d  %s\n", nameW, l.Name, l.TaskCount, l.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func styledLevel(level task.PriorityLevel) string {
	if st, ok := levelStyles[level]; ok {
		return st.Render(level.String())
	}
	return level.String()
}

// padRight pads s to the given visible width, ignoring ANSI escapes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
