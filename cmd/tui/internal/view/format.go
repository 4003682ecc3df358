package view

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const storageTimeout = 5 * time.Second

// StorageCtx returns a context with a standard timeout for storage operations.
func StorageCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storageTimeout)
}

var (
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(14)
	focusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Width(14)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

// spread places left and right on one line of the given width.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

// cell fits s into exactly n columns.
func cell(s string, n int, pos lipgloss.Position) string {
	if n <= 0 {
		return ""
	}

	return lipgloss.NewStyle().Width(n).MaxWidth(n).Inline(true).Align(pos).Render(s)
}
