package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoi/internal/preview"
)

const (
	// unitsPerCell is how many layout units one terminal column stands for.
	unitsPerCell = 8.0
	// A terminal cell is roughly twice as tall as it is wide.
	cellAspect = 2.0

	minPaperWidth = 28
)

var (
	paperStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
	inkStyle = lipgloss.NewStyle().Bold(true)
)

// renderPaper draws doc as a page occupying the layout's box, in cells.
func renderPaper(doc preview.Document, layout preview.Layout) string {
	width := int(layout.BoxWidth / unitsPerCell)
	height := int(layout.BoxHeight / (unitsPerCell * cellAspect))

	if width < minPaperWidth {
		return mutedStyle.Render("Widen the window to see the preview.")
	}

	// Border and padding take 6 columns.
	inner := width - 6

	var lines []string

	lines = append(lines, spread(inkStyle.Render(doc.FromName), inkStyle.Render("INVOICE"), inner))
	lines = append(lines, spread(mutedStyle.Render(strings.Join(doc.FromLines, " · ")), mutedStyle.Render(doc.InvoiceNumber), inner))
	lines = append(lines, "")

	var dates []string
	for _, d := range doc.Dates {
		dates = append(dates, mutedStyle.Render(d.Label+" ")+d.Value)
	}

	lines = append(lines, spread(mutedStyle.Render("BILL TO"), strings.Join(dates, "  "), inner))
	lines = append(lines, inkStyle.Render(doc.ToName))

	for _, l := range doc.ToLines {
		lines = append(lines, mutedStyle.Render(strings.ReplaceAll(l, "\n", ", ")))
	}

	lines = append(lines, "")

	qtyW, numW := 5, 12
	descW := inner - qtyW - 2*numW

	lines = append(lines, inkStyle.Render(
		cell("DESCRIPTION", descW, lipgloss.Left)+
			cell("QTY", qtyW, lipgloss.Center)+
			cell("RATE", numW, lipgloss.Right)+
			cell("AMOUNT", numW, lipgloss.Right),
	))
	lines = append(lines, strings.Repeat("─", inner))

	for _, l := range doc.Lines {
		lines = append(lines,
			cell(l.Description, descW, lipgloss.Left)+
				mutedStyle.Render(cell(l.Quantity, qtyW, lipgloss.Center)+cell(l.Rate, numW, lipgloss.Right))+
				cell(l.Amount, numW, lipgloss.Right),
		)
	}

	lines = append(lines, "")
	lines = append(lines, spread("", mutedStyle.Render("Subtotal  ")+doc.Subtotal, inner))
	lines = append(lines, spread("", inkStyle.Render("Total  "+doc.Total), inner))

	if len(doc.Bank) > 0 {
		lines = append(lines, "", mutedStyle.Render("PAYMENT DETAILS"))
		for _, d := range doc.Bank {
			lines = append(lines, mutedStyle.Render(cell(d.Label, 13, lipgloss.Left))+d.Value)
		}
	}

	// Width and Height include padding but not the border.
	return paperStyle.
		Width(width - 2).
		Height(max(height-2, 0)).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}
