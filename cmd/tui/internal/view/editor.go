package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoi/internal/editor"
	"github.com/MrJamesThe3rd/invoi/internal/invoice"
	"github.com/MrJamesThe3rd/invoi/internal/preview"
)

const formWidth = 48

var fieldLabels = map[invoice.Field]string{
	invoice.FieldFromName:        "Your name",
	invoice.FieldFromEmail:       "Your email",
	invoice.FieldFromAddress:     "Your address",
	invoice.FieldFromPhone:       "Your phone",
	invoice.FieldToName:          "Client",
	invoice.FieldToEmail:         "Client email",
	invoice.FieldToAddress:       "Client addr.",
	invoice.FieldBankBeneficiary: "Beneficiary",
	invoice.FieldBankName:        "Bank",
	invoice.FieldBankAccount:     "IBAN",
	invoice.FieldBankSwift:       "SWIFT / BIC",
	invoice.FieldInvoiceNumber:   "Invoice no.",
	invoice.FieldIssueDate:       "Issue date",
	invoice.FieldDueDate:         "Due date",
	invoice.FieldCurrency:        "Currency",
	invoice.FieldVATRate:         "VAT %",
}

var itemColumns = []struct {
	field invoice.ItemField
	label string
}{
	{invoice.ItemDescription, "Description"},
	{invoice.ItemQuantity, "Qty"},
	{invoice.ItemRate, "Rate"},
}

// formInput is one editable cell: a scalar field, or a column of a line item.
type formInput struct {
	field  invoice.Field
	itemID string
	column invoice.ItemField
	label  string
	input  textinput.Model
}

func (fi formInput) isItem() bool {
	return fi.itemID != ""
}

type EditorModel struct {
	CommonModel
	editor   *editor.Editor
	location *editor.Location
	surface  *preview.Surface

	inputs []formInput
	focus  int
	ready  bool
	status string
}

type mountedMsg struct{}

func NewEditorModel(ed *editor.Editor, loc *editor.Location, surface *preview.Surface, status string) EditorModel {
	m := EditorModel{
		editor:   ed,
		location: loc,
		surface:  surface,
		status:   status,
	}

	for _, f := range invoice.Fields {
		m.inputs = append(m.inputs, formInput{
			field: f,
			label: fieldLabels[f],
			input: newInput(f),
		})
	}

	m.syncItems()
	m.fillFromDocument()
	m.inputs[0].input.Focus()

	return m
}

func newInput(f invoice.Field) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = formWidth - 16

	switch f {
	case invoice.FieldIssueDate, invoice.FieldDueDate:
		ti.Placeholder = "YYYY-MM-DD"
	case invoice.FieldCurrency:
		ti.Placeholder = invoice.DefaultCurrency
		ti.ShowSuggestions = true
		ti.SetSuggestions(invoice.SupportedCurrencies)
		ti.KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("right"))
	case invoice.FieldVATRate:
		ti.Placeholder = "0"
	}

	return ti
}

func (m EditorModel) Title() string { return "Invoice" }

func (m EditorModel) ShortHelp() string {
	return "tab/shift+tab: move | ctrl+n: add item | ctrl+d: remove item | ctrl+e: export | esc: quit"
}

func (m EditorModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.mountCmd())
}

func (m EditorModel) mountCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StorageCtx()
		defer cancel()

		m.editor.Mount(ctx)

		return mountedMsg{}
	}
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountedMsg:
		m.ready = true
		m.syncItems()
		m.fillFromDocument()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.surface.Resize(float64(m.previewColumns()) * unitsPerCell)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "ctrl+n":
			return m.addItem()
		case "ctrl+d":
			return m.removeItem()
		}
	}

	if len(m.inputs) == 0 {
		return m, nil
	}

	fi := &m.inputs[m.focus]
	before := fi.input.Value()

	var cmd tea.Cmd
	fi.input, cmd = fi.input.Update(msg)

	if value := fi.input.Value(); value != before {
		m.apply(*fi, value)
	}

	return m, cmd
}

func (m EditorModel) apply(fi formInput, value string) {
	if fi.isItem() {
		m.editor.UpdateItem(fi.itemID, fi.column, value)
		return
	}

	m.editor.Update(fi.field, value)
}

func (m EditorModel) addItem() (tea.Model, tea.Cmd) {
	item := m.editor.AddItem()
	m.syncItems()

	for i, fi := range m.inputs {
		if fi.itemID == item.ID && fi.column == invoice.ItemDescription {
			return m, m.setFocus(i)
		}
	}

	return m, nil
}

func (m EditorModel) removeItem() (tea.Model, tea.Cmd) {
	fi := m.inputs[m.focus]
	if !fi.isItem() {
		m.status = "Move to a line item to remove it."
		return m, nil
	}

	m.editor.RemoveItem(fi.itemID)

	// Keep a row to type into.
	if len(m.editor.Current().LineItems) == 0 {
		m.editor.AddItem()
	}

	m.syncItems()

	return m, m.setFocus(min(m.focus, len(m.inputs)-1))
}

// syncItems rebuilds the line-item inputs to match the document, keeping the
// inputs of rows that still exist so partially typed numbers survive.
func (m *EditorModel) syncItems() {
	existing := make(map[string]formInput)
	scalars := m.inputs[:0:0]

	for _, fi := range m.inputs {
		if fi.isItem() {
			existing[fi.itemID+"/"+string(fi.column)] = fi
			continue
		}

		scalars = append(scalars, fi)
	}

	inputs := scalars

	for _, item := range m.editor.Current().LineItems {
		for _, col := range itemColumns {
			if fi, ok := existing[item.ID+"/"+string(col.field)]; ok {
				inputs = append(inputs, fi)
				continue
			}

			ti := textinput.New()
			ti.Prompt = ""
			ti.Width = formWidth - 16
			ti.SetValue(item.Get(col.field))

			inputs = append(inputs, formInput{
				itemID: item.ID,
				column: col.field,
				label:  col.label,
				input:  ti,
			})
		}
	}

	m.inputs = inputs
	m.focus = min(m.focus, len(m.inputs)-1)
}

// fillFromDocument copies the document into every input.
func (m *EditorModel) fillFromDocument() {
	doc := m.editor.Current()

	for i := range m.inputs {
		fi := &m.inputs[i]
		if !fi.isItem() {
			fi.input.SetValue(doc.Get(fi.field))
			continue
		}

		if item, ok := doc.Item(fi.itemID); ok {
			fi.input.SetValue(item.Get(fi.column))
		}
	}
}

func (m *EditorModel) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	if n == 0 {
		return nil
	}

	i = ((i % n) + n) % n

	m.inputs[m.focus].input.Blur()
	m.focus = i

	return m.inputs[m.focus].input.Focus()
}

func (m EditorModel) previewColumns() int {
	return max(m.Width-formWidth-4, 0)
}

func (m EditorModel) View() string {
	doc := m.editor.Current()

	form := m.viewForm(doc)
	paper := renderPaper(preview.NewDocument(doc), m.surface.Layout(preview.Screen))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(formWidth).Render(form),
		lipgloss.NewStyle().PaddingLeft(2).Render(paper),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, body, "", m.viewStatus(doc)),
	)
}

func (m EditorModel) viewForm(doc invoice.Invoice) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("invoi"))
	b.WriteString("\n\n")

	row := 0
	lastItem := ""

	for i, fi := range m.inputs {
		if fi.isItem() && fi.itemID != lastItem {
			row++
			lastItem = fi.itemID

			amount := ""
			if item, ok := doc.Item(fi.itemID); ok {
				amount = invoice.FormatMoney(item.Amount(), doc.Currency)
			}

			b.WriteString("\n" + spread(mutedStyle.Render(fmt.Sprintf("Item %d", row)), mutedStyle.Render(amount), formWidth-2) + "\n")
		}

		label := labelStyle.Render(fi.label)
		if i == m.focus {
			label = focusStyle.Render("› " + fi.label)
		}

		b.WriteString(label + fi.input.View())

		if !fi.isItem() && (fi.field == invoice.FieldIssueDate || fi.field == invoice.FieldDueDate) &&
			!invoice.ValidDate(fi.input.Value()) {
			b.WriteString(" " + errorStyle.Render("invalid date"))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func (m EditorModel) viewStatus(doc invoice.Invoice) string {
	state := "loading…"
	if m.ready {
		state = "ready"
	}

	lines := []string{
		spread(mutedStyle.Render(state), "Subtotal "+invoice.FormatMoney(m.editor.Subtotal(), doc.Currency), m.Width-2),
		mutedStyle.Render("Share: ") + m.location.URL(),
	}

	if m.status != "" {
		lines = append(lines, m.status)
	}

	lines = append(lines, mutedStyle.Render(m.ShortHelp()))

	return strings.Join(lines, "\n")
}
