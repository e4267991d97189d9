package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/theme"
)

// AnswerChars accepts what an equation answer can contain: digits, sign,
// decimal point, fraction bar and an optional "x =" prefix.
func AnswerChars(r rune) bool {
	return (r >= '0' && r <= '9') || strings.ContainsRune("-+./xX= ", r)
}

// TextInput wraps bubbles/textinput with the client's styling and an
// optional character filter.
type TextInput struct {
	Model  textinput.Model
	Accept func(rune) bool
}

// NewTextInput creates a focused input. accept may be nil.
func NewTextInput(placeholder string, accept func(rune) bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return TextInput{Model: ti, Accept: accept}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update drops key presses whose text the filter rejects.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && t.Accept != nil && kmsg.Text != "" {
		for _, r := range kmsg.Text {
			if !t.Accept(r) {
				return t, nil
			}
		}
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(t.Model.View())
}

func (t TextInput) Value() string { return t.Model.Value() }

// SetValue replaces the text and moves the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }
func (t *TextInput) Blur()          { t.Model.Blur() }
