// Package screen defines the contract between the app shell and its screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/layout"
)

// Screen is one full-window view managed by the router.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ProgressProvider lets a screen publish the learner's level and score for
// the header. ok is false until the values are known.
type ProgressProvider interface {
	Progress() (level, score int, ok bool)
}
