package bot

import (
	"github.com/cinegram/cinegram/internal/catalog"
)

// Event is a normalized incoming chat event, decoupled from any
// particular messenger's update format
type Event struct {
	ChatID       int64
	FirstName    string
	LastName     string
	Text         string
	CallbackData string
	IsCallback   bool
}

// Button is one inline keyboard button
type Button struct {
	Label    string
	Callback string
}

// Reply is an outgoing message, optionally with an inline keyboard
type Reply struct {
	ChatID   int64
	Text     string
	Keyboard [][]Button
}

// EpisodeKeyboard builds the inline keyboard for a catalog page: one
// row per episode, then a navigation row. Previous comes before Next;
// the navigation row is omitted when neither applies.
func EpisodeKeyboard(page *catalog.Page) [][]Button {
	rows := make([][]Button, 0, len(page.Entries)+1)
	for _, entry := range page.Entries {
		rows = append(rows, []Button{{
			Label:    entry.Label(),
			Callback: PlayCallback(entry.ID),
		}})
	}

	var nav []Button
	if page.HasPrevious() {
		nav = append(nav, Button{Label: "Previous", Callback: PageCallback(page.Number - 1)})
	}
	if page.HasNext() {
		nav = append(nav, Button{Label: "Next", Callback: PageCallback(page.Number + 1)})
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	return rows
}
