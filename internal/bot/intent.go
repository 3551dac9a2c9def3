// Package bot classifies incoming chat events into intents and turns
// them into replies. It holds no per-conversation state; everything it
// needs rides in the event itself.
package bot

import (
	"strconv"
	"strings"
)

// Callback token prefixes. Page tokens carry a 1-based page number,
// play tokens carry a catalog item id.
const (
	CallbackPagePrefix = "PAGE::"
	CallbackPlayPrefix = "PLAY::"
)

// PageCallback builds the callback token for a page request
func PageCallback(page int) string {
	return CallbackPagePrefix + strconv.Itoa(page)
}

// PlayCallback builds the callback token for a play request
func PlayCallback(itemID int64) string {
	return CallbackPlayPrefix + strconv.FormatInt(itemID, 10)
}

// IntentKind identifies what an incoming event asks for
type IntentKind int

const (
	IntentUnknown IntentKind = iota
	IntentStart
	IntentPage
	IntentPlay
)

// String returns the intent name for logs and metric labels
func (k IntentKind) String() string {
	switch k {
	case IntentStart:
		return "start"
	case IntentPage:
		return "page"
	case IntentPlay:
		return "play"
	default:
		return "unknown"
	}
}

// Intent is a classified event. Page is set for IntentPage,
// ItemID for IntentPlay.
type Intent struct {
	Kind   IntentKind
	Page   int
	ItemID int64
}

// Classify maps an event to an intent. Callback data takes priority
// over message text. Malformed callback tokens classify as unknown.
func Classify(ev Event) Intent {
	if ev.IsCallback {
		if raw, ok := strings.CutPrefix(ev.CallbackData, CallbackPagePrefix); ok {
			page, err := strconv.Atoi(raw)
			if err != nil || page < 1 {
				return Intent{Kind: IntentUnknown}
			}
			return Intent{Kind: IntentPage, Page: page}
		}
		if raw, ok := strings.CutPrefix(ev.CallbackData, CallbackPlayPrefix); ok {
			itemID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || itemID < 1 {
				return Intent{Kind: IntentUnknown}
			}
			return Intent{Kind: IntentPlay, ItemID: itemID}
		}
		return Intent{Kind: IntentUnknown}
	}

	if ev.Text == "/start" {
		return Intent{Kind: IntentStart}
	}

	return Intent{Kind: IntentUnknown}
}
