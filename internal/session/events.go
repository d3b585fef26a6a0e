package session

import "github.com/tezkor/menu-tracker/constants"

// EventKind discriminates incoming transport events.
type EventKind string

const (
	EventPhoto  EventKind = "photo"
	EventText   EventKind = "text"
	EventAction EventKind = "action"
)

// Action is a named operator intent fed back by the UI collaborator
// (button press or command).
type Action string

const (
	ActionStart        Action = "start"
	ActionHome         Action = "home"
	ActionHelp         Action = "help"
	ActionManual       Action = "manual"
	ActionBulk         Action = "bulk"
	ActionNewDish      Action = "new_dish"
	ActionDone         Action = "done"
	ActionCancel       Action = "cancel"
	ActionMenuUploaded Action = "menu_uploaded"
	ActionExport       Action = "export"
	ActionEdit         Action = "edit"
)

// PhotoKind distinguishes compressed photos from image documents so the UI
// can re-send them the right way.
type PhotoKind string

const (
	PhotoKindPhoto    PhotoKind = "photo"
	PhotoKindDocument PhotoKind = "document"
)

// PhotoRef is an opaque reference to a photo held by the transport, plus the
// message that carried it (used for reply-to rendering).
type PhotoRef struct {
	FileID    string
	Kind      PhotoKind
	MessageID int
}

// Event is one per-user transport event.
type Event struct {
	Kind EventKind

	// EventText
	Text string

	// EventPhoto
	Photo   *PhotoRef
	Caption string

	// EventAction
	Action    Action
	EditField constants.FieldID // for ActionEdit
}
