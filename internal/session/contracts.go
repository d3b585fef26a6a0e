package session

import (
	"context"

	"github.com/tezkor/menu-tracker/internal/export"
)

// Card is a rendering request handed to the UI collaborator: the caption to
// show, the photo to attach (nil for text-only), the message to reply to and
// whether to offer edit controls.
type Card struct {
	Caption          string
	Photo            *PhotoRef
	ReplyToMessageID int
	EditControls     bool
}

// Presenter is the transport/UI collaborator. It owns message formatting and
// buttons; the engine only hands it text and rendering requests.
type Presenter interface {
	Notice(ctx context.Context, userID int64, text string) error
	ShowCard(ctx context.Context, userID int64, card Card) error
}

// PhotoResolver turns an opaque photo reference into a durable URL suitable
// for an export row. May block on the network; the engine calls it with the
// session lock released.
type PhotoResolver interface {
	ResolveURL(ctx context.Context, ref PhotoRef) (string, error)
}

// Exporter hands accumulated rows to the spreadsheet collaborator. May block;
// called with the session lock released.
type Exporter interface {
	Export(ctx context.Context, sheetRef string, rows []export.Row) error
}
