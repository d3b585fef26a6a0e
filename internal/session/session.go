// Package session owns the per-user collection and review workflow: the event
// buffer, position segmentation, mode transitions, edits and the accumulated
// export rows. All state lives for the process lifetime only.
package session

import (
	"github.com/tezkor/menu-tracker/constants"
	"github.com/tezkor/menu-tracker/internal/export"
	"github.com/tezkor/menu-tracker/internal/extractor"
)

// CollectedEvent is one raw entry of the bulk collection buffer: either a
// photo or a text line, in arrival order.
type CollectedEvent struct {
	Photo *PhotoRef // nil for text entries
	Text  string
}

// Position is one candidate dish inside a bulk upload: a photo and its
// trailing text lines. Record is populated lazily on first review and mutated
// by edits afterwards.
type Position struct {
	Photo  PhotoRef
	Texts  []string
	Record *extractor.Record
}

// Session is the full per-user state. Access is serialized by Store.
type Session struct {
	UserID   int64
	Mode     constants.Mode
	SheetRef string

	// Single-dish (manual) flow.
	DraftTexts  []string
	DraftPhotos []PhotoRef
	Draft       *extractor.Record

	// Field awaiting the operator's next text input, "" when none.
	PendingEdit constants.FieldID

	// Bulk flow. Buffer is append-only until segmentation freezes it into
	// Positions; Cursor indexes the position under review.
	Buffer    []CollectedEvent
	Positions []*Position
	Cursor    int

	// Export rows confirmed so far, across both flows.
	Rows []export.Row
}

func newSession(userID int64) *Session {
	return &Session{UserID: userID, Mode: constants.ModeIdle}
}

// resetDish clears the single-dish draft and any pending edit.
func (s *Session) resetDish() {
	s.DraftTexts = nil
	s.DraftPhotos = nil
	s.Draft = nil
	s.PendingEdit = ""
}

// resetBulk clears the bulk buffer and review progress.
func (s *Session) resetBulk() {
	s.Buffer = nil
	s.Positions = nil
	s.Cursor = 0
}

// reset returns the session to a fresh idle state.
func (s *Session) reset() {
	*s = *newSession(s.UserID)
}

// currentPosition returns the position under review, or nil when the cursor
// has run off the end.
func (s *Session) currentPosition() *Position {
	if s.Cursor >= 0 && s.Cursor < len(s.Positions) {
		return s.Positions[s.Cursor]
	}
	return nil
}
