package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tezkor/menu-tracker/constants"
	"github.com/tezkor/menu-tracker/internal/common"
	"github.com/tezkor/menu-tracker/internal/export"
	"github.com/tezkor/menu-tracker/internal/extractor"
	"github.com/tezkor/menu-tracker/internal/render"
)

// Engine drives the per-user workflow: it buffers collection events, runs
// segmentation and extraction at the right transitions, applies edits and
// hands confirmed rows to the exporter.
//
// Locking discipline: session state is only touched inside store.With. The
// two blocking collaborators (photo URL resolution, export) are called with
// the lock released; results are committed by re-entering the session.
type Engine struct {
	store     *Store
	extract   *extractor.Engine
	presenter Presenter
	resolver  PhotoResolver
	exporter  Exporter
	logger    *slog.Logger
}

func NewEngine(
	store *Store,
	extract *extractor.Engine,
	presenter Presenter,
	resolver PhotoResolver,
	exporter Exporter,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:     store,
		extract:   extract,
		presenter: presenter,
		resolver:  resolver,
		exporter:  exporter,
		logger:    logger,
	}
}

// reply is a queued operator-facing response, emitted after the session lock
// is released.
type reply struct {
	notice string
	card   *Card
}

func notice(text string) reply { return reply{notice: text} }

// preconditionErr marks an operator action unavailable in the session's
// current mode. The operator gets a notice; the caller logs it as routine.
func preconditionErr(code, message string) error {
	return common.NewAppError(code, message, common.ErrPrecondition)
}

func (e *Engine) emit(ctx context.Context, userID int64, replies []reply) {
	for _, r := range replies {
		var err error
		switch {
		case r.card != nil:
			err = e.presenter.ShowCard(ctx, userID, *r.card)
		case r.notice != "":
			err = e.presenter.Notice(ctx, userID, r.notice)
		}
		if err != nil {
			e.logger.Warn("present.failed", "user_id", userID, "error", err)
		}
	}
}

// HandleEvent processes one transport event for one user. Callers must
// serialize events of the same user (see Dispatcher).
func (e *Engine) HandleEvent(ctx context.Context, userID int64, ev Event) error {
	switch ev.Kind {
	case EventPhoto:
		if ev.Photo == nil {
			return common.NewAppError("BAD_EVENT", "photo event without photo", common.ErrInvalidInput)
		}
		return e.handlePhoto(ctx, userID, ev)
	case EventText:
		return e.handleText(ctx, userID, ev)
	case EventAction:
		return e.handleAction(ctx, userID, ev)
	default:
		return common.NewAppError("BAD_EVENT", fmt.Sprintf("unknown event kind %q", ev.Kind), common.ErrInvalidInput)
	}
}

func (e *Engine) handlePhoto(ctx context.Context, userID int64, ev Event) error {
	ignored := false
	e.store.With(userID, func(s *Session) {
		photo := *ev.Photo
		caption := strings.TrimSpace(ev.Caption)
		switch s.Mode {
		case constants.ModeDishCollect:
			s.DraftPhotos = append(s.DraftPhotos, photo)
			if caption != "" {
				s.DraftTexts = append(s.DraftTexts, caption)
			}
		case constants.ModeBulkCollect:
			s.Buffer = append(s.Buffer, CollectedEvent{Photo: &photo})
			if caption != "" {
				s.Buffer = append(s.Buffer, CollectedEvent{Text: caption})
			}
		default:
			ignored = true
		}
	})
	if ignored {
		e.logger.Debug("photo.ignored", "user_id", userID)
	}
	return nil
}

func (e *Engine) handleText(ctx context.Context, userID int64, ev Event) error {
	var replies []reply
	ignored := false

	e.store.With(userID, func(s *Session) {
		// Edit input is taken raw: an empty string is a valid clear token.
		if s.Mode == constants.ModeEdit || s.Mode == constants.ModeBulkReview {
			replies = e.applyPendingEdit(s, ev.Text)
			if replies == nil {
				ignored = true
			}
			return
		}

		text := strings.TrimSpace(ev.Text)
		if text == "" {
			return
		}
		switch s.Mode {
		case constants.ModeBulkCollect:
			s.Buffer = append(s.Buffer, CollectedEvent{Text: text})
		case constants.ModeDishCollect:
			s.DraftTexts = append(s.DraftTexts, text)
		case constants.ModeManualWaitSheet:
			s.SheetRef = text
			s.Mode = constants.ModeManualMenu
			replies = append(replies, notice(render.NoticeSheetBound))
		case constants.ModeBulkWaitSheet:
			s.SheetRef = text
			s.Mode = constants.ModeBulkCollect
			replies = append(replies, notice(render.NoticeBulkSheet))
		default:
			ignored = true
		}
	})

	if ignored {
		e.logger.Debug("text.ignored", "user_id", userID)
	}
	e.emit(ctx, userID, replies)
	return nil
}

// applyPendingEdit writes the operator's text into the field picked earlier.
// Returns nil when no edit was pending.
func (e *Engine) applyPendingEdit(s *Session, input string) []reply {
	if s.PendingEdit == "" {
		return nil
	}

	var rec *extractor.Record
	if s.Mode == constants.ModeBulkReview {
		if pos := s.currentPosition(); pos != nil {
			rec = pos.Record
		}
	} else {
		rec = s.Draft
	}
	if rec == nil {
		s.PendingEdit = ""
		return nil
	}

	extractor.ApplyEdit(rec, s.PendingEdit, input)
	s.PendingEdit = ""

	replies := []reply{notice(render.NoticeUpdated)}
	if s.Mode == constants.ModeBulkReview {
		replies = append(replies, reply{card: bulkCard(s)})
	} else {
		replies = append(replies, reply{card: draftCard(s)})
	}
	return replies
}

func (e *Engine) handleAction(ctx context.Context, userID int64, ev Event) error {
	e.logger.Info("session.action",
		"user_id", userID, "action", ev.Action,
		"trace_id", common.TraceIDFromContext(ctx),
	)

	switch ev.Action {
	case ActionStart:
		e.store.With(userID, func(*Session) {})
		e.emit(ctx, userID, []reply{notice(render.NoticeWelcome)})
		return nil

	case ActionHome:
		e.store.With(userID, func(s *Session) { s.reset() })
		e.emit(ctx, userID, []reply{notice(render.NoticeHome)})
		return nil

	case ActionHelp:
		e.emit(ctx, userID, []reply{notice(render.NoticeHelp)})
		return nil

	case ActionManual:
		return e.startFlow(ctx, userID, constants.ModeManualWaitSheet)

	case ActionBulk:
		return e.startFlow(ctx, userID, constants.ModeBulkWaitSheet)

	case ActionNewDish:
		return e.startDish(ctx, userID)

	case ActionDone:
		return e.actionDone(ctx, userID)

	case ActionCancel:
		return e.actionCancel(ctx, userID)

	case ActionMenuUploaded:
		return e.actionMenuUploaded(ctx, userID)

	case ActionExport:
		return e.actionExport(ctx, userID)

	case ActionEdit:
		return e.actionEdit(ctx, userID, ev.EditField)

	default:
		return common.NewAppError("BAD_EVENT", fmt.Sprintf("unknown action %q", ev.Action), common.ErrInvalidInput)
	}
}

// startFlow resets the session for a fresh manual or bulk run and waits for
// the sheet reference.
func (e *Engine) startFlow(ctx context.Context, userID int64, mode constants.Mode) error {
	e.store.With(userID, func(s *Session) {
		s.resetDish()
		s.resetBulk()
		s.Rows = nil
		s.SheetRef = ""
		s.Mode = mode
	})
	e.emit(ctx, userID, []reply{notice(render.NoticeAskSheet)})
	return nil
}

func (e *Engine) startDish(ctx context.Context, userID int64) error {
	var replies []reply
	var err error
	e.store.With(userID, func(s *Session) {
		if s.Mode != constants.ModeManualMenu || s.SheetRef == "" {
			replies = append(replies, notice(render.NoticeNeedSheet))
			err = preconditionErr("NEED_SHEET", "new dish requires a bound sheet")
			return
		}
		s.resetDish()
		s.Mode = constants.ModeDishCollect
		replies = append(replies, notice(render.NoticeCollectDish))
	})
	e.emit(ctx, userID, replies)
	return err
}

func (e *Engine) actionDone(ctx context.Context, userID int64) error {
	var mode constants.Mode
	e.store.With(userID, func(s *Session) { mode = s.Mode })

	switch mode {
	case constants.ModeDishCollect:
		var replies []reply
		e.store.With(userID, func(s *Session) {
			if s.Mode != constants.ModeDishCollect {
				return
			}
			s.Draft = e.extract.Extract(extractor.NormalizeTexts(s.DraftTexts))
			s.Mode = constants.ModeEdit
			replies = append(replies, reply{card: draftCard(s)})
		})
		e.emit(ctx, userID, replies)
		return nil

	case constants.ModeEdit:
		return e.confirmDraft(ctx, userID)

	case constants.ModeBulkReview:
		return e.confirmBulkPosition(ctx, userID)

	default:
		e.emit(ctx, userID, []reply{notice(render.NoticeNotNow)})
		return preconditionErr("NOT_NOW", fmt.Sprintf("done is unavailable in mode %q", mode))
	}
}

// confirmDraft turns the reviewed draft into export rows and returns to the
// manual menu.
func (e *Engine) confirmDraft(ctx context.Context, userID int64) error {
	var (
		rec   *extractor.Record
		photo *PhotoRef
		ok    bool
	)
	e.store.With(userID, func(s *Session) {
		if s.Mode != constants.ModeEdit || s.Draft == nil {
			return
		}
		rec = s.Draft
		if len(s.DraftPhotos) > 0 {
			p := s.DraftPhotos[0]
			photo = &p
		}
		ok = true
	})
	if !ok {
		e.emit(ctx, userID, []reply{notice(render.NoticeNotNow)})
		return preconditionErr("NO_DRAFT", "no draft to confirm")
	}

	photoURL := ""
	if photo != nil {
		url, err := e.resolver.ResolveURL(ctx, *photo)
		if err != nil {
			e.emit(ctx, userID, []reply{notice(render.NoticeResolveFailed)})
			return common.NewAppError("PHOTO_RESOLVE", "resolve draft photo", common.ErrExternal)
		}
		photoURL = url
	}
	rows := export.BuildRows(rec, photoURL)

	var replies []reply
	e.store.With(userID, func(s *Session) {
		if s.Mode != constants.ModeEdit || s.Draft != rec {
			return
		}
		s.Rows = append(s.Rows, rows...)
		s.resetDish()
		s.Mode = constants.ModeManualMenu
		replies = append(replies, notice(render.NoticeDishSaved))
	})
	e.emit(ctx, userID, replies)
	return nil
}

// confirmBulkPosition flattens the current position into export rows and
// advances the review cursor.
func (e *Engine) confirmBulkPosition(ctx context.Context, userID int64) error {
	var (
		pos   *Position
		rec   *extractor.Record
		photo PhotoRef
		ok    bool
	)
	e.store.With(userID, func(s *Session) {
		if s.Mode != constants.ModeBulkReview {
			return
		}
		p := s.currentPosition()
		if p == nil || p.Record == nil {
			return
		}
		pos, rec, photo, ok = p, p.Record, p.Photo, true
	})
	if !ok {
		e.emit(ctx, userID, []reply{notice(render.NoticeNotNow)})
		return preconditionErr("NO_POSITION", "no position under review")
	}

	url, err := e.resolver.ResolveURL(ctx, photo)
	if err != nil {
		e.emit(ctx, userID, []reply{notice(render.NoticeResolveFailed)})
		return common.NewAppError("PHOTO_RESOLVE", "resolve position photo", common.ErrExternal)
	}
	rows := export.BuildRows(rec, url)

	var replies []reply
	e.store.With(userID, func(s *Session) {
		// The session may have moved on while the URL was resolving.
		if s.Mode != constants.ModeBulkReview || s.currentPosition() != pos {
			return
		}
		s.Rows = append(s.Rows, rows...)
		s.PendingEdit = ""
		s.Cursor++

		if next := s.currentPosition(); next != nil {
			next.Record = e.extract.Extract(extractor.NormalizeTexts(next.Texts))
			replies = append(replies, reply{card: bulkCard(s)})
			return
		}
		s.Mode = constants.ModeManualMenu
		replies = append(replies, notice(render.NoticeBulkDone))
	})
	e.emit(ctx, userID, replies)
	return nil
}

func (e *Engine) actionCancel(ctx context.Context, userID int64) error {
	var replies []reply
	e.store.With(userID, func(s *Session) {
		switch s.Mode {
		case constants.ModeDishCollect:
			s.resetDish()
			s.Mode = constants.ModeManualMenu
			replies = append(replies, notice(render.NoticeDishCanceled))
		case constants.ModeBulkReview:
			// Only in-progress edits are discarded, never the position.
			s.PendingEdit = ""
			replies = append(replies, notice(render.NoticeEditCanceled))
		default:
			replies = append(replies, notice(render.NoticeNothingCancel))
		}
	})
	e.emit(ctx, userID, replies)
	return nil
}

func (e *Engine) actionMenuUploaded(ctx context.Context, userID int64) error {
	var replies []reply
	var err error
	e.store.With(userID, func(s *Session) {
		if s.Mode != constants.ModeBulkCollect {
			replies = append(replies, notice(render.NoticeNotNow))
			err = preconditionErr("NOT_NOW", "menu upload signal outside bulk collection")
			return
		}
		positions := Segment(s.Buffer)
		if len(positions) == 0 {
			// Recoverable: keep collecting.
			replies = append(replies, notice(render.NoticeNoPositions))
			err = preconditionErr("NO_POSITIONS", "buffer segments to zero positions")
			return
		}
		s.Positions = positions
		s.Cursor = 0
		s.Mode = constants.ModeBulkReview

		first := s.Positions[0]
		first.Record = e.extract.Extract(extractor.NormalizeTexts(first.Texts))
		replies = append(replies, notice(render.NoticeBulkAccepted), reply{card: bulkCard(s)})
	})
	e.emit(ctx, userID, replies)
	return err
}

func (e *Engine) actionExport(ctx context.Context, userID int64) error {
	var (
		rows    []export.Row
		ref     string
		preErr  error
		replies []reply
	)
	e.store.With(userID, func(s *Session) {
		if s.Mode != constants.ModeManualMenu {
			replies = append(replies, notice(render.NoticeNotNow))
			preErr = preconditionErr("NOT_NOW", "export is unavailable outside the manual menu")
			return
		}
		if s.SheetRef == "" {
			replies = append(replies, notice(render.NoticeNoSheet))
			preErr = preconditionErr("NO_SHEET", "export requires a bound sheet")
			return
		}
		rows = append([]export.Row(nil), s.Rows...)
		ref = s.SheetRef
		replies = append(replies, notice(render.NoticeExporting))
	})
	e.emit(ctx, userID, replies)
	if preErr != nil {
		return preErr
	}

	if err := e.exporter.Export(ctx, ref, rows); err != nil {
		e.logger.Error("session.export_failed", "user_id", userID, "rows", len(rows), "error", err)
		e.emit(ctx, userID, []reply{notice(render.NoticeExportFailed)})
		return common.NewAppError("EXPORT", "export rows", common.ErrExternal)
	}

	e.store.With(userID, func(s *Session) { s.reset() })
	e.logger.Info("session.export_ok", "user_id", userID, "rows", len(rows))
	e.emit(ctx, userID, []reply{notice(render.NoticeExported)})
	return nil
}

func (e *Engine) actionEdit(ctx context.Context, userID int64, field constants.FieldID) error {
	var replies []reply
	var err error
	e.store.With(userID, func(s *Session) {
		if !constants.IsEditable(field) {
			replies = append(replies, notice(render.NoticeNotNow))
			err = preconditionErr("EDIT_UNAVAILABLE", fmt.Sprintf("field %q is not editable", field))
			return
		}
		editable := false
		switch s.Mode {
		case constants.ModeEdit:
			editable = s.Draft != nil
		case constants.ModeBulkReview:
			pos := s.currentPosition()
			editable = pos != nil && pos.Record != nil
		}
		if !editable {
			replies = append(replies, notice(render.NoticeNotNow))
			err = preconditionErr("EDIT_UNAVAILABLE", "no record under review to edit")
			return
		}
		s.PendingEdit = field
		replies = append(replies, notice(render.EditPrompt(field)))
	})
	e.emit(ctx, userID, replies)
	return err
}

// bulkCard renders the review card for the position under the cursor.
func bulkCard(s *Session) *Card {
	pos := s.currentPosition()
	photo := pos.Photo
	caption := render.PositionHeader(s.Cursor, len(s.Positions)) + "\n\n" +
		render.CardWithExplanation(pos.Record, 1)
	return &Card{
		Caption:          caption,
		Photo:            &photo,
		ReplyToMessageID: pos.Photo.MessageID,
		EditControls:     true,
	}
}

// draftCard renders the review card for the manual draft.
func draftCard(s *Session) *Card {
	var photo *PhotoRef
	if len(s.DraftPhotos) > 0 {
		p := s.DraftPhotos[0]
		photo = &p
	}
	return &Card{
		Caption:      render.CardWithExplanation(s.Draft, len(s.DraftPhotos)),
		Photo:        photo,
		EditControls: true,
	}
}
