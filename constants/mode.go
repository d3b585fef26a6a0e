package constants

// Mode is the per-user session state.
type Mode string

const (
	ModeIdle            Mode = "idle"
	ModeManualWaitSheet Mode = "manual_wait_sheet"
	ModeManualMenu      Mode = "manual_menu"
	ModeDishCollect     Mode = "dish_collect"
	ModeEdit            Mode = "edit"
	ModeBulkWaitSheet   Mode = "bulk_wait_sheet"
	ModeBulkCollect     Mode = "bulk_collect"
	ModeBulkReview      Mode = "bulk_review"
)
