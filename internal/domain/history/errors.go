package history

import "errors"

var (
	// ErrPermissionDenied is returned when extraction is attempted without a
	// current-request grant. Reaching it means a caller skipped the privacy
	// gate; the message shown to users stays generic.
	ErrPermissionDenied = errors.New("history access not authorized")

	// ErrStoreUnavailable covers a missing, unreadable, or uncopyable source
	// database.
	ErrStoreUnavailable = errors.New("history store unavailable")

	// ErrQueryFailure covers failures reading the snapshot copy: corruption,
	// schema mismatch, or a failed query.
	ErrQueryFailure = errors.New("history query failed")
)
