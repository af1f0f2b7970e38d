package services

import "errors"

var (
	// ErrProfileIncomplete means age, height or weight is missing; callers
	// fall back to the default reference targets.
	ErrProfileIncomplete = errors.New("profile incomplete")

	// ErrAnalysisFailed means the AI collaborator errored or returned
	// content no JSON object could be extracted from. Distinct from a valid
	// response that simply lists zero nutrients.
	ErrAnalysisFailed = errors.New("analysis failed")

	// ErrShortcutNotFound is a normal miss, not a failure; the caller falls
	// through to the analysis path.
	ErrShortcutNotFound = errors.New("shortcut not found")

	// ErrItemNotFound is returned when an update or delete names an item id
	// that does not exist in that date's log.
	ErrItemNotFound = errors.New("log item not found")

	// ErrMalformedBackup aborts restoring one section of a backup document.
	// Other sections of the same document may still apply.
	ErrMalformedBackup = errors.New("malformed backup section")
)
