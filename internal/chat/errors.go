package chat

import "errors"

// Failure taxonomy. Every collaborator error is wrapped into one of these
// at the directory/timeline/orchestrator boundary so callers can branch
// with errors.Is; none of them is fatal to the process.
var (
	// ErrDirectoryUnavailable means the session list could not be fetched.
	ErrDirectoryUnavailable = errors.New("session directory unavailable")

	// ErrCreateFailed means session creation was rejected; no query was issued.
	ErrCreateFailed = errors.New("session creation failed")

	// ErrAskFailed means the answering service failed; the session, if newly
	// created, remains as an empty session.
	ErrAskFailed = errors.New("query failed")

	// ErrPersistFailed means an answer was obtained but could not be saved.
	ErrPersistFailed = errors.New("message persist failed")

	// ErrLoadFailed means the timeline fetch failed; the timeline is left empty.
	ErrLoadFailed = errors.New("message load failed")

	// ErrBusy rejects a submission while another one is in flight.
	ErrBusy = errors.New("a submission is already in flight")
)
