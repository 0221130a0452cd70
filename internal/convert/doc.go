// Package convert runs a snapshot of the job queue through the transcoder one
// item at a time.
//
// Engine.Run owns the per-run bookkeeping: it checks the run context between
// items, skips and counts missing sources, derives destinations, emits
// ordered progress events, and folds per-item outcomes into a Summary whose
// String form is the user-facing report. Only one run may be active per
// Engine; a second concurrent Run returns ErrRunActive.
package convert
