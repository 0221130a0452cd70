// Package process runs external tools to completion or cancellation.
//
// Runner starts the command, waits for it in a goroutine, and selects between
// that exit and the caller's context. When the context ends first the process
// gets SIGTERM, then a grace period, then SIGKILL. Output is captured up to a
// bounded tail so chatty tools cannot grow memory without limit.
//
// Packages that drive tools depend on the Executor interface so tests can
// substitute a stub.
package process
