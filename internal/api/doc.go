// Package api is the presentation contract between front ends and the
// conversion and authoring engines.
//
// Service owns one convert.Engine and one authoring.Pipeline built from the
// loaded config. Start* methods run the operation on a new goroutine and hand
// the terminal message to a done callback; the synchronous variants are for
// callers that already own a goroutine (the CLI). Preconditions that the user
// must fix before anything runs are reported as *PreconditionError values
// carrying the message to show.
//
// Queue actions (AddFiles) translate store errors into per-path outcomes so a
// front end can report a batch add without aborting on the first bad file.
package api
