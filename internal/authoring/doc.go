// Package authoring turns disc-target conversions into a DVD VIDEO_TS folder
// with dvdauthor.
//
// The pipeline checks that dvdauthor is reachable (natively or through the
// shim), collects the .mpg files produced for the queue, allocates a fresh
// DVD_OUTPUT_<n> directory, runs the title phase and then the table-of-contents
// phase, and finally verifies that VIDEO_TS exists. Every outcome is reported
// as a Result carrying the user-facing message.
package authoring
