// Package services defines shared utilities consumed by the conversion engine,
// the disc authoring pipeline, and the command line front end.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, queue positions, and stage
//     names for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     environment failures with errors.Is.
package services
