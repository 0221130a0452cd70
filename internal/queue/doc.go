// Package queue persists the conversion queue in SQLite.
//
// Items are source file paths kept in insertion order. Positions reported by
// List are 1-based and are what the CLI uses to remove entries. The engine
// never reads the store directly: callers take a Paths snapshot before a run.
//
// Schema changes bump the version in schema.go; users clear the database to
// adopt the new schema.
package queue
