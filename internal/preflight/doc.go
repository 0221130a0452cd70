// Package preflight provides readiness checks for the tools and directories
// vidconv depends on.
//
// The CLI status command renders every check; convert and disc create call
// CheckDirectoryAccess on the output directory before a run starts so a bad
// path is reported once instead of once per queue item.
package preflight
