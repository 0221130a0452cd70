// Package presets defines the conversion choices offered to users and turns a
// selection into an immutable Configuration for one run.
//
// Each preset table pairs a short id with the display label shown to users;
// lookups accept either form and ignore case. A disc profile other than "off"
// overrides the codec, quality, resolution, and container for the run.
package presets
