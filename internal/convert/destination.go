package convert

import (
	"path/filepath"
	"strings"
)

// destinationSuffix is appended to the source stem for every converted file.
const destinationSuffix = "_convertido"

// Destination returns where source is written for the given container format:
// <dir>/<stem>_convertido.<format>, where dir is outputDir when set and the
// source's own directory otherwise.
func Destination(source, outputDir, format string) string {
	dir := strings.TrimSpace(outputDir)
	if dir == "" {
		dir = filepath.Dir(source)
	}
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		// A dotfile such as ".mp4" has no extension, only a name.
		stem = base
	}
	return filepath.Join(dir, stem+destinationSuffix+"."+format)
}
