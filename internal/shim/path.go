package shim

import "strings"

// TranslatePath rewrites a host path into the launcher's view. Paths with a
// drive letter map to /mnt/<lower-case letter>/...; anything else only has its
// separators normalized to forward slashes.
func TranslatePath(p string) string {
	drive, rest, ok := splitDrive(p)
	rest = strings.ReplaceAll(rest, `\`, "/")
	if !ok {
		return rest
	}
	if rest != "" && !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return "/mnt/" + strings.ToLower(string(drive)) + rest
}

// splitDrive separates a leading "X:" drive designator. filepath.VolumeName
// only recognizes drives on Windows builds, so the check is done by hand.
func splitDrive(p string) (byte, string, bool) {
	if len(p) < 2 || p[1] != ':' {
		return 0, p, false
	}
	c := p[0]
	if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
		return 0, p, false
	}
	return c, p[2:], true
}
