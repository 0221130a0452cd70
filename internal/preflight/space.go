package preflight

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/disk"
)

// MinFreeBytes is the free space below which a directory is reported as low.
// A single DVD-profile encode of a feature film needs a few GiB.
const MinFreeBytes = 4 << 30

// CheckFreeSpace reports the free space on the filesystem holding path.
func CheckFreeSpace(name, path string, minFree uint64) Result {
	usage, err := disk.Usage(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	detail := fmt.Sprintf("%s free of %s on %s", humanize.IBytes(usage.Free), humanize.IBytes(usage.Total), path)
	if usage.Free < minFree {
		return Result{Name: name, Detail: detail + fmt.Sprintf(" (below %s)", humanize.IBytes(minFree))}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}
