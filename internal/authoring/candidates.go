package authoring

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"vidconv/internal/convert"
	"vidconv/internal/presets"
)

const outputDirPrefix = "DVD_OUTPUT_"

// CollectCandidates returns the .mpg files to author. The expected disc-target
// output of each queue item wins when at least one exists; otherwise every
// *.mpg in outputDir (or the working directory) is used, sorted by name.
func CollectCandidates(queue []string, outputDir string) ([]string, error) {
	var files []string
	for _, source := range queue {
		converted := convert.Destination(source, outputDir, presets.DiscContainer)
		if _, err := os.Stat(converted); err == nil {
			files = append(files, converted)
		}
	}
	if len(files) > 0 {
		return files, nil
	}

	base := strings.TrimSpace(outputDir)
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		base = wd
	}
	return scanContainerFiles(base)
}

// scanContainerFiles lists the regular *.mpg files directly inside dir. Only
// entry names are matched, so glob characters in dir itself are literal.
func scanContainerFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	var matches []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match("*."+presets.DiscContainer, entry.Name()); ok {
			matches = append(matches, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// NextOutputDir returns base/DVD_OUTPUT_<n> for the smallest n >= 1 that does
// not exist yet.
func NextOutputDir(base string) (string, error) {
	for index := 1; ; index++ {
		candidate := filepath.Join(base, outputDirPrefix+strconv.Itoa(index))
		_, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("inspect %s: %w", candidate, err)
		}
	}
}
