package platform

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// InProgressSuffixes are the extensions browsers give to files still being
// written: Chromium uses .crdownload, and .tmp appears before the final rename.
var InProgressSuffixes = []string{".crdownload", ".tmp"}

// IsInProgressDownload reports whether the file name marks an unfinished download
func IsInProgressDownload(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range InProgressSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// DirSnapshot is the state of a browser download directory at one instant
type DirSnapshot struct {
	Complete   []string // finished file names, sorted
	InProgress []string // file names still carrying an in-progress marker, sorted
}

// Settled reports whether no download is in progress
func (s DirSnapshot) Settled() bool {
	return len(s.InProgress) == 0
}

// ScanDownloadDir lists regular files of dir split by download state.
// Subdirectories are ignored.
func ScanDownloadDir(dir string) (DirSnapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return DirSnapshot{}, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var snap DirSnapshot
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsInProgressDownload(entry.Name()) {
			snap.InProgress = append(snap.InProgress, entry.Name())
		} else {
			snap.Complete = append(snap.Complete, entry.Name())
		}
	}

	sort.Strings(snap.Complete)
	sort.Strings(snap.InProgress)
	return snap, nil
}
