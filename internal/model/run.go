package model

import (
	"time"
)

// DownloadRun represents one download-and-archive run
type DownloadRun struct {
	ID          string
	CourseIDs   []int
	Status      RunStatus
	Planned     int    // files scheduled for download
	Requested   int    // download navigations issued
	Archived    int    // files written into the archive
	WorkDir     string // temporary directory holding the batch
	ArchivePath string // path of the resulting zip
	LastError   string // last error message if any
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Missing returns how many planned files never reached the archive
func (r *DownloadRun) Missing() int {
	if r.Status != RunStatusCompleted || r.Archived >= r.Planned {
		return 0
	}
	return r.Planned - r.Archived
}

// Progress returns request progress in the range 0.0 to 1.0
func (r *DownloadRun) Progress() float64 {
	if r.Planned == 0 {
		return 0
	}
	if r.Status == RunStatusCompleted {
		return 1
	}
	return float64(r.Requested) / float64(r.Planned)
}

// Elapsed returns the run duration, up to now for active runs
func (r *DownloadRun) Elapsed() time.Duration {
	if r.StartedAt.IsZero() {
		return 0
	}
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Snapshot returns a copy safe to hand to other goroutines
func (r *DownloadRun) Snapshot() *DownloadRun {
	cp := *r
	cp.CourseIDs = append([]int(nil), r.CourseIDs...)
	return &cp
}
