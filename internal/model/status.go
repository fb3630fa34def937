package model

// RunStatus represents the status of a download run
type RunStatus string

const (
	// RunStatusPending means the run is created but not started
	RunStatusPending RunStatus = "Pending"

	// RunStatusStarting means the work directory and browser session are being prepared
	RunStatusStarting RunStatus = "Starting"

	// RunStatusDownloading means direct-download requests are being issued
	RunStatusDownloading RunStatus = "Downloading"

	// RunStatusSettling means the run waits for in-progress downloads to finish
	RunStatusSettling RunStatus = "Settling"

	// RunStatusArchiving means the batch is being written into the zip archive
	RunStatusArchiving RunStatus = "Archiving"

	// RunStatusStopped means the run was cancelled by user
	RunStatusStopped RunStatus = "Stopped"

	// RunStatusCompleted means the archive was written successfully
	RunStatusCompleted RunStatus = "Completed"

	// RunStatusError means the run failed with an error
	RunStatusError RunStatus = "Error"
)

// String returns the string representation of RunStatus
func (rs RunStatus) String() string {
	return string(rs)
}

// IsActive returns true if the run is in an active state
func (rs RunStatus) IsActive() bool {
	switch rs {
	case RunStatusStarting, RunStatusDownloading, RunStatusSettling, RunStatusArchiving:
		return true
	}
	return false
}

// IsFinished returns true if the run is in a finished state (completed, stopped, or error)
func (rs RunStatus) IsFinished() bool {
	return rs == RunStatusCompleted || rs == RunStatusStopped || rs == RunStatusError
}
