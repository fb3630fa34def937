package compress

// Archiver defines the interface for the archive service.
type Archiver interface {
	// NextArchivePath returns the first free archive path inside dir
	NextArchivePath(dir string) (string, error)

	// ArchiveDir writes every regular file of srcDir into a new zip at destPath
	// and returns the number of files written
	ArchiveDir(srcDir, destPath string) (int, error)
}
