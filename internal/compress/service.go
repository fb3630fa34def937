package compress

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Archive naming constants
const (
	DefaultArchiveBaseName = "combined_files"
	ArchiveExtension       = ".zip"

	// MaxArchiveSuffix bounds the collision search
	MaxArchiveSuffix = 10000

	ArchiveFilePermissions = 0644
)

// Service writes download batches into flat zip archives
type Service struct {
	baseName string
}

// NewService creates a new archive service using the default archive name
func NewService() *Service {
	return &Service{baseName: DefaultArchiveBaseName}
}

// NewServiceWithName creates an archive service with a custom base name.
// Directory parts are dropped so archives always land in the output directory.
func NewServiceWithName(baseName string) *Service {
	baseName = strings.TrimSuffix(filepath.Base(strings.TrimSpace(baseName)), ArchiveExtension)
	if baseName == "" || baseName == "." || baseName == ".." || baseName == string(filepath.Separator) {
		baseName = DefaultArchiveBaseName
	}
	return &Service{baseName: baseName}
}

// ArchiveName returns the n-th candidate name: "base.zip", "base (1).zip", ...
func (s *Service) ArchiveName(n int) string {
	if n == 0 {
		return s.baseName + ArchiveExtension
	}
	return fmt.Sprintf("%s (%d)%s", s.baseName, n, ArchiveExtension)
}

// NextArchivePath returns the first candidate name that does not exist in dir
func (s *Service) NextArchivePath(dir string) (string, error) {
	for n := 0; n < MaxArchiveSuffix; n++ {
		candidate := filepath.Join(dir, s.ArchiveName(n))
		_, err := os.Lstat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", goerr.Wrap(err, "failed to check archive path", goerr.V("path", candidate))
		}
	}
	return "", goerr.New("no free archive name", goerr.V("dir", dir), goerr.V("base", s.baseName))
}

// ArchiveDir writes every regular file of srcDir into a new zip at destPath.
// Entries are stored flat under their base names. destPath must not exist.
func (s *Service) ArchiveDir(srcDir, destPath string) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read batch directory", goerr.V("dir", srcDir))
	}

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, ArchiveFilePermissions)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create archive", goerr.V("path", destPath))
	}

	zw := zip.NewWriter(out)
	written := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if err := addFile(zw, filepath.Join(srcDir, entry.Name())); err != nil {
			zw.Close()
			out.Close()
			os.Remove(destPath)
			return 0, err
		}
		written++
	}

	if err := zw.Close(); err != nil {
		out.Close()
		os.Remove(destPath)
		return 0, goerr.Wrap(err, "failed to finalize archive", goerr.V("path", destPath))
	}
	if err := out.Close(); err != nil {
		os.Remove(destPath)
		return 0, goerr.Wrap(err, "failed to close archive", goerr.V("path", destPath))
	}

	return written, nil
}

// addFile copies one file into the archive under its base name
func addFile(zw *zip.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return goerr.Wrap(err, "failed to stat batch file", goerr.V("path", path))
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return goerr.Wrap(err, "failed to build zip header", goerr.V("path", path))
	}
	header.Name = filepath.Base(path)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return goerr.Wrap(err, "failed to add zip entry", goerr.V("path", path))
	}

	f, err := os.Open(path)
	if err != nil {
		return goerr.Wrap(err, "failed to open batch file", goerr.V("path", path))
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return goerr.Wrap(err, "failed to copy batch file", goerr.V("path", path))
	}
	return nil
}
