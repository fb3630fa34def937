package config

import (
	_ "embed"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/ytget/mycourses-downloader/internal/model"
)

//go:embed catalog.toml
var defaultCatalog []byte

type catalogFile struct {
	Courses []model.Course `toml:"course"`
}

// DefaultCatalog returns the built-in course catalog
func DefaultCatalog() (*model.Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog from a TOML file. An empty path yields the
// built-in catalog.
func LoadCatalog(path string) (*model.Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V("path", path))
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid catalog file", goerr.V("path", path))
	}
	return catalog, nil
}

// ParseCatalog decodes a TOML catalog
func ParseCatalog(data []byte) (*model.Catalog, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to decode catalog")
	}

	for _, course := range file.Courses {
		if course.ID <= 0 {
			return nil, goerr.New("course id must be positive", goerr.V("name", course.Name))
		}
	}

	catalog, err := model.NewCatalog(file.Courses)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build catalog")
	}
	return catalog, nil
}
