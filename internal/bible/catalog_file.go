package bible

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dvega-dev/bibliago/internal/domain"
)

// catalogFile is the on-disk catalog schema
type catalogFile struct {
	Versions []domain.Version `yaml:"versions"`
	Books    []domain.Book    `yaml:"books"`
}

// LoadCatalogFile reads a YAML catalog from disk, for running bulk
// operations without the remote catalog endpoints.
func LoadCatalogFile(path string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	for _, b := range file.Books {
		if b.Name == "" || b.Chapters < 1 {
			return nil, fmt.Errorf("invalid catalog entry: %+v", b)
		}
	}

	return &StaticCatalog{
		VersionList: file.Versions,
		BookList:    file.Books,
	}, nil
}
