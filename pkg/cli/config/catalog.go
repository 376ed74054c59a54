package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// CatalogFile is the TOML seed file describing departments and their
// checklist question templates.
//
//	[[department]]
//	name = "IT"
//	email = "it@example.com"
//	assignable = true
//
//	  [[department.question]]
//	  text = "Laptop returned?"
//	  concerned = true
type CatalogFile struct {
	Departments []CatalogDepartment `toml:"department"`
}

type CatalogDepartment struct {
	Name       string            `toml:"name"`
	Email      string            `toml:"email"`
	Assignable bool              `toml:"assignable"`
	Questions  []CatalogQuestion `toml:"question"`
}

type CatalogQuestion struct {
	Text      string `toml:"text"`
	Concerned bool   `toml:"concerned"`
}

// LoadCatalogFile reads and validates a catalog seed file
func LoadCatalogFile(path string) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V("path", path))
	}

	var catalog CatalogFile
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(err, "failed to parse catalog file", goerr.V("path", path))
	}

	if err := catalog.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid catalog file", goerr.V("path", path))
	}

	return &catalog, nil
}

// Validate checks the catalog for empty and duplicate entries
func (c *CatalogFile) Validate() error {
	if len(c.Departments) == 0 {
		return goerr.New("catalog has no departments")
	}

	seen := make(map[string]bool, len(c.Departments))
	for _, dept := range c.Departments {
		name := strings.ToLower(strings.TrimSpace(dept.Name))
		if name == "" {
			return goerr.New("department name is empty")
		}
		if seen[name] {
			return goerr.New("duplicate department name", goerr.V("name", dept.Name))
		}
		seen[name] = true

		for _, q := range dept.Questions {
			if strings.TrimSpace(q.Text) == "" {
				return goerr.New("question text is empty", goerr.V("department", dept.Name))
			}
		}
	}

	return nil
}
