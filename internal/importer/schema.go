package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the top-level structure of a catalog import file.
type CatalogFile struct {
	Courses []CourseRecord `json:"courses" yaml:"courses" validate:"required,min=1,dive"`
}

// CourseRecord is one course row. Category is free text and classified on
// conversion; Taken is an optional term label such as "Fall, Year 2".
type CourseRecord struct {
	ID            string   `json:"id" yaml:"id" validate:"required,max=64"`
	Name          string   `json:"name,omitempty" yaml:"name,omitempty" validate:"max=200"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Units         int      `json:"units" yaml:"units" validate:"required,gt=0,lte=60"`
	Difficulty    *int     `json:"difficulty,omitempty" yaml:"difficulty,omitempty" validate:"omitempty,gte=0,lte=100"`
	Category      string   `json:"category,omitempty" yaml:"category,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty" validate:"dive,max=64"`
	Corequisites  []string `json:"corequisites,omitempty" yaml:"corequisites,omitempty" validate:"dive,max=64"`
	Taken         string   `json:"taken,omitempty" yaml:"taken,omitempty"`
}

// Format selects the decoder for a catalog file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadCatalogFile reads and parses a catalog import file.
func LoadCatalogFile(path string) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data, FormatFromPath(path))
}

// ParseCatalog decodes catalog bytes in the given format.
func ParseCatalog(data []byte, format Format) (*CatalogFile, error) {
	var file CatalogFile
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing catalog yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing catalog json: %w", err)
		}
	}
	return &file, nil
}
