package dataset

import (
	_ "embed"
	"fmt"
)

//go:embed data/civil_litigation.yaml
var civilLitigationYAML []byte

// DefaultName is the label used for the embedded dataset in logs and output.
const DefaultName = "embedded:civil_litigation"

// Default returns the embedded civil-litigation dataset.
func Default() (*Schema, error) {
	schema, err := Parse(civilLitigationYAML, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return schema, nil
}

// Load returns the dataset at path, or the embedded default when path is empty.
func Load(path string) (*Schema, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}
