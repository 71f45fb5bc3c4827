package service

import (
	"path/filepath"

	"github.com/alexanderramin/docketflow/internal/dataset"
)

// DatasetLoader produces the dataset the explorer serves.
type DatasetLoader interface {
	Load() (*dataset.Schema, error)
	// Path is the file being served, or "" for an in-memory or embedded dataset.
	Path() string
}

// FileLoader loads a dataset file, or the embedded dataset when FilePath is empty.
type FileLoader struct {
	FilePath string
}

func (l FileLoader) Load() (*dataset.Schema, error) {
	return dataset.Load(l.FilePath)
}

func (l FileLoader) Path() string {
	if l.FilePath == "" {
		return ""
	}
	abs, err := filepath.Abs(l.FilePath)
	if err != nil {
		return l.FilePath
	}
	return abs
}

// SchemaLoader serves a fixed, already parsed dataset.
type SchemaLoader struct {
	Schema *dataset.Schema
}

func (l SchemaLoader) Load() (*dataset.Schema, error) { return l.Schema, nil }

func (l SchemaLoader) Path() string { return "" }
