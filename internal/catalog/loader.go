package catalog

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

//go:embed data/problems.json
var builtin embed.FS

const builtinPath = "data/problems.json"

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// Load reads a dataset file. Files ending in .yaml or .yml are decoded as
// YAML, everything else as JSON.
func (l *FSLoader) Load(ctx context.Context, path string) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ds, err := decodeDataset(b, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return New(ds.Patterns, ds.Problems), nil
}

// Builtin returns the dataset compiled into the binary.
func (l *FSLoader) Builtin(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := builtin.ReadFile(builtinPath)
	if err != nil {
		return nil, err
	}
	ds, err := decodeDataset(b, ".json")
	if err != nil {
		return nil, fmt.Errorf("load builtin dataset: %w", err)
	}
	return New(ds.Patterns, ds.Problems), nil
}

func decodeDataset(b []byte, ext string) (Dataset, error) {
	var ds Dataset
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &ds); err != nil {
			return ds, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(b))
		if err := dec.Decode(&ds); err != nil {
			return ds, err
		}
	}
	if err := ds.Validate(); err != nil {
		return ds, err
	}
	return ds, nil
}
