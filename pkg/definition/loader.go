package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadYAML parses a YAML definition.
func LoadYAML(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("definition: parse yaml: %w", err)
	}
	return checkDocument(doc)
}

// LoadTOML parses a TOML definition. Sections are an array of tables:
//
//	[[sections]]
//	id = "account"
//	[[sections.fields]]
//	id = "email"
func LoadTOML(data []byte) (Document, error) {
	var doc Document
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("definition: parse toml: %w", err)
	}
	return checkDocument(doc)
}

// LoadJSON parses a JSON definition.
func LoadJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("definition: parse json: %w", err)
	}
	return checkDocument(doc)
}

// LoadFS reads path from fsys and parses it according to its extension
// (.yaml, .yml, .toml or .json).
func LoadFS(fsys fs.FS, path string) (Document, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Document{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(data)
	case ".toml":
		return LoadTOML(data)
	case ".json":
		return LoadJSON(data)
	default:
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadFile reads a definition from disk.
func LoadFile(path string) (Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Document{}, fmt.Errorf("definition: resolve %s: %w", path, err)
	}
	return LoadFS(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}

func checkDocument(doc Document) (Document, error) {
	if len(doc.Sections) == 0 {
		return Document{}, ErrEmptyDocument
	}
	return doc, nil
}
