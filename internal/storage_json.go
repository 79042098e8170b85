package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// JSONFile stores the collection as a JSON array of records in one file.
//
// Example:
//
//	[
//	    {
//	        "id": 1,
//	        "nome": "Aluguel",
//	        "valor": 1500,
//	        "vencimento": "2024-03-01",
//	        "tipo": "Única",
//	        "paga": false,
//	        "data_pagamento": null
//	    }
//	]
type JSONFile struct {
	Path string
}

// NewJSONFile returns a JSON file repository. The file does not need to exist.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

// Load reads the file. A missing file is an empty collection.
func (j *JSONFile) Load(ctx context.Context) ([]Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(j.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Expense{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &CorruptDataError{Source: j.Path, Err: fmt.Errorf("parsing JSON: %w", err)}
	}
	return FromRecords(j.Path, records)
}

// Save writes the whole collection to a temporary file next to the target
// and renames it into place, so readers see either the old or the new file.
func (j *JSONFile) Save(ctx context.Context, expenses []Expense) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ToRecords(expenses)); err != nil {
		return fmt.Errorf("encoding expenses: %w", err)
	}

	dir := filepath.Dir(j.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(j.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, j.Path); err != nil {
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (j *JSONFile) Close() error {
	return nil
}

func init() {
	RegisterBackend("json", BackendFunc(func(path string) (Repository, error) {
		return NewJSONFile(path), nil
	}))
}
