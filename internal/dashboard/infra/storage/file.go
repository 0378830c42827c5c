package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	pkgtime "github.com/neuraops/dashboard/pkg/time"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

type fileContent struct {
	Scopes map[string]*scopeRecord `json:"scopes"`
}

// NewFileBackend keeps every scope in memory and rewrites the whole file on each change.
func NewFileBackend(path string, clock pkgtime.Clock) (Backend, error) {
	scopes, err := readFile(path)
	if err != nil {
		return nil, err
	}

	return newMemoryBackend(clock, scopes, func(snapshot map[string]*scopeRecord) error {
		return writeFile(path, snapshot)
	}), nil
}

func readFile(path string) (map[string]*scopeRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var content fileContent
	if err = json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("decode storage file %s: %w", path, err)
	}

	return content.Scopes, nil
}

func writeFile(path string, scopes map[string]*scopeRecord) error {
	data, err := json.MarshalIndent(fileContent{Scopes: scopes}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp storage file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp storage file: %w", err)
	}
	if err = tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp storage file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp storage file: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace storage file: %w", err)
	}

	return nil
}
