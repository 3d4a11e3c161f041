// Package files provides helpers for the opaque JSON documents that act as
// configuration sources, along with directory utilities for user-specific paths.
package files

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcpscope/mcpscope/internal/perms"
)

// AppDirName returns the name of the application directory for use in user-specific operations where data is being written.
func AppDirName() string {
	return ".mcpscope"
}

// LoadDocument reads a JSON document from disk into a generic key-value map.
// A missing, unreadable or unparsable file yields (nil, false) rather than an
// error: sources degrade to "contributes nothing", they never fail the caller.
func LoadDocument(path string) (map[string]any, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false
	}
	if doc == nil {
		return nil, false
	}

	return doc, true
}

// LoadInto reads a JSON document from disk into the provided typed structure.
// Like LoadDocument it is tolerant: absent or corrupt input reports false.
func LoadInto(path string, v any) bool {
	path = strings.TrimSpace(path)
	if path == "" {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false
	}

	return true
}

// SaveDocument persists a JSON document to disk, creating parent directories
// as needed. Serialization is deterministic (object keys are sorted) so that
// repeated writes of equal content produce identical bytes and minimal diffs.
// Unlike reads, write failures always propagate.
func SaveDocument(path string, doc map[string]any, perm os.FileMode) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("document path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), perms.RegularDir); err != nil {
		return fmt.Errorf("could not ensure directory exists for '%s': %w", path, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("could not encode document for '%s': %w", path, err)
	}

	if err := writeFile(path, buf.Bytes(), perm); err != nil {
		return fmt.Errorf("could not write document '%s': %w", path, err)
	}

	return nil
}

// writeFile writes data through a temporary file and rename so a partially
// written document is never observed at the final path.
func writeFile(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

// EnsureAtLeastRegularDir creates a directory with standard permissions if it
// doesn't exist, and verifies that it has at least the required regular
// permissions if it already exists.
func EnsureAtLeastRegularDir(path string) error {
	return ensureAtLeastDir(path, perms.RegularDir)
}

// EnsureAtLeastSecureDir creates a directory with secure permissions if it
// doesn't exist, and verifies that it has at least the required secure
// permissions if it already exists.
func EnsureAtLeastSecureDir(path string) error {
	return ensureAtLeastDir(path, perms.SecureDir)
}

// ensureAtLeastDir creates a directory with the specified permissions if it doesn't exist,
// and verifies that it has at least the required permissions if it already exists.
// It does not attempt to repair ownership or permissions: if they are wrong, it returns an error.
func ensureAtLeastDir(path string, required os.FileMode) error {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("path exists but is not a directory: %s", path)
		}
		if info.Mode().Perm()&required != required {
			return fmt.Errorf(
				"directory %s has permissions %o, requires at least %o",
				path, info.Mode().Perm(), required,
			)
		}
		return nil
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(path, required); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
}
