// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FilePermission is used for files written by Save and Set.
const FilePermission = 0o600

var (
	// ErrInvalidPath indicates a configuration path that cannot be used.
	ErrInvalidPath = errors.New("invalid path")
	// ErrUnknownKey indicates a key Set does not recognize.
	ErrUnknownKey = errors.New("unknown configuration key")
	// ErrInsecureFilePermissions indicates a world- or group-writable file.
	ErrInsecureFilePermissions = errors.New("insecure file permissions")
)

type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindInt
	kindDuration
)

// keys lists the dotted keys accepted by Set.
var keys = map[string]keyKind{
	"location":         kindString,
	"defaultScheme":    kindString,
	"output":           kindString,
	"strict":           kindBool,
	"debug":            kindBool,
	"structuredLogs":   kindBool,
	"metrics":          kindBool,
	"cache.maxEntries": kindInt,
	"cache.ttl":        kindDuration,
}

// Keys returns the keys accepted by Set, sorted.
func Keys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Save writes cfg to path as YAML, replacing the file atomically.
func Save(path string, cfg *Config) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return writeAtomic(path, buf.Bytes(), FilePermission)
}

// Set updates a single dotted key in the YAML file at path, creating the
// file when needed. Comments and unrelated content are kept. The updated
// document must still decode into a valid Config.
func Set(path, key, value string) error {
	kind, ok := keys[key]
	if !ok {
		return fmt.Errorf("%w: %q (known keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	if err := validatePath(path); err != nil {
		return err
	}

	typed, err := convert(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err)
	}

	var doc yaml.Node
	// #nosec G304 -- path validated by validatePath
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
	case os.IsNotExist(err):
	default:
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	root := documentRoot(&doc)
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: %s: top level must be a mapping", ErrInvalidConfig, path)
	}

	var valueNode yaml.Node
	if err := valueNode.Encode(typed); err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	setPath(root, strings.Split(key, "."), &valueNode)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	check := Default()
	if err := yaml.Unmarshal(buf.Bytes(), check); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := check.Validate(); err != nil {
		return err
	}

	return writeAtomic(path, buf.Bytes(), FilePermission)
}

func convert(kind keyKind, value string) (any, error) {
	switch kind {
	case kindBool:
		return strconv.ParseBool(value)
	case kindInt:
		return strconv.Atoi(value)
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		return d.String(), nil
	default:
		return value, nil
	}
}

// documentRoot returns the top-level mapping of doc, initializing an empty
// document.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == 0 {
		doc.Kind = yaml.DocumentNode
	}
	if len(doc.Content) == 0 {
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	return doc.Content[0]
}

// setPath stores value under the nested keys in mapping, creating
// intermediate mappings and keeping the position of existing keys.
func setPath(mapping *yaml.Node, path []string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value != path[0] {
			continue
		}
		if len(path) == 1 {
			value.HeadComment = mapping.Content[i+1].HeadComment
			value.LineComment = mapping.Content[i+1].LineComment
			mapping.Content[i+1] = value
			return
		}
		child := mapping.Content[i+1]
		if child.Kind != yaml.MappingNode {
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			mapping.Content[i+1] = child
		}
		setPath(child, path[1:], value)
		return
	}

	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: path[0]}
	if len(path) == 1 {
		mapping.Content = append(mapping.Content, key, value)
		return
	}
	child := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	mapping.Content = append(mapping.Content, key, child)
	setPath(child, path[1:], value)
}

// validatePath rejects empty paths and parent directory references, before
// and after symlink resolution.
func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if slices.Contains(strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' }), "..") {
		return fmt.Errorf("%w: path contains parent directory reference", ErrInvalidPath)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path: %w", ErrInvalidPath, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("%w: cannot resolve symbolic links: %w", ErrInvalidPath, err)
		}
		resolved = abs
	}
	if info, err := os.Stat(resolved); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidPath, path)
	}
	return nil
}

// checkPermissions returns ErrInsecureFilePermissions when others can write
// path. Windows uses ACLs and is not checked.
func checkPermissions(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Mode().Perm()&0o022 != 0 {
		return ErrInsecureFilePermissions
	}
	return nil
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place, so readers never see a partial file.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set file permissions: %w", err)
	}

	// Windows can briefly hold the target open after a previous write.
	var renameErr error
	for attempt := 0; attempt < 5; attempt++ {
		if renameErr = os.Rename(tmpPath, path); renameErr == nil {
			return nil
		}
		if attempt < 4 {
			time.Sleep(time.Duration(20*(attempt+1)) * time.Millisecond)
		}
	}
	_ = os.Remove(tmpPath)
	return fmt.Errorf("failed to rename temp file: %w", renameErr)
}
