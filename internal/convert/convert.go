// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns host-supplied file blobs into normalized Markdown
// Documents by way of an external document converter.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/reag/pkg/types"
)

// DefaultExtension is used for the transient file when a File declares no
// extension.
const DefaultExtension = ".tmp"

// Converter transforms the file at path into Markdown text. Backends
// (local markitdown executable, markitdown container) implement this.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// ConversionError reports that one file could not be converted. It never
// aborts a batch; callers surface it per file and move on.
type ConversionError struct {
	Filename string
	Detail   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting %s: %s", e.Filename, e.Detail)
}

// ConvertFile writes f to a transient file, runs c on it, and returns the
// resulting Document. The transient file is removed on every path.
func ConvertFile(ctx context.Context, c Converter, f types.File) (types.Document, error) {
	name := f.Filename
	if name == "" {
		name = "unnamed" + normalizeExtension(f.Extension)
	}

	path, err := writeTemp(f)
	if err != nil {
		return types.Document{}, &ConversionError{Filename: name, Detail: err.Error()}
	}
	defer os.Remove(path)

	text, err := c.Convert(ctx, path)
	if err != nil {
		return types.Document{}, &ConversionError{Filename: name, Detail: err.Error()}
	}

	text = normalizeText(text)
	if text == "" {
		return types.Document{}, &ConversionError{Filename: name, Detail: "converter returned no text content"}
	}

	return types.Document{Name: name, Content: text}, nil
}

// ConvertAll converts every file in order. Failed files are returned as
// errors alongside the Documents that did convert.
func ConvertAll(ctx context.Context, c Converter, files []types.File) ([]types.Document, []error) {
	var docs []types.Document
	var errs []error
	for _, f := range files {
		doc, err := ConvertFile(ctx, c, f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, errs
}

func writeTemp(f types.File) (string, error) {
	tmp, err := os.CreateTemp("", "reag-*"+normalizeExtension(f.Extension))
	if err != nil {
		return "", fmt.Errorf("creating transient file: %w", err)
	}
	path := tmp.Name()

	if _, err := tmp.Write(f.Blob); err != nil {
		tmp.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing transient file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing transient file: %w", err)
	}
	return path, nil
}

// normalizeExtension returns ext with a leading dot, stripped of any path
// components, or DefaultExtension when nothing usable is left.
func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	ext = strings.TrimLeft(filepath.Base("/"+ext), "./")
	if ext == "" {
		return DefaultExtension
	}
	return "." + ext
}

// normalizeText converts line endings to \n and trims surrounding whitespace.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}
