// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"crypto/sha256"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
)

// InputType classifies a command-line input.
type InputType int

const (
	TypeUnknown InputType = iota
	TypePath
	TypeURL
)

func (t InputType) String() string {
	switch t {
	case TypePath:
		return "path"
	case TypeURL:
		return "url"
	default:
		return "unknown"
	}
}

// Classify determines whether input is an http(s) URL or a local path and
// returns it trimmed.
func Classify(input string) (InputType, string) {
	s := strings.TrimSpace(input)
	if s == "" {
		return TypeUnknown, s
	}
	if u, err := url.Parse(s); err == nil && u.Host != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return TypeURL, s
		}
	}
	return TypePath, s
}

// filenameFor derives a display name and extension for a download. The
// last path segment is used when there is one; otherwise a hash of the URL.
// A name without an extension takes one from the content type.
func filenameFor(rawURL, contentType string) (name, ext string) {
	if u, err := url.Parse(rawURL); err == nil {
		name = path.Base(u.Path)
	}
	if name == "" || name == "." || name == "/" {
		name = urlHashSlug(rawURL)
	}

	ext = path.Ext(name)
	if ext == "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			if exts, _ := mime.ExtensionsByType(mt); len(exts) > 0 {
				ext = exts[0]
				name += ext
			}
		}
	}
	return name, ext
}

func urlHashSlug(rawURL string) string {
	h := sha256.Sum256([]byte(rawURL))
	return fmt.Sprintf("url-%x", h[:8])
}
