// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/reag/internal/container"
)

// DefaultImage is the markitdown container image used when none is configured.
const DefaultImage = "markitdown:latest"

// MarkitdownConverter pipes files through the markitdown container image.
// It depends on a container.Runtime (docker or podman) injected at
// construction time.
type MarkitdownConverter struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdownConverter verifies that image exists in rt before returning.
func NewMarkitdownConverter(ctx context.Context, rt container.Runtime, image string) (*MarkitdownConverter, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownConverter{runtime: rt, image: image}, nil
}

// Convert streams the file at path into the container on stdin. markitdown
// cannot sniff every format from a stream, so the file extension is passed
// as a hint.
func (m *MarkitdownConverter) Convert(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var args []string
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" && "."+ext != DefaultExtension {
		args = []string{"-x", ext}
	}

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, m.image, args, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", filepath.Base(path), err)
	}
	return out.String(), nil
}
