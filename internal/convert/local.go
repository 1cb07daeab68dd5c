// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const defaultBinary = "markitdown"

// LocalConverter runs a markitdown executable installed on the host.
type LocalConverter struct {
	// Binary is the executable name or path (default "markitdown").
	Binary string
}

// NewLocalConverter verifies that binary is on PATH.
func NewLocalConverter(binary string) (*LocalConverter, error) {
	if binary == "" {
		binary = defaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("markitdown executable %q not available: %w", binary, err)
	}
	return &LocalConverter{Binary: binary}, nil
}

// Convert runs `<binary> <path>` and returns its stdout.
func (l *LocalConverter) Convert(ctx context.Context, path string) (string, error) {
	bin := l.Binary
	if bin == "" {
		bin = defaultBinary
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("running %s: %w: %s", bin, err, msg)
		}
		return "", fmt.Errorf("running %s: %w", bin, err)
	}
	return stdout.String(), nil
}
