// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container detects a container runtime (docker or podman) and runs
// one-shot conversion containers through it.
package container

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime provides the container operations the converter needs.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available(ctx context.Context) bool

	// ImageExists returns nil when the named image exists locally.
	ImageExists(ctx context.Context, image string) error

	// Run starts a throwaway container from image with args appended to the
	// image entrypoint, streaming stdin in and stdout out.
	Run(ctx context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// runtime implements Runtime for one container binary. Docker and Podman
// differ only in the binary and the image check subcommand.
type runtime struct {
	bin           string
	imageCheckCmd []string
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available(ctx context.Context) bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(ctx, r.bin, "info") == nil
}

func (r *runtime) ImageExists(ctx context.Context, image string) error {
	args := append(append([]string{}, r.imageCheckCmd...), image)
	if err := r.exec.RunSilent(ctx, r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(ctx context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error {
	full := append([]string{"run", "--rm", "-i", image}, args...)
	var stderr bytes.Buffer
	if err := r.exec.RunPiped(ctx, r.bin, full, stdin, stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s container %s: %w: %s", r.bin, image, err, msg)
		}
		return fmt.Errorf("running %s container %s: %w", r.bin, image, err)
	}
	return nil
}

func newDockerRuntime(e executor) *runtime {
	return &runtime{bin: binDocker, imageCheckCmd: []string{"image", "inspect"}, exec: e}
}

func newPodmanRuntime(e executor) *runtime {
	return &runtime{bin: binPodman, imageCheckCmd: []string{"image", "exists"}, exec: e}
}

// DetectRuntime tries docker first and falls back to podman.
func DetectRuntime(ctx context.Context) (Runtime, error) {
	return detectRuntime(ctx, osExecutor{})
}

func detectRuntime(ctx context.Context, e executor) (Runtime, error) {
	for _, rt := range []*runtime{newDockerRuntime(e), newPodmanRuntime(e)} {
		if rt.Available(ctx) {
			return rt, nil
		}
	}
	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
