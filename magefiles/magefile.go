//go:build mage

// Package main contains Mage build targets for reag developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "reag"
	cmdPkg     = "./cmd/reag"
	secretsDir = ".secrets"
	configFile = "reag.yaml"
)

// sampleConfig is written by Init when no reag.yaml exists.
const sampleConfig = `logging:
  level: info
  format: console
conversion:
  backend: local
  binary: markitdown
  image: markitdown:latest
query:
  max_concurrency: 8
  requests_per_second: 0
providers:
  ollama:
    base_url: http://localhost:11434
    timeout: 5m
  anthropic:
    max_tokens: 4096
`

// Init creates the secrets directory and a starter reag.yaml.
func Init() error {
	if err := os.MkdirAll(secretsDir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", secretsDir, err)
	}
	fmt.Println("  ", secretsDir)

	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("   %s exists, left unchanged\n", configFile)
	} else {
		if err := os.WriteFile(configFile, []byte(sampleConfig), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", configFile, err)
		}
		fmt.Println("  ", configFile)
	}
	fmt.Println("Project initialized. Put API keys in .secrets/<provider>-api-key.")
	return nil
}

// Build compiles the CLI binary into bin/, stamping the git version.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + gitVersion()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs Vet and Test.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

func gitVersion() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || v == "" {
		return "dev"
	}
	return v
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// skipDir reports directories that are not part of the module source.
func skipDir(path string, info os.FileInfo) bool {
	name := info.Name()
	return path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == binDir)
}

// countGoLines walks the tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDir(path, info) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}

// countDocWords counts words in the Markdown and YAML files of the tree.
func countDocWords(root string) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			if skipDir(path, info) {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".md", ".yaml", ".yml":
		default:
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
		return nil
	})
	return total, err
}
