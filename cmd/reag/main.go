// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the reag CLI. It stands in for the
// host: it reads files from disk or the web, invokes the query or convert
// tool, and renders the streamed messages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/reag/internal/convert"
	"github.com/pdiddy/reag/internal/logging"
	"github.com/pdiddy/reag/internal/secrets"
	"github.com/pdiddy/reag/internal/telemetry"
	"github.com/pdiddy/reag/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Loaded by the root command before any subcommand runs.
var (
	cfg           types.Config
	logger        = zap.NewNop()
	loadedSecrets = secrets.Secrets{}
	shutdownTrace = func(context.Context) error { return nil }
)

// rootCmd is the base command for the reag CLI.
var rootCmd = &cobra.Command{
	Use:   "reag",
	Short: "Ask questions of documents, one model call per document",
	Long: `reag converts documents to Markdown and asks a language model about each
one independently. Only the answers from documents the model judges relevant
are kept.

Conversion runs markitdown locally or in a container. Models are reached
through Anthropic, OpenAI, or a local Ollama server. Credentials are read
from .secrets/ (one file per key) or the environment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = loadConfig(); err != nil {
			return err
		}
		if logger, err = logging.New(cfg.Logging, os.Stderr); err != nil {
			return err
		}
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("path", f))
		}

		shutdownTrace, err = telemetry.Init(cmd.Context(), cfg.Telemetry, version, os.Stderr)
		if err != nil {
			return err
		}

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Info("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = logger.Sync()
		return shutdownTrace(cmd.Context())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./reag.yaml or ~/.config/reag/config.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, or error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("log-file", "", "also write JSON logs to this file, rotated by size")
	pf.Bool("trace", false, "print spans to stderr")
	pf.String("backend", string(types.BackendLocal), "conversion backend: local or container")

	bind := map[string]string{
		"logging.level":      "log-level",
		"logging.format":     "log-format",
		"logging.file":       "log-file",
		"telemetry.enabled":  "trace",
		"conversion.backend": "backend",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}

	viper.SetDefault("telemetry.service_name", "reag")
	viper.SetDefault("conversion.binary", "markitdown")
	viper.SetDefault("conversion.image", convert.DefaultImage)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("reag")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "reag"))
		}
	}

	viper.SetEnvPrefix("REAG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// loadConfig decodes the merged flag, env, and file settings.
func loadConfig() (types.Config, error) {
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return c, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
