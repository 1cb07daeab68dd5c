// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/reag/internal/acquire"
	"github.com/pdiddy/reag/internal/query"
	"github.com/pdiddy/reag/internal/tool"
	"github.com/pdiddy/reag/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [files or urls...]",
	Short: "Ask a question of each document and keep the relevant answers",
	Long: `Query converts every file to Markdown, sends each document with the
question to the selected model concurrently, and emits the answers from the
documents the model judged relevant as the query_results variable.

Files that fail to convert are reported and skipped. A failed model call
drops only that document.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("query", "", "question to ask of every document")
	queryCmd.Flags().String("provider", "ollama", "model provider: anthropic, openai, or ollama")
	queryCmd.Flags().String("model", "", "provider-specific model name")
	queryCmd.Flags().String("mode", types.ModeChat, "model mode: chat or completion")
	queryCmd.Flags().String("format", tool.FormatText, "output format: text, json, or yaml")
	queryCmd.Flags().Duration("timeout", 0, "bound the whole run (default no limit)")
	queryCmd.Flags().Int("max-concurrency", 0, "cap on concurrent model calls (default one per document)")
	queryCmd.Flags().Float64("rps", 0, "maximum model calls started per second (default unlimited)")

	_ = viper.BindPFlag("query.max_concurrency", queryCmd.Flags().Lookup("max-concurrency"))
	_ = viper.BindPFlag("query.requests_per_second", queryCmd.Flags().Lookup("rps"))

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	q, _ := cmd.Flags().GetString("query")
	provider, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	mode, _ := cmd.Flags().GetString("mode")
	format, _ := cmd.Flags().GetString("format")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	sel := types.ModelSelector{Provider: strings.ToLower(provider), Model: model, Mode: mode}
	router := newRouter(loadedSecrets.Apply(cfg.Providers, providerNames...))
	if err := checkSelector(router, sel); err != nil {
		return err
	}

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	files, err := acquireInputs(ctx, acquire.New(cfg.Acquisition, logger), args)
	if err != nil {
		return err
	}
	conv, err := newConverter(ctx, cfg.Conversion)
	if err != nil {
		return err
	}

	orch := query.NewOrchestrator(query.NewDispatcher(router, logger), cfg.Query, logger)
	reag := tool.NewReagTool(conv, orch, logger)
	return tool.Write(cmd.OutOrStdout(), format, reag.Invoke(ctx, tool.Params{
		Files: files,
		Query: q,
		Model: sel,
	}))
}
