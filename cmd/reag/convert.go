// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/reag/internal/acquire"
	"github.com/pdiddy/reag/internal/tool"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files or urls...]",
	Short: "Convert files to Markdown",
	Long: `Convert runs markitdown over each file and prints the Markdown. Several
files are printed one after another under numbered headers. Files that fail
to convert are reported and skipped.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("format", tool.FormatText, "output format: text, json, or yaml")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	ctx := cmd.Context()

	files, err := acquireInputs(ctx, acquire.New(cfg.Acquisition, logger), args)
	if err != nil {
		return err
	}
	conv, err := newConverter(ctx, cfg.Conversion)
	if err != nil {
		return err
	}

	md := tool.NewMarkitdownTool(conv, logger)
	return tool.Write(cmd.OutOrStdout(), format, md.Invoke(ctx, files))
}
