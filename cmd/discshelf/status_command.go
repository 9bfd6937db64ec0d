package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"discshelf/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and check that the workbook can be saved",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			j, err := ctx.openJournal(cmd.Context())
			if err != nil {
				return err
			}
			if j != nil {
				defer j.Close()
			}
			path, pathErr := ctx.workbookPath(cmd.Context(), j)

			results := preflight.RunAll(cmd.Context(), cfg, path)
			if pathErr != nil {
				results = append([]preflight.Result{{Name: "Workbook", Detail: pathErr.Error()}}, results...)
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{
					"config":          ctx.configPath,
					"workbook":        path,
					"journal_enabled": cfg.Journal.Enabled,
					"checks":          results,
					"ready":           len(preflight.Failed(results)) == 0,
				})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			lines := renderSectionHeader("Configuration", colorize)
			lines = append(lines,
				renderStatusLine("Config file", statusInfo, ctx.configPath, colorize),
				renderStatusLine("Workbook path", statusInfo, path, colorize),
				renderStatusLine("Journal", statusInfo, yesNo(cfg.Journal.Enabled), colorize),
				"",
			)
			lines = append(lines, renderSectionHeader("Checks", colorize)...)
			lines = append(lines, checkLines(results, colorize)...)
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
