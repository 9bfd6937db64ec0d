package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"discshelf/internal/config"
	"discshelf/internal/storage"
	"discshelf/internal/workbook"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "convert <destination>",
		Short: "Write the catalogue to another workbook file",
		Long: "Convert writes the canonical four-sheet layout to destination. " +
			"The format comes from --format or the destination extension. Rows dropped while reading are not written.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dest, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve destination: %w", err)
			}
			format := workbook.FormatForPath(dest)
			if strings.TrimSpace(formatFlag) != "" {
				if format, err = workbook.ParseFormat(formatFlag); err != nil {
					return err
				}
			}

			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if filepath.Clean(dest) == filepath.Clean(s.path) {
				return errors.New("destination is the open workbook; choose another path")
			}
			data, err := s.lib.Export(format)
			if err != nil {
				return fmt.Errorf("encode workbook: %w", err)
			}
			store := storage.NewFileStore(dest,
				storage.WithBackups(cfg.Workbook.BackupCount),
				storage.WithLockTimeout(cfg.LockTimeout()),
				storage.WithLogger(s.logger),
			)
			if err := store.Save(cmd.Context(), data); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{
					"source":      s.path,
					"destination": dest,
					"format":      format.String(),
					"records":     s.lib.Records().Count(),
					"bytes":       len(data),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s (%s)\n", s.lib.Records().Count(), dest, format)
			return nil
		},
	}
	cmd.Flags().StringVar(&formatFlag, "format", "", "Output format: xls or xlsx")
	return cmd
}
