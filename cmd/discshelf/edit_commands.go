package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"discshelf/internal/library"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "add <category> --field key=value...",
		Short: "Add a record and save the workbook",
		Example: "  discshelf add dvd -f 编号=12 -f 影碟名称=教父\n" +
			"  discshelf add hdd -f disk=硬盘一 -f serial=3 -f title=异形",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := categoryArg(args[0])
			if err != nil {
				return err
			}
			values, err := parseAssignments(c, fields)
			if err != nil {
				return err
			}
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.lib.Create(cmd.Context(), c.ID, values)
			if err != nil && !errors.Is(err, library.ErrAutosave) {
				return err
			}
			if printErr := printRecord(cmd, ctx.jsonOutput(), "Added", c, rec); printErr != nil {
				return printErr
			}
			return unsavedError(err, s.path)
		},
	}
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Field assignment key=value (key, column label, or alias)")
	return cmd
}

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var (
		fields []string
		sel    selectorFlags
	)

	cmd := &cobra.Command{
		Use:     "update <category> [selector] --field key=value...",
		Short:   "Change fields of one record and save the workbook",
		Example: "  discshelf update bluray --serial 1-2 -f 备注=导演剪辑版",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := categoryArg(args[0])
			if err != nil {
				return err
			}
			if len(fields) == 0 {
				return errors.New("nothing to update; pass at least one --field")
			}
			values, err := parseAssignments(c, fields)
			if err != nil {
				return err
			}
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			target, err := s.lib.Find(c.ID, sel.selector())
			if err != nil {
				return err
			}
			rec, err := s.lib.Update(cmd.Context(), c.ID, target.ID, values)
			if err != nil && !errors.Is(err, library.ErrAutosave) {
				return err
			}
			if printErr := printRecord(cmd, ctx.jsonOutput(), "Updated", c, rec); printErr != nil {
				return printErr
			}
			return unsavedError(err, s.path)
		},
	}
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Field assignment key=value; an empty value clears the field")
	sel.register(cmd)
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var sel selectorFlags

	cmd := &cobra.Command{
		Use:     "delete <category> [selector]",
		Short:   "Delete one record and save the workbook",
		Example: "  discshelf delete hdd --disk 硬盘一 --serial 3",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := categoryArg(args[0])
			if err != nil {
				return err
			}
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			target, err := s.lib.Find(c.ID, sel.selector())
			if err != nil {
				return err
			}
			rec, err := s.lib.Delete(cmd.Context(), c.ID, target.ID)
			if err != nil && !errors.Is(err, library.ErrAutosave) {
				return err
			}
			if printErr := printRecord(cmd, ctx.jsonOutput(), "Deleted", c, rec); printErr != nil {
				return printErr
			}
			return unsavedError(err, s.path)
		},
	}
	sel.register(cmd)
	return cmd
}

// unsavedError explains that a CLI edit whose save failed is lost when the
// process exits.
func unsavedError(err error, path string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s was not updated and the change is discarded: %w", path, err)
}
