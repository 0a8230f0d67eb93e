package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowShelf/internal/archive"
	"github.com/Belphemur/ShowShelf/internal/catalogue"
	"github.com/Belphemur/ShowShelf/internal/kvstore"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the catalogue to a backup file (.json, .json.gz, .json.zst, .json.br)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalogue(cmd.Context(), func(svc *catalogue.Service) error {
				shows := svc.List()
				if err := archive.WriteFile(args[0], shows); err != nil {
					return fmt.Errorf("export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d shows to %s\n", len(shows), args[0])
				return nil
			})
		},
	}
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add the shows of a backup file, skipping titles already present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shows, err := archive.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			return ctx.withCatalogue(cmd.Context(), func(svc *catalogue.Service) error {
				added, skipped, err := svc.Import(cmd.Context(), shows)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d shows, skipped %d already present\n", added, skipped)
				return nil
			})
		},
	}
}

func newProvidersCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "providers",
		Short:       "List the available storage providers",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range kvstore.RegisteredProviders() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
