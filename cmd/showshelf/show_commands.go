package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowShelf/internal/apperrors"
	"github.com/Belphemur/ShowShelf/internal/catalogue"
	"github.com/Belphemur/ShowShelf/internal/models"
	"github.com/Belphemur/ShowShelf/internal/render"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		episodes string
		watched  bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a show to the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := models.ParseEpisodeCount(episodes)
			if err != nil {
				return err
			}
			return ctx.withCatalogue(cmd.Context(), func(svc *catalogue.Service) error {
				change, err := svc.Add(cmd.Context(), models.NewShow(args[0], count, watched))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s episodes, %s)\n", change.Show.Title, change.Show.Episodes, watchedLabel(change.Show.IsWatched))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&episodes, "episodes", "e", "", "Number of episodes")
	cmd.Flags().BoolVarP(&watched, "watched", "w", false, "Mark the show as watched")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <title>",
		Short: "Remove a show from the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalogue(cmd.Context(), func(svc *catalogue.Service) error {
				change, err := svc.Remove(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !change.Applied {
					fmt.Fprintf(cmd.OutOrStdout(), "No show titled %q\n", change.Title)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", change.Title)
				return nil
			})
		},
	}
}

func newToggleCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <title>",
		Short: "Toggle the watched flag of a show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalogue(cmd.Context(), func(svc *catalogue.Service) error {
				change, err := svc.ToggleWatched(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !change.Applied {
					fmt.Fprintf(cmd.OutOrStdout(), "No show titled %q\n", change.Title)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%q is now %s\n", change.Title, watchedLabel(change.Show.IsWatched))
				return nil
			})
		},
	}
}

func newGetCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "get <title>",
		Short: "Show a single catalogue entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalogue(cmd.Context(), func(svc *catalogue.Service) error {
				show, ok := svc.Get(args[0])
				if !ok {
					return apperrors.NewShowNotFoundError(args[0])
				}
				if jsonOutput {
					return writeJSON(cmd, show.ToDocument())
				}
				fmt.Fprintln(cmd.OutOrStdout(), render.Table([]models.Show{show}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every show in the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalogue(cmd.Context(), func(svc *catalogue.Service) error {
				shows := svc.List()
				if jsonOutput {
					docs := make([]map[string]any, len(shows))
					for i, show := range shows {
						docs[i] = show.ToDocument()
					}
					return writeJSON(cmd, docs)
				}
				if len(shows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No shows yet.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), render.Table(shows))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
