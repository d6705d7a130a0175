package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCoverCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cover",
		Short: "Read or set the cover image reference of an activity",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get ID",
			Short: "Print the cover of an activity",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				a, err := resolveActivity(ctx, app, args[0])
				if err != nil {
					return err
				}
				cover, err := app.Covers.Get(ctx, a.ID)
				if err != nil {
					return err
				}
				if cover == "" {
					fmt.Fprintf(cmd.OutOrStdout(), "No cover set for %s\n", a.Name)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), cover)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set ID VALUE",
			Short: "Set the cover of an activity (empty VALUE clears it)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				a, err := resolveActivity(ctx, app, args[0])
				if err != nil {
					return err
				}
				if err := app.Covers.Set(ctx, a.ID, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cover updated for %s\n", a.Name)
				return nil
			},
		},
	)

	return cmd
}
