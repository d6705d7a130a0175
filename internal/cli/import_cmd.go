package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import activities and their history from a JSON or YAML file",
		Long: "Import activities from FILE. The format follows the extension (.yaml,\n" +
			".yml or .json). The file is validated as a whole and nothing is written\n" +
			"unless every record is valid.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var formatFlag, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every activity and its history",
		RunE: func(cmd *cobra.Command, args []string) error {
			format := importer.FormatYAML
			switch {
			case cmd.Flags().Changed("format"):
				f, err := importer.ParseFormat(formatFlag)
				if err != nil {
					return err
				}
				format = f
			case output != "":
				format = importer.FormatFromPath(output)
			}

			var buf bytes.Buffer
			n, err := app.Import.Export(cmd.Context(), &buf, format)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d activities to %s\n", n, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}
