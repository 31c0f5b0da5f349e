package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rbell517/systemlink-go/pkg/dataframe/types"
)

func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "export TABLE_ID",
		Short:        "Export a table's data to a file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newDataFrameClient()
			if err != nil {
				return err
			}

			stream, err := client.ExportTableData(cmd.Context(), args[0], types.ExportTableDataRequest{
				Columns:        viper.GetStringSlice("columns"),
				ResponseFormat: types.ExportFormat(strings.ToUpper(viper.GetString("format"))),
			})
			if err != nil {
				return err
			}
			defer stream.Close()

			out, err := os.Create(viper.GetString("output"))
			if err != nil {
				return err
			}
			defer out.Close()

			written, err := stream.WriteTo(out)
			if err != nil {
				return err
			}

			fmt.Printf("wrote %d bytes to %s\n", written, viper.GetString("output"))
			return nil
		},
	}

	cmd.Flags().String("output", "export.csv", "File to write the exported data to")
	cmd.Flags().String("format", string(types.ExportFormatCSV), "Export format")
	cmd.Flags().StringSlice("columns", nil, "Columns to include in the export")

	return cmd
}
