package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rbell517/systemlink-go/pkg/dataframe/types"
)

func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List all tables",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newDataFrameClient()
			if err != nil {
				return err
			}

			req := types.ListTablesRequest{}
			for _, workspace := range viper.GetStringSlice("workspace") {
				req.Workspace = append(req.Workspace, workspace)
			}

			for {
				page, err := client.ListTables(cmd.Context(), req)
				if err != nil {
					return err
				}

				for _, table := range page.Tables {
					fmt.Printf("%s\t%d rows\t%s\n", table.ID, table.RowCount, table.Name)
				}

				if page.ContinuationToken == nil {
					return nil
				}
				req.ContinuationToken = *page.ContinuationToken
			}
		},
	}

	cmd.Flags().StringSlice("workspace", nil, "Limit the listing to the given workspace IDs")

	return cmd
}
