package cli

import (
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rbell517/systemlink-go/pkg/core"
	"github.com/rbell517/systemlink-go/pkg/dataframe"
)

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "systemlink-dataframe",
		Short:        "Work with tables on the SystemLink DataFrame service",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("uri", "", "SystemLink server URI")
	cmd.PersistentFlags().String("api-key", "", "SystemLink API key")
	cmd.PersistentFlags().Bool("verbose", false, "Log requests and retries")

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ExportCmd())
	cmd.AddCommand(VersionCmd())

	viper.SetEnvPrefix("SYSTEMLINK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	return cmd
}

// newDataFrameClient builds a client from flags, falling back to the
// configuration installed on the local system when no --uri is given.
func newDataFrameClient() (*dataframe.Client, error) {
	var opts []core.ClientOption
	if viper.GetBool("verbose") {
		opts = append(opts, core.WithLogger(hclog.New(&hclog.LoggerOptions{
			Name: "systemlink-dataframe",
		})))
	}

	uri := viper.GetString("uri")
	if uri == "" {
		return dataframe.NewClient(nil, opts...)
	}

	config, err := core.NewHTTPConfiguration(uri, viper.GetString("api-key"))
	if err != nil {
		return nil, err
	}

	return dataframe.NewClient(config, opts...)
}
