package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/bite-admin/bite/pkg/output"
)

// bitectlVersion is stamped by the release build with
// -ldflags "-X github.com/bite-admin/bite/pkg/cli.bitectlVersion=x.y.z".
var bitectlVersion = "0.1.0"

var clientOnly bool

type versionInfo struct {
	Client string `json:"client" yaml:"client"`
	Go     string `json:"go" yaml:"go"`
	Server string `json:"server,omitempty" yaml:"server,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show bitectl and bite API versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := versionInfo{Client: bitectlVersion, Go: runtime.Version()}
		if !clientOnly {
			v, err := store.Client().Version(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get API version from %s: %w", cfg.ServerURL, err)
			}
			info.Server = v
		}

		if _, ok := formatter.(*output.TableFormatter); !ok {
			fmt.Fprint(cmd.OutOrStdout(), formatter.Format(info))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "bitectl version %s (%s)\n", info.Client, info.Go)
		if info.Server != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "API server: %s\n", info.Server)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&clientOnly, "client", false, "print the client version only, without contacting the server")
	rootCmd.AddCommand(versionCmd)
}
