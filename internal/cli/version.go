package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version ldflags orqali beriladi: -X .../internal/cli.version=v1.2.3
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Versiyani chiqarish",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "assistant", version)
		},
	}
}
