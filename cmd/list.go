package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/deso-protocol/purehash/collections"
	"github.com/deso-protocol/purehash/digest"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the supported algorithms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(writer, "NAME\tDIGEST BYTES\tBLOCK BYTES")
		for _, row := range algorithmRows() {
			fmt.Fprintln(writer, row)
		}
		return writer.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func algorithmRows() []string {
	return collections.TransformSlice(digest.AllAlgorithms(), func(alg digest.Algorithm) string {
		return fmt.Sprintf("%v\t%d\t%d", alg, alg.Size(), alg.BlockSize())
	})
}
