package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/deso-protocol/purehash/desohash"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var desohashCmd = &cobra.Command{
	Use:   "desohash [files...]",
	Short: "Print the DeSo proof-of-work hash (V0) of files, strings or standard input",
	RunE:  RunDeSoHash,
}

func init() {
	desohashCmd.Flags().StringSliceP("string", "s", nil, "Hash the given string instead of a file. May be repeated.")
	rootCmd.AddCommand(desohashCmd)
}

func RunDeSoHash(cmd *cobra.Command, args []string) error {
	if _, err := loadCommandConfig(); err != nil {
		return err
	}
	strs, _ := cmd.Flags().GetStringSlice("string")
	out := cmd.OutOrStdout()

	for _, str := range strs {
		hash := desohash.DeSoHashV0([]byte(str))
		fmt.Fprintf(out, "%s  %s\n", hex.EncodeToString(hash[:]), strconv.Quote(str))
	}
	if len(strs) > 0 && len(args) == 0 {
		return nil
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, path := range args {
		data, err := readPath(path, cmd.InOrStdin())
		if err != nil {
			return errors.Wrapf(err, "RunDeSoHash:")
		}
		hash := desohash.DeSoHashV0(data)
		fmt.Fprintf(out, "%s  %s\n", hex.EncodeToString(hash[:]), path)
	}
	return nil
}
