package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/deso-protocol/purehash/digest"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var sumCmd = &cobra.Command{
	Use:   "sum [files...]",
	Short: "Print the digest of files, strings or standard input",
	Long: `Print the digest of each file. With no files, or when a file is "-", read standard
input. Output uses the GNU coreutils format by default and the BSD format with --tag.`,
	RunE: RunSum,
}

func init() {
	sumCmd.Flags().Bool("tag", false, "Print BSD-style lines: ALGORITHM (file) = digest")
	sumCmd.Flags().StringSliceP("string", "s", nil, "Hash the given string instead of a file. May be repeated.")
	rootCmd.AddCommand(sumCmd)
}

func RunSum(cmd *cobra.Command, args []string) error {
	config, err := loadCommandConfig()
	if err != nil {
		return err
	}
	tag, _ := cmd.Flags().GetBool("tag")
	strs, _ := cmd.Flags().GetStringSlice("string")
	out := cmd.OutOrStdout()

	for _, str := range strs {
		sum, err := digest.Sum(config.Algorithm, []byte(str))
		if err != nil {
			return errors.Wrapf(err, "RunSum:")
		}
		fmt.Fprintln(out, formatSumLine(config.Algorithm, strconv.Quote(str), sum, tag))
	}
	if len(strs) > 0 && len(args) == 0 {
		return nil
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	var failed int
	for _, path := range args {
		sum, err := sumPath(config.Algorithm, path, cmd.InOrStdin())
		if err != nil {
			failed++
			glog.Errorf("RunSum: %v", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "purehash: %v: %v\n", path, errors.Cause(err))
			continue
		}
		fmt.Fprintln(out, formatSumLine(config.Algorithm, path, sum, tag))
	}
	if failed > 0 {
		return errors.Errorf("RunSum: %d of %d files could not be read", failed, len(args))
	}
	return nil
}

// readPath reads the file at path, or stdin when path is "-".
func readPath(path string, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "readPath: Problem reading %v", path)
	}
	return data, nil
}

func sumPath(alg digest.Algorithm, path string, stdin io.Reader) ([]byte, error) {
	data, err := readPath(path, stdin)
	if err != nil {
		return nil, err
	}
	return digest.Sum(alg, data)
}

// formatSumLine renders a digest in the GNU "digest  name" layout, or in the BSD
// "ALG (name) = digest" layout when tag is set.
func formatSumLine(alg digest.Algorithm, name string, sum []byte, tag bool) string {
	if tag {
		return fmt.Sprintf("%v (%s) = %s", alg, name, hex.EncodeToString(sum))
	}
	return fmt.Sprintf("%s  %s", hex.EncodeToString(sum), name)
}
