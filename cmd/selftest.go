package cmd

import (
	"fmt"

	"github.com/deso-protocol/purehash/digest"
	"github.com/deso-protocol/purehash/selftest"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest [algorithms...]",
	Short: "Cross-check the implementations against reference implementations",
	Long: `Hash the standard test inputs with every algorithm (or only the named ones) and
compare the results with the Go standard library, golang.org/x/crypto and go-ethereum.`,
	RunE: RunSelftest,
}

func init() {
	rootCmd.AddCommand(selftestCmd)
}

func RunSelftest(cmd *cobra.Command, args []string) error {
	if _, err := loadCommandConfig(); err != nil {
		return err
	}

	var algorithms []digest.Algorithm
	for _, name := range args {
		alg, err := digest.ParseAlgorithm(name)
		if err != nil {
			return errors.Wrapf(err, "RunSelftest:")
		}
		algorithms = append(algorithms, alg)
	}

	results := selftest.Run(algorithms)
	out := cmd.OutOrStdout()
	for _, res := range results {
		status := CLog(Green, "PASS")
		if !res.OK {
			status = CLog(Red, "FAIL")
			glog.Errorf("RunSelftest: %v %q got %x want %x", res.Algorithm, res.Input, res.Got, res.Want)
		}
		fmt.Fprintf(out, "%-10v %-10s %s\n", res.Algorithm, res.Input, status)
	}

	if failed := selftest.Failures(results); len(failed) > 0 {
		return errors.Errorf("RunSelftest: %d of %d checks failed", len(failed), len(results))
	}
	fmt.Fprintf(out, "%d checks passed\n", len(results))
	return nil
}
