package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "purehash",
	Short: "Compute and verify MD4, MD5, SHA-1, SHA-2, SHA-3 and Keccak digests",
	Long: `purehash computes message digests with its own implementations of the MD4, MD5,
SHA-1, SHA-2, SHA-3 and legacy Keccak hash functions. It can check checksum files in
GNU and BSD formats, cross-check itself against reference implementations, and keep a
manifest of file digests in a local database to detect later changes.`,
	SilenceUsage: true,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.purehash/purehash.yaml)")
	SetupRootFlags(rootCmd)
}

func SetupRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("algorithm", "a", "sha256",
		"Hash algorithm to use. Run 'purehash list' for the accepted names.")
	cmd.PersistentFlags().String("db-dir", "",
		"Directory of the manifest database. When unset, defaults to a directory under "+
			"the system's configuration directory.")
	cmd.PersistentFlags().Int("workers", 0,
		"Number of files hashed in parallel by the manifest commands. 0 means one per CPU.")
	cmd.PersistentFlags().Int("hash-cache-size", 4096,
		"Number of file digests kept in memory while indexing and verifying.")

	// Logging
	cmd.PersistentFlags().String("log-dir", "", "The directory for logs")
	cmd.PersistentFlags().Uint64("glog-v", 0, "The log level. 0 = INFO, 1 = DEBUG, 2 = TRACE. Defaults to zero")
	cmd.PersistentFlags().String("glog-vmodule", "", "The syntax of the argument is a comma-separated list of pattern=N, where pattern is a literal file name (minus the \".go\" suffix) or \"glob\" pattern and N is a V level. For instance, -vmodule=gopher*=3 sets the V level to 3 in all Go files whose names begin \"gopher\".")
	cmd.PersistentFlags().Bool("debug-config", false, "Dump the parsed configuration before running the command")

	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		viper.BindPFlag(flag.Name, flag)
	})
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Expand("~/.purehash")
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigName("purehash")
	}

	// Environment variable support
	viper.SetEnvPrefix("purehash")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
