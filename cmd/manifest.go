package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/deso-protocol/purehash/manifest"
	"github.com/deso-protocol/purehash/storage"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Record file digests and verify files against them",
}

var manifestIndexCmd = &cobra.Command{
	Use:   "index <paths...>",
	Short: "Hash files and directories and record their digests",
	Args:  cobra.MinimumNArgs(1),
	RunE:  RunManifestIndex,
}

var manifestVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Re-hash every recorded file and report changes",
	Args:  cobra.NoArgs,
	RunE:  RunManifestVerify,
}

var manifestListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the recorded digests",
	Args:  cobra.NoArgs,
	RunE:  RunManifestList,
}

var manifestForgetCmd = &cobra.Command{
	Use:   "forget <paths...>",
	Short: "Remove files from the manifest",
	Args:  cobra.MinimumNArgs(1),
	RunE:  RunManifestForget,
}

func init() {
	manifestVerifyCmd.Flags().Bool("quiet", false, "Only print files that are not OK")
	manifestCmd.AddCommand(manifestIndexCmd, manifestVerifyCmd, manifestListCmd, manifestForgetCmd)
	rootCmd.AddCommand(manifestCmd)
}

// openManifest opens the manifest database described by config. The returned
// close function must be called when the caller is done with the store.
func openManifest(config *Config) (*manifest.Store, func(), error) {
	if err := os.MkdirAll(config.DBDirectory, os.ModePerm); err != nil {
		return nil, nil, errors.Wrapf(err, "openManifest: Could not create %v", config.DBDirectory)
	}
	db := storage.NewLockedDatabase(
		storage.NewBadgerDatabase(storage.DefaultBadgerOptions(config.DBDirectory), false))
	if err := db.Setup(); err != nil {
		return nil, nil, errors.Wrapf(err, "openManifest:")
	}
	closeFn := func() {
		if err := db.Close(); err != nil {
			glog.Errorf("openManifest: Problem closing database: %v", err)
		}
	}
	return manifest.NewStore(db), closeFn, nil
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func RunManifestIndex(cmd *cobra.Command, args []string) error {
	config, err := loadCommandConfig()
	if err != nil {
		return err
	}
	config.Print()

	files, err := manifest.CollectFiles(args)
	if err != nil {
		return errors.Wrapf(err, "RunManifestIndex:")
	}
	store, closeFn, err := openManifest(config)
	if err != nil {
		return err
	}
	defer closeFn()
	hasher, err := manifest.NewFileHasher(config.HashCacheSize)
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()
	entries, err := manifest.NewIndexer(store, hasher, config.Algorithm, config.Workers).Index(ctx, files)
	glog.Info(CLog(Yellow, fmt.Sprintf("RunManifestIndex: Recorded %d of %d files", len(entries), len(files))))
	fmt.Fprintf(cmd.OutOrStdout(), "indexed %d files\n", len(entries))
	if err != nil {
		return errors.Wrapf(err, "RunManifestIndex:")
	}
	return nil
}

func RunManifestVerify(cmd *cobra.Command, args []string) error {
	config, err := loadCommandConfig()
	if err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	store, closeFn, err := openManifest(config)
	if err != nil {
		return err
	}
	defer closeFn()
	hasher, err := manifest.NewFileHasher(config.HashCacheSize)
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()
	reports, err := manifest.Verify(ctx, store, hasher, config.Workers)
	if err != nil {
		return errors.Wrapf(err, "RunManifestVerify:")
	}

	out := cmd.OutOrStdout()
	for _, report := range reports {
		if quiet && report.Status == manifest.StatusOK {
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", report.Entry.Path, colorStatus(report.Status))
		if report.Err != nil {
			glog.V(1).Infof("RunManifestVerify: %v: %v", report.Entry.Path, report.Err)
		}
	}

	failed := manifest.Failed(reports)
	if len(failed) > 0 {
		return errors.Errorf("RunManifestVerify: %d of %d files failed verification", len(failed), len(reports))
	}
	fmt.Fprintf(out, "%d files verified\n", len(reports))
	return nil
}

func RunManifestList(cmd *cobra.Command, args []string) error {
	config, err := loadCommandConfig()
	if err != nil {
		return err
	}
	store, closeFn, err := openManifest(config)
	if err != nil {
		return err
	}
	defer closeFn()

	entries, err := store.List()
	if err != nil {
		return errors.Wrapf(err, "RunManifestList:")
	}
	for _, entry := range entries {
		fmt.Fprintln(cmd.OutOrStdout(), formatSumLine(entry.Algorithm, entry.Path, entry.Digest, true))
	}
	return nil
}

func RunManifestForget(cmd *cobra.Command, args []string) error {
	config, err := loadCommandConfig()
	if err != nil {
		return err
	}
	store, closeFn, err := openManifest(config)
	if err != nil {
		return err
	}
	defer closeFn()

	// Paths are resolved without touching the filesystem, so files and
	// directories that no longer exist can still be forgotten.
	var forgotten int
	for _, path := range args {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return errors.Wrapf(err, "RunManifestForget:")
		}
		removed, err := store.Forget(absPath)
		if err != nil {
			return errors.Wrapf(err, "RunManifestForget:")
		}
		glog.V(1).Infof("RunManifestForget: Removed %d entries for %v", removed, absPath)
		forgotten += removed
	}
	fmt.Fprintf(cmd.OutOrStdout(), "forgot %d files\n", forgotten)
	return nil
}

func colorStatus(status manifest.Status) string {
	switch status {
	case manifest.StatusOK:
		return CLog(Green, status.String())
	case manifest.StatusMissing:
		return CLog(Yellow, status.String())
	default:
		return CLog(Red, status.String())
	}
}
