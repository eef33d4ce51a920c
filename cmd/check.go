package cmd

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/deso-protocol/purehash/digest"
	"github.com/deso-protocol/purehash/manifest"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <checksum-file>...",
	Short: "Verify files against checksum lists",
	Long: `Read checksum lists in GNU ("digest  file") or BSD ("ALGORITHM (file) = digest")
format and verify every listed file. GNU lines use --algorithm; BSD lines name their own
algorithm. A list of "-" is read from standard input. Exits non-zero if any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: RunCheck,
}

func init() {
	checkCmd.Flags().Bool("quiet", false, "Don't print OK for each successfully verified file")
	rootCmd.AddCommand(checkCmd)
}

var (
	ErrMalformedLine = errors.New("malformed checksum line")

	bsdLineRegexp = regexp.MustCompile(`^([A-Za-z0-9_/-]+) \((.*)\) = ([0-9A-Fa-f]+)$`)
	gnuLineRegexp = regexp.MustCompile(`^([0-9A-Fa-f]+) [ *](.+)$`)
)

type checksumLine struct {
	Algorithm digest.Algorithm
	Path      string
	Digest    []byte
}

// parseChecksumLine parses one GNU or BSD checksum line. GNU lines carry no
// algorithm name, so defaultAlg applies to them.
func parseChecksumLine(line string, defaultAlg digest.Algorithm) (*checksumLine, error) {
	line = strings.TrimRight(line, "\r")

	var (
		alg    = defaultAlg
		path   string
		hexSum string
	)
	if match := bsdLineRegexp.FindStringSubmatch(line); match != nil {
		parsed, err := digest.ParseAlgorithm(match[1])
		if err != nil {
			return nil, errors.Wrapf(err, "parseChecksumLine:")
		}
		alg, path, hexSum = parsed, match[2], match[3]
	} else if match := gnuLineRegexp.FindStringSubmatch(line); match != nil {
		path, hexSum = match[2], match[1]
	} else {
		return nil, errors.Wrapf(ErrMalformedLine, "parseChecksumLine: %q", line)
	}

	sum, err := hex.DecodeString(hexSum)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedLine, "parseChecksumLine: Bad digest in %q", line)
	}
	if len(sum) != alg.Size() {
		return nil, errors.Wrapf(ErrMalformedLine, "parseChecksumLine: %d byte digest for %v", len(sum), alg)
	}
	return &checksumLine{Algorithm: alg, Path: path, Digest: sum}, nil
}

type checkSummary struct {
	OK         int
	Mismatched int
	Unreadable int
	Malformed  int
}

func (summary checkSummary) Failed() bool {
	return summary.Mismatched > 0 || summary.Unreadable > 0 || summary.Malformed > 0
}

// checkChecksums verifies every line read from list and writes one status line per
// file to out. Files are digested through hasher, so a file that appears on several
// lines or lists with the same algorithm is read once when hasher caches.
func checkChecksums(list io.Reader, defaultAlg digest.Algorithm, hasher manifest.Hasher,
	out io.Writer, quiet bool) (checkSummary, error) {

	var summary checkSummary

	scanner := bufio.NewScanner(list)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		line, err := parseChecksumLine(text, defaultAlg)
		if err != nil {
			glog.V(1).Infof("checkChecksums: %v", err)
			summary.Malformed++
			continue
		}

		entry, err := hasher.HashFile(line.Path, line.Algorithm)
		if err != nil {
			glog.V(1).Infof("checkChecksums: %v", err)
			summary.Unreadable++
			fmt.Fprintf(out, "%s: %s\n", line.Path, CLog(Red, "FAILED open or read"))
			continue
		}
		if !bytes.Equal(entry.Digest, line.Digest) {
			summary.Mismatched++
			fmt.Fprintf(out, "%s: %s\n", line.Path, CLog(Red, "FAILED"))
			continue
		}
		summary.OK++
		if !quiet {
			fmt.Fprintf(out, "%s: %s\n", line.Path, CLog(Green, "OK"))
		}
	}
	if err := scanner.Err(); err != nil {
		return summary, errors.Wrapf(err, "checkChecksums: Problem reading list")
	}
	return summary, nil
}

// checkListFile runs checkChecksums on one list, reading stdin for "-". The list
// file is closed before it returns.
func checkListFile(cmd *cobra.Command, listPath string, defaultAlg digest.Algorithm,
	hasher manifest.Hasher, quiet bool) (checkSummary, error) {

	if listPath == "-" {
		return checkChecksums(cmd.InOrStdin(), defaultAlg, hasher, cmd.OutOrStdout(), quiet)
	}
	file, err := os.Open(listPath)
	if err != nil {
		return checkSummary{}, errors.Wrapf(err, "checkListFile: Problem opening %v", listPath)
	}
	defer file.Close()
	return checkChecksums(file, defaultAlg, hasher, cmd.OutOrStdout(), quiet)
}

func RunCheck(cmd *cobra.Command, args []string) error {
	config, err := loadCommandConfig()
	if err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	// One hasher for every list, so files repeated across lists are read once.
	hasher, err := manifest.NewFileHasher(config.HashCacheSize)
	if err != nil {
		return errors.Wrapf(err, "RunCheck:")
	}

	var total checkSummary
	for _, listPath := range args {
		summary, err := checkListFile(cmd, listPath, config.Algorithm, hasher, quiet)
		if err != nil {
			return errors.Wrapf(err, "RunCheck: %v", listPath)
		}
		if summary.OK+summary.Mismatched+summary.Unreadable == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "purehash: %v: %s\n", listPath,
				CLog(Yellow, "no properly formatted checksum lines found"))
		}
		total.OK += summary.OK
		total.Mismatched += summary.Mismatched
		total.Unreadable += summary.Unreadable
		total.Malformed += summary.Malformed
	}
	hits, misses := hasher.CacheStats()
	glog.V(1).Infof("RunCheck: Digest cache hits=%d misses=%d", hits, misses)

	stderr := cmd.ErrOrStderr()
	if total.Malformed > 0 {
		fmt.Fprintf(stderr, "purehash: WARNING: %d lines are improperly formatted\n", total.Malformed)
	}
	if total.Unreadable > 0 {
		fmt.Fprintf(stderr, "purehash: WARNING: %d listed files could not be read\n", total.Unreadable)
	}
	if total.Mismatched > 0 {
		fmt.Fprintf(stderr, "purehash: WARNING: %d computed checksums did NOT match\n", total.Mismatched)
	}
	if total.Failed() {
		return errors.Errorf("RunCheck: verification failed")
	}
	return nil
}
