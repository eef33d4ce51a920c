package manifest

import (
	"bytes"
	"context"
	"io/fs"

	"github.com/deso-protocol/purehash/collections"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

type Status uint8

const (
	StatusOK Status = iota
	StatusMismatch
	StatusMissing
	StatusError
)

func (status Status) String() string {
	switch status {
	case StatusOK:
		return "OK"
	case StatusMismatch:
		return "MISMATCH"
	case StatusMissing:
		return "MISSING"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Report is the verification outcome of one stored entry. Got is the fresh digest
// when the file could be hashed; Err is set for StatusMissing and StatusError.
type Report struct {
	Entry  *Entry
	Status Status
	Got    []byte
	Err    error
}

// Verify re-hashes every path in the store with its recorded algorithm and reports
// per entry, in path order. The returned error covers only store and context
// failures; per-file problems are reported through Status.
func Verify(ctx context.Context, store *Store, hasher Hasher, workers int) ([]*Report, error) {
	entries, err := store.List()
	if err != nil {
		return nil, errors.Wrapf(err, "Verify:")
	}

	// Each job writes only its own slot.
	reports := make([]*Report, len(entries))
	pool := newWorkerPool(ctx, workers)
	for ii, entry := range entries {
		err = pool.Go(func() {
			reports[ii] = verifyEntry(entry, hasher)
		})
		if err != nil {
			pool.Wait()
			return nil, errors.Wrapf(err, "Verify:")
		}
	}
	pool.Wait()

	return reports, nil
}

func verifyEntry(entry *Entry, hasher Hasher) *Report {
	report := &Report{Entry: entry}

	current, err := hasher.HashFile(entry.Path, entry.Algorithm)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		report.Status = StatusMissing
		report.Err = err
	case err != nil:
		report.Status = StatusError
		report.Err = err
	case !bytes.Equal(current.Digest, entry.Digest):
		report.Status = StatusMismatch
		report.Got = current.Digest
	default:
		report.Status = StatusOK
		report.Got = current.Digest
	}

	glog.V(1).Infof("Verify: %v %v", entry.Path, report.Status)
	return report
}

// Failed returns the reports whose status is not StatusOK.
func Failed(reports []*Report) []*Report {
	return collections.Filter(reports, func(report *Report) bool {
		return report.Status != StatusOK
	})
}
